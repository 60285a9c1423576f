package app

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/handler"
)

func newRenderCommand(holder *depsHolder) *cobra.Command {
	var envName, envFile, instanceIPRaw, outputDir string
	var force bool
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Generate every configured service's artifacts without deploying them",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := handler.RenderOptions{
				EnvFilePath: envFile,
				OutputDir:   outputDir,
				Force:       force,
			}
			if envName != "" {
				name, err := parseEnvName(envName)
				if err != nil {
					return handler.ConfigurationError(err.Error(), err)
				}
				opts.EnvName = &name
			}
			if instanceIPRaw != "" {
				ip := net.ParseIP(instanceIPRaw)
				if ip == nil {
					return handler.ConfigurationError(fmt.Sprintf("render: invalid --instance-ip %q", instanceIPRaw), nil)
				}
				opts.InstanceIP = ip
			}
			h := &handler.RenderHandler{Deps: holder.deps}
			dir, err := h.Handle(opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rendered into %s\n", dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&envName, "env-name", "", "render a persisted environment's current configuration")
	cmd.Flags().StringVar(&envFile, "env-file", "", "render an env file without persisting it (requires --output-dir)")
	cmd.Flags().StringVar(&instanceIPRaw, "instance-ip", "", "instance address to render the Ansible inventory for")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "output directory (required with --env-file)")
	cmd.Flags().BoolVar(&force, "force", false, "render into a non-empty output directory")
	return cmd
}

func newShowCommand(holder *depsHolder) *cobra.Command {
	return &cobra.Command{
		Use:   "show ENV",
		Short: "Print ENV's persisted state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := parseEnvName(args[0])
			if err != nil {
				return handler.ConfigurationError(err.Error(), err)
			}
			h := &handler.ShowHandler{Deps: holder.deps}
			state, err := h.Handle(name)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), summarize(state))
		},
	}
}

func newListCommand(holder *depsHolder) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every persisted environment and its current state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h := &handler.ListHandler{Deps: holder.deps}
			summaries, err := h.Handle()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, s := range summaries {
				fmt.Fprintf(out, "%s\t%s\n", s.Name, s.State)
			}
			return nil
		},
	}
}
