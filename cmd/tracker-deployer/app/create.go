package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/handler"
)

// newCreateCommand groups the three `create` subcommands: environment
// (parses and persists an env file), template (emits a skeleton env file),
// schema (emits the JSON Schema an env file must satisfy).
func newCreateCommand(holder *depsHolder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an environment, a skeleton config, or its JSON Schema",
	}
	cmd.AddCommand(newCreateEnvironmentCommand(holder), newCreateTemplateCommand(), newCreateSchemaCommand())
	return cmd
}

func newCreateEnvironmentCommand(holder *depsHolder) *cobra.Command {
	var envFile string
	var generateSSHKey bool
	cmd := &cobra.Command{
		Use:   "environment",
		Short: "Parse, validate, and persist a new environment from a JSON config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if envFile == "" {
				return handler.ConfigurationError("create environment: --env-file is required", nil)
			}
			h := &handler.CreateHandler{Deps: holder.deps}
			created, err := h.Handle(envFile, generateSSHKey)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "environment %q created\n", created.Core().Name())
			return nil
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", "", "path to the environment's JSON config file")
	cmd.Flags().BoolVar(&generateSSHKey, "generate-ssh-key", false,
		"generate an RSA keypair at the env file's configured key paths if no private key exists there yet")
	return cmd
}

// envFileTemplateLxd and envFileTemplateHetzner are the skeletons
// `create template --provider lxd|hetzner` emits, shaped like envFileWire
// (handler/envfile.go), with every optional service left out by omission
// rather than null, so a first edit only has to fill in real values.
const envFileTemplateLxd = `{
  "environment_name": "my-tracker",
  "provider_config": {
    "provider": "lxd",
    "lxd": {
      "profile_name": "torrust"
    }
  },
  "ssh_credentials": {
    "private_key_path": "~/.ssh/id_ed25519",
    "public_key_path": "~/.ssh/id_ed25519.pub",
    "username": "torrust"
  },
  "ssh_port": 22,
  "tracker_config": {
    "database": {
      "database": "sqlite"
    },
    "http_port": 7070,
    "udp_port": 6969,
    "api_port": 1212,
    "api_token": "MyAccessToken",
    "health_check_port": 1313
  }
}
`

const envFileTemplateHetzner = `{
  "environment_name": "my-tracker",
  "provider_config": {
    "provider": "hetzner",
    "hetzner": {
      "api_token": "hetzner-api-token",
      "server_type": "cx22",
      "location": "nbg1",
      "image": "ubuntu-24.04"
    }
  },
  "ssh_credentials": {
    "private_key_path": "~/.ssh/id_ed25519",
    "public_key_path": "~/.ssh/id_ed25519.pub",
    "username": "torrust"
  },
  "ssh_port": 22,
  "tracker_config": {
    "database": {
      "database": "sqlite"
    },
    "http_port": 7070,
    "udp_port": 6969,
    "api_port": 1212,
    "api_token": "MyAccessToken",
    "health_check_port": 1313
  }
}
`

func newCreateTemplateCommand() *cobra.Command {
	var provider string
	cmd := &cobra.Command{
		Use:   "template [PATH]",
		Short: "Emit a skeleton environment config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var body string
			switch provider {
			case "lxd":
				body = envFileTemplateLxd
			case "hetzner":
				body = envFileTemplateHetzner
			default:
				return handler.ConfigurationError(fmt.Sprintf("create template: unknown provider %q (want lxd or hetzner)", provider), nil)
			}
			if len(args) == 0 {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			return os.WriteFile(args[0], []byte(body), 0o644)
		},
	}
	cmd.Flags().StringVar(&provider, "provider", "lxd", "provider the skeleton targets: lxd or hetzner")
	return cmd
}

func newCreateSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema [PATH]",
		Short: "Emit the JSON Schema an environment config file must satisfy",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := json.MarshalIndent(envFileSchema, "", "  ")
			if err != nil {
				return err
			}
			body = append(body, '\n')
			if len(args) == 0 {
				_, err := cmd.OutOrStdout().Write(body)
				return err
			}
			return os.WriteFile(args[0], body, 0o644)
		},
	}
	return cmd
}

// envFileSchema is hand-written rather than reflected off envFileWire: no
// struct-tag-to-JSON-Schema generator appears anywhere in the example pack
// (see SPEC_FULL.md §6.2), and a reflection-based schema would have to
// special-case every tagged-union field (ProviderConfig, DatabaseConfig)
// anyway, so a plain map literal mirroring envFileWire's shape is no more
// work and stays readable.
var envFileSchema = map[string]interface{}{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"title":   "tracker-deployer environment config",
	"type":    "object",
	"required": []string{
		"environment_name", "provider_config", "ssh_credentials", "ssh_port", "tracker_config",
	},
	"properties": map[string]interface{}{
		"environment_name": map[string]interface{}{
			"type":    "string",
			"pattern": "^[a-z][a-z0-9-]*$",
			"maxLength": 63,
		},
		"instance_name": map[string]interface{}{"type": "string"},
		"provider_config": map[string]interface{}{
			"type":     "object",
			"required": []string{"provider"},
			"properties": map[string]interface{}{
				"provider": map[string]interface{}{"enum": []string{"lxd", "hetzner"}},
				"lxd": map[string]interface{}{
					"type":       "object",
					"required":   []string{"profile_name"},
					"properties": map[string]interface{}{"profile_name": map[string]interface{}{"type": "string"}},
				},
				"hetzner": map[string]interface{}{
					"type":     "object",
					"required": []string{"api_token", "server_type", "location", "image"},
					"properties": map[string]interface{}{
						"api_token":   map[string]interface{}{"type": "string"},
						"server_type": map[string]interface{}{"type": "string"},
						"location":    map[string]interface{}{"type": "string"},
						"image":       map[string]interface{}{"type": "string"},
					},
				},
			},
		},
		"ssh_credentials": map[string]interface{}{
			"type":     "object",
			"required": []string{"private_key_path", "public_key_path", "username"},
			"properties": map[string]interface{}{
				"private_key_path": map[string]interface{}{"type": "string"},
				"public_key_path":  map[string]interface{}{"type": "string"},
				"username":         map[string]interface{}{"type": "string"},
			},
		},
		"ssh_port": map[string]interface{}{"type": "integer", "minimum": 1, "maximum": 65535},
		"tracker_config": map[string]interface{}{
			"type":     "object",
			"required": []string{"database", "http_port", "udp_port", "api_port", "api_token", "health_check_port"},
			"properties": map[string]interface{}{
				"database": map[string]interface{}{
					"type":     "object",
					"required": []string{"database"},
					"properties": map[string]interface{}{
						"database": map[string]interface{}{"enum": []string{"sqlite", "mysql"}},
						"mysql": map[string]interface{}{
							"type":     "object",
							"required": []string{"database", "user", "password"},
							"properties": map[string]interface{}{
								"database": map[string]interface{}{"type": "string"},
								"user":     map[string]interface{}{"type": "string"},
								"password": map[string]interface{}{"type": "string"},
							},
						},
					},
				},
				"http_port":         map[string]interface{}{"type": "integer", "minimum": 1, "maximum": 65535},
				"udp_port":          map[string]interface{}{"type": "integer", "minimum": 1, "maximum": 65535},
				"api_port":          map[string]interface{}{"type": "integer", "minimum": 1, "maximum": 65535},
				"api_token":         map[string]interface{}{"type": "string"},
				"health_check_port": map[string]interface{}{"type": "integer", "minimum": 1, "maximum": 65535},
				"tls_domains":       map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
			},
		},
		"prometheus_config": map[string]interface{}{
			"type":     "object",
			"required": []string{"port", "scrape_interval_seconds"},
			"properties": map[string]interface{}{
				"port":                    map[string]interface{}{"type": "integer", "minimum": 1, "maximum": 65535},
				"scrape_interval_seconds": map[string]interface{}{"type": "integer", "minimum": 1},
			},
		},
		"grafana_config": map[string]interface{}{
			"type":     "object",
			"required": []string{"port", "admin_password"},
			"properties": map[string]interface{}{
				"port":           map[string]interface{}{"type": "integer", "minimum": 1, "maximum": 65535},
				"admin_password": map[string]interface{}{"type": "string"},
			},
		},
		"https_config": map[string]interface{}{
			"type":     "object",
			"required": []string{"contact_email", "domains"},
			"properties": map[string]interface{}{
				"contact_email": map[string]interface{}{"type": "string"},
				"domains":       map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
			},
		},
		"backup_config": map[string]interface{}{
			"type":     "object",
			"required": []string{"schedule", "retention_days"},
			"properties": map[string]interface{}{
				"schedule":       map[string]interface{}{"type": "string"},
				"retention_days": map[string]interface{}{"type": "integer", "minimum": 0},
			},
		},
	},
}
