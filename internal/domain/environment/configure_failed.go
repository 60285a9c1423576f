package environment

// ConfigureFailed is a failure state: the configure command failed during
// execution. Recovery options: retry configure, or destroy.
type ConfigureFailed struct {
	core    Core
	context ConfigureFailureContext
}

func (c ConfigureFailed) Core() Core                          { return c.core }
func (c ConfigureFailed) Context() ConfigureFailureContext { return c.context }

func (c ConfigureFailed) Retry() Configuring {
	return Configuring{core: c.core}
}

func (c ConfigureFailed) Destroy() Destroyed {
	return Destroyed{core: c.core}
}

func (c ConfigureFailed) IntoAny() AnyEnvironmentState {
	return AnyEnvironmentState{Kind: KindConfigureFailed, ConfigureFailed: &c}
}

func (a AnyEnvironmentState) TryIntoConfigureFailed() (ConfigureFailed, error) {
	if a.Kind != KindConfigureFailed {
		return ConfigureFailed{}, &StateTypeError{Expected: StateConfigureFailed, Actual: a.StateName()}
	}
	return *a.ConfigureFailed, nil
}
