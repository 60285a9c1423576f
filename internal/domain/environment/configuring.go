package environment

// Configuring is the intermediate state while the configure command
// (Docker/container-runtime installation, readiness checks) is in flight.
//
// Valid transitions: Configured (success), ConfigureFailed (failure),
// Destroyed.
type Configuring struct {
	core Core
}

func (c Configuring) Core() Core { return c.core }

func (c Configuring) ConfigureSucceeded() Configured {
	return Configured{core: c.core}
}

func (c Configuring) ConfigureFailed(ctx ConfigureFailureContext) ConfigureFailed {
	return ConfigureFailed{core: c.core, context: ctx}
}

func (c Configuring) Destroy() Destroyed {
	return Destroyed{core: c.core}
}

func (c Configuring) IntoAny() AnyEnvironmentState {
	return AnyEnvironmentState{Kind: KindConfiguring, Configuring: &c}
}

func (a AnyEnvironmentState) TryIntoConfiguring() (Configuring, error) {
	if a.Kind != KindConfiguring {
		return Configuring{}, &StateTypeError{Expected: StateConfiguring, Actual: a.StateName()}
	}
	return *a.Configuring, nil
}
