package environment

// Configured means the instance has Docker/the container runtime installed
// and is ready for the release command to deploy service configuration.
//
// Valid transitions: Releasing, Destroyed.
type Configured struct {
	core Core
}

func (c Configured) Core() Core { return c.core }

func (c Configured) StartReleasing() Releasing {
	return Releasing{core: c.core}
}

func (c Configured) Destroy() Destroyed {
	return Destroyed{core: c.core}
}

func (c Configured) IntoAny() AnyEnvironmentState {
	return AnyEnvironmentState{Kind: KindConfigured, Configured: &c}
}

func (a AnyEnvironmentState) TryIntoConfigured() (Configured, error) {
	if a.Kind != KindConfigured {
		return Configured{}, &StateTypeError{Expected: StateConfigured, Actual: a.StateName()}
	}
	return *a.Configured, nil
}
