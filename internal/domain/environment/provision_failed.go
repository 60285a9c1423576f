package environment

// ProvisionFailed is a failure state: the provision command failed during
// execution. Recovery options: retry provision, or destroy.
type ProvisionFailed struct {
	core    Core
	context ProvisionFailureContext
}

func (p ProvisionFailed) Core() Core                          { return p.core }
func (p ProvisionFailed) Context() ProvisionFailureContext { return p.context }

// Retry re-attempts provisioning from scratch.
func (p ProvisionFailed) Retry() Provisioning {
	return Provisioning{core: p.core}
}

func (p ProvisionFailed) Destroy() Destroyed {
	return Destroyed{core: p.core}
}

func (p ProvisionFailed) IntoAny() AnyEnvironmentState {
	return AnyEnvironmentState{Kind: KindProvisionFailed, ProvisionFailed: &p}
}

func (a AnyEnvironmentState) TryIntoProvisionFailed() (ProvisionFailed, error) {
	if a.Kind != KindProvisionFailed {
		return ProvisionFailed{}, &StateTypeError{Expected: StateProvisionFailed, Actual: a.StateName()}
	}
	return *a.ProvisionFailed, nil
}
