package environment

// RunFailed is a failure state: the run command failed during execution.
// Recovery options: retry run, or destroy.
type RunFailed struct {
	core    Core
	context RunFailureContext
}

func (r RunFailed) Core() Core                    { return r.core }
func (r RunFailed) Context() RunFailureContext { return r.context }

// Retry re-attempts starting the application from the Released state.
func (r RunFailed) Retry() Released {
	return Released{core: r.core}
}

func (r RunFailed) Destroy() Destroyed {
	return Destroyed{core: r.core}
}

func (r RunFailed) IntoAny() AnyEnvironmentState {
	return AnyEnvironmentState{Kind: KindRunFailed, RunFailed: &r}
}

func (a AnyEnvironmentState) TryIntoRunFailed() (RunFailed, error) {
	if a.Kind != KindRunFailed {
		return RunFailed{}, &StateTypeError{Expected: StateRunFailed, Actual: a.StateName()}
	}
	return *a.RunFailed, nil
}
