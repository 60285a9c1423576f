package environment

// Running is a success state: the application is up and serving traffic.
// It moves on to RunFailed or Destroyed.
//
// Valid transitions: RunFailed (if a later health check fails), Destroyed.
type Running struct {
	core Core
}

func (r Running) Core() Core { return r.core }

func (r Running) RunFailed(ctx RunFailureContext) RunFailed {
	return RunFailed{core: r.core, context: ctx}
}

func (r Running) Destroy() Destroyed {
	return Destroyed{core: r.core}
}

func (r Running) IntoAny() AnyEnvironmentState {
	return AnyEnvironmentState{Kind: KindRunning, Running: &r}
}

func (a AnyEnvironmentState) TryIntoRunning() (Running, error) {
	if a.Kind != KindRunning {
		return Running{}, &StateTypeError{Expected: StateRunning, Actual: a.StateName()}
	}
	return *a.Running, nil
}
