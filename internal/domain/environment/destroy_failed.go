package environment

// DestroyFailed is a failure state: a teardown attempt failed partway
// through. Recovery option: retry destroy.
//
// Unlike the other failure states, destroy can be attempted from any
// lifecycle state, so the transition into DestroyFailed is exposed once on
// AnyEnvironmentState (below) rather than duplicated on every typed state.
type DestroyFailed struct {
	core    Core
	context DestroyFailureContext
}

func (d DestroyFailed) Core() Core                        { return d.core }
func (d DestroyFailed) Context() DestroyFailureContext { return d.context }

// Retry attempts the teardown again.
func (d DestroyFailed) Retry() Destroyed {
	return Destroyed{core: d.core}
}

func (d DestroyFailed) IntoAny() AnyEnvironmentState {
	return AnyEnvironmentState{Kind: KindDestroyFailed, DestroyFailed: &d}
}

func (a AnyEnvironmentState) TryIntoDestroyFailed() (DestroyFailed, error) {
	if a.Kind != KindDestroyFailed {
		return DestroyFailed{}, &StateTypeError{Expected: StateDestroyFailed, Actual: a.StateName()}
	}
	return *a.DestroyFailed, nil
}

// IntoDestroyFailed records a failed teardown attempt from whatever
// lifecycle state the environment was in when destroy was invoked.
func (a AnyEnvironmentState) IntoDestroyFailed(ctx DestroyFailureContext) DestroyFailed {
	return DestroyFailed{core: a.Core(), context: ctx}
}
