package environment

// ReleaseFailed is a failure state: the release command failed during
// execution. Recovery options: retry release, or destroy.
type ReleaseFailed struct {
	core    Core
	context ReleaseFailureContext
}

func (r ReleaseFailed) Core() Core                        { return r.core }
func (r ReleaseFailed) Context() ReleaseFailureContext { return r.context }

func (r ReleaseFailed) Retry() Releasing {
	return Releasing{core: r.core}
}

func (r ReleaseFailed) Destroy() Destroyed {
	return Destroyed{core: r.core}
}

func (r ReleaseFailed) IntoAny() AnyEnvironmentState {
	return AnyEnvironmentState{Kind: KindReleaseFailed, ReleaseFailed: &r}
}

func (a AnyEnvironmentState) TryIntoReleaseFailed() (ReleaseFailed, error) {
	if a.Kind != KindReleaseFailed {
		return ReleaseFailed{}, &StateTypeError{Expected: StateReleaseFailed, Actual: a.StateName()}
	}
	return *a.ReleaseFailed, nil
}
