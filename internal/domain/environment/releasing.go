package environment

// Releasing is the intermediate state while the release command renders
// and deploys service configuration (tracker, and whichever optional
// services are configured) to the remote host.
//
// Valid transitions: Released (success), ReleaseFailed (failure),
// Destroyed.
type Releasing struct {
	core Core
}

func (r Releasing) Core() Core { return r.core }

func (r Releasing) ReleaseSucceeded() Released {
	return Released{core: r.core}
}

func (r Releasing) ReleaseFailed(ctx ReleaseFailureContext) ReleaseFailed {
	return ReleaseFailed{core: r.core, context: ctx}
}

func (r Releasing) Destroy() Destroyed {
	return Destroyed{core: r.core}
}

func (r Releasing) IntoAny() AnyEnvironmentState {
	return AnyEnvironmentState{Kind: KindReleasing, Releasing: &r}
}

func (a AnyEnvironmentState) TryIntoReleasing() (Releasing, error) {
	if a.Kind != KindReleasing {
		return Releasing{}, &StateTypeError{Expected: StateReleasing, Actual: a.StateName()}
	}
	return *a.Releasing, nil
}
