package environment

// Destroyed is the terminal state reached after a successful teardown.
// There are no transitions out of it.
type Destroyed struct {
	core Core
}

func (d Destroyed) Core() Core { return d.core }

func (d Destroyed) IntoAny() AnyEnvironmentState {
	return AnyEnvironmentState{Kind: KindDestroyed, Destroyed: &d}
}

func (a AnyEnvironmentState) TryIntoDestroyed() (Destroyed, error) {
	if a.Kind != KindDestroyed {
		return Destroyed{}, &StateTypeError{Expected: StateDestroyed, Actual: a.StateName()}
	}
	return *a.Destroyed, nil
}
