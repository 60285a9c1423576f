package environment

// Released is a success state: the environment is fully prepared and ready
// to run the application. It moves on to Running or Destroyed.
//
// Valid transitions: Running (start application), Destroyed.
type Released struct {
	core Core
}

func (r Released) Core() Core { return r.core }

// StartRunning indicates that the application has started running.
func (r Released) StartRunning() Running {
	return Running{core: r.core}
}

func (r Released) Destroy() Destroyed {
	return Destroyed{core: r.core}
}

func (r Released) IntoAny() AnyEnvironmentState {
	return AnyEnvironmentState{Kind: KindReleased, Released: &r}
}

func (a AnyEnvironmentState) TryIntoReleased() (Released, error) {
	if a.Kind != KindReleased {
		return Released{}, &StateTypeError{Expected: StateReleased, Actual: a.StateName()}
	}
	return *a.Released, nil
}
