package environment

// Provisioned means the instance exists and is reachable (either through
// provision or register).
//
// Valid transitions: Configuring, Destroyed.
type Provisioned struct {
	core Core
}

func (p Provisioned) Core() Core { return p.core }

// StartConfiguring begins the configure command.
func (p Provisioned) StartConfiguring() Configuring {
	return Configuring{core: p.core}
}

func (p Provisioned) Destroy() Destroyed {
	return Destroyed{core: p.core}
}

func (p Provisioned) IntoAny() AnyEnvironmentState {
	return AnyEnvironmentState{Kind: KindProvisioned, Provisioned: &p}
}

func (a AnyEnvironmentState) TryIntoProvisioned() (Provisioned, error) {
	if a.Kind != KindProvisioned {
		return Provisioned{}, &StateTypeError{Expected: StateProvisioned, Actual: a.StateName()}
	}
	return *a.Provisioned, nil
}
