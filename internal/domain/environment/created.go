package environment

import "net"

// Created is the initial state: configuration has been validated and
// persisted, but no infrastructure action has been taken yet.
//
// Valid transitions: Provisioning (via StartProvisioning), Provisioned
// (via Register, the reachability-only alternate path), Destroyed.
type Created struct {
	core Core
}

// NewCreated validates p and returns a freshly-created environment.
func NewCreated(p Params) (Created, error) {
	c, err := newCore(p)
	if err != nil {
		return Created{}, err
	}
	return Created{core: c}, nil
}

func (c Created) Core() Core { return c.core }

// StartProvisioning begins the provision command's infrastructure creation.
func (c Created) StartProvisioning() Provisioning {
	return Provisioning{core: c.core}
}

// Register marks the environment Provisioned without creating
// infrastructure: it records ProvisionMethodRegistered against instanceIP
// (the already-running host the operator points this environment at). The
// SSH reachability check and template rendering are done by the register
// handler before it calls Register.
func (c Created) Register(instanceIP net.IP) Provisioned {
	return Provisioned{core: c.core.withRuntimeOutputs(RuntimeOutputs{
		InstanceIP:      instanceIP,
		ProvisionMethod: ProvisionMethodRegistered,
	})}
}

// Destroy is a no-op teardown: a Created environment has no infrastructure
// to remove, so destroy always succeeds.
func (c Created) Destroy() Destroyed {
	return Destroyed{core: c.core}
}

// IntoAny converts the typed Created into the type-erased AnyEnvironmentState.
func (c Created) IntoAny() AnyEnvironmentState {
	return AnyEnvironmentState{Kind: KindCreated, Created: &c}
}

// TryIntoCreated attempts to recover a Created from a type-erased value.
func (a AnyEnvironmentState) TryIntoCreated() (Created, error) {
	if a.Kind != KindCreated {
		return Created{}, &StateTypeError{Expected: StateCreated, Actual: a.StateName()}
	}
	return *a.Created, nil
}
