package environment

import "net"

// Provisioning is the intermediate state while the provision command's
// infrastructure creation is in flight.
//
// Valid transitions: Provisioned (success), ProvisionFailed (failure),
// Destroyed.
type Provisioning struct {
	core Core
}

func (p Provisioning) Core() Core { return p.core }

// ProvisionSucceeded records that infrastructure creation completed and the
// instance is reachable at instanceIP.
func (p Provisioning) ProvisionSucceeded(instanceIP net.IP) Provisioned {
	return Provisioned{core: p.core.withRuntimeOutputs(RuntimeOutputs{
		InstanceIP:      instanceIP,
		ProvisionMethod: ProvisionMethodProvisioned,
	})}
}

// ProvisionFailed records that infrastructure creation failed.
func (p Provisioning) ProvisionFailed(ctx ProvisionFailureContext) ProvisionFailed {
	return ProvisionFailed{core: p.core, context: ctx}
}

// Destroy tears down whatever infrastructure was created before the
// failure or interruption.
func (p Provisioning) Destroy() Destroyed {
	return Destroyed{core: p.core}
}

func (p Provisioning) IntoAny() AnyEnvironmentState {
	return AnyEnvironmentState{Kind: KindProvisioning, Provisioning: &p}
}

func (a AnyEnvironmentState) TryIntoProvisioning() (Provisioning, error) {
	if a.Kind != KindProvisioning {
		return Provisioning{}, &StateTypeError{Expected: StateProvisioning, Actual: a.StateName()}
	}
	return *a.Provisioning, nil
}
