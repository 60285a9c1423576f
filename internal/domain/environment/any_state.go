package environment

// Kind discriminates the AnyEnvironmentState tagged union; it is the
// persisted document's "state" field (see internal/domain/environment's
// repository wrapper, C6, for the JSON shape).
type Kind string

const (
	KindCreated         Kind = Kind(StateCreated)
	KindProvisioning    Kind = Kind(StateProvisioning)
	KindProvisioned     Kind = Kind(StateProvisioned)
	KindProvisionFailed Kind = Kind(StateProvisionFailed)
	KindConfiguring     Kind = Kind(StateConfiguring)
	KindConfigured      Kind = Kind(StateConfigured)
	KindConfigureFailed Kind = Kind(StateConfigureFailed)
	KindReleasing       Kind = Kind(StateReleasing)
	KindReleased        Kind = Kind(StateReleased)
	KindReleaseFailed   Kind = Kind(StateReleaseFailed)
	KindRunning         Kind = Kind(StateRunning)
	KindRunFailed       Kind = Kind(StateRunFailed)
	KindDestroyFailed   Kind = Kind(StateDestroyFailed)
	KindDestroyed       Kind = Kind(StateDestroyed)
)

// AnyEnvironmentState is the type-erased runtime representation of an
// Environment in any one of its lifecycle states. Command handlers load
// this from the repository (C6), dispatch on Kind, recover the typed
// wrapper via the matching TryInto* method, and act on it.
//
// Exactly one of the typed fields is populated, selected by Kind. This
// mirrors the Rust source's enum AnyEnvironmentState, rendered in Go as a
// tagged union struct since Go has no sum types.
type AnyEnvironmentState struct {
	Kind Kind

	Created         *Created
	Provisioning    *Provisioning
	Provisioned     *Provisioned
	ProvisionFailed *ProvisionFailed
	Configuring     *Configuring
	Configured      *Configured
	ConfigureFailed *ConfigureFailed
	Releasing       *Releasing
	Released        *Released
	ReleaseFailed   *ReleaseFailed
	Running         *Running
	RunFailed       *RunFailed
	DestroyFailed   *DestroyFailed
	Destroyed       *Destroyed
}

// StateName returns the human-readable name of the wrapped state.
func (a AnyEnvironmentState) StateName() StateName {
	return StateName(a.Kind)
}

// Core exposes the shared fields regardless of which state is active,
// useful for `show`/`list` handlers that don't need a typed view.
func (a AnyEnvironmentState) Core() Core {
	switch a.Kind {
	case KindCreated:
		return a.Created.core
	case KindProvisioning:
		return a.Provisioning.core
	case KindProvisioned:
		return a.Provisioned.core
	case KindProvisionFailed:
		return a.ProvisionFailed.core
	case KindConfiguring:
		return a.Configuring.core
	case KindConfigured:
		return a.Configured.core
	case KindConfigureFailed:
		return a.ConfigureFailed.core
	case KindReleasing:
		return a.Releasing.core
	case KindReleased:
		return a.Released.core
	case KindReleaseFailed:
		return a.ReleaseFailed.core
	case KindRunning:
		return a.Running.core
	case KindRunFailed:
		return a.RunFailed.core
	case KindDestroyFailed:
		return a.DestroyFailed.core
	case KindDestroyed:
		return a.Destroyed.core
	default:
		panic("environment: AnyEnvironmentState has unknown Kind " + string(a.Kind))
	}
}
