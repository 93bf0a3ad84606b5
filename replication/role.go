package replication

// SimulationRole is the role a single instance of a character plays in the simulation. It is passed into
// every tick explicitly.
type SimulationRole uint8

const (
	// RoleAuthority is the authoritative instance of a character, normally on the server.
	RoleAuthority SimulationRole = iota
	// RoleAutonomous is the predicting instance on the client owning the character.
	RoleAutonomous
	// RoleSimulated is an observed proxy of a character owned by someone else.
	RoleSimulated
)

func (r SimulationRole) String() string {
	switch r {
	case RoleAuthority:
		return "authority"
	case RoleAutonomous:
		return "autonomous"
	case RoleSimulated:
		return "simulated"
	default:
		return "unknown"
	}
}

// Valid ...
func (r SimulationRole) Valid() bool {
	return r <= RoleSimulated
}

// SimulatesPhysics reports whether the role runs the movement integrator.
func (r SimulationRole) SimulatesPhysics() bool {
	return r == RoleAuthority || r == RoleAutonomous
}

// SimulatesCustomModes reports whether the role runs wall-run, slide and prone physics. Proxies only adopt
// the replicated mode.
func (r SimulationRole) SimulatesCustomModes() bool {
	return r == RoleAuthority || r == RoleAutonomous
}

// RecordsMoves reports whether the role records saved moves for its simulated ticks.
func (r SimulationRole) RecordsMoves() bool {
	return r == RoleAuthority || r == RoleAutonomous
}

// AppliesSnapshots reports whether the role is driven purely by replicated snapshots.
func (r SimulationRole) AppliesSnapshots() bool {
	return r == RoleSimulated
}

// LocallyControlled reports whether input for the character originates on this instance. An authority is
// only locally controlled when the host itself owns the character.
func (r SimulationRole) LocallyControlled(hostOwned bool) bool {
	switch r {
	case RoleAutonomous:
		return true
	case RoleAuthority:
		return hostOwned
	default:
		return false
	}
}

// ReceivesOwnerState reports whether replicated intent flags are applied on this role. The owner keeps its
// own predicted flags.
func (r SimulationRole) ReceivesOwnerState() bool {
	return r == RoleSimulated
}
