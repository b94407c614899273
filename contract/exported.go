package contract

import "okinoko-arena/sdk"

// Program is the arena program deployed at ID.
type Program struct {
	ID sdk.Address
}

// New returns the program bound to its deployment address.
func New(programID sdk.Address) *Program {
	return &Program{ID: programID}
}

// Process decodes instruction data and runs the matching instruction. Every
// instruction validates all of its inputs before it writes anything.
func (p *Program) Process(ctx sdk.InvokeContext, data []byte) error {
	name, ok := InstructionName(data)
	if !ok {
		return abort(ErrInvalidArgument, "unknown instruction")
	}
	r := &rd{b: data, i: discriminatorLen}

	switch name {
	case IxCreateGame:
		maxItems := r.u8()
		if err := r.done(); err != nil {
			return err
		}
		return createGame(ctx, p.ID, maxItems)
	case IxCreatePlayer:
		if err := r.done(); err != nil {
			return err
		}
		return createPlayer(ctx, p.ID)
	case IxSpawnMonster:
		if err := r.done(); err != nil {
			return err
		}
		return spawnMonster(ctx, p.ID)
	case IxAttackMonster:
		index := r.u64()
		if err := r.done(); err != nil {
			return err
		}
		return attackMonster(ctx, p.ID, index)
	case IxDepositActionPoints:
		if err := r.done(); err != nil {
			return err
		}
		return depositActionPoints(ctx, p.ID)
	default:
		return abort(ErrInvalidArgument, "instruction %s has no handler", name)
	}
}

// InstructionName labels data for logs and metrics.
func (p *Program) InstructionName(data []byte) string {
	if name, ok := InstructionName(data); ok {
		return name
	}
	return "unknown"
}
