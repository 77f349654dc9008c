package model

// CellState is the binary state of a single grid position
type CellState uint8

const (
	Dead CellState = iota
	Alive
)

// Toggle returns the opposite state
func (s CellState) Toggle() CellState {
	if s == Alive {
		return Dead
	}
	return Alive
}

// IsAlive reports whether the state is Alive
func (s CellState) IsAlive() bool { return s == Alive }

func (s CellState) String() string {
	if s == Alive {
		return "ALIVE"
	}
	return "DEAD"
}

func stateOf(alive bool) CellState {
	if alive {
		return Alive
	}
	return Dead
}
