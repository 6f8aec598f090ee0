package board

import (
	"fmt"
	"strconv"
)

// TeamID - opaque team identifier, the engine never interprets it.
type TeamID uint8

type Kind uint8

const (
	Empty Kind = iota
	Owned
	Contested
)

func (that Kind) String() string {
	switch that {
	case Empty:
		return "empty"
	case Owned:
		return "owned"
	case Contested:
		return "contested"
	default:
		return "kind(" + strconv.Itoa(int(that)) + ")"
	}
}

// State - play state of a cell. Team is set only for Owned.
type State struct {
	Kind Kind
	Team TeamID
}

func EmptyState() State {
	return State{Kind: Empty}
}

func OwnedBy(team TeamID) State {
	return State{Kind: Owned, Team: team}
}

func ContestedState() State {
	return State{Kind: Contested}
}

func (that State) IsEmpty() bool {
	return that.Kind == Empty
}

// Owner - the owning team, ok is false unless the state is Owned.
func (that State) Owner() (TeamID, bool) {
	return that.Team, that.Kind == Owned
}

func (that State) String() string {
	switch that.Kind {
	case Owned:
		return fmt.Sprintf("owned(%d)", that.Team)
	case Empty, Contested:
		return that.Kind.String()
	default:
		return that.Kind.String()
	}
}
