package entity

import "github.com/rocketscienceinc/fractal-tictactoe/internal/board"

const (
	TeamX board.TeamID = 0
	TeamO board.TeamID = 1
)

// Team - display metadata for a team id. The board only ever sees the id.
type Team struct {
	ID    board.TeamID `json:"id"`
	Name  string       `json:"name"`
	Color string       `json:"color"`
}

func DefaultTeams() map[board.TeamID]Team {
	return map[board.TeamID]Team{
		TeamX: {ID: TeamX, Name: "X", Color: "red"},
		TeamO: {ID: TeamO, Name: "O", Color: "blue"},
	}
}

// OtherTeam - the team that moves after team.
func OtherTeam(team board.TeamID) board.TeamID {
	return 1 - team
}
