package daifugo

import "fmt"

// PlayerRank is the class a player carries into a game, assigned from the
// previous game's finish order. The numeric value is what goes on the
// wire in row 6.
type PlayerRank int

const (
	Daifugo PlayerRank = iota
	Fugo
	Heimin
	Hinmin
	Daihinmin
)

var rankLogNames = [...]string{"daifugo", "fugo", "heimin", "hinmin", "daihinmin"}
var rankDisplayNames = [...]string{"Daifugō", "Fugō", "Heimin", "Hinmin", "Daihinmin"}

// LogName returns the event-log spelling of the rank.
func (r PlayerRank) LogName() string {
	return rankLogNames[r]
}

func (r PlayerRank) String() string {
	return rankDisplayNames[r]
}

// Player is one seat at the table. The engine owns the game-progress
// fields; the transport owns the socket behind the ID.
type Player struct {
	ID              int
	Name            string
	ProtocolVersion int
	Seat            int

	Rank PlayerRank

	HasPassed   bool
	HasFinished bool
	// FinishOrder is the 0-based finish position, -1 while playing.
	FinishOrder int
}

// NewPlayer returns a player in the game-1 state: everyone starts Heimin.
func NewPlayer(id int, name string, protocolVersion int) *Player {
	return &Player{
		ID:              id,
		Name:            name,
		ProtocolVersion: protocolVersion,
		Seat:            id,
		Rank:            Heimin,
		FinishOrder:     -1,
	}
}

// ResetTurnState clears the per-trick pass flag when the field flows.
func (p *Player) ResetTurnState() {
	p.HasPassed = false
}

// ResetGameState clears the per-game flags at the start of a new game.
func (p *Player) ResetGameState() {
	p.HasPassed = false
	p.HasFinished = false
	p.FinishOrder = -1
}

func (p *Player) String() string {
	switch {
	case p.HasFinished:
		return fmt.Sprintf("Player%d[%s] (#%d)", p.ID, p.Name, p.FinishOrder+1)
	case p.HasPassed:
		return fmt.Sprintf("Player%d[%s] (pass)", p.ID, p.Name)
	default:
		return fmt.Sprintf("Player%d[%s]", p.ID, p.Name)
	}
}
