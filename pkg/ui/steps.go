// Package ui is the interactive replay viewer: it folds an event log
// into displayable steps and drives them with a bubbletea program.
package ui

import (
	"fmt"
	"strings"

	"github.com/vctt94/daifugo/pkg/gamelog"
)

// Step is one displayable snapshot of the replay.
type Step struct {
	Game int
	Turn int

	Players []gamelog.PlayerInfo
	Hands   map[string]string
	Ranks   map[string]string

	FieldCards string
	FieldType  string
	LastAction string

	CurrentPlayer int
	Revolution    bool
	ElevenBack    bool
	Locked        bool
	Finished      map[int]bool
}

func (s Step) clone() Step {
	out := s
	out.Players = append([]gamelog.PlayerInfo(nil), s.Players...)
	out.Hands = copyMap(s.Hands)
	out.Ranks = copyMap(s.Ranks)
	out.Finished = make(map[int]bool, len(s.Finished))
	for k, v := range s.Finished {
		out.Finished[k] = v
	}
	return out
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// PlayerName resolves a player id against the roster.
func (s Step) PlayerName(id int) string {
	for _, p := range s.Players {
		if p.ID == id {
			return p.Name
		}
	}
	return fmt.Sprintf("Player%d", id)
}

// BuildSteps folds the event stream into a replayable step sequence, one
// step per visible state change.
func BuildSteps(events []gamelog.Event) []Step {
	var steps []Step
	current := Step{CurrentPlayer: -1, Finished: map[int]bool{}}

	for _, ev := range events {
		switch ev.Type {
		case "session_start":
			current = Step{CurrentPlayer: -1, Finished: map[int]bool{}}
			current.Players = ev.Players
			current.LastAction = "Session started"

		case "game_start":
			current.Game = ev.Game
			current.Turn = 0
			current.Hands = ev.Hands
			current.Ranks = ev.Ranks
			current.FieldCards = ""
			current.FieldType = ""
			current.CurrentPlayer = ev.FirstPlayer
			current.Revolution = false
			current.ElevenBack = false
			current.Locked = false
			current.Finished = map[int]bool{}
			current.LastAction = "Game started"

		case "exchange":
			if ev.HandsAfter != nil {
				current.Hands = ev.HandsAfter
			}
			var parts []string
			for _, ex := range ev.Exchanges {
				parts = append(parts, fmt.Sprintf("%s → %s: %s",
					current.PlayerName(ex.From), current.PlayerName(ex.To), ex.Cards))
			}
			current.LastAction = "Exchange: " + strings.Join(parts, "; ")

		case "turn":
			current.Game = ev.Game
			current.Turn = ev.Turn
			if ev.Hands != nil {
				current.Hands = ev.Hands
			}
			if ev.Action == "play" {
				current.FieldCards = ev.Field
				current.FieldType = ev.CardType
				current.LastAction = fmt.Sprintf("%s played %s", current.PlayerName(ev.Player), ev.Cards)
			} else {
				current.LastAction = fmt.Sprintf("%s passed", current.PlayerName(ev.Player))
			}
			if ev.State != nil {
				current.Revolution = ev.State.Revolution
				current.ElevenBack = ev.State.ElevenBack
				current.Locked = ev.State.Locked
			}
			current.CurrentPlayer = ev.Player

		case "special":
			name := current.PlayerName(ev.Player)
			switch ev.Event {
			case "eight_stop":
				current.LastAction = fmt.Sprintf("8-cut! %s cleared the field", name)
				current.FieldCards = ""
				current.FieldType = ""
			case "revolution":
				current.Revolution = !current.Revolution
				current.LastAction = fmt.Sprintf("Revolution by %s!", name)
			case "eleven_back":
				current.ElevenBack = !current.ElevenBack
				current.LastAction = fmt.Sprintf("11-back by %s!", name)
			case "lock":
				current.Locked = true
				current.LastAction = fmt.Sprintf("Lock by %s!", name)
			case "field_clear":
				current.LastAction = "Field cleared (all passed)"
				current.FieldCards = ""
				current.FieldType = ""
				current.Locked = false
				current.ElevenBack = false
			case "player_finish":
				current.Finished[ev.Player] = true
				current.LastAction = fmt.Sprintf("%s finished in position %d", name, len(current.Finished))
			default:
				continue
			}

		case "game_end":
			var parts []string
			for _, id := range ev.FinishOrder {
				parts = append(parts, current.PlayerName(id))
			}
			current.LastAction = "Game ended. Order: " + strings.Join(parts, ", ")
			if ev.NewRanks != nil {
				current.Ranks = ev.NewRanks
			}

		case "session_end":
			var parts []string
			for _, p := range current.Players {
				parts = append(parts, fmt.Sprintf("%s:%d", p.Name, ev.FinalPoints[fmt.Sprint(p.ID)]))
			}
			current.LastAction = "Session ended. Points: " + strings.Join(parts, ", ")

		default:
			continue
		}
		steps = append(steps, current.clone())
	}
	return steps
}

// FindGameStart returns the step index at which a game begins, or -1.
func FindGameStart(steps []Step, game int) int {
	for i, s := range steps {
		if s.Game == game && s.Turn == 0 {
			return i
		}
	}
	return -1
}

// FindTurn returns the step index of a turn within a game, or -1.
func FindTurn(steps []Step, game, turn int) int {
	for i, s := range steps {
		if s.Game == game && s.Turn == turn {
			return i
		}
	}
	return -1
}
