package agent

import (
	"sort"

	"github.com/vctt94/daifugo/pkg/protocol"
)

// State is the agent's view of the game, parsed from the control and
// meta rows of its hand table plus the most recent field broadcast.
type State struct {
	MyTurn        bool
	CurrentPlayer int
	Onset         bool
	ElevenBack    bool
	Revolution    bool
	Lock          bool

	HandCounts [5]int
	Ranks      [5]int
	Seats      [5]int

	// HasJoker is read from the agent's own card rows.
	HasJoker bool

	// Field memory, refreshed by ObserveField after every turn cycle.
	FieldRank     int
	FieldQty      int
	FieldSequence bool
	FieldSuits    int
}

// ParseState reads the control and meta rows of a hand table.
func ParseState(hand *protocol.Table) *State {
	s := &State{
		MyTurn:        hand.At(protocol.RowControl, protocol.ColYourTurn) == 1,
		CurrentPlayer: int(hand.At(protocol.RowControl, protocol.ColCurrentPlayer)),
		Onset:         hand.At(protocol.RowControl, protocol.ColOnset) == 1,
		ElevenBack:    hand.At(protocol.RowControl, protocol.ColElevenBack) == 1,
		Revolution:    hand.At(protocol.RowControl, protocol.ColRevolution) == 1,
		Lock:          hand.At(protocol.RowControl, protocol.ColLock) == 1,
		HasJoker:      hasJoker(hand),
	}
	for i := 0; i < 5; i++ {
		s.HandCounts[i] = int(hand.At(protocol.RowMeta, i))
		s.Ranks[i] = int(hand.At(protocol.RowMeta, 5+i))
		s.Seats[i] = int(hand.At(protocol.RowMeta, 10+i))
	}
	return s
}

// EffectiveRevolution folds 11-back into the revolution flag.
func (s *State) EffectiveRevolution() bool {
	return s.Revolution != s.ElevenBack
}

// ObserveField classifies a field-only broadcast: the rank to beat, the
// card count, group-or-run shape, and the suits present.
func (s *State) ObserveField(field *protocol.Table) {
	s.FieldQty = 0
	s.FieldSuits = 0
	s.FieldSequence = false
	s.FieldRank = 0

	var ranks []int
	seen := make(map[int]bool)
	for suit := 0; suit < 4; suit++ {
		for rank := minRank; rank <= maxRank; rank++ {
			if field.At(suit, rank) >= 1 {
				s.FieldQty++
				s.FieldSuits |= 1 << suit
				if !seen[rank] {
					seen[rank] = true
					ranks = append(ranks, rank)
				}
			}
		}
	}
	if field.At(protocol.RowJoker, 1) == 2 {
		s.FieldQty++
	}

	if s.FieldQty == 0 {
		return
	}
	sort.Ints(ranks)

	switch {
	case len(ranks) >= 2:
		consecutive := true
		for i := 1; i < len(ranks); i++ {
			if ranks[i]-ranks[i-1] != 1 {
				consecutive = false
				break
			}
		}
		if consecutive && s.FieldQty == len(ranks) {
			s.FieldSequence = true
			s.FieldRank = ranks[len(ranks)-1]
		} else {
			s.FieldRank = ranks[0]
		}
	case len(ranks) == 1:
		s.FieldRank = ranks[0]
	default:
		// Lone joker on the field.
		s.FieldRank = 14
	}
}
