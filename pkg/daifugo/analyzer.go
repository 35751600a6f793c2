package daifugo

import "sort"

// CardType classifies a play. The values double as the card_type field of
// event-log turn records.
type CardType string

const (
	TypeEmpty       CardType = "empty"
	TypeSingle      CardType = "single"
	TypePair        CardType = "pair"
	TypeSequence    CardType = "sequence"
	TypeJokerSingle CardType = "joker_single"
)

// AnalysisError codes a malformed submission. Any error other than none
// costs the player their turn but never the connection.
type AnalysisError int

const (
	ErrNone AnalysisError = iota
	ErrMultipleJokers
	ErrInvalidPosition
	ErrSequenceTooShort
	ErrInvalidSuit
	ErrCountMismatch
)

func (e AnalysisError) String() string {
	switch e {
	case ErrNone:
		return "none"
	case ErrMultipleJokers:
		return "multiple jokers"
	case ErrInvalidPosition:
		return "invalid position"
	case ErrSequenceTooShort:
		return "sequence too short"
	case ErrInvalidSuit:
		return "invalid suit"
	case ErrCountMismatch:
		return "count mismatch"
	default:
		return "unknown"
	}
}

// Analysis is the classified shape of a submission, the unit the
// validator and the special-rule checks work on.
type Analysis struct {
	// BaseRank is the comparison rank: the common rank of a pair, the
	// lowest rank of a sequence in normal order or the highest under
	// revolution, 14 for the lone joker, -1 for a pass.
	BaseRank int
	// Count is the number of cards in the play.
	Count int
	// SuitPattern ORs 1<<suit over the occupied suit rows.
	SuitPattern int
	Type        CardType
	Err         AnalysisError
	// JokerSubstituted is set when the joker stands in for a card.
	JokerSubstituted bool
}

// IsValid reports whether the analysis found no errors.
func (a Analysis) IsValid() bool {
	return a.Err == ErrNone
}

// IsPass reports whether the submission was empty.
func (a Analysis) IsPass() bool {
	return a.Type == TypeEmpty
}

// Analyzer classifies submitted card multisets.
type Analyzer struct{}

// Analyze classifies a submission. subs marks which cards in the set are
// joker substitutions; revolution selects which end of a sequence becomes
// the base rank.
func (Analyzer) Analyze(cards CardSet, subs map[Card]bool, revolution bool) Analysis {
	count := cards.Count()
	if count == 0 {
		return Analysis{BaseRank: -1, Type: TypeEmpty}
	}

	hasJoker := cards.HasJoker() || len(subs) > 0

	if count == 1 {
		if cards.HasJoker() {
			return Analysis{BaseRank: 14, Count: 1, Type: TypeJokerSingle}
		}
		c := cards.Sorted()[0]
		return Analysis{
			BaseRank:         int(c.Rank),
			Count:            1,
			SuitPattern:      1 << c.Suit,
			Type:             TypeSingle,
			JokerSubstituted: hasJoker,
		}
	}

	// A multi-card play with a non-substituting joker never forms a
	// legal shape.
	if cards.HasJoker() {
		return Analysis{BaseRank: -1, Count: count, Type: TypeEmpty, Err: ErrInvalidSuit}
	}

	positions := cards.Sorted()
	sort.Slice(positions, func(i, j int) bool { return positions[i].Rank < positions[j].Rank })

	suits := 0
	pattern := 0
	for _, c := range positions {
		if pattern&(1<<c.Suit) == 0 {
			suits++
		}
		pattern |= 1 << c.Suit
	}

	// Same suit and consecutive ranks: a sequence (kaidan).
	if suits == 1 {
		consecutive := true
		for i := 1; i < len(positions); i++ {
			if positions[i].Rank != positions[i-1].Rank+1 {
				consecutive = false
				break
			}
		}
		if consecutive {
			a := Analysis{
				BaseRank:         int(positions[0].Rank),
				Count:            count,
				SuitPattern:      pattern,
				Type:             TypeSequence,
				JokerSubstituted: hasJoker,
			}
			if count < 3 {
				a.Err = ErrSequenceTooShort
				return a
			}
			if revolution {
				a.BaseRank = int(positions[count-1].Rank)
			}
			return a
		}
	}

	// Same rank across suits: a pair (group).
	sameRank := true
	for i := 1; i < len(positions); i++ {
		if positions[i].Rank != positions[0].Rank {
			sameRank = false
			break
		}
	}
	if sameRank {
		return Analysis{
			BaseRank:         int(positions[0].Rank),
			Count:            count,
			SuitPattern:      pattern,
			Type:             TypePair,
			JokerSubstituted: hasJoker,
		}
	}

	return Analysis{BaseRank: -1, Count: count, Type: TypeEmpty, Err: ErrCountMismatch}
}

// ContainsRank reports whether the analyzed play includes the given rank,
// used for 8-cut and 11-back detection. A sequence contains every rank of
// its contiguous span; singles and pairs only their base rank.
func (Analyzer) ContainsRank(a Analysis, rank Rank, revolution bool) bool {
	if a.Type == TypeSequence {
		low, high := a.BaseRank, a.BaseRank+a.Count-1
		if revolution {
			low, high = a.BaseRank-a.Count+1, a.BaseRank
		}
		return low <= int(rank) && int(rank) <= high
	}
	return a.BaseRank == int(rank)
}
