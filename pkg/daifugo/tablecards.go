package daifugo

import "github.com/vctt94/daifugo/pkg/protocol"

// Card cell values on the wire. A normal card occupies its (suit, rank)
// cell with 1; the value 2 marks the joker, either at its home cell
// [4][1] or at a (suit, rank) cell when substituting that card.
const (
	cellCard  = 1
	cellJoker = 2
)

// SetCards writes a held-form card set into rows 0-4 of the table,
// clearing those rows first. The joker goes to [4][1] with value 2.
func SetCards(t *protocol.Table, cards CardSet) {
	for row := 0; row <= protocol.RowJoker; row++ {
		t.ClearRow(row)
	}
	for c := range cards {
		if c.IsJoker() {
			t.Set(protocol.RowJoker, 1, cellJoker)
		} else {
			t.Set(int(c.Suit), int(c.Rank), cellCard)
		}
	}
}

// CardsFromTable extracts a held-form card set from rows 0-4: any
// positive cell in the suit rows is that card, and [4][1]=2 is the joker.
func CardsFromTable(t *protocol.Table) CardSet {
	cards := NewCardSet()
	for suit := Spade; suit <= Club; suit++ {
		for rank := Three; rank <= Two; rank++ {
			if t.At(int(suit), int(rank)) >= cellCard {
				cards.Add(NewCard(suit, rank))
			}
		}
	}
	if t.At(protocol.RowJoker, 1) == cellJoker {
		cards.Add(Joker)
	}
	return cards
}

// Submission is the result of reading a play table in submitted form.
// Cards holds the effective card multiset with joker substitutions
// materialized as the cards they stand for; Subs marks which of those are
// really the joker. Err records framing problems the analyzer reports as
// a rejected play.
type Submission struct {
	Cards CardSet
	Subs  map[Card]bool
	Err   AnalysisError
}

// SubmittedFromTable extracts a play from rows 0-4 in submitted form.
//
// Value 2 at a rank cell of a suit row means the joker substitutes that
// card. Value 2 outside the rank columns (column 0 or 14) or at [4][1] is
// the joker played as itself. More than one joker marker, a stray value-2
// cell elsewhere on the joker row, or a standalone joker mixed with other
// cards are reported through Err; cells holding other junk are ignored so
// weak clients degrade to a pass rather than a disconnect.
func SubmittedFromTable(t *protocol.Table) Submission {
	sub := Submission{
		Cards: NewCardSet(),
		Subs:  make(map[Card]bool),
	}

	jokerMarks := 0
	standalone := false

	for suit := Spade; suit <= Club; suit++ {
		for col := 0; col < protocol.TableCols; col++ {
			v := t.At(int(suit), col)
			if v == 0 {
				continue
			}
			if col < int(Three) || col > int(Two) {
				// Outside the rank columns only the joker marker
				// is meaningful.
				if v == cellJoker {
					standalone = true
					jokerMarks++
				}
				continue
			}
			c := NewCard(suit, Rank(col))
			switch v {
			case cellCard:
				sub.Cards.Add(c)
			case cellJoker:
				sub.Cards.Add(c)
				sub.Subs[c] = true
				jokerMarks++
			}
		}
	}

	for col := 0; col < protocol.TableCols; col++ {
		v := t.At(protocol.RowJoker, col)
		if v == 0 {
			continue
		}
		if col != 1 || v != cellJoker {
			sub.Err = ErrInvalidPosition
			return sub
		}
		standalone = true
		jokerMarks++
	}

	if jokerMarks > 1 {
		sub.Err = ErrMultipleJokers
		return sub
	}
	if standalone {
		if !sub.Cards.IsEmpty() {
			// The joker row lit alongside card rows: the joker
			// cannot ride along a play without substituting.
			sub.Err = ErrInvalidSuit
			return sub
		}
		sub.Cards.Add(Joker)
	}
	return sub
}
