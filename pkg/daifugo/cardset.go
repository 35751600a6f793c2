package daifugo

import (
	"sort"
	"strings"
)

// CardSet is a set of distinct cards. The zero value is not usable; create
// sets with NewCardSet.
type CardSet map[Card]struct{}

// NewCardSet builds a set from the given cards.
func NewCardSet(cards ...Card) CardSet {
	s := make(CardSet, len(cards))
	for _, c := range cards {
		s[c] = struct{}{}
	}
	return s
}

// Add inserts a card.
func (s CardSet) Add(c Card) {
	s[c] = struct{}{}
}

// Remove deletes a card if present.
func (s CardSet) Remove(c Card) {
	delete(s, c)
}

// Contains reports membership.
func (s CardSet) Contains(c Card) bool {
	_, ok := s[c]
	return ok
}

// Count returns the number of cards in the set.
func (s CardSet) Count() int {
	return len(s)
}

// IsEmpty reports whether the set holds no cards.
func (s CardSet) IsEmpty() bool {
	return len(s) == 0
}

// HasJoker reports whether the joker is in the set.
func (s CardSet) HasJoker() bool {
	return s.Contains(Joker)
}

// ByRank returns all non-joker cards of the given rank.
func (s CardSet) ByRank(rank Rank) []Card {
	var out []Card
	for c := range s {
		if !c.IsJoker() && c.Rank == rank {
			out = append(out, c)
		}
	}
	return out
}

// BySuit returns all cards of the given suit.
func (s CardSet) BySuit(suit Suit) []Card {
	var out []Card
	for c := range s {
		if c.Suit == suit {
			out = append(out, c)
		}
	}
	return out
}

// Sorted returns the cards ordered by suit then rank, joker last.
func (s CardSet) Sorted() []Card {
	out := make([]Card, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Suit != out[j].Suit {
			return out[i].Suit < out[j].Suit
		}
		return out[i].Rank < out[j].Rank
	})
	return out
}

// SortedByStrength returns the cards ordered weakest first under the given
// revolution flag, with suit order breaking ties.
func (s CardSet) SortedByStrength(revolution bool) []Card {
	out := s.Sorted()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Strength(revolution) < out[j].Strength(revolution)
	})
	return out
}

// Copy returns an independent copy of the set.
func (s CardSet) Copy() CardSet {
	out := make(CardSet, len(s))
	for c := range s {
		out[c] = struct{}{}
	}
	return out
}

// Equal reports whether both sets hold exactly the same cards.
func (s CardSet) Equal(o CardSet) bool {
	if len(s) != len(o) {
		return false
	}
	for c := range s {
		if !o.Contains(c) {
			return false
		}
	}
	return true
}

// Notation renders the set in event-log notation: cards comma-joined in
// suit-then-rank order, joker last, the empty set as "".
func (s CardSet) Notation() string {
	if s.IsEmpty() {
		return ""
	}
	cards := s.Sorted()
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.Notation()
	}
	return strings.Join(parts, ",")
}

// String renders the set for console output.
func (s CardSet) String() string {
	if s.IsEmpty() {
		return "[]"
	}
	cards := s.Sorted()
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FullDeck returns the 53-card deck: 52 suit cards plus the joker.
func FullDeck() CardSet {
	deck := make(CardSet, 53)
	for suit := Spade; suit <= Club; suit++ {
		for rank := Three; rank <= Two; rank++ {
			deck.Add(NewCard(suit, rank))
		}
	}
	deck.Add(Joker)
	return deck
}
