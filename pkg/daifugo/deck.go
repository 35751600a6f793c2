package daifugo

import "math/rand"

// Deck is an ordered 53-card deck with an injected random source so deals
// can be reproduced in tests.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a full shuffled deck using the given random source.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, 53),
		rng:   rng,
	}
	for suit := Spade; suit <= Club; suit++ {
		for rank := Three; rank <= Two; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	d.cards = append(d.cards, Joker)
	d.Shuffle()
	return d
}

// Shuffle randomizes the order of the remaining cards.
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card. ok is false once the deck is
// exhausted.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, true
}

// Size returns the number of cards remaining.
func (d *Deck) Size() int {
	return len(d.cards)
}
