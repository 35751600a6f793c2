// Package daifugo implements the card model, play analysis, move
// validation, and the game engine for the Daifugō (UECda) arbiter.
package daifugo

// Suit indexes the card rows of the wire table. JokerSuit is row 4.
type Suit uint8

const (
	Spade Suit = iota
	Heart
	Diamond
	Club
	JokerSuit
)

var suitSymbols = [...]string{"♠", "♥", "♦", "♣"}
var suitCodes = [...]string{"S", "H", "D", "C"}

// Rank is the table column of a card: 1 = rank 3 up to 13 = rank 2.
// The numeric value doubles as normal-order strength.
type Rank int

const (
	Three Rank = iota + 1
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
	Two
)

var rankCodes = [...]string{"", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A", "2"}

// JokerStrength beats every normal card in both orders.
const JokerStrength = 100

// Card is a single playing card. The joker carries JokerSuit and rank 0.
// Cards are comparable and safe to use as map keys.
type Card struct {
	Suit Suit
	Rank Rank
}

// Joker is the single wild card of the 53-card deck.
var Joker = Card{Suit: JokerSuit}

// NewCard returns the normal card with the given suit and rank.
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// IsJoker reports whether the card is the joker.
func (c Card) IsJoker() bool {
	return c.Suit == JokerSuit
}

// Strength returns the comparison value of the card. Higher is stronger.
// Under revolution the non-joker order reverses; the joker stays on top.
func (c Card) Strength(revolution bool) int {
	if c.IsJoker() {
		return JokerStrength
	}
	if revolution {
		return 14 - int(c.Rank)
	}
	return int(c.Rank)
}

// String renders the card for console output, e.g. "♠3" or "Joker".
func (c Card) String() string {
	if c.IsJoker() {
		return "Joker"
	}
	return suitSymbols[c.Suit] + rankCodes[c.Rank]
}

// Notation renders the card in event-log notation, e.g. "S3", "H10", "Jo".
func (c Card) Notation() string {
	if c.IsJoker() {
		return "Jo"
	}
	return suitCodes[c.Suit] + rankCodes[c.Rank]
}
