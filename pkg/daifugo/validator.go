package daifugo

import "fmt"

// Verdict is the validator's decision on a submission. An invalid verdict
// never disconnects anyone; the engine records it as a pass.
type Verdict struct {
	Valid  bool
	IsPass bool
	Reason string
}

func accept() Verdict     { return Verdict{Valid: true} }
func acceptPass() Verdict { return Verdict{Valid: true, IsPass: true} }

func reject(format string, args ...any) Verdict {
	return Verdict{Reason: fmt.Sprintf(format, args...)}
}

// Validator decides whether an analyzed submission may be played on the
// current field.
type Validator struct {
	rules Rules
}

// NewValidator returns a validator honoring the given rule toggles.
func NewValidator(rules Rules) *Validator {
	return &Validator{rules: rules}
}

// Validate runs the decision procedure: pass, analysis errors, hand
// containment, then field comparison.
func (v *Validator) Validate(a Analysis, hand, submitted CardSet, subs map[Card]bool, state *GameState) Verdict {
	if a.IsPass() {
		return acceptPass()
	}
	// Every analysis error rejects, including a two-card sequence.
	if !a.IsValid() {
		return reject("invalid card combination: %s", a.Err)
	}
	if !handContains(hand, submitted, subs) {
		return reject("player does not hold the submitted cards")
	}
	if state.Field.IsEmpty() {
		return accept()
	}
	return v.compareWithField(a, state)
}

// handContains checks that every submitted non-substituted card is in the
// hand and that any substitution is backed by the held joker.
func handContains(hand, submitted CardSet, subs map[Card]bool) bool {
	if len(subs) > 0 && !hand.HasJoker() {
		return false
	}
	for c := range submitted {
		if c.IsJoker() {
			if !hand.HasJoker() {
				return false
			}
			continue
		}
		if subs[c] {
			continue
		}
		if !hand.Contains(c) {
			return false
		}
	}
	return true
}

func (v *Validator) compareWithField(a Analysis, state *GameState) Verdict {
	field := state.Field
	revolution := state.EffectiveRevolution()

	// The lone joker rides on any single and nothing else.
	if a.Type == TypeJokerSingle {
		if field.Type == TypeSingle {
			return accept()
		}
		return reject("joker single only beats a single")
	}

	// The Spade-3 single answers a standing joker-single regardless of
	// rank order or lock.
	if v.rules.Spade3Joker && state.IsJokerSingle {
		if a.Type == TypeSingle && a.BaseRank == int(Three) && a.SuitPattern == 1<<Spade {
			return accept()
		}
	}

	if a.Count != field.Count {
		return reject("card count mismatch: %d vs %d", a.Count, field.Count)
	}
	if a.Type != field.Type {
		return reject("card type mismatch: %s vs %s", a.Type, field.Type)
	}
	if field.Locked && a.SuitPattern != field.SuitPattern {
		return reject("lock active: suit pattern must match the field")
	}

	// Strict inequality on base rank; the sequence base already sits at
	// the comparison end for the active order.
	if revolution {
		if a.BaseRank >= field.BaseRank {
			return reject("submission not stronger than field (revolution)")
		}
	} else {
		if a.BaseRank <= field.BaseRank {
			return reject("submission not stronger than field")
		}
	}
	return accept()
}

// ValidateExchange checks a high-rank player's exchange selection: the
// exact count, every card held.
func ValidateExchange(cards CardSet, expected int, hand CardSet) Verdict {
	if cards.Count() != expected {
		return reject("must exchange exactly %d cards, got %d", expected, cards.Count())
	}
	for c := range cards {
		if !hand.Contains(c) {
			return reject("selected card %s not in hand", c)
		}
	}
	return accept()
}
