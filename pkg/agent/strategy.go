package agent

import "github.com/vctt94/daifugo/pkg/protocol"

// Strategy decides what the agent plays. Implementations receive the raw
// hand table and return a submission table; an all-zero table is a pass.
type Strategy interface {
	SelectPlay(hand *protocol.Table, state *State) *protocol.Table
	SelectExchange(hand *protocol.Table, n int) *protocol.Table
}

// SimpleStrategy plays the weakest legal combination, preferring long
// runs over large groups over singles, with the order reversed under
// effective revolution.
type SimpleStrategy struct{}

// SelectPlay dispatches on the onset flag: lead on an empty field,
// otherwise try to beat the remembered field.
func (SimpleStrategy) SelectPlay(hand *protocol.Table, state *State) *protocol.Table {
	if state.Onset {
		return lead(hand, state)
	}
	return follow(hand, state)
}

// SelectExchange gives away the n weakest cards, extracted one lowest
// single at a time.
func (SimpleStrategy) SelectExchange(hand *protocol.Table, n int) *protocol.Table {
	var out, pool protocol.Table
	copyCards(&pool, hand)
	for i := 0; i < n; i++ {
		var one protocol.Table
		lowSolo(&one, &pool, false)
		diffCards(&pool, &one)
		orCards(&out, &one)
	}
	return &out
}

func lead(hand *protocol.Table, state *State) *protocol.Table {
	var out, group, seq, temp protocol.Table
	rev := state.EffectiveRevolution()

	if state.HasJoker {
		jgroupTable(&group, hand, true)
		jkaidanTable(&seq, hand, true)
	} else {
		groupTable(&group, hand)
		kaidanTable(&seq, hand)
	}

	for n := protocol.TableCols; n >= 3; n-- {
		if nCards(&temp, &seq, n) {
			if rev {
				highSequence(&out, hand, &temp)
			} else {
				lowSequence(&out, hand, &temp)
			}
			return &out
		}
	}
	for n := 5; n >= 2; n-- {
		if nCards(&temp, &group, n) {
			if rev {
				highGroup(&out, hand, &temp, state.HasJoker, false, 0)
			} else {
				lowGroup(&out, hand, &temp, state.HasJoker, false, 0)
			}
			return &out
		}
	}
	if rev {
		highSolo(&out, hand, state.HasJoker)
	} else {
		lowSolo(&out, hand, state.HasJoker)
	}
	return &out
}

func follow(hand *protocol.Table, state *State) *protocol.Table {
	var out protocol.Table
	switch {
	case state.FieldQty == 1:
		followSolo(&out, hand, state)
	case state.FieldSequence:
		followSequence(&out, hand, state)
	default:
		followGroup(&out, hand, state)
	}
	return &out
}

// followSolo answers a single without breaking up held groups or runs.
func followSolo(out, hand *protocol.Table, state *State) {
	var group, seq, loose, pool protocol.Table
	groupTable(&group, hand)
	kaidanTable(&seq, hand)
	removeSequence(&loose, hand, &seq)
	removeGroup(&pool, &loose, &group)

	var candidates protocol.Table
	if state.EffectiveRevolution() {
		lowCards(&candidates, &pool, state.FieldRank)
	} else {
		highCards(&candidates, &pool, state.FieldRank)
	}
	if state.Lock {
		lockCards(&candidates, state.FieldSuits)
	}
	if state.EffectiveRevolution() {
		highSolo(out, &candidates, state.HasJoker)
	} else {
		lowSolo(out, &candidates, state.HasJoker)
	}
}

func followGroup(out, hand *protocol.Table, state *State) {
	var candidates, group, ngroup protocol.Table
	if state.EffectiveRevolution() {
		lowCards(&candidates, hand, state.FieldRank)
	} else {
		highCards(&candidates, hand, state.FieldRank)
	}
	if state.Lock {
		lockCards(&candidates, state.FieldSuits)
	}

	groupTable(&group, &candidates)
	if !nCards(&ngroup, &group, state.FieldQty) && state.HasJoker {
		jgroupTable(&group, &candidates, true)
		nCards(&ngroup, &group, state.FieldQty)
	}
	if state.EffectiveRevolution() {
		highGroup(out, hand, &ngroup, state.HasJoker, state.Lock, state.FieldSuits)
	} else {
		lowGroup(out, hand, &ngroup, state.HasJoker, state.Lock, state.FieldSuits)
	}
}

func followSequence(out, hand *protocol.Table, state *State) {
	var candidates, seq, nseq protocol.Table
	if state.EffectiveRevolution() {
		lowCards(&candidates, hand, state.FieldRank)
	} else {
		highCards(&candidates, hand, state.FieldRank)
	}
	if state.Lock {
		lockCards(&candidates, state.FieldSuits)
	}

	kaidanTable(&seq, &candidates)
	if !nCards(&nseq, &seq, state.FieldQty) && state.HasJoker {
		jkaidanTable(&seq, &candidates, true)
		nCards(&nseq, &seq, state.FieldQty)
	}
	if state.EffectiveRevolution() {
		highSequence(out, hand, &nseq)
	} else {
		lowSequence(out, hand, &nseq)
	}
}
