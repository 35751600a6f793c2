package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vctt94/daifugo/pkg/protocol"
)

func TestSelectExchangeGivesWeakest(t *testing.T) {
	hand := handTable([2]int{0, 1}, [2]int{1, 3}, [2]int{2, 9}, [2]int{3, 12})

	out := SimpleStrategy{}.SelectExchange(hand, 2)
	assert.Equal(t, uint32(1), out.At(0, 1))
	assert.Equal(t, uint32(1), out.At(1, 3))
	assert.Equal(t, 2, countCards(out))
}

func TestLeadPrefersLongestRun(t *testing.T) {
	// A run of three diamonds and a pair of kings.
	hand := handTable(
		[2]int{2, 2}, [2]int{2, 3}, [2]int{2, 4},
		[2]int{0, 11}, [2]int{1, 11},
	)
	state := &State{Onset: true}

	out := SimpleStrategy{}.SelectPlay(hand, state)
	assert.Equal(t, uint32(1), out.At(2, 2))
	assert.Equal(t, uint32(1), out.At(2, 3))
	assert.Equal(t, uint32(1), out.At(2, 4))
	assert.Equal(t, 3, countCards(out))
}

func TestLeadFallsBackToLowestSingle(t *testing.T) {
	hand := handTable([2]int{3, 10}, [2]int{0, 4})
	state := &State{Onset: true}

	out := SimpleStrategy{}.SelectPlay(hand, state)
	assert.Equal(t, uint32(1), out.At(0, 4))
	assert.Equal(t, 1, countCards(out))
}

func TestLeadRevolutionPicksHighest(t *testing.T) {
	hand := handTable([2]int{3, 10}, [2]int{0, 4})
	state := &State{Onset: true, Revolution: true}

	out := SimpleStrategy{}.SelectPlay(hand, state)
	assert.Equal(t, uint32(1), out.At(3, 10))
	assert.Equal(t, 1, countCards(out))
}

func TestFollowSingleBeatsField(t *testing.T) {
	hand := handTable([2]int{0, 2}, [2]int{1, 6}, [2]int{2, 11})
	state := &State{FieldQty: 1, FieldRank: 5}

	out := SimpleStrategy{}.SelectPlay(hand, state)
	assert.Equal(t, uint32(1), out.At(1, 6), "lowest single strictly above the field")
	assert.Equal(t, 1, countCards(out))
}

func TestFollowSingleNoAnswerPasses(t *testing.T) {
	hand := handTable([2]int{0, 2}, [2]int{1, 3})
	state := &State{FieldQty: 1, FieldRank: 10}

	out := SimpleStrategy{}.SelectPlay(hand, state)
	assert.Equal(t, 0, countCards(out))
}

func TestFollowRespectsLock(t *testing.T) {
	hand := handTable([2]int{0, 8}, [2]int{1, 9})
	state := &State{FieldQty: 1, FieldRank: 5, Lock: true, FieldSuits: 1 << 1}

	out := SimpleStrategy{}.SelectPlay(hand, state)
	assert.Equal(t, uint32(1), out.At(1, 9), "lock forces the matching suit")
	assert.Equal(t, 1, countCards(out))
}

func TestFollowPairMatchesCount(t *testing.T) {
	hand := handTable(
		[2]int{0, 7}, [2]int{2, 7},
		[2]int{1, 10},
	)
	state := &State{FieldQty: 2, FieldRank: 4}

	out := SimpleStrategy{}.SelectPlay(hand, state)
	assert.Equal(t, uint32(1), out.At(0, 7))
	assert.Equal(t, uint32(1), out.At(2, 7))
	assert.Equal(t, 2, countCards(out))
}

func TestFollowSequenceMatchesLength(t *testing.T) {
	hand := handTable(
		[2]int{3, 8}, [2]int{3, 9}, [2]int{3, 10},
		[2]int{0, 2},
	)
	state := &State{FieldQty: 3, FieldSequence: true, FieldRank: 5}

	out := SimpleStrategy{}.SelectPlay(hand, state)
	assert.Equal(t, 3, countCards(out))
	assert.Equal(t, uint32(1), out.At(3, 8))
	assert.Equal(t, uint32(1), out.At(3, 10))
}

func TestParseState(t *testing.T) {
	var tab protocol.Table
	tab.Set(protocol.RowControl, protocol.ColYourTurn, 1)
	tab.Set(protocol.RowControl, protocol.ColCurrentPlayer, 3)
	tab.Set(protocol.RowControl, protocol.ColOnset, 1)
	tab.Set(protocol.RowControl, protocol.ColRevolution, 1)
	tab.Set(protocol.RowJoker, 1, 2)
	for i := 0; i < 5; i++ {
		tab.Set(protocol.RowMeta, i, 10-i)
		tab.Set(protocol.RowMeta, 5+i, i)
		tab.Set(protocol.RowMeta, 10+i, i)
	}

	s := ParseState(&tab)
	assert.True(t, s.MyTurn)
	assert.Equal(t, 3, s.CurrentPlayer)
	assert.True(t, s.Onset)
	assert.True(t, s.Revolution)
	assert.True(t, s.HasJoker)
	assert.Equal(t, [5]int{10, 9, 8, 7, 6}, s.HandCounts)
	assert.Equal(t, [5]int{0, 1, 2, 3, 4}, s.Ranks)
}

func TestEffectiveRevolutionXOR(t *testing.T) {
	s := &State{Revolution: true, ElevenBack: true}
	assert.False(t, s.EffectiveRevolution())
	s.ElevenBack = false
	assert.True(t, s.EffectiveRevolution())
	s.Revolution = false
	s.ElevenBack = true
	assert.True(t, s.EffectiveRevolution())
}

func TestObserveField(t *testing.T) {
	s := &State{}

	pair := handTable([2]int{0, 6}, [2]int{2, 6})
	s.ObserveField(pair)
	assert.Equal(t, 2, s.FieldQty)
	assert.False(t, s.FieldSequence)
	assert.Equal(t, 6, s.FieldRank)
	assert.Equal(t, 1<<0|1<<2, s.FieldSuits)

	run := handTable([2]int{1, 4}, [2]int{1, 5}, [2]int{1, 6})
	s.ObserveField(run)
	assert.Equal(t, 3, s.FieldQty)
	assert.True(t, s.FieldSequence)
	assert.Equal(t, 6, s.FieldRank, "a run is classified by its top rank")

	var jokerOnly protocol.Table
	jokerOnly.Set(protocol.RowJoker, 1, 2)
	s.ObserveField(&jokerOnly)
	require.Equal(t, 1, s.FieldQty)
	assert.Equal(t, 14, s.FieldRank)

	var empty protocol.Table
	s.ObserveField(&empty)
	assert.Equal(t, 0, s.FieldQty)
}
