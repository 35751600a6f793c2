package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vctt94/daifugo/pkg/protocol"
)

func handTable(cells ...[2]int) *protocol.Table {
	var t protocol.Table
	for _, c := range cells {
		t.Set(c[0], c[1], 1)
	}
	return &t
}

func TestGroupTable(t *testing.T) {
	// A pair of 5s and a lone 9.
	hand := handTable([2]int{0, 3}, [2]int{2, 3}, [2]int{1, 7})

	var group protocol.Table
	groupTable(&group, hand)

	assert.Equal(t, uint32(2), group.At(0, 3))
	assert.Equal(t, uint32(2), group.At(2, 3))
	assert.Equal(t, uint32(0), group.At(1, 7), "singles carry no annotation")
}

func TestJGroupTableExtendsWithJoker(t *testing.T) {
	hand := handTable([2]int{0, 3}, [2]int{2, 3})

	var group protocol.Table
	jgroupTable(&group, hand, true)
	assert.Equal(t, uint32(3), group.At(0, 3), "joker extends the pair to a triple")

	jgroupTable(&group, hand, false)
	assert.Equal(t, uint32(0), group.At(0, 3))
}

func TestKaidanTable(t *testing.T) {
	// Hearts 4-5-6 plus an unrelated spade.
	hand := handTable([2]int{1, 2}, [2]int{1, 3}, [2]int{1, 4}, [2]int{0, 9})

	var seq protocol.Table
	kaidanTable(&seq, hand)

	assert.Equal(t, uint32(3), seq.At(1, 2), "run length stored at its lowest rank")
	assert.Equal(t, uint32(0), seq.At(1, 4), "upper cells of a 3-run stay short")
	assert.Equal(t, uint32(0), seq.At(0, 9))
}

func TestJKaidanTableFillsOneGap(t *testing.T) {
	// Hearts 4 and 6 with the joker filling 5.
	hand := handTable([2]int{1, 2}, [2]int{1, 4})

	var seq protocol.Table
	jkaidanTable(&seq, hand, true)
	assert.Equal(t, uint32(3), seq.At(1, 2))

	jkaidanTable(&seq, hand, false)
	assert.Equal(t, uint32(0), seq.At(1, 2))
}

func TestRankFilters(t *testing.T) {
	hand := handTable([2]int{0, 2}, [2]int{0, 7}, [2]int{0, 12})

	var out protocol.Table
	highCards(&out, hand, 7)
	assert.Equal(t, uint32(0), out.At(0, 2))
	assert.Equal(t, uint32(0), out.At(0, 7), "threshold itself is excluded")
	assert.Equal(t, uint32(1), out.At(0, 12))

	lowCards(&out, hand, 7)
	assert.Equal(t, uint32(1), out.At(0, 2))
	assert.Equal(t, uint32(0), out.At(0, 7))
	assert.Equal(t, uint32(0), out.At(0, 12))
}

func TestLockCards(t *testing.T) {
	hand := handTable([2]int{0, 5}, [2]int{1, 5}, [2]int{2, 5})

	lockCards(hand, 1<<1)
	assert.Equal(t, uint32(0), hand.At(0, 5))
	assert.Equal(t, uint32(1), hand.At(1, 5))
	assert.Equal(t, uint32(0), hand.At(2, 5))
}

func TestLowSoloSkipsNothing(t *testing.T) {
	hand := handTable([2]int{3, 8}, [2]int{1, 2})

	var out protocol.Table
	lowSolo(&out, hand, false)
	assert.Equal(t, uint32(1), out.At(1, 2))
	assert.Equal(t, 1, countCards(&out))
}

func TestSoloJokerFallback(t *testing.T) {
	var empty protocol.Table

	var out protocol.Table
	lowSolo(&out, &empty, true)
	assert.Equal(t, uint32(2), out.At(0, 14), "standalone joker at the strong column")

	highSolo(&out, &empty, true)
	assert.Equal(t, uint32(2), out.At(0, 0), "standalone joker at the weak column under revolution")

	lowSolo(&out, &empty, false)
	require.Equal(t, 0, countCards(&out))
}

func TestRemoveGroupAndSequence(t *testing.T) {
	// Pair of 5s, run of clubs 8-9-10, loose heart J.
	hand := handTable(
		[2]int{0, 3}, [2]int{2, 3},
		[2]int{3, 6}, [2]int{3, 7}, [2]int{3, 8},
		[2]int{1, 9},
	)

	var group, seq, noSeq, loose protocol.Table
	groupTable(&group, hand)
	kaidanTable(&seq, hand)
	removeSequence(&noSeq, hand, &seq)
	removeGroup(&loose, &noSeq, &group)

	assert.Equal(t, uint32(0), loose.At(0, 3))
	assert.Equal(t, uint32(0), loose.At(3, 6))
	assert.Equal(t, uint32(0), loose.At(3, 8))
	assert.Equal(t, uint32(1), loose.At(1, 9))
}

func TestSelectGroupJokerCompletion(t *testing.T) {
	// Pair of 7s that the joker must turn into a triple.
	hand := handTable([2]int{0, 5}, [2]int{1, 5})

	var group, ngroup, out protocol.Table
	jgroupTable(&group, hand, true)
	require.True(t, nCards(&ngroup, &group, 3))

	lowGroup(&out, hand, &ngroup, true, false, 0)
	assert.Equal(t, uint32(1), out.At(0, 5))
	assert.Equal(t, uint32(1), out.At(1, 5))
	joker := 0
	for suit := 2; suit < 4; suit++ {
		if out.At(suit, 5) == 2 {
			joker++
		}
	}
	assert.Equal(t, 1, joker, "exactly one substituted slot")
}

func TestLowSequenceEmitsRun(t *testing.T) {
	hand := handTable([2]int{2, 4}, [2]int{2, 5}, [2]int{2, 6})

	var seq, nseq, out protocol.Table
	kaidanTable(&seq, hand)
	require.True(t, nCards(&nseq, &seq, 3))

	lowSequence(&out, hand, &nseq)
	assert.Equal(t, uint32(1), out.At(2, 4))
	assert.Equal(t, uint32(1), out.At(2, 5))
	assert.Equal(t, uint32(1), out.At(2, 6))
	assert.Equal(t, 3, countCards(&out))
}
