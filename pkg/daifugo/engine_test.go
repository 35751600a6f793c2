package daifugo

import (
	"math/rand"
	"testing"

	"github.com/decred/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vctt94/daifugo/pkg/protocol"
)

func testPlayers() []*Player {
	names := []string{"Alice", "Bob", "Carol", "Dave", "Eve"}
	players := make([]*Player, NumPlayers)
	for i := range players {
		players[i] = NewPlayer(i, names[i], protocol.ProtocolVersion)
	}
	return players
}

func testEngine(t *testing.T, transport Transport, seed int64) *Engine {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	return NewEngine(transport, testPlayers(), DefaultRules(), rng, slog.Disabled, nil)
}

func TestDealIntegrity(t *testing.T) {
	e := testEngine(t, nil, 11)
	e.state.GameNumber = 1
	next := stateDeal(e)
	require.NotNil(t, next)

	union := NewCardSet()
	for id, hand := range e.hands {
		size := hand.Count()
		assert.InDelta(t, 53.0/NumPlayers, float64(size), 1, "player %d hand size", id)
		for c := range hand {
			require.False(t, union.Contains(c), "card %v dealt twice", c)
			union.Add(c)
		}
	}
	assert.True(t, union.Equal(FullDeck()))
	assert.Equal(t, 0, e.state.CurrentPlayer, "player 0 leads game 1")
}

func TestExtractTribute(t *testing.T) {
	e := testEngine(t, nil, 1)
	ranks := []PlayerRank{Daifugo, Fugo, Heimin, Hinmin, Daihinmin}
	for i, p := range e.players {
		p.Rank = ranks[i]
	}
	e.hands[0] = NewCardSet(NewCard(Spade, Three))
	e.hands[1] = NewCardSet(NewCard(Heart, Three))
	e.hands[2] = NewCardSet(NewCard(Club, Three))
	e.hands[3] = NewCardSet(NewCard(Diamond, Four), NewCard(Diamond, Two))
	e.hands[4] = NewCardSet(NewCard(Club, Five), NewCard(Club, Ace), Joker)

	e.extractTribute()

	// Daihinmin's two strongest go to Daifugō, Hinmin's one to Fugō.
	assert.True(t, e.hands[0].Contains(Joker))
	assert.True(t, e.hands[0].Contains(NewCard(Club, Ace)))
	assert.True(t, e.hands[4].Equal(NewCardSet(NewCard(Club, Five))))
	assert.True(t, e.hands[1].Contains(NewCard(Diamond, Two)))
	assert.True(t, e.hands[3].Equal(NewCardSet(NewCard(Diamond, Four))))

	// Snapshots keep the pre-extraction holdings.
	assert.Equal(t, 3, e.exchangeSnapshots[4].Count())
	assert.Equal(t, 2, e.exchangeSnapshots[3].Count())
}

func playCards(t *testing.T, e *Engine, player int, cards ...Card) {
	t.Helper()
	set := NewCardSet(cards...)
	a := Analyzer{}.Analyze(set, nil, e.state.EffectiveRevolution())
	require.True(t, a.IsValid(), "test play must analyze cleanly")
	verdict := e.validator.Validate(a, e.hands[player], set, nil, e.state)
	require.True(t, verdict.Valid, "test play must validate: %s", verdict.Reason)
	e.processPlay(player, a, Submission{Cards: set, Subs: map[Card]bool{}})
}

func giveCards(e *Engine, player int, cards ...Card) {
	for _, c := range cards {
		e.hands[player].Add(c)
	}
}

func TestRevolutionToggleOnQuad(t *testing.T) {
	e := testEngine(t, nil, 2)
	quad := []Card{
		NewCard(Spade, Six), NewCard(Heart, Six),
		NewCard(Diamond, Six), NewCard(Club, Six),
	}
	giveCards(e, 0, quad...)
	giveCards(e, 0, NewCard(Spade, Two))

	playCards(t, e, 0, quad...)
	assert.True(t, e.state.IsRevolution)

	// A second quad toggles it back.
	quad2 := []Card{
		NewCard(Spade, Four), NewCard(Heart, Four),
		NewCard(Diamond, Four), NewCard(Club, Four),
	}
	e.state.ResetForNewRound()
	giveCards(e, 1, quad2...)
	giveCards(e, 1, NewCard(Heart, Two))
	playCards(t, e, 1, quad2...)
	assert.False(t, e.state.IsRevolution)
}

func TestRevolutionOnLongRun(t *testing.T) {
	e := testEngine(t, nil, 2)
	run := []Card{
		NewCard(Club, Four), NewCard(Club, Five), NewCard(Club, Six),
		NewCard(Club, Seven), NewCard(Club, Eight),
	}
	giveCards(e, 0, run...)
	giveCards(e, 0, NewCard(Spade, Two))

	playCards(t, e, 0, run...)
	assert.True(t, e.state.IsRevolution)
	// The run holds an 8, so the field was also cut.
	assert.True(t, e.state.Field.IsEmpty())
}

func TestEightCutLeaderRetention(t *testing.T) {
	e := testEngine(t, nil, 3)
	e.state.CurrentPlayer = 2
	giveCards(e, 2, NewCard(Heart, Eight), NewCard(Heart, Two))

	playCards(t, e, 2, NewCard(Heart, Eight))

	assert.True(t, e.state.Field.IsEmpty(), "8-cut clears the field")
	assert.Equal(t, 2, e.state.CurrentPlayer, "the cutter keeps the lead")
	assert.Equal(t, 0, e.state.ConsecutivePasses)
}

func TestElevenBackTogglesAndDiesAtClear(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	rules := DefaultRules()
	rules.ElevenBack = true
	e := NewEngine(nil, testPlayers(), rules, rng, slog.Disabled, nil)

	giveCards(e, 0, NewCard(Spade, Jack), NewCard(Spade, Two))
	playCards(t, e, 0, NewCard(Spade, Jack))
	assert.True(t, e.state.IsElevenBack)
	assert.True(t, e.state.EffectiveRevolution())

	e.state.ResetForNewRound()
	assert.False(t, e.state.IsElevenBack, "11-back dies with the trick")
}

func TestElevenBackDisabledByDefault(t *testing.T) {
	e := testEngine(t, nil, 4)
	giveCards(e, 0, NewCard(Spade, Jack), NewCard(Spade, Two))
	playCards(t, e, 0, NewCard(Spade, Jack))
	assert.False(t, e.state.IsElevenBack)
}

func TestElevenBackArmsAcrossEightCut(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	rules := DefaultRules()
	rules.ElevenBack = true
	e := NewEngine(nil, testPlayers(), rules, rng, slog.Disabled, nil)

	// A 7-8-9-10-J run cuts the field, toggles revolution, and still
	// arms 11-back for the trick it just opened.
	run := []Card{
		NewCard(Heart, Seven), NewCard(Heart, Eight), NewCard(Heart, Nine),
		NewCard(Heart, Ten), NewCard(Heart, Jack),
	}
	giveCards(e, 0, run...)
	giveCards(e, 0, NewCard(Spade, Two))

	playCards(t, e, 0, run...)
	assert.True(t, e.state.Field.IsEmpty())
	assert.True(t, e.state.IsRevolution)
	assert.True(t, e.state.IsElevenBack, "the Jack re-arms 11-back after the cut")
	assert.Equal(t, 0, e.state.CurrentPlayer, "the cutter keeps the lead")
}

func TestLockProgression(t *testing.T) {
	e := testEngine(t, nil, 5)
	giveCards(e, 0, NewCard(Heart, Four))
	giveCards(e, 1, NewCard(Heart, Six))
	giveCards(e, 2, NewCard(Heart, Nine))
	for i := 0; i < NumPlayers; i++ {
		giveCards(e, i, NewCard(Spade, Two))
	}

	playCards(t, e, 0, NewCard(Heart, Four))
	assert.False(t, e.state.Field.Locked)
	assert.Equal(t, 1, e.state.Field.LockCount)

	playCards(t, e, 1, NewCard(Heart, Six))
	assert.True(t, e.state.Field.Locked, "second same-suit play locks the trick")

	// Once locked, only hearts validate.
	giveCards(e, 3, NewCard(Spade, King))
	set := NewCardSet(NewCard(Spade, King))
	a := Analyzer{}.Analyze(set, nil, false)
	verdict := e.validator.Validate(a, e.hands[3], set, nil, e.state)
	assert.False(t, verdict.Valid)

	playCards(t, e, 2, NewCard(Heart, Nine))
	assert.True(t, e.state.Field.Locked, "lock persists for the trick")

	e.state.ResetForNewRound()
	assert.False(t, e.state.Field.Locked)
	assert.Equal(t, 0, e.state.Field.LockCount)
}

func TestLockBreaksOnDifferentPattern(t *testing.T) {
	e := testEngine(t, nil, 5)
	giveCards(e, 0, NewCard(Heart, Four))
	giveCards(e, 1, NewCard(Spade, Six))
	giveCards(e, 2, NewCard(Spade, Nine))
	for i := 0; i < 3; i++ {
		giveCards(e, i, NewCard(Club, Two))
	}

	playCards(t, e, 0, NewCard(Heart, Four))
	playCards(t, e, 1, NewCard(Spade, Six))
	assert.False(t, e.state.Field.Locked)
	assert.Equal(t, 1, e.state.Field.LockCount, "pattern change restarts the count")

	playCards(t, e, 2, NewCard(Spade, Nine))
	assert.True(t, e.state.Field.Locked)
}

func TestClearRoundReturnsLeadToLastPlayer(t *testing.T) {
	e := testEngine(t, nil, 6)
	giveCards(e, 1, NewCard(Diamond, Ten), NewCard(Diamond, Two))
	e.state.CurrentPlayer = 1
	playCards(t, e, 1, NewCard(Diamond, Ten))

	for _, id := range []int{0, 2, 3, 4} {
		e.players[id].HasPassed = true
		e.state.ConsecutivePasses++
	}
	require.True(t, e.allButLeaderPassed())

	leader := e.clearRound()
	assert.Equal(t, 1, leader)
	assert.Equal(t, 1, e.state.CurrentPlayer)
	assert.True(t, e.state.Field.IsEmpty())
	assert.Equal(t, 0, e.state.ConsecutivePasses)
	for _, p := range e.players {
		assert.False(t, p.HasPassed)
	}
}

func TestClearRoundSkipsFinishedLeader(t *testing.T) {
	e := testEngine(t, nil, 6)
	e.state.LastPlayer = 3
	e.players[3].HasFinished = true
	e.players[4].HasFinished = true

	leader := e.clearRound()
	assert.Equal(t, 0, leader, "lead passes to the next unfinished seat")
}

func TestSennichiteAssignsRemainingPositions(t *testing.T) {
	e := testEngine(t, nil, 7)
	e.players[2].HasFinished = true
	e.players[2].FinishOrder = 0
	e.finishOrder = []int{2}
	e.state.FinishedCount = 1

	e.finishRemainingShuffled()

	assert.Equal(t, NumPlayers, len(e.finishOrder))
	assert.Equal(t, NumPlayers, e.state.FinishedCount)
	seen := map[int]bool{}
	for _, id := range e.finishOrder {
		assert.False(t, seen[id])
		seen[id] = true
		assert.True(t, e.players[id].HasFinished)
	}
}

func TestEncodeExchangeCount(t *testing.T) {
	assert.Equal(t, 2, encodeExchangeCount(2))
	assert.Equal(t, 0, encodeExchangeCount(0))
	assert.Equal(t, 101, encodeExchangeCount(-1))
	assert.Equal(t, 102, encodeExchangeCount(-2))
}

func TestRankingOrdersByPointsThenID(t *testing.T) {
	e := testEngine(t, nil, 8)
	e.points = map[int]int{0: 7, 1: 9, 2: 7, 3: 1, 4: 9}
	assert.Equal(t, []int{1, 4, 0, 2, 3}, e.ranking())
}

func TestJudgeRejectsCardsNotInHand(t *testing.T) {
	e := testEngine(t, nil, 9)
	giveCards(e, 0, NewCard(Spade, Five))

	var tab protocol.Table
	tab.Set(int(Heart), int(King), 1)
	verdict, _, _ := e.judge(0, &tab)
	assert.False(t, verdict.Valid)
}

func TestBuildHandTableRows(t *testing.T) {
	e := testEngine(t, nil, 10)
	giveCards(e, 1, NewCard(Spade, Five), Joker)
	e.state.CurrentPlayer = 1
	e.state.IsRevolution = true
	ranks := []PlayerRank{Daifugo, Fugo, Heimin, Hinmin, Daihinmin}
	for i, p := range e.players {
		p.Rank = ranks[i]
	}

	tab := e.buildHandTable(1, e.hands[1], false, 0)
	assert.Equal(t, uint32(1), tab.At(int(Spade), int(Five)))
	assert.Equal(t, uint32(2), tab.At(protocol.RowJoker, 1))
	assert.Equal(t, uint32(1), tab.At(protocol.RowControl, protocol.ColYourTurn))
	assert.Equal(t, uint32(1), tab.At(protocol.RowControl, protocol.ColCurrentPlayer))
	assert.Equal(t, uint32(1), tab.At(protocol.RowControl, protocol.ColOnset))
	assert.Equal(t, uint32(1), tab.At(protocol.RowControl, protocol.ColRevolution))
	assert.Equal(t, uint32(0), tab.At(protocol.RowControl, protocol.ColPhase))
	assert.Equal(t, uint32(2), tab.At(protocol.RowMeta, 1), "hand count")
	assert.Equal(t, uint32(Fugo), tab.At(protocol.RowMeta, 5+1))
	assert.Equal(t, uint32(1), tab.At(protocol.RowMeta, 10+1), "seat")

	other := e.buildHandTable(0, e.hands[0], false, 0)
	assert.Equal(t, uint32(0), other.At(protocol.RowControl, protocol.ColYourTurn))

	phase := e.buildHandTable(4, e.hands[4], true, -2)
	assert.Equal(t, uint32(1), phase.At(protocol.RowControl, protocol.ColPhase))
	assert.Equal(t, uint32(102), phase.At(protocol.RowControl, protocol.ColExchangeCount))
	assert.Equal(t, uint32(0), phase.At(protocol.RowControl, protocol.ColYourTurn))
}
