package daifugo

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/decred/slog"
	"github.com/vctt94/daifugo/pkg/gamelog"
	"github.com/vctt94/daifugo/pkg/protocol"
	"github.com/vctt94/daifugo/pkg/statemachine"
)

// NumPlayers is the fixed table size.
const NumPlayers = 5

// SennichiteThreshold is the consecutive-pass count that aborts a game.
const SennichiteThreshold = 20

// Transport is what the engine needs from the network layer: framed,
// per-player sends and blocking reads. The engine is strictly serial, so
// implementations never see concurrent calls.
type Transport interface {
	SendTable(player int, t *protocol.Table) error
	RecvTable(player int) (*protocol.Table, error)
	SendCode(player, code int) error
}

// Engine runs a session of games over a Transport. It owns all game
// state; nothing escapes it while a session runs.
type Engine struct {
	transport Transport
	players   []*Player
	hands     []CardSet
	state     *GameState
	rules     Rules
	analyzer  Analyzer
	validator *Validator
	rng       *rand.Rand
	log       slog.Logger
	glog      *gamelog.Logger

	totalGames  int
	points      map[int]int
	finishOrder []int

	// exchangeSnapshots holds the pre-extraction hands shown to Hinmin
	// and Daihinmin during the initial-hand broadcast.
	exchangeSnapshots map[int]CardSet
	exchanging        bool

	onGameStart func(game int, hands []CardSet, firstPlayer int)
	onGameEnd   func(game int, finishOrder []int)

	err error
}

// NewEngine wires an engine to its transport and seats. glog may be nil
// to disable the event log.
func NewEngine(transport Transport, players []*Player, rules Rules, rng *rand.Rand, log slog.Logger, glog *gamelog.Logger) *Engine {
	hands := make([]CardSet, len(players))
	for i := range hands {
		hands[i] = NewCardSet()
	}
	return &Engine{
		transport: transport,
		players:   players,
		hands:     hands,
		state:     NewGameState(),
		rules:     rules,
		validator: NewValidator(rules),
		rng:       rng,
		log:       log,
		glog:      glog,
		points:    make(map[int]int),
	}
}

// SetGameStartHook installs a callback invoked after each deal with the
// dealt hands, before any table is sent.
func (e *Engine) SetGameStartHook(fn func(game int, hands []CardSet, firstPlayer int)) {
	e.onGameStart = fn
}

// SetGameEndHook installs a callback invoked after each game with its
// finish order.
func (e *Engine) SetGameEndHook(fn func(game int, finishOrder []int)) {
	e.onGameEnd = fn
}

// Hand returns the live hand of a player.
func (e *Engine) Hand(player int) CardSet {
	return e.hands[player]
}

// RunSession plays numGames games and returns the final point totals and
// the ranking (point order, ties to the lower id). Wire errors abort the
// session.
func (e *Engine) RunSession(numGames int) (map[int]int, []int, error) {
	e.totalGames = numGames

	if e.glog != nil {
		infos := make([]gamelog.PlayerInfo, len(e.players))
		for i, p := range e.players {
			infos[i] = gamelog.PlayerInfo{ID: p.ID, Name: p.Name}
		}
		e.glog.SessionStart(time.Now().Format(time.RFC3339), infos)
	}

	for g := 1; g <= numGames; g++ {
		e.state.GameNumber = g
		e.log.Infof("game %d/%d starting", g, numGames)

		sm := statemachine.NewStateMachine(e, stateDeal)
		sm.Run()
		if e.err != nil {
			return nil, nil, fmt.Errorf("game %d: %w", g, e.err)
		}
	}

	ranking := e.ranking()
	if e.glog != nil {
		finalPoints := make(map[string]int, len(e.players))
		for id, pts := range e.points {
			finalPoints[strconv.Itoa(id)] = pts
		}
		e.glog.SessionEnd(numGames, finalPoints, ranking)
	}
	return e.points, ranking, nil
}

// ranking orders player ids by points descending, ties to the lower id.
func (e *Engine) ranking() []int {
	ids := make([]int, len(e.players))
	for i := range ids {
		ids[i] = i
	}
	sort.SliceStable(ids, func(a, b int) bool {
		if e.points[ids[a]] != e.points[ids[b]] {
			return e.points[ids[a]] > e.points[ids[b]]
		}
		return ids[a] < ids[b]
	})
	return ids
}

// fail records a fatal wire error and halts the state machine.
func (e *Engine) fail(err error) statemachine.StateFn[Engine] {
	e.err = err
	return nil
}

// stateDeal shuffles, deals, pre-extracts the exchange tribute, and logs
// the game_start record.
func stateDeal(e *Engine) statemachine.StateFn[Engine] {
	g := e.state.GameNumber
	e.state.ResetForNewGame()
	e.state.GameNumber = g
	for i, p := range e.players {
		p.ResetGameState()
		e.hands[i] = NewCardSet()
	}
	e.finishOrder = e.finishOrder[:0]
	e.exchangeSnapshots = nil
	e.exchanging = e.rules.CardExchange && g > 1

	dealStart := 0
	firstPlayer := 0
	if g == 1 {
		dealStart = e.rng.Intn(NumPlayers)
	} else {
		daifugo := e.playerWithRank(Daifugo)
		dealStart = daifugo
		firstPlayer = daifugo
	}

	deck := NewDeck(e.rng)
	for i := 0; ; i++ {
		c, ok := deck.Draw()
		if !ok {
			break
		}
		e.hands[(dealStart+i)%NumPlayers].Add(c)
	}

	dealt := e.handsNotation()

	if e.exchanging {
		e.extractTribute()
	}

	e.state.CurrentPlayer = firstPlayer
	e.log.Debugf("game %d dealt, first player %d", g, firstPlayer)

	if e.onGameStart != nil {
		hands := make([]CardSet, len(e.hands))
		for i, h := range e.hands {
			hands[i] = h.Copy()
		}
		e.onGameStart(g, hands, firstPlayer)
	}
	if e.glog != nil {
		e.glog.GameStart(g, dealt, e.ranksNotation(), firstPlayer)
	}
	return stateInitialHands
}

// extractTribute moves the strongest two cards from Daihinmin to Daifugō
// and the strongest one from Hinmin to Fugō, keeping the pre-extraction
// snapshots for the initial-hand broadcast.
func (e *Engine) extractTribute() {
	e.exchangeSnapshots = make(map[int]CardSet, 2)
	for _, tr := range []struct {
		from, to PlayerRank
		n        int
	}{
		{Daihinmin, Daifugo, 2},
		{Hinmin, Fugo, 1},
	} {
		giver := e.playerWithRank(tr.from)
		taker := e.playerWithRank(tr.to)
		e.exchangeSnapshots[giver] = e.hands[giver].Copy()

		// Strength between games uses the normal order.
		cards := e.hands[giver].SortedByStrength(false)
		for i := 0; i < tr.n && i < len(cards); i++ {
			strongest := cards[len(cards)-1-i]
			e.hands[giver].Remove(strongest)
			e.hands[taker].Add(strongest)
		}
	}
}

// stateInitialHands broadcasts the phase-1 hand tables: rank order for
// exchange games, id order otherwise.
func stateInitialHands(e *Engine) statemachine.StateFn[Engine] {
	order := make([]int, len(e.players))
	for i := range order {
		order[i] = i
	}
	if e.exchanging {
		sort.SliceStable(order, func(a, b int) bool {
			return e.players[order[a]].Rank < e.players[order[b]].Rank
		})
	}

	for _, id := range order {
		hand := e.hands[id]
		count := 0
		if e.exchanging {
			// Pre-extraction views for the low ranks; their tables
			// must show the cards about to leave.
			if snap, ok := e.exchangeSnapshots[id]; ok {
				hand = snap
			}
			count = 2 - int(e.players[id].Rank)
		}
		t := e.buildHandTable(id, hand, true, count)
		if err := e.transport.SendTable(id, t); err != nil {
			return e.fail(fmt.Errorf("send initial hand to player %d: %w", id, err))
		}
	}
	return stateExchange
}

// stateExchange reads the downward transfers from Daifugō and Fugō,
// auto-correcting invalid selections to the giver's weakest cards.
func stateExchange(e *Engine) statemachine.StateFn[Engine] {
	if !e.exchanging {
		return stateTurn
	}

	var record []gamelog.ExchangeInfo
	for _, tr := range []struct {
		from, to PlayerRank
		n        int
	}{
		{Daifugo, Daihinmin, 2},
		{Fugo, Hinmin, 1},
	} {
		giver := e.playerWithRank(tr.from)
		taker := e.playerWithRank(tr.to)

		t, err := e.transport.RecvTable(giver)
		if err != nil {
			return e.fail(fmt.Errorf("read exchange from player %d: %w", giver, err))
		}
		sub := SubmittedFromTable(t)
		cards := sub.Cards
		verdict := ValidateExchange(cards, tr.n, e.hands[giver])
		if sub.Err != ErrNone || !verdict.Valid {
			e.log.Warnf("player %d invalid exchange selection (%s), auto-selecting weakest %d",
				giver, verdict.Reason, tr.n)
			weakest := e.hands[giver].SortedByStrength(false)
			cards = NewCardSet(weakest[:tr.n]...)
		}
		for c := range cards {
			e.hands[giver].Remove(c)
			e.hands[taker].Add(c)
		}
		e.log.Debugf("exchange: player %d -> player %d: %s", giver, taker, cards.Notation())
		record = append(record, gamelog.ExchangeInfo{From: giver, To: taker, Cards: cards.Notation()})
	}

	if e.glog != nil {
		e.glog.Exchange(e.state.GameNumber, record, e.handsNotation())
	}
	return stateTurn
}

// stateTurn runs one iteration of the turn loop and self-transitions
// until the game ends.
func stateTurn(e *Engine) statemachine.StateFn[Engine] {
	s := e.state
	s.TurnNumber++
	current := s.CurrentPlayer
	p := e.players[current]

	// Skipped seats generate no I/O but still consume a turn number.
	if p.HasFinished || (p.HasPassed && !s.Field.IsEmpty()) {
		s.CurrentPlayer = (current + 1) % NumPlayers
		return stateTurn
	}

	for id := range e.players {
		t := e.buildHandTable(id, e.hands[id], false, 0)
		if err := e.transport.SendTable(id, t); err != nil {
			return e.fail(fmt.Errorf("send hand to player %d: %w", id, err))
		}
	}

	moveTable, err := e.transport.RecvTable(current)
	if err != nil {
		return e.fail(fmt.Errorf("read move from player %d: %w", current, err))
	}

	verdict, analysis, sub := e.judge(current, moveTable)

	cleared := false
	if verdict.Valid && !verdict.IsPass {
		cleared = e.processPlay(current, analysis, sub)
		if err := e.transport.SendCode(current, protocol.CodeAccepted); err != nil {
			return e.fail(fmt.Errorf("send accept to player %d: %w", current, err))
		}
	} else {
		if !verdict.Valid {
			e.log.Debugf("player %d turn %d rejected: %s", current, s.TurnNumber, verdict.Reason)
		}
		p.HasPassed = true
		s.ConsecutivePasses++
		if err := e.transport.SendCode(current, protocol.CodeRejected); err != nil {
			return e.fail(fmt.Errorf("send reject to player %d: %w", current, err))
		}
		e.logTurn(current, "pass", NewCardSet(), TypeEmpty)
	}

	// Field-only broadcast: card rows, no control data.
	var fieldTable protocol.Table
	SetCards(&fieldTable, s.Field.Cards)
	for id := range e.players {
		if err := e.transport.SendTable(id, &fieldTable); err != nil {
			return e.fail(fmt.Errorf("broadcast field to player %d: %w", id, err))
		}
	}

	if !cleared && e.allButLeaderPassed() {
		if !s.Field.IsEmpty() {
			leader := e.clearRound()
			if e.glog != nil {
				e.glog.Special(s.GameNumber, s.TurnNumber, "field_clear", leader,
					map[string]any{"reason": "all_passed"})
			}
			cleared = true
		} else {
			// Nobody can open: keep the pass streak alive so the
			// sennichite bound still triggers, but let everyone act
			// again.
			for _, pl := range e.players {
				pl.ResetTurnState()
			}
		}
	}

	if e.rules.Sennichite && s.ConsecutivePasses >= SennichiteThreshold {
		e.log.Warnf("game %d sennichite after %d consecutive passes", s.GameNumber, s.ConsecutivePasses)
		e.finishRemainingShuffled()
		return e.endGame()
	}
	if s.FinishedCount >= NumPlayers-1 {
		return e.endGame()
	}

	for id := range e.players {
		if err := e.transport.SendCode(id, protocol.CodeContinue); err != nil {
			return e.fail(fmt.Errorf("broadcast continue to player %d: %w", id, err))
		}
	}
	if !cleared {
		s.CurrentPlayer = (current + 1) % NumPlayers
	}
	return stateTurn
}

// judge extracts and validates the submission, dumping rejected frames
// at debug level.
func (e *Engine) judge(player int, t *protocol.Table) (Verdict, Analysis, Submission) {
	sub := SubmittedFromTable(t)
	if sub.Err != ErrNone {
		e.log.Debugf("player %d malformed submission (%s): %s", player, sub.Err, spew.Sdump(t))
		return reject("malformed submission: %s", sub.Err), Analysis{}, sub
	}

	analysis := e.analyzer.Analyze(sub.Cards, sub.Subs, e.state.EffectiveRevolution())
	verdict := e.validator.Validate(analysis, e.hands[player], sub.Cards, sub.Subs, e.state)
	if !verdict.Valid && analysis.IsValid() && !handContains(e.hands[player], sub.Cards, sub.Subs) {
		e.log.Warnf("player %d submitted cards not in hand: %s", player, sub.Cards.Notation())
	}
	return verdict, analysis, sub
}

// processPlay applies an accepted play: hand removal, field install, the
// turn record, and the special rules. Reports whether the field was
// cleared by 8-cut.
func (e *Engine) processPlay(player int, a Analysis, sub Submission) bool {
	s := e.state
	hand := e.hands[player]
	for c := range sub.Cards {
		if c.IsJoker() || sub.Subs[c] {
			hand.Remove(Joker)
		} else {
			hand.Remove(c)
		}
	}

	prevEmpty := s.Field.IsEmpty()
	prevPattern := s.Field.SuitPattern

	s.Field.Cards = sub.Cards.Copy()
	s.Field.Type = a.Type
	s.Field.Count = a.Count
	s.Field.BaseRank = a.BaseRank
	s.Field.SuitPattern = a.SuitPattern

	s.LastPlayer = player
	s.ConsecutivePasses = 0

	e.logTurn(player, "play", sub.Cards, a.Type)

	cleared := e.applySpecialRules(player, a, prevEmpty, prevPattern)

	if hand.IsEmpty() {
		e.finishPlayer(player)
	}
	return cleared
}

// applySpecialRules runs the post-play rule checks in their fixed order:
// joker-single flag, 8-cut, revolution, 11-back, lock. The effective
// revolution at entry drives the rank checks so a toggled revolution does
// not re-read the same play.
func (e *Engine) applySpecialRules(player int, a Analysis, prevEmpty bool, prevPattern int) bool {
	s := e.state
	revolution := s.EffectiveRevolution()

	s.IsJokerSingle = a.Type == TypeJokerSingle

	cleared := false
	if e.rules.EightStop && e.analyzer.ContainsRank(a, Eight, revolution) {
		if e.glog != nil {
			e.glog.Special(s.GameNumber, s.TurnNumber, "eight_stop", player, nil)
		}
		e.log.Debugf("8-cut by player %d", player)
		s.ResetForNewRound()
		for _, pl := range e.players {
			pl.ResetTurnState()
		}
		// The cutter leads the fresh trick.
		s.CurrentPlayer = player
		cleared = true
	}

	if e.rules.Revolution {
		bigGroup := a.Type == TypePair && a.Count >= 4
		longRun := a.Type == TypeSequence && a.Count >= 5
		if bigGroup || longRun {
			s.IsRevolution = !s.IsRevolution
			if e.glog != nil {
				e.glog.Special(s.GameNumber, s.TurnNumber, "revolution", player,
					map[string]any{"is_revolution": s.IsRevolution})
			}
			e.log.Infof("revolution by player %d (now %v)", player, s.IsRevolution)
		}
	}

	// A Jack toggles 11-back even when the same play just 8-cut: the
	// field reset ran first, so the toggle arms it for the fresh trick.
	if e.rules.ElevenBack && e.analyzer.ContainsRank(a, Jack, revolution) {
		s.IsElevenBack = !s.IsElevenBack
		if e.glog != nil {
			e.glog.Special(s.GameNumber, s.TurnNumber, "eleven_back", player,
				map[string]any{"is_eleven_back": s.IsElevenBack})
		}
	}

	if e.rules.Lock && !cleared {
		e.updateLock(player, prevEmpty, prevPattern, a.SuitPattern)
	}
	return cleared
}

// updateLock advances the per-trick lock counter against the pattern the
// field held before this play landed.
func (e *Engine) updateLock(player int, prevEmpty bool, prevPattern, pattern int) {
	f := e.state.Field
	switch {
	case prevEmpty:
		f.LockCount = 1
		f.Locked = false
	case pattern == prevPattern:
		f.LockCount++
		if f.LockCount >= 2 && !f.Locked {
			f.Locked = true
			if e.glog != nil {
				e.glog.Special(e.state.GameNumber, e.state.TurnNumber, "lock", player, nil)
			}
			e.log.Debugf("lock active on pattern %04b", pattern)
		}
	default:
		f.LockCount = 1
		f.Locked = false
	}
}

// finishPlayer marks a player out with the next finish position.
func (e *Engine) finishPlayer(player int) {
	p := e.players[player]
	p.HasFinished = true
	p.FinishOrder = len(e.finishOrder)
	e.finishOrder = append(e.finishOrder, player)
	e.state.FinishedCount++
	e.log.Infof("player %d finished at position %d", player, p.FinishOrder+1)
	if e.glog != nil {
		e.glog.Special(e.state.GameNumber, e.state.TurnNumber, "player_finish", player,
			map[string]any{"position": p.FinishOrder})
	}
}

// allButLeaderPassed reports whether every unfinished player but one has
// passed this trick.
func (e *Engine) allButLeaderPassed() bool {
	active, passed := 0, 0
	for _, p := range e.players {
		if p.HasFinished {
			continue
		}
		active++
		if p.HasPassed {
			passed++
		}
	}
	return active > 0 && passed >= active-1
}

// clearRound flows the trick and hands the lead back to the last player
// to head the field, or their next unfinished successor. Returns the new
// leader.
func (e *Engine) clearRound() int {
	s := e.state
	s.ResetForNewRound()
	for _, p := range e.players {
		p.ResetTurnState()
	}
	leader := s.LastPlayer
	if leader < 0 {
		leader = s.CurrentPlayer
	}
	if e.players[leader].HasFinished {
		leader = e.nextUnfinished(leader)
	}
	s.CurrentPlayer = leader
	return leader
}

// nextUnfinished returns the first unfinished player after from in seat
// direction.
func (e *Engine) nextUnfinished(from int) int {
	for i := 1; i <= NumPlayers; i++ {
		id := (from + i) % NumPlayers
		if !e.players[id].HasFinished {
			return id
		}
	}
	return from
}

// finishRemainingShuffled assigns the remaining finish positions at
// random for a sennichite abort.
func (e *Engine) finishRemainingShuffled() {
	var remaining []int
	for id, p := range e.players {
		if !p.HasFinished {
			remaining = append(remaining, id)
		}
	}
	e.rng.Shuffle(len(remaining), func(i, j int) {
		remaining[i], remaining[j] = remaining[j], remaining[i]
	})
	for _, id := range remaining {
		p := e.players[id]
		p.HasFinished = true
		p.FinishOrder = len(e.finishOrder)
		e.finishOrder = append(e.finishOrder, id)
		e.state.FinishedCount++
	}
}

// endGame broadcasts the end code and hands off to settlement.
func (e *Engine) endGame() statemachine.StateFn[Engine] {
	code := protocol.CodeGameEnd
	if e.state.GameNumber >= e.totalGames {
		code = protocol.CodeSessionEnd
	}
	for id := range e.players {
		if err := e.transport.SendCode(id, code); err != nil {
			return e.fail(fmt.Errorf("broadcast game end to player %d: %w", id, err))
		}
	}
	return stateSettle
}

// stateSettle finishes the last seat, scores the game, and reassigns the
// class ranks for the next one.
func stateSettle(e *Engine) statemachine.StateFn[Engine] {
	for id, p := range e.players {
		if !p.HasFinished {
			p.HasFinished = true
			p.FinishOrder = len(e.finishOrder)
			e.finishOrder = append(e.finishOrder, id)
			e.state.FinishedCount++
		}
	}

	for pos, id := range e.finishOrder {
		e.points[id] += NumPlayers - pos
		e.players[id].Rank = PlayerRank(pos)
	}

	g := e.state.GameNumber
	e.log.Infof("game %d finished, order %v", g, e.finishOrder)
	if e.glog != nil {
		e.glog.GameEnd(g, append([]int(nil), e.finishOrder...), e.ranksNotation())
	}
	if e.onGameEnd != nil {
		e.onGameEnd(g, append([]int(nil), e.finishOrder...))
	}
	return nil
}

// buildHandTable assembles the per-recipient table: the recipient's cards
// on rows 0-4, the control row, and the table-wide meta row.
func (e *Engine) buildHandTable(player int, hand CardSet, phase bool, exchangeCount int) *protocol.Table {
	s := e.state
	var t protocol.Table
	SetCards(&t, hand)

	if phase {
		t.Set(protocol.RowControl, protocol.ColPhase, 1)
		t.Set(protocol.RowControl, protocol.ColExchangeCount, encodeExchangeCount(exchangeCount))
	} else if player == s.CurrentPlayer {
		t.Set(protocol.RowControl, protocol.ColYourTurn, 1)
	}
	t.Set(protocol.RowControl, protocol.ColCurrentPlayer, s.CurrentPlayer)
	if s.Field.IsEmpty() {
		t.Set(protocol.RowControl, protocol.ColOnset, 1)
	}
	if s.IsElevenBack {
		t.Set(protocol.RowControl, protocol.ColElevenBack, 1)
	}
	if s.IsRevolution {
		t.Set(protocol.RowControl, protocol.ColRevolution, 1)
	}
	if s.Field.Locked {
		t.Set(protocol.RowControl, protocol.ColLock, 1)
	}

	for id, p := range e.players {
		t.Set(protocol.RowMeta, id, e.hands[id].Count())
		t.Set(protocol.RowMeta, 5+id, int(p.Rank))
		t.Set(protocol.RowMeta, 10+id, p.Seat)
	}
	return &t
}

// encodeExchangeCount maps a signed exchange count onto the unsigned
// wire cell: negatives go out as 100+|n|.
func encodeExchangeCount(n int) int {
	if n < 0 {
		return 100 - n
	}
	return n
}

// logTurn writes one turn record with the post-move hands and flags.
func (e *Engine) logTurn(player int, action string, cards CardSet, cardType CardType) {
	if e.glog == nil {
		return
	}
	s := e.state
	e.glog.Turn(s.GameNumber, s.TurnNumber, player, action,
		cards.Notation(), string(cardType), s.Field.Cards.Notation(),
		e.handsNotation(), gamelog.StateFlags{
			Revolution: s.IsRevolution,
			ElevenBack: s.IsElevenBack,
			Locked:     s.Field.Locked,
		})
}

func (e *Engine) playerWithRank(rank PlayerRank) int {
	for id, p := range e.players {
		if p.Rank == rank {
			return id
		}
	}
	return 0
}

func (e *Engine) handsNotation() map[string]string {
	out := make(map[string]string, len(e.hands))
	for id, h := range e.hands {
		out[strconv.Itoa(id)] = h.Notation()
	}
	return out
}

func (e *Engine) ranksNotation() map[string]string {
	out := make(map[string]string, len(e.players))
	for id, p := range e.players {
		out[strconv.Itoa(id)] = p.Rank.LogName()
	}
	return out
}
