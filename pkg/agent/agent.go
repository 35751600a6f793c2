package agent

import (
	"errors"
	"fmt"

	"github.com/decred/slog"
	"github.com/vctt94/daifugo/pkg/protocol"
)

// Agent plays a session against the arbiter with a pluggable strategy.
type Agent struct {
	conn     *Conn
	strategy Strategy
	log      slog.Logger

	id    int
	state *State
}

// New wires an agent to its connection. The handshake must have been run
// already; id is the assigned seat.
func New(conn *Conn, id int, strategy Strategy, log slog.Logger) *Agent {
	return &Agent{
		conn:     conn,
		strategy: strategy,
		log:      log,
		id:       id,
		state:    &State{},
	}
}

// Run plays games until the arbiter signals the end of the session.
func (a *Agent) Run() error {
	for game := 1; ; game++ {
		done, err := a.playGame(game)
		if err != nil {
			return fmt.Errorf("game %d: %w", game, err)
		}
		if done {
			a.log.Infof("session finished after %d games", game)
			return nil
		}
	}
}

// playGame handles one game: initial hand, optional exchange, then the
// turn loop. done is true when the arbiter sent the session-end code.
func (a *Agent) playGame(game int) (done bool, err error) {
	initial, err := a.conn.RecvTable()
	if err != nil {
		return false, fmt.Errorf("receive initial hand: %w", err)
	}
	if initial.At(protocol.RowControl, protocol.ColPhase) != 1 {
		return false, errors.New("initial hand table missing phase flag")
	}
	a.log.Infof("game %d started", game)

	exchange := int(initial.At(protocol.RowControl, protocol.ColExchangeCount))
	if exchange > 0 && exchange < 100 {
		a.log.Debugf("exchanging %d cards", exchange)
		give := a.strategy.SelectExchange(initial, exchange)
		if err := a.conn.SendTable(give); err != nil {
			return false, fmt.Errorf("send exchange: %w", err)
		}
	}

	for {
		hand, err := a.conn.RecvTable()
		if err != nil {
			return false, fmt.Errorf("receive hand: %w", err)
		}

		s := ParseState(hand)
		s.FieldRank = a.state.FieldRank
		s.FieldQty = a.state.FieldQty
		s.FieldSequence = a.state.FieldSequence
		s.FieldSuits = a.state.FieldSuits
		a.state = s

		if s.MyTurn {
			play := a.strategy.SelectPlay(hand, s)
			if err := a.conn.SendTable(play); err != nil {
				return false, fmt.Errorf("send play: %w", err)
			}
			code, err := a.conn.RecvCode()
			if err != nil {
				return false, fmt.Errorf("read accept code: %w", err)
			}
			switch code {
			case protocol.CodeAccepted:
				a.log.Debugf("play accepted (%d cards)", countCards(play))
			case protocol.CodeRejected:
				a.log.Debugf("passed")
			default:
				a.log.Warnf("unexpected accept code %d", code)
			}
		}

		field, err := a.conn.RecvTable()
		if err != nil {
			return false, fmt.Errorf("receive field: %w", err)
		}
		a.state.ObserveField(field)

		status, err := a.conn.RecvCode()
		if err != nil {
			return false, fmt.Errorf("read game status: %w", err)
		}
		switch status {
		case protocol.CodeContinue:
		case protocol.CodeGameEnd:
			a.log.Infof("game %d finished", game)
			return false, nil
		case protocol.CodeSessionEnd:
			a.log.Infof("game %d finished, session over", game)
			return true, nil
		default:
			return false, fmt.Errorf("unexpected game status %d", status)
		}
	}
}
