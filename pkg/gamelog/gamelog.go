// Package gamelog writes the replayable per-session event trace as
// newline-delimited JSON, one record per line, append-only.
package gamelog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// PlayerInfo identifies one seat in session_start records.
type PlayerInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ExchangeInfo is one directed card transfer in an exchange record.
type ExchangeInfo struct {
	From  int    `json:"from"`
	To    int    `json:"to"`
	Cards string `json:"cards"`
}

// StateFlags is the rule-flag snapshot attached to turn records.
type StateFlags struct {
	Revolution bool `json:"revolution"`
	ElevenBack bool `json:"eleven_back"`
	Locked     bool `json:"locked"`
}

// Logger appends event records to a JSONL file. A nil *Logger is a valid
// disabled logger: every method is a no-op.
type Logger struct {
	f *os.File
}

// New opens (creating directories as needed) the log file for appending.
func New(path string) (*Logger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("create game log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("open game log: %w", err)
	}
	return &Logger{f: f}, nil
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l == nil || l.f == nil {
		return nil
	}
	if err := l.f.Sync(); err != nil {
		l.f.Close()
		return err
	}
	err := l.f.Close()
	l.f = nil
	return err
}

// write marshals one record onto its own line. os.File writes are
// unbuffered, so the record is handed to the OS before write returns.
func (l *Logger) write(record any) {
	if l == nil || l.f == nil {
		return
	}
	data, err := json.Marshal(record)
	if err != nil {
		return
	}
	l.f.Write(append(data, '\n'))
}

// SessionStart records the roster at the top of the log.
func (l *Logger) SessionStart(timestamp string, players []PlayerInfo) {
	l.write(struct {
		Type      string       `json:"type"`
		Timestamp string       `json:"timestamp"`
		Players   []PlayerInfo `json:"players"`
	}{"session_start", timestamp, players})
}

// GameStart records the deal: hands and ranks keyed by player id, and the
// first player to lead.
func (l *Logger) GameStart(game int, hands, ranks map[string]string, firstPlayer int) {
	l.write(struct {
		Type        string            `json:"type"`
		Game        int               `json:"game"`
		Hands       map[string]string `json:"hands"`
		Ranks       map[string]string `json:"ranks"`
		FirstPlayer int               `json:"first_player"`
	}{"game_start", game, hands, ranks, firstPlayer})
}

// Exchange records the between-games card transfers.
func (l *Logger) Exchange(game int, exchanges []ExchangeInfo, handsAfter map[string]string) {
	l.write(struct {
		Type       string            `json:"type"`
		Game       int               `json:"game"`
		Exchanges  []ExchangeInfo    `json:"exchanges"`
		HandsAfter map[string]string `json:"hands_after"`
	}{"exchange", game, exchanges, handsAfter})
}

// Turn records one play or pass, with the field and all hands after it.
func (l *Logger) Turn(game, turn, player int, action, cards, cardType, field string, hands map[string]string, state StateFlags) {
	l.write(struct {
		Type     string            `json:"type"`
		Game     int               `json:"game"`
		Turn     int               `json:"turn"`
		Player   int               `json:"player"`
		Action   string            `json:"action"`
		Cards    string            `json:"cards"`
		CardType string            `json:"card_type"`
		Field    string            `json:"field"`
		Hands    map[string]string `json:"hands"`
		State    StateFlags        `json:"state"`
	}{"turn", game, turn, player, action, cards, cardType, field, hands, state})
}

// Special records rule events: eight_stop, revolution, eleven_back, lock,
// field_clear, player_finish.
func (l *Logger) Special(game, turn int, event string, player int, detail map[string]any) {
	l.write(struct {
		Type   string         `json:"type"`
		Game   int            `json:"game"`
		Turn   int            `json:"turn"`
		Event  string         `json:"event"`
		Player int            `json:"player"`
		Detail map[string]any `json:"detail,omitempty"`
	}{"special", game, turn, event, player, detail})
}

// GameEnd records the finish order and the class ranks it implies for the
// next game.
func (l *Logger) GameEnd(game int, finishOrder []int, newRanks map[string]string) {
	l.write(struct {
		Type        string            `json:"type"`
		Game        int               `json:"game"`
		FinishOrder []int             `json:"finish_order"`
		NewRanks    map[string]string `json:"new_ranks"`
	}{"game_end", game, finishOrder, newRanks})
}

// SessionEnd closes the trace with point totals and the final ranking.
func (l *Logger) SessionEnd(totalGames int, finalPoints map[string]int, ranking []int) {
	l.write(struct {
		Type        string         `json:"type"`
		TotalGames  int            `json:"total_games"`
		FinalPoints map[string]int `json:"final_points"`
		Ranking     []int          `json:"ranking"`
	}{"session_end", totalGames, finalPoints, ranking})
}
