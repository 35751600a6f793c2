package gamelog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// Event is the read-side union of every record kind. Fields not carried
// by a record stay at their zero value; Type selects which matter.
type Event struct {
	Type string `json:"type"`

	// session_start
	Timestamp string       `json:"timestamp,omitempty"`
	Players   []PlayerInfo `json:"players,omitempty"`

	// game_start / exchange / turn / special / game_end
	Game int `json:"game,omitempty"`
	Turn int `json:"turn,omitempty"`

	// game_start
	Hands       map[string]string `json:"hands,omitempty"`
	Ranks       map[string]string `json:"ranks,omitempty"`
	FirstPlayer int               `json:"first_player,omitempty"`

	// exchange
	Exchanges  []ExchangeInfo    `json:"exchanges,omitempty"`
	HandsAfter map[string]string `json:"hands_after,omitempty"`

	// turn
	Player   int         `json:"player,omitempty"`
	Action   string      `json:"action,omitempty"`
	Cards    string      `json:"cards,omitempty"`
	CardType string      `json:"card_type,omitempty"`
	Field    string      `json:"field,omitempty"`
	State    *StateFlags `json:"state,omitempty"`

	// special
	Event  string         `json:"event,omitempty"`
	Detail map[string]any `json:"detail,omitempty"`

	// game_end
	FinishOrder []int             `json:"finish_order,omitempty"`
	NewRanks    map[string]string `json:"new_ranks,omitempty"`

	// session_end
	TotalGames  int            `json:"total_games,omitempty"`
	FinalPoints map[string]int `json:"final_points,omitempty"`
	Ranking     []int          `json:"ranking,omitempty"`
}

// LoadEvents reads every record from a JSONL log file.
func LoadEvents(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open game log: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Bytes()
		if len(text) == 0 {
			continue
		}
		var ev Event
		if err := json.Unmarshal(text, &ev); err != nil {
			return nil, fmt.Errorf("parse game log line %d: %w", line, err)
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read game log: %w", err)
	}
	return events, nil
}
