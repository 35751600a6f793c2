// Package display renders the arbiter's console output: connection
// progress, per-game results, and the final standings.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/vctt94/daifugo/pkg/daifugo"
)

// Console writes styled operator output. It is driven by the server main
// through the engine's game hooks.
type Console struct {
	w         io.Writer
	showHands bool
	names     []string
}

// New creates a console writing to w. showHands echoes every deal, which
// is useful when watching bot matches.
func New(w io.Writer, showHands bool) *Console {
	return &Console{w: w, showHands: showHands}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.w, format+"\n", args...)
}

func (c *Console) separator() {
	c.printf("%s", separatorStyle.Render(strings.Repeat("─", 60)))
}

func (c *Console) name(id int) string {
	if id >= 0 && id < len(c.names) {
		return c.names[id]
	}
	return fmt.Sprintf("Player%d", id)
}

// PlayerConnected reports one completed handshake.
func (c *Console) PlayerConnected(id int, name string, version int) {
	c.printf("player %d connected: %s (protocol %d)", id, playerStyle.Render(name), version)
}

// Roster prints the full table once everyone is seated.
func (c *Console) Roster(names []string) {
	c.names = append([]string(nil), names...)
	c.separator()
	c.printf("%s", titleStyle.Render("Table complete"))
	for id, n := range names {
		c.printf("  %d: %s", id, playerStyle.Render(n))
	}
	c.separator()
}

// GameStart announces a game and, when enabled, the dealt hands.
func (c *Console) GameStart(game, totalGames int, hands []daifugo.CardSet, firstPlayer int) {
	c.separator()
	c.printf("%s", titleStyle.Render(fmt.Sprintf("Game %d/%d", game, totalGames)))
	c.printf("first player: %s", c.name(firstPlayer))
	if !c.showHands {
		return
	}
	for id, h := range hands {
		c.printf("  %s: %s", c.name(id), handStyle.Render(h.String()))
	}
}

// GameResult prints the finish order of one game.
func (c *Console) GameResult(game int, finishOrder []int) {
	var b strings.Builder
	fmt.Fprintf(&b, "Game %d result\n", game)
	for pos, id := range finishOrder {
		line := fmt.Sprintf("%d. %s (%s)", pos+1, c.name(id), daifugo.PlayerRank(pos))
		switch pos {
		case 0:
			line = winnerStyle.Render(line)
		case len(finishOrder) - 1:
			line = loserStyle.Render(line)
		}
		fmt.Fprintf(&b, "  %s\n", line)
	}
	c.printf("%s", resultBoxStyle.Render(strings.TrimRight(b.String(), "\n")))
}

// FinalResults prints the session standings.
func (c *Console) FinalResults(totalGames int, points map[int]int, ranking []int) {
	c.separator()
	c.printf("%s", titleStyle.Render(fmt.Sprintf("Final results after %d games", totalGames)))
	for pos, id := range ranking {
		line := fmt.Sprintf("%d. %-14s %5d pts", pos+1, c.name(id), points[id])
		if pos == 0 {
			line = winnerStyle.Render(line)
		}
		c.printf("  %s", line)
	}
	c.separator()
}
