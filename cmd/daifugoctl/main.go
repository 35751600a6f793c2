// daifugoctl inspects session logs from the command line.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/vctt94/daifugo/pkg/gamelog"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s summary <session.jsonl>\n", os.Args[0])
	os.Exit(2)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 2 || flag.Arg(0) != "summary" {
		usage()
	}

	events, err := gamelog.LoadEvents(flag.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	summarize(os.Stdout, events)
}

func summarize(w *os.File, events []gamelog.Event) {
	names := map[int]string{}
	name := func(id int) string {
		if n, ok := names[id]; ok {
			return n
		}
		return fmt.Sprintf("Player%d", id)
	}

	for _, ev := range events {
		switch ev.Type {
		case "session_start":
			fmt.Fprintf(w, "session %s\n", ev.Timestamp)
			for _, p := range ev.Players {
				names[p.ID] = p.Name
				fmt.Fprintf(w, "  %d: %s\n", p.ID, p.Name)
			}
		case "game_end":
			fmt.Fprintf(w, "game %d:", ev.Game)
			for _, id := range ev.FinishOrder {
				fmt.Fprintf(w, " %s", name(id))
			}
			fmt.Fprintln(w)
		case "session_end":
			fmt.Fprintf(w, "final standings after %d games:\n", ev.TotalGames)
			for pos, id := range ev.Ranking {
				fmt.Fprintf(w, "  %d. %-14s %5d pts\n", pos+1, name(id), ev.FinalPoints[strconv.Itoa(id)])
			}
		}
	}

	// Older logs may lack the session_end record; fall back to counting
	// wins from the game_end records.
	if !hasType(events, "session_end") {
		wins := map[int]int{}
		for _, ev := range events {
			if ev.Type == "game_end" && len(ev.FinishOrder) > 0 {
				wins[ev.FinishOrder[0]]++
			}
		}
		ids := make([]int, 0, len(wins))
		for id := range wins {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(a, b int) bool { return wins[ids[a]] > wins[ids[b]] })
		fmt.Fprintln(w, "wins:")
		for _, id := range ids {
			fmt.Fprintf(w, "  %-14s %d\n", name(id), wins[id])
		}
	}
}

func hasType(events []gamelog.Event, typ string) bool {
	for _, ev := range events {
		if ev.Type == typ {
			return true
		}
	}
	return false
}
