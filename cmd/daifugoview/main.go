// daifugoview replays a session log in an interactive terminal viewer.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vctt94/daifugo/pkg/gamelog"
	"github.com/vctt94/daifugo/pkg/ui"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <session.jsonl>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	events, err := gamelog.LoadEvents(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	steps := ui.BuildSteps(events)
	if len(steps) == 0 {
		fmt.Fprintln(os.Stderr, "log holds no replayable steps")
		os.Exit(1)
	}

	p := tea.NewProgram(ui.NewModel(steps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
