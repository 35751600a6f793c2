package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// inputMode tracks what a numeric prompt, if any, is for.
type inputMode int

const (
	inputNone inputMode = iota
	inputGame
	inputTurn
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the bubbletea model of the replay viewer.
type Model struct {
	steps []Step
	step  int

	playing bool
	input   inputMode
	buffer  string
}

// NewModel creates a viewer over prebuilt steps.
func NewModel(steps []Step) Model {
	return Model{steps: steps}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !m.playing {
			return m, nil
		}
		if m.step < len(m.steps)-1 {
			m.step++
			return m, tick()
		}
		m.playing = false
		return m, nil

	case tea.KeyMsg:
		if m.input != inputNone {
			return m.updatePrompt(msg)
		}
		if m.playing {
			// Any key stops continuous playback.
			m.playing = false
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "n", "right":
			if m.step < len(m.steps)-1 {
				m.step++
			}
		case "p", "left":
			if m.step > 0 {
				m.step--
			}
		case "c":
			m.playing = true
			return m, tick()
		case "g":
			m.input = inputGame
			m.buffer = ""
		case "t":
			m.input = inputTurn
			m.buffer = ""
		}
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input = inputNone
	case "enter":
		if n, err := strconv.Atoi(m.buffer); err == nil {
			var idx int
			if m.input == inputGame {
				idx = FindGameStart(m.steps, n)
			} else {
				idx = FindTurn(m.steps, m.steps[m.step].Game, n)
			}
			if idx >= 0 {
				m.step = idx
			}
		}
		m.input = inputNone
	case "backspace":
		if len(m.buffer) > 0 {
			m.buffer = m.buffer[:len(m.buffer)-1]
		}
	default:
		if len(msg.String()) == 1 && msg.String() >= "0" && msg.String() <= "9" {
			m.buffer += msg.String()
		}
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.steps) == 0 {
		return "empty log\n"
	}
	s := m.steps[m.step]
	var b strings.Builder

	sep := strings.Repeat("═", 80)
	b.WriteString(sep + "\n")

	var flags []string
	if s.Revolution {
		flags = append(flags, "[REV]")
	}
	if s.Locked {
		flags = append(flags, "[LOCK]")
	}
	if s.ElevenBack {
		flags = append(flags, "[11B]")
	}
	header := headerStyle.Render(fmt.Sprintf("Game %d / Turn %d", s.Game, s.Turn))
	if len(flags) > 0 {
		header += "  " + flagStyle.Render(strings.Join(flags, " "))
	}
	fmt.Fprintf(&b, "%s    Step %d/%d\n", header, m.step+1, len(m.steps))
	b.WriteString(sep + "\n\n")

	if s.FieldCards != "" {
		fmt.Fprintf(&b, "Field: %s (%s)\n", fieldStyle.Render(s.FieldCards), s.FieldType)
	} else {
		b.WriteString("Field: (empty)\n")
	}
	fmt.Fprintf(&b, "Last:  %s\n\n", actionStyle.Render(s.LastAction))

	for _, p := range s.Players {
		name := fmt.Sprintf("%d: %s [%s]", p.ID, p.Name, s.Ranks[fmt.Sprint(p.ID)])
		switch {
		case s.CurrentPlayer == p.ID:
			name = currentStyle.Render(name + "  <<<")
		case s.Finished[p.ID]:
			name = finishedStyle.Render(name + "  (out)")
		}
		b.WriteString(name + "\n")
		hand := s.Hands[fmt.Sprint(p.ID)]
		count := 0
		if hand != "" {
			count = strings.Count(hand, ",") + 1
		}
		fmt.Fprintf(&b, "   %s (%d cards)\n", handStyle.Render(hand), count)
	}

	switch {
	case m.input == inputGame:
		b.WriteString("\n" + promptStyle.Render("Jump to game: "+m.buffer+"▌"))
	case m.input == inputTurn:
		b.WriteString("\n" + promptStyle.Render("Jump to turn: "+m.buffer+"▌"))
	case m.playing:
		b.WriteString("\n" + helpStyle.Render("playing… any key to stop"))
	default:
		b.WriteString("\n" + helpStyle.Render("[n]ext [p]rev [c]ontinuous [g]ame [t]urn [q]uit"))
	}
	b.WriteString("\n")
	return b.String()
}
