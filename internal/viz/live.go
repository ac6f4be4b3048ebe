// Package viz renders a live terminal view of a running session: per-tick
// stepping with an energy trace graph and the current observables.
package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/mdsim/internal/session"
)

const historyCapacity = 600

type TickMsg time.Time

// Model steps a session on every frame tick and graphs the energy history.
type Model struct {
	sess       *session.Session
	schemeName string

	running  bool
	fault    error
	steps    int
	energies []float64
	fps      int
}

func NewModel(sess *session.Session, schemeName string, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		sess:       sess,
		schemeName: schemeName,
		running:    true,
		energies:   make([]float64, 0, historyCapacity),
		fps:        fps,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
	case TickMsg:
		if m.running && m.fault == nil {
			if err := m.sess.Run(context.Background(), 1, session.RunOpts{}); err != nil {
				m.fault = err
				m.running = false
			} else {
				m.steps++
				if e, err := m.sess.Analysis().Energy(); err == nil {
					m.energies = append(m.energies, e)
					if len(m.energies) > historyCapacity {
						m.energies = m.energies[1:]
					}
				}
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("mdsim live — %s", m.schemeName)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("steps") + valueStyle.Render(fmt.Sprintf("%d", m.steps)) + "\n")
	b.WriteString(labelStyle.Render("time") + valueStyle.Render(fmt.Sprintf("%.4f", m.sess.Time())) + "\n")
	b.WriteString(labelStyle.Render("particles") + valueStyle.Render(fmt.Sprintf("%d", m.sess.Particles().Len())) + "\n")

	if len(m.energies) > 1 {
		graph := asciigraph.Plot(m.energies, asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption("total energy"))
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	if m.fault != nil {
		b.WriteString(faultStyle.Render("fault: " + m.fault.Error()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space pause · q quit"))
	return b.String()
}

// RunLive drives the live view until the user quits.
func RunLive(sess *session.Session, schemeName string, fps int) error {
	p := tea.NewProgram(NewModel(sess, schemeName, fps))
	_, err := p.Run()
	return err
}
