package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/discrete-sim/kernel/kernel"
)

// dashboardTick drives the polling loop; the kernel runs on its own
// goroutine and the dashboard only ever reads its snapshot.
type dashboardTick time.Time

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return dashboardTick(t) })
}

// dashboardModel is the smallest bubbletea program that still exercises
// the dependency: it polls Kernel.Snapshot and Kernel.Fingerprint on a
// ticker and renders current time, component count and the running
// determinism checksum. It never drives the kernel itself.
type dashboardModel struct {
	k        *kernel.Kernel
	interval time.Duration
	done     func() bool
}

func newDashboardModel(k *kernel.Kernel, interval time.Duration, done func() bool) dashboardModel {
	return dashboardModel{k: k, interval: interval, done: done}
}

func (m dashboardModel) Init() tea.Cmd {
	return tickEvery(m.interval)
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	case dashboardTick:
		if m.done != nil && m.done() {
			return m, tea.Quit
		}
		return m, tickEvery(m.interval)
	}
	return m, nil
}

var (
	dashLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	dashValue = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dashFrame = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)

func (m dashboardModel) View() string {
	snap := m.k.Snapshot()
	body := fmt.Sprintf(
		"%s %s\n%s %s\n%s %s\n\n%s",
		dashLabel.Render("time:"), dashValue.Render(fmt.Sprintf("%d", snap.Time)),
		dashLabel.Render("components:"), dashValue.Render(fmt.Sprintf("%d", len(snap.Components))),
		dashLabel.Render("fingerprint:"), dashValue.Render(fmt.Sprintf("%#016x", m.k.Fingerprint())),
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("q: quit"),
	)
	return dashFrame.Render(body)
}
