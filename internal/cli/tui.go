package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tilegarden/tilegarden/pkg/csp"
	"github.com/tilegarden/tilegarden/pkg/pipeline"
)

const (
	// watchProgressEvery is how many search nodes pass between progress frames.
	watchProgressEvery = 5_000

	// watchTickInterval drives the spinner animation.
	watchTickInterval = 80 * time.Millisecond
)

type watchProgressMsg csp.Stats

type watchDoneMsg struct {
	result *pipeline.Result
	err    error
}

// watchModel is the bubbletea model for live solve progress.
type watchModel struct {
	stats  csp.Stats
	frame  int
	done   bool
	result *pipeline.Result
	err    error
}

type watchTickMsg struct{}

func watchTick() tea.Cmd {
	return tea.Tick(watchTickInterval, func(time.Time) tea.Msg {
		return watchTickMsg{}
	})
}

func (m watchModel) Init() tea.Cmd {
	return watchTick()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case watchTickMsg:
		m.frame++
		return m, watchTick()
	case watchProgressMsg:
		m.stats = csp.Stats(msg)
	case watchDoneMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Solving"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q quit"))
	b.WriteString("\n\n")

	frame := spinnerFrames[m.frame%len(spinnerFrames)]
	if m.done {
		frame = iconSuccess
	}
	b.WriteString(styleIconSpinner.Render(frame))
	b.WriteString(" ")
	b.WriteString(StyleValue.Render(fmt.Sprintf("%d nodes", m.stats.Nodes)))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d backtracks  %d prunings  depth %d",
		m.stats.Backtracks, m.stats.Prunings, m.stats.MaxDepth)))
	b.WriteString("\n")

	return b.String()
}

// runWatchSolve executes the pipeline while showing a live progress TUI.
// The search runs in a goroutine and feeds statistics into the program.
func (c *CLI) runWatchSolve(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	p := tea.NewProgram(watchModel{}, tea.WithContext(ctx))

	opts.ProgressEvery = watchProgressEvery
	opts.OnProgress = func(stats csp.Stats) {
		p.Send(watchProgressMsg(stats))
	}

	go func() {
		result, err := runner.Execute(ctx, opts)
		p.Send(watchDoneMsg{result: result, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(watchModel)
	if !ok || !m.done {
		return nil, fmt.Errorf("solve interrupted")
	}
	return m.result, m.err
}
