package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-evo/internal/core"
	"github.com/vovakirdan/flappy-evo/internal/games/flappy"
	"github.com/vovakirdan/flappy-evo/internal/neuro"
)

// SnapshotMsg carries one tick of a training round to the viewer.
type SnapshotMsg flappy.Snapshot

// TrainingDoneMsg is sent once the trainer returns.
type TrainingDoneMsg struct {
	Champion *neuro.Champion
	Err      error
}

// WatchModel draws training rounds as they are simulated. It never drives
// the simulation; quitting only cancels the run.
type WatchModel struct {
	screen   *core.Screen
	renderer *flappy.Renderer
	cancel   context.CancelFunc
	keys     GameKeyMap

	snap     flappy.Snapshot
	haveSnap bool
	best     int // Best score seen so far
	done     *TrainingDoneMsg
	stopping bool
	width    int
}

// NewWatchModel creates a viewer. cancel is called when the user stops the run.
func NewWatchModel(renderer *flappy.Renderer, cancel context.CancelFunc, cfg core.RuntimeConfig) WatchModel {
	return WatchModel{
		screen:   core.NewScreen(cfg.ScreenW, core.Max(cfg.ScreenH-1, 1)),
		renderer: renderer,
		cancel:   cancel,
		keys:     DefaultGameKeyMap(),
		width:    cfg.ScreenW,
	}
}

// Init implements tea.Model.
func (m WatchModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		m.snap = flappy.Snapshot(msg)
		m.haveSnap = true
		m.best = max(m.best, m.snap.Score)
		return m, nil

	case TrainingDoneMsg:
		m.done = &msg
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.screen.Resize(msg.Width, core.Max(msg.Height-1, 1))
		return m, nil

	case tea.KeyMsg:
		if m.done != nil {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Quit) || key.Matches(msg, m.keys.Back) {
			m.stopping = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m WatchModel) View() string {
	m.screen.Clear()
	if m.haveSnap {
		m.renderer.Render(m.screen, m.snap)
	}
	if m.done != nil {
		title, detail := "TRAINING FINISHED", "no controller"
		if m.done.Champion != nil {
			l := m.done.Champion.Lineage
			detail = fmt.Sprintf("#%d  gen %d  score %d  fitness %.1f", m.done.Champion.ID, l.Generation, l.Score, l.Fitness)
		}
		if m.done.Err != nil {
			title = "TRAINING STOPPED"
		}
		drawMessageBox(m.screen, title, detail, "press any key")
	}

	status := fmt.Sprintf(" gen %d | alive %d | score %d | best %d ", m.snap.Generation, m.snap.Alive, m.snap.Score, m.best)
	switch {
	case m.done != nil:
	case m.stopping:
		status += "| stopping..."
	default:
		status += "| q: stop"
	}
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + statusStyle.Render(status)
}

// drawMessageBox draws a bordered box with centred lines.
func drawMessageBox(dst *core.Screen, lines ...string) {
	w := 0
	for _, l := range lines {
		w = core.Max(w, len(l))
	}
	boxW, boxH := w+4, 2*len(lines)+1
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)
	for i, l := range lines {
		dst.DrawText(box.X+(boxW-len(l))/2, box.Y+1+2*i, l)
	}
}

// WatchTraining runs trainer while drawing every tick at fps frames per
// second. Pacing happens between ticks and never changes the simulation.
// Quitting the viewer cancels training; the trainer still saves its champion.
func WatchTraining(ctx context.Context, trainer *neuro.Trainer, renderer *flappy.Renderer, cfg core.RuntimeConfig) (*neuro.Champion, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewWatchModel(renderer, cancel, cfg), tea.WithAltScreen())

	interval := tickInterval(cfg.TickRate)
	trainer.Observer = flappy.ObserverFunc(func(snap flappy.Snapshot, _ []flappy.Event) {
		p.Send(SnapshotMsg(snap))
		select {
		case <-ctx.Done():
		case <-time.After(interval):
		}
	})

	type outcome struct {
		champion *neuro.Champion
		err      error
	}
	finished := make(chan outcome, 1)
	go func() {
		champ, err := trainer.Train(ctx)
		finished <- outcome{champ, err}
		p.Send(TrainingDoneMsg{Champion: champ, Err: err})
	}()

	_, uiErr := p.Run()
	cancel()
	res := <-finished
	if res.err != nil {
		return res.champion, res.err
	}
	return res.champion, uiErr
}
