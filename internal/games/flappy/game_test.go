package flappy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/flappy-evo/internal/config"
	"github.com/vovakirdan/flappy-evo/internal/core"
	"github.com/vovakirdan/flappy-evo/internal/policy"
	"github.com/vovakirdan/flappy-evo/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: seed}
}

func TestGameDeterminism(t *testing.T) {
	// Jump every 9 ticks to try to stay airborne
	inputs := make([]core.InputFrame, 300)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		if i%9 == 0 {
			inputs[i].Set(core.ActionJump)
		}
	}

	play := func() (*Game, core.GameState) {
		g := New()
		g.Reset(testRuntime(12345))
		var state core.GameState
		for _, in := range inputs {
			state = g.Step(in).State
			if state.GameOver {
				break
			}
		}
		return g, state
	}

	g1, s1 := play()
	g2, s2 := play()

	if s1 != s2 {
		t.Errorf("states differ: %+v vs %+v", s1, s2)
	}
	if g1.round.Tick() != g2.round.Tick() {
		t.Errorf("tick counts differ: %d vs %d", g1.round.Tick(), g2.round.Tick())
	}
}

func TestGameOverWithoutInput(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	for i := 0; i < 100 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}

	state := g.State()
	if !state.GameOver {
		t.Fatal("bird without input should fall out of the playfield")
	}
	if state.Score != 0 || state.Alive != 0 {
		t.Errorf("state = %+v, want score 0 and nobody alive", state)
	}

	// Steps after game over are ignored
	tick := g.round.Tick()
	g.Step(core.NewInputFrame())
	if g.round.Tick() != tick {
		t.Error("game advanced after game over")
	}
}

func TestGamePause(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	for i := 0; i < 5; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.round.Tick() != 0 {
		t.Errorf("paused game advanced to tick %d", g.round.Tick())
	}

	g.Step(pause)
	if g.State().Paused || g.round.Tick() != 1 {
		t.Errorf("resume: paused=%v tick=%d", g.State().Paused, g.round.Tick())
	}
}

func TestGameJumpRaisesBird(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	jump := core.NewInputFrame()
	jump.Set(core.ActionJump)
	g.Step(jump) // Tick 1 falls, then the decision flaps
	y := g.Snapshot().Birds[0].Y
	g.Step(core.NewInputFrame())

	if got := g.Snapshot().Birds[0].Y; got >= y {
		t.Errorf("Y after jump = %v, want less than %v", got, y)
	}
}

func TestGameRender(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))
	g.Step(core.NewInputFrame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "Score: 0") {
		t.Error("HUD should show the score")
	}
	if !strings.ContainsRune(out, BirdChar) {
		t.Error("bird should be visible")
	}
	if !strings.ContainsRune(screen.Row(23), GroundChar) && !strings.ContainsRune(screen.Row(23), StripeChar) {
		t.Error("bottom row should show the ground")
	}
}

func TestRendererDebugLines(t *testing.T) {
	g := NewAgentGame("test", "Test", policy.Never)
	g.Reset(testRuntime(1))
	g.Step(core.NewInputFrame())
	snap := g.Snapshot()

	plain := core.NewScreen(80, 24)
	NewRenderer(nil, configWithLines(false)).Render(plain, snap)
	if strings.ContainsRune(plain.String(), LineChar) {
		t.Error("debug lines drawn while disabled")
	}

	lined := core.NewScreen(80, 24)
	NewRenderer(nil, configWithLines(true)).Render(lined, snap)
	if !strings.ContainsRune(lined.String(), LineChar) {
		t.Error("debug lines missing while enabled")
	}
}

func TestRegisteredGames(t *testing.T) {
	for _, id := range []string{"flappy", "flappy-autopilot"} {
		if !registry.Exists(id) {
			t.Errorf("game %q not registered", id)
		}
	}

	g, err := registry.Create("flappy-autopilot")
	if err != nil {
		t.Fatal(err)
	}
	g.Reset(testRuntime(1))
	for i := 0; i < 50; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.State().Score < 0 {
		t.Errorf("unexpected state %+v", g.State())
	}
}

func TestResetKeepsLastValidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flappy.yaml")
	write := func(body string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	want := config.DefaultFlappyConfig()
	want.Pipes.Gap = 220
	write("pipes:\n  gap: 220\n")

	g := New()
	g.Reset(testRuntime(1))
	if err := g.ConfigErr(); err != nil {
		t.Fatalf("ConfigErr() = %v for a valid file", err)
	}
	if got := g.sim.Config().Pipes.Gap; got != want.Pipes.Gap {
		t.Fatalf("gap = %v, want %v", got, want.Pipes.Gap)
	}

	write("pipes: [unclosed")
	g.Reset(testRuntime(2))
	if g.ConfigErr() == nil {
		t.Error("ConfigErr() = nil for a broken file")
	}
	if got := g.sim.Config().Pipes.Gap; got != want.Pipes.Gap {
		t.Errorf("gap = %v after a broken reload, want last valid %v", got, want.Pipes.Gap)
	}
}

func TestResetBrokenConfigFirstTime(t *testing.T) {
	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))
	t.Cleanup(func() { SetConfigPath("") })

	g := New()
	g.Reset(testRuntime(1))
	if g.ConfigErr() == nil {
		t.Error("ConfigErr() = nil for a missing file")
	}
	if got, want := g.sim.Config().Pipes.Gap, config.DefaultFlappyConfig().Pipes.Gap; got != want {
		t.Errorf("gap = %v, want default %v", got, want)
	}
}

func TestAutonomous(t *testing.T) {
	if New().Autonomous() {
		t.Error("player game reports autonomous")
	}
	if !NewAgentGame("a", "A", policy.NewHeuristic()).Autonomous() {
		t.Error("agent game does not report autonomous")
	}
}

func configWithLines(on bool) config.DebugConfig {
	return config.DebugConfig{DrawLines: on}
}
