package registry

import (
	"testing"

	"github.com/vovakirdan/flappy-evo/internal/core"
)

type stubGame struct {
	id, title string
	auto      bool
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return g.title }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }
func (g *stubGame) Autonomous() bool                     { return g.auto }

func unregister(id string) {
	mu.Lock()
	defer mu.Unlock()
	delete(entries, id)
}

func register(t *testing.T, g stubGame) {
	t.Helper()
	Register(g.id, func() Game { c := g; return &c })
	t.Cleanup(func() { unregister(g.id) })
}

func TestRegisterAndCreate(t *testing.T) {
	register(t, stubGame{id: "t-human", title: "Human"})

	if !Exists("t-human") {
		t.Fatal("Exists() = false after Register")
	}
	g, err := Create("t-human")
	if err != nil || g.Title() != "Human" {
		t.Fatalf("Create() = %v, %v", g, err)
	}
	if _, err := Create("t-missing"); err == nil {
		t.Error("Create() of an unknown id succeeded")
	}
}

func TestListOrdersPlayerGamesFirst(t *testing.T) {
	register(t, stubGame{id: "t-b-auto", title: "B", auto: true})
	register(t, stubGame{id: "t-c-human", title: "C"})
	register(t, stubGame{id: "t-a-human", title: "A"})

	var got []GameInfo
	for _, info := range List() {
		if len(info.ID) > 2 && info.ID[:2] == "t-" {
			got = append(got, info)
		}
	}
	want := []GameInfo{
		{ID: "t-a-human", Title: "A"},
		{ID: "t-c-human", Title: "C"},
		{ID: "t-b-auto", Title: "B", Autonomous: true},
	}
	if len(got) != len(want) {
		t.Fatalf("List() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	register(t, stubGame{id: "t-dup", title: "Dup"})

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register("t-dup", func() Game { return &stubGame{id: "t-dup"} })
}
