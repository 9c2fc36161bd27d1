package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/daybar/internal/config"
	"github.com/javiermolinar/daybar/internal/partition"
	"github.com/javiermolinar/daybar/internal/task"
	"github.com/javiermolinar/daybar/internal/tui/commands"
)

type fakeStore struct {
	plan  partition.Plan
	found bool
	saved []partition.Plan
	tasks []*task.Task
}

func (f *fakeStore) LoadPlan(ctx context.Context) (partition.Plan, bool, error) {
	return f.plan, f.found, nil
}

func (f *fakeStore) SavePlan(ctx context.Context, p partition.Plan) error {
	f.saved = append(f.saved, p)
	return nil
}

func (f *fakeStore) ListTasks(ctx context.Context) ([]*task.Task, error) {
	return f.tasks, nil
}

func newLoadedModel(t *testing.T) (Model, *fakeStore) {
	t.Helper()
	store := &fakeStore{plan: partition.DefaultPlan(), found: true}
	m := *New(store, config.Default())
	m = update(t, m, commands.PlanLoadedMsg{Plan: partition.DefaultPlan()})
	return m, store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return model
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = keyRunes(k)
		}
		m = update(t, m, msg)
	}
	return m
}

func TestSelection(t *testing.T) {
	m, _ := newLoadedModel(t)

	m = press(t, m, "left")
	if m.Selected() != 4 {
		t.Errorf("left from first block selected %d, want 4", m.Selected())
	}
	m = press(t, m, "right", "right")
	if m.Selected() != 1 {
		t.Errorf("selected %d, want 1", m.Selected())
	}
}

func TestMoveEndBoundary(t *testing.T) {
	m, _ := newLoadedModel(t)

	updated, cmd := m.Update(keyRunes("l"))
	m = updated.(Model)
	if cmd == nil {
		t.Error("accepted edit should return a save command")
	}
	blocks := m.Plan().Blocks
	if blocks[0].End != 4.5 || blocks[1].Start != 4.5 {
		t.Errorf("boundary = %v/%v, want 4.5", blocks[0].End, blocks[1].Start)
	}

	m = press(t, m, "right", "h")
	if got := m.Plan().Blocks[1].End; got != 7.5 {
		t.Errorf("Work end = %v, want 7.5", got)
	}
}

func TestMoveStartBoundary(t *testing.T) {
	m, _ := newLoadedModel(t)

	m = press(t, m, "right", "right", "H")
	blocks := m.Plan().Blocks
	if blocks[2].Start != 7.5 || blocks[1].End != 7.5 {
		t.Errorf("Exercise start = %v, want 7.5", blocks[2].Start)
	}

	// The first block's start is pinned to the range.
	m = press(t, m, "left", "left", "H")
	if got := m.Plan().Blocks[0].Start; got != 0 {
		t.Errorf("first block start = %v, want 0", got)
	}
}

func TestRejectedEditKeepsPlan(t *testing.T) {
	m, _ := newLoadedModel(t)

	for i := 0; i < 7; i++ {
		m = press(t, m, "h")
	}
	before := m.Plan()
	if got := before.Blocks[0].End; got != 0.5 {
		t.Fatalf("Sleep end = %v, want 0.5", got)
	}

	m = press(t, m, "h")
	if m.statusMsg != "Time blocks must be at least 30 minutes long" {
		t.Errorf("status = %q", m.statusMsg)
	}
	if m.statusLevel != statusError {
		t.Errorf("status level = %v, want error", m.statusLevel)
	}
	if got := m.Plan().Blocks[0].End; got != 0.5 {
		t.Errorf("rejected edit changed the plan: end = %v", got)
	}
}

func TestRemoveBlock(t *testing.T) {
	m, _ := newLoadedModel(t)

	m = press(t, m, "left", "x")
	blocks := m.Plan().Blocks
	if len(blocks) != 4 {
		t.Fatalf("got %d blocks, want 4", len(blocks))
	}
	if blocks[3].End != 24 {
		t.Errorf("last block end = %v, want 24", blocks[3].End)
	}
	if m.Selected() != 3 {
		t.Errorf("selection should clamp to 3, got %d", m.Selected())
	}
}

func TestAddCategoryPrompt(t *testing.T) {
	m, _ := newLoadedModel(t)

	m = press(t, m, "a")
	if m.mode != ModeAdd {
		t.Fatalf("mode = %v, want Add", m.mode)
	}
	m = press(t, m, "Reading", "enter")
	if m.mode != ModeNormal {
		t.Errorf("mode = %v, want Normal after submit", m.mode)
	}

	blocks := m.Plan().Blocks
	if len(blocks) != 6 {
		t.Fatalf("got %d blocks, want 6", len(blocks))
	}
	if blocks[1].Category != "Reading" || blocks[1].Start != 2 || blocks[1].End != 4 {
		t.Errorf("new block = %+v, want Reading 2-4", blocks[1])
	}
	if blocks[1].Color == "" {
		t.Error("new block should get a swatch color")
	}
}

func TestRangePrompt(t *testing.T) {
	m, _ := newLoadedModel(t)

	m = press(t, m, "r")
	if got := m.prompt.Value(); got != "0 24" {
		t.Errorf("range prompt prefill = %q, want \"0 24\"", got)
	}
	m.prompt.SetValue("9 17")
	m = press(t, m, "enter")

	p := m.Plan()
	if !p.Range.Equal(partition.Range{Start: 9, End: 17}) {
		t.Errorf("range = %v, want 9-17", p.Range)
	}
	if m.statusLevel != statusWarn || !strings.Contains(m.statusMsg, "removed") {
		t.Errorf("expected a pruned notice, got %q", m.statusMsg)
	}
}

func TestRangePrompt_BadInput(t *testing.T) {
	m, _ := newLoadedModel(t)

	m = press(t, m, "r")
	m.prompt.SetValue("nine to five")
	m = press(t, m, "enter")
	if m.statusLevel != statusError {
		t.Errorf("expected an error status, got %q", m.statusMsg)
	}
	if !m.Plan().Range.Equal(partition.DayRange) {
		t.Errorf("range changed to %v", m.Plan().Range)
	}

	m = press(t, m, "r")
	m.prompt.SetValue("10 10")
	m = press(t, m, "enter")
	if m.statusMsg != "End time must be greater than start time" {
		t.Errorf("status = %q, want the reversed range message", m.statusMsg)
	}
}

func TestPromptEscCancels(t *testing.T) {
	m, _ := newLoadedModel(t)

	m = press(t, m, "a", "Reading", "esc")
	if m.mode != ModeNormal {
		t.Errorf("mode = %v, want Normal", m.mode)
	}
	if len(m.Plan().Blocks) != 5 {
		t.Errorf("cancel should not add a block")
	}
}

func TestSeededPlanIsSaved(t *testing.T) {
	store := &fakeStore{}
	m := *New(store, config.Default())

	msg := m.Init()()
	loaded, ok := msg.(commands.PlanLoadedMsg)
	if !ok {
		t.Fatalf("Init() produced %T, want PlanLoadedMsg", msg)
	}
	updated, cmd := m.Update(loaded)
	if cmd == nil {
		t.Fatal("seeded plan should be saved")
	}
	if _, ok := cmd().(commands.PlanSavedMsg); !ok {
		t.Fatal("save command did not report success")
	}
	if len(store.saved) != 1 {
		t.Errorf("store saved %d plans, want 1", len(store.saved))
	}
	if len(updated.(Model).Plan().Blocks) != 5 {
		t.Error("seed plan should have 5 blocks")
	}
}

func TestLoadErrorQuits(t *testing.T) {
	m := *New(&fakeStore{}, config.Default())
	m = update(t, m, commands.ErrMsg{Err: errors.New("disk gone")})
	if m.err == nil {
		t.Error("load error should be kept for Run to return")
	}
}

func TestView(t *testing.T) {
	m, _ := newLoadedModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	out := m.View()
	for _, want := range []string{"daybar", "Sleep", "Family Time", "12 PM", "quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = press(t, m, "t")
	if !strings.Contains(m.View(), "No tasks") {
		t.Error("task panel should render when toggled")
	}
}

// slowStore delays its first save so a later save can overtake it if saves
// run concurrently.
type slowStore struct {
	mu    sync.Mutex
	plan  partition.Plan
	saves int
	delay time.Duration
}

func (s *slowStore) LoadPlan(ctx context.Context) (partition.Plan, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan, true, nil
}

func (s *slowStore) SavePlan(ctx context.Context, p partition.Plan) error {
	s.mu.Lock()
	s.saves++
	first := s.saves == 1
	s.mu.Unlock()

	if first {
		time.Sleep(s.delay)
	}

	s.mu.Lock()
	s.plan = p
	s.mu.Unlock()
	return nil
}

func (s *slowStore) ListTasks(ctx context.Context) ([]*task.Task, error) {
	return nil, nil
}

func (s *slowStore) stored() partition.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan
}

func TestRapidEditsPersistLatestPlan(t *testing.T) {
	store := &slowStore{plan: partition.DefaultPlan(), delay: 100 * time.Millisecond}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var p *tea.Program
	var once sync.Once
	sendKeys := func(_ tea.Model, msg tea.Msg) tea.Msg {
		if _, ok := msg.(commands.PlanLoadedMsg); ok {
			once.Do(func() {
				go func() {
					p.Send(keyRunes("l"))
					p.Send(keyRunes("l"))
					p.Send(keyRunes("q"))
				}()
			})
		}
		return msg
	}
	p = tea.NewProgram(New(store, config.Default()),
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithFilter(sendKeys),
	)

	final, err := p.Run()
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	m, ok := final.(Model)
	if !ok {
		t.Fatalf("final model is %T, want Model", final)
	}

	shown := m.Plan().Blocks[0].End
	if shown != 5 {
		t.Fatalf("shown first block end = %v, want 5", shown)
	}
	if got := store.stored().Blocks[0].End; got != shown {
		t.Errorf("stored first block end = %v, want %v", got, shown)
	}
}

func TestEditsDuringSaveAreQueued(t *testing.T) {
	m, store := newLoadedModel(t)

	updated, first := m.Update(keyRunes("l"))
	m = updated.(Model)
	if first == nil {
		t.Fatal("first edit should start a save")
	}

	updated, second := m.Update(keyRunes("l"))
	m = updated.(Model)
	if second != nil {
		t.Fatal("an edit during a save should not start another one")
	}

	updated, next := m.Update(first())
	m = updated.(Model)
	if next == nil {
		t.Fatal("finishing a save with pending edits should save again")
	}
	m = update(t, m, next())

	if len(store.saved) != 2 {
		t.Fatalf("store saved %d plans, want 2", len(store.saved))
	}
	if got := store.saved[1].Blocks[0].End; got != 5 {
		t.Errorf("last saved end = %v, want 5", got)
	}
	if m.saving || m.dirty {
		t.Error("no save should be pending")
	}
}

func TestQuitWaitsForSave(t *testing.T) {
	m, _ := newLoadedModel(t)

	updated, save := m.Update(keyRunes("l"))
	m = updated.(Model)

	updated, cmd := m.Update(keyRunes("q"))
	m = updated.(Model)
	if cmd != nil {
		t.Fatal("quit should wait for the running save")
	}

	_, cmd = m.Update(save())
	if cmd == nil {
		t.Fatal("expected quit once the save finished")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg after the save")
	}
}

func TestSaveFailureShowsStatus(t *testing.T) {
	m, _ := newLoadedModel(t)
	m.saving = true

	m = update(t, m, commands.PlanSavedMsg{Err: errors.New("disk full")})
	if m.statusLevel != statusError || !strings.Contains(m.statusMsg, "disk full") {
		t.Errorf("status = %q (%v), want disk full error", m.statusMsg, m.statusLevel)
	}
	if m.saving {
		t.Error("a failed save should not stay in flight")
	}
}

func TestStaleClearKeepsNewerStatus(t *testing.T) {
	m, _ := newLoadedModel(t)

	m, _ = m.setStatus("first", statusInfo)
	older := m.statusGen
	m, _ = m.setStatus("second", statusInfo)

	m = update(t, m, commands.ClearStatusMsg{Gen: older})
	if m.statusMsg != "second" {
		t.Errorf("status = %q, want second to survive an older clear", m.statusMsg)
	}

	m = update(t, m, commands.ClearStatusMsg{Gen: m.statusGen})
	if m.statusMsg != "" {
		t.Errorf("status = %q, want cleared", m.statusMsg)
	}
}
