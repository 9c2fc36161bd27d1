package integration

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/javiermolinar/daybar/internal/db"
	"github.com/javiermolinar/daybar/internal/partition"
	"github.com/javiermolinar/daybar/internal/task"
)

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T) *db.SQLite {
	t.Helper()
	return openRepoAt(t, filepath.Join(t.TempDir(), "test.db"))
}

func openRepoAt(t *testing.T, dbPath string) *db.SQLite {
	t.Helper()
	repo, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// applyAndSave runs e against p, persists the result and returns it.
func applyAndSave(t *testing.T, repo *db.SQLite, p partition.Plan, e partition.Edit) partition.Result {
	t.Helper()
	res, err := partition.Apply(p, e)
	if err != nil {
		t.Fatalf("%s: %v", e.Describe(), err)
	}
	if err := repo.SavePlan(context.Background(), res.Plan); err != nil {
		t.Fatalf("saving after %s: %v", e.Describe(), err)
	}
	return res
}

func loadPlan(t *testing.T, repo *db.SQLite) partition.Plan {
	t.Helper()
	p, found, err := repo.LoadPlan(context.Background())
	if err != nil {
		t.Fatalf("failed to load plan: %v", err)
	}
	if !found {
		t.Fatal("expected a stored plan")
	}
	return p
}

func TestEditSessionSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "session.db")
	repo := openRepoAt(t, dbPath)

	p := partition.DefaultPlan()
	edits := []partition.Edit{
		partition.ResizeBoundaryEdit{Index: 0, At: 7},
		partition.SplitBlockEdit{Index: 4, Category: "Reading", Color: "#00bcd4"},
		partition.RemoveBlockEdit{Index: 2},
		partition.ResizeBlockEdit{Index: 1, Start: 6.5, End: 10},
	}
	for _, e := range edits {
		p = applyAndSave(t, repo, p, e).Plan
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("closing repo: %v", err)
	}

	reopened := openRepoAt(t, dbPath)
	got := loadPlan(t, reopened)
	if len(got.Blocks) != len(p.Blocks) {
		t.Fatalf("reloaded %d blocks, want %d", len(got.Blocks), len(p.Blocks))
	}
	for i := range p.Blocks {
		if got.Blocks[i] != p.Blocks[i] {
			t.Errorf("block %d: got %+v, want %+v", i, got.Blocks[i], p.Blocks[i])
		}
	}
	if err := partition.Validate(got); err != nil {
		t.Errorf("reloaded plan invalid: %v", err)
	}
}

func TestRejectedEditIsNotPersisted(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	p := partition.DefaultPlan()
	if err := repo.SavePlan(ctx, p); err != nil {
		t.Fatalf("SavePlan: %v", err)
	}

	_, err := partition.Apply(p, partition.ResizeBoundaryEdit{Index: 0, At: 0.25})
	if !errors.Is(err, partition.ErrBelowMinimumDuration) {
		t.Fatalf("expected ErrBelowMinimumDuration, got %v", err)
	}

	got := loadPlan(t, repo)
	if got.Blocks[0].End != 4 {
		t.Errorf("stored plan changed: Sleep ends at %v", got.Blocks[0].End)
	}
}

func TestRescalePersistsRangeAndNotice(t *testing.T) {
	repo := openRepo(t)

	res := applyAndSave(t, repo, partition.DefaultPlan(), partition.RescaleRangeEdit{
		Range: partition.Range{Start: 9, End: 17},
	})
	if !res.Pruned() {
		t.Error("expected a pruned notice")
	}

	got := loadPlan(t, repo)
	if !got.Range.Equal(partition.Range{Start: 9, End: 17}) {
		t.Errorf("stored range = %v, want 9-17", got.Range)
	}
	if got.Blocks[0].Category != "Exercise" || got.Blocks[0].Start != 9 {
		t.Errorf("first block = %+v, want Exercise from 9", got.Blocks[0])
	}
}

func TestTasksOrphanedByRemove(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	reg := task.NewRegistry(repo)

	p := partition.DefaultPlan()
	if err := repo.SavePlan(ctx, p); err != nil {
		t.Fatalf("SavePlan: %v", err)
	}

	cats := partition.Categories(p.Blocks)
	run, err := reg.Add(ctx, "Morning run", "Exercise", cats)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := reg.Add(ctx, "Read", "Leisure", cats); err != nil {
		t.Fatalf("Add: %v", err)
	}

	p = applyAndSave(t, repo, p, partition.RemoveBlockEdit{Index: 2}).Plan

	tasks, err := reg.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	orphans := task.Orphans(tasks, partition.Categories(p.Blocks))
	if len(orphans) != 1 || orphans[0].ID != run.ID {
		t.Fatalf("orphans = %v, want only the Exercise task", orphans)
	}

	// The task is kept; bringing the category back adopts it again.
	p = applyAndSave(t, repo, p, partition.AddEdit(p, 1, "Exercise", "#ff9800")).Plan
	if got := task.Orphans(tasks, partition.Categories(p.Blocks)); len(got) != 0 {
		t.Errorf("expected no orphans after re-adding the category, got %d", len(got))
	}
}

func TestExportImportThroughStore(t *testing.T) {
	src := openRepo(t)
	dst := openRepo(t)
	ctx := context.Background()

	p := applyAndSave(t, src, partition.DefaultPlan(), partition.ResizeBoundaryEdit{Index: 3, At: 14.5}).Plan

	data, err := partition.Export(p)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	imported, err := partition.Import(data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if err := dst.SavePlan(ctx, imported); err != nil {
		t.Fatalf("SavePlan: %v", err)
	}

	got := loadPlan(t, dst)
	if got.Blocks[3].End != 14.5 {
		t.Errorf("Leisure end = %v, want 14.5", got.Blocks[3].End)
	}
}
