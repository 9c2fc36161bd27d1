package integration

import (
	"context"
	"testing"
	"time"

	"github.com/javiermolinar/daybar/internal/task"
)

func TestCreatedAtKeepsInstantAcrossZones(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	zones := []*time.Location{
		time.UTC,
		time.FixedZone("UTC+9", 9*60*60),
		time.FixedZone("UTC-5", -5*60*60),
	}
	base := time.Date(2025, 3, 30, 23, 45, 12, 0, time.UTC)

	for _, loc := range zones {
		created := base.In(loc)
		tsk, err := task.New("Check "+loc.String(), "Work")
		if err != nil {
			t.Fatalf("task.New: %v", err)
		}
		tsk.CreatedAt = created
		if err := repo.CreateTask(ctx, tsk); err != nil {
			t.Fatalf("CreateTask: %v", err)
		}

		got, err := repo.GetTask(ctx, tsk.ID)
		if err != nil {
			t.Fatalf("GetTask: %v", err)
		}
		if !got.CreatedAt.Equal(created) {
			t.Errorf("%s: CreatedAt = %v, want %v", loc, got.CreatedAt, created)
		}
	}
}
