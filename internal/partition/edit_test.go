package partition

import (
	"errors"
	"math/rand/v2"
	"testing"
)

type bogusEdit struct{}

func (bogusEdit) edit()            {}
func (bogusEdit) Describe() string { return "bogus" }

func TestApply(t *testing.T) {
	base := DefaultPlan()

	tests := []struct {
		name      string
		edit      Edit
		wantErr   error
		wantCount int
	}{
		{name: "resize boundary", edit: ResizeBoundaryEdit{Index: 0, At: 5}, wantCount: 5},
		{name: "resize block", edit: ResizeBlockEdit{Index: 2, Start: 7, End: 13}, wantCount: 5},
		{name: "append on full day", edit: AppendCategoryEdit{Category: "Reading"}, wantErr: ErrRangeFullyAllocated},
		{name: "split", edit: SplitBlockEdit{Index: 4, Category: "Reading"}, wantCount: 6},
		{name: "remove", edit: RemoveBlockEdit{Index: 2}, wantCount: 4},
		{name: "rescale", edit: RescaleRangeEdit{Range: Range{Start: 6, End: 22}}, wantCount: 4},
		{name: "rescale invalid", edit: RescaleRangeEdit{Range: Range{Start: 6, End: 6}}, wantErr: ErrInvalidRange},
		{name: "unknown", edit: bogusEdit{}, wantErr: ErrUnknownEdit},
		{name: "nil", edit: nil, wantErr: ErrUnknownEdit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Apply(base, tt.edit)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Apply() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply() unexpected error: %v", err)
			}
			if len(res.Plan.Blocks) != tt.wantCount {
				t.Errorf("got %d blocks, want %d", len(res.Plan.Blocks), tt.wantCount)
			}
			if err := Validate(res.Plan); err != nil {
				t.Errorf("result violates invariants: %v", err)
			}
		})
	}

	if err := Validate(base); err != nil {
		t.Fatalf("base plan was modified: %v", err)
	}
	assertBlocks(t, base.Blocks, DefaultPlan().Blocks)
}

func TestApply_ReplaySafe(t *testing.T) {
	p := DefaultPlan()
	e := ResizeBoundaryEdit{Index: 1, At: 9}

	first, err := Apply(p, e)
	if err != nil {
		t.Fatalf("first apply: %v", err)
	}
	second, err := Apply(first.Plan, e)
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}
	assertBlocks(t, second.Plan.Blocks, first.Plan.Blocks)
}

func TestValidate(t *testing.T) {
	day := Range{Start: 0, End: 24}
	tests := []struct {
		name    string
		plan    Plan
		wantErr bool
	}{
		{name: "default plan", plan: DefaultPlan()},
		{name: "empty", plan: Plan{Range: day}, wantErr: true},
		{name: "gap", plan: Plan{Range: day, Blocks: []Block{blk(0, 10, "A"), blk(11, 24, "B")}}, wantErr: true},
		{name: "overlap", plan: Plan{Range: day, Blocks: []Block{blk(0, 12, "A"), blk(11, 24, "B")}}, wantErr: true},
		{name: "short of end", plan: Plan{Range: day, Blocks: []Block{blk(0, 20, "A")}}, wantErr: true},
		{name: "late start", plan: Plan{Range: day, Blocks: []Block{blk(1, 24, "A")}}, wantErr: true},
		{name: "sliver", plan: Plan{Range: day, Blocks: []Block{blk(0, 0.25, "A"), blk(0.25, 24, "B")}}, wantErr: true},
		{name: "bad range", plan: Plan{Range: Range{Start: 5, End: 5}, Blocks: []Block{blk(5, 5, "A")}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.plan)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidPlan) {
				t.Errorf("expected ErrInvalidPlan, got %v", err)
			}
		})
	}
}

// TestInvariantsUnderRandomEdits drives long sequences of random edits and
// checks that every accepted edit yields a valid plan and every rejected one
// leaves the plan alone.
func TestInvariantsUnderRandomEdits(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	randomEdit := func(p Plan) Edit {
		n := len(p.Blocks)
		pos := func() float64 {
			return Snap(p.Range.Start+rng.Float64()*p.Range.Span(), DefaultSnap)
		}
		switch rng.IntN(6) {
		case 0:
			return ResizeBoundaryEdit{Index: rng.IntN(n+1) - 1, At: pos()}
		case 1:
			a, b := pos(), pos()
			return ResizeBlockEdit{Index: rng.IntN(n), Start: min(a, b), End: max(a, b)}
		case 2:
			return AppendCategoryEdit{Category: "X"}
		case 3:
			return SplitBlockEdit{Index: rng.IntN(n), Category: "Y"}
		case 4:
			return RemoveBlockEdit{Index: rng.IntN(n)}
		default:
			start := Snap(rng.Float64()*20, DefaultSnap)
			return RescaleRangeEdit{Range: Range{Start: start, End: start + Snap(rng.Float64()*12, DefaultSnap)}}
		}
	}

	p := DefaultPlan()
	accepted := 0
	for i := 0; i < 5000; i++ {
		e := randomEdit(p)
		before := p.Clone()
		res, err := Apply(p, e)
		if err != nil {
			assertBlocks(t, p.Blocks, before.Blocks)
			continue
		}
		if err := Validate(res.Plan); err != nil {
			t.Fatalf("step %d (%s) broke invariants: %v\nplan: %+v", i, e.Describe(), err, res.Plan)
		}
		p = res.Plan
		accepted++
	}
	if accepted == 0 {
		t.Fatal("no edit was ever accepted")
	}
}
