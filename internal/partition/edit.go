package partition

import "fmt"

// NoticeKind classifies informational outcomes of a successful edit.
type NoticeKind string

const (
	// NoticeBlocksPruned reports that a rescale dropped one or more blocks.
	NoticeBlocksPruned NoticeKind = "blocks_pruned"
)

// Notice is a non-fatal message attached to a successful edit.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Result is the outcome of a successful edit: the plan to adopt and any
// notices to surface.
type Result struct {
	Plan    Plan
	Notices []Notice
}

// Pruned reports whether the result carries NoticeBlocksPruned.
func (r Result) Pruned() bool {
	for _, n := range r.Notices {
		if n.Kind == NoticeBlocksPruned {
			return true
		}
	}
	return false
}

// Edit is a structural edit request. The set of implementations is closed;
// Apply handles each of them.
type Edit interface {
	edit()
	// Describe returns a short human-readable summary for logs.
	Describe() string
}

// ResizeBoundaryEdit moves the boundary after block Index to At.
type ResizeBoundaryEdit struct {
	Index int
	At    float64
}

// ResizeBlockEdit moves both edges of block Index.
type ResizeBlockEdit struct {
	Index      int
	Start, End float64
}

// AppendCategoryEdit appends a block consuming the rest of the range.
type AppendCategoryEdit struct {
	Category string
	Color    Color
}

// SplitBlockEdit halves block Index and labels the right half.
type SplitBlockEdit struct {
	Index    int
	Category string
	Color    Color
}

// RemoveBlockEdit deletes block Index.
type RemoveBlockEdit struct {
	Index int
}

// RescaleRangeEdit moves the plan to a new range.
type RescaleRangeEdit struct {
	Range Range
}

func (ResizeBoundaryEdit) edit() {}
func (ResizeBlockEdit) edit()    {}
func (AppendCategoryEdit) edit() {}
func (SplitBlockEdit) edit()     {}
func (RemoveBlockEdit) edit()    {}
func (RescaleRangeEdit) edit()   {}

func (e ResizeBoundaryEdit) Describe() string {
	return fmt.Sprintf("resize boundary %d to %s", e.Index, FormatHour(e.At))
}

func (e ResizeBlockEdit) Describe() string {
	return fmt.Sprintf("resize block %d to %s-%s", e.Index, FormatHour(e.Start), FormatHour(e.End))
}

func (e AppendCategoryEdit) Describe() string {
	return fmt.Sprintf("append %q", e.Category)
}

func (e SplitBlockEdit) Describe() string {
	return fmt.Sprintf("split block %d for %q", e.Index, e.Category)
}

func (e RemoveBlockEdit) Describe() string {
	return fmt.Sprintf("remove block %d", e.Index)
}

func (e RescaleRangeEdit) Describe() string {
	return "rescale to " + FormatRange(e.Range)
}

// Apply runs edit against p and returns the plan to adopt. On error p is
// untouched and the caller keeps its current state.
func Apply(p Plan, e Edit) (Result, error) {
	var (
		blocks []Block
		err    error
	)

	switch e := e.(type) {
	case ResizeBoundaryEdit:
		blocks, err = ResizeBoundary(p.Blocks, e.Index, e.At)
	case ResizeBlockEdit:
		blocks, err = ResizeBlock(p.Blocks, e.Index, e.Start, e.End)
	case AppendCategoryEdit:
		blocks, err = AppendCategory(p.Blocks, p.Range, e.Category, e.Color)
	case SplitBlockEdit:
		blocks, err = SplitBlock(p.Blocks, e.Index, e.Category, e.Color)
	case RemoveBlockEdit:
		blocks, err = RemoveBlock(p.Blocks, e.Index)
	case RescaleRangeEdit:
		return RescaleRange(p.Blocks, p.Range, e.Range)
	default:
		return Result{}, fmt.Errorf("%w: %T", ErrUnknownEdit, e)
	}
	if err != nil {
		return Result{}, err
	}
	return Result{Plan: Plan{Range: p.Range, Blocks: blocks}}, nil
}

// AddEdit returns the edit that adds category to p: an append when the last
// block leaves room before the range end, otherwise a split of
// blocks[index].
func AddEdit(p Plan, index int, category string, color Color) Edit {
	if n := len(p.Blocks); n == 0 || p.Range.End-p.Blocks[n-1].End > epsilon {
		return AppendCategoryEdit{Category: category, Color: color}
	}
	return SplitBlockEdit{Index: index, Category: category, Color: color}
}
