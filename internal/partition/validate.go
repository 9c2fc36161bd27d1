package partition

import (
	"errors"
	"fmt"
)

// Validate checks that p's blocks tile its range: non-empty, starting at
// the range start, ending at the range end, contiguous, and each at least
// MinDuration long.
func Validate(p Plan) error {
	if err := ValidateRange(p.Range); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}
	if len(p.Blocks) == 0 {
		return fmt.Errorf("%w: no blocks", ErrInvalidPlan)
	}
	if first := p.Blocks[0]; !approxEqual(first.Start, p.Range.Start) {
		return fmt.Errorf("%w: first block starts at %g, range starts at %g", ErrInvalidPlan, first.Start, p.Range.Start)
	}
	if last := p.Blocks[len(p.Blocks)-1]; !approxEqual(last.End, p.Range.End) {
		return fmt.Errorf("%w: last block ends at %g, range ends at %g", ErrInvalidPlan, last.End, p.Range.End)
	}
	for i, b := range p.Blocks {
		if tooShort(b.Duration()) {
			return fmt.Errorf("%w: block %d %q spans %.2f", ErrInvalidPlan, i, b.Category, b.Duration())
		}
		if i > 0 && !approxEqual(p.Blocks[i-1].End, b.Start) {
			return fmt.Errorf("%w: gap or overlap between block %d and %d", ErrInvalidPlan, i-1, i)
		}
	}
	return nil
}

// Reason returns the message a caller shows for a rejected edit.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBelowMinimumDuration):
		return "Time blocks must be at least 30 minutes long"
	case errors.Is(err, errRangeReversed):
		return "End time must be greater than start time"
	case errors.Is(err, errRangeTooShort):
		return "Time range must be at least 1 hour"
	case errors.Is(err, ErrInvalidRange):
		return "Invalid time range"
	case errors.Is(err, ErrCannotRemoveLastBlock):
		return "Cannot remove the last remaining block"
	case errors.Is(err, ErrRangeFullyAllocated):
		return "The whole range is already allocated"
	case errors.Is(err, ErrEmptyCategory):
		return "Category name cannot be empty"
	case errors.Is(err, ErrIndexOutOfRange):
		return "No such block"
	default:
		return err.Error()
	}
}

// DefaultPlan returns the seed partition of a fresh day.
func DefaultPlan() Plan {
	return Plan{
		Range: DayRange,
		Blocks: []Block{
			{Start: 0, End: 4, Category: "Sleep", Color: "#2196f3"},
			{Start: 4, End: 8, Category: "Work", Color: "#4caf50"},
			{Start: 8, End: 12, Category: "Exercise", Color: "#ff9800"},
			{Start: 12, End: 16, Category: "Leisure", Color: "#9c27b0"},
			{Start: 16, End: 24, Category: "Family Time", Color: "#f44336"},
		},
	}
}

// SeedPlan returns the seed partition fitted to r.
func SeedPlan(r Range) (Plan, error) {
	seed := DefaultPlan()
	if r.Equal(seed.Range) {
		return seed, nil
	}
	res, err := RescaleRange(seed.Blocks, seed.Range, r)
	if err != nil {
		return Plan{}, err
	}
	return res.Plan, nil
}
