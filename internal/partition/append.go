package partition

import (
	"fmt"
	"strings"
)

// AppendCategory adds a block after the current last block that consumes
// the rest of the range. It fails with ErrRangeFullyAllocated when the last
// block already ends at r.End.
func AppendCategory(blocks []Block, r Range, category string, color Color) ([]Block, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, ErrEmptyCategory
	}

	start := r.Start
	if n := len(blocks); n > 0 {
		start = blocks[n-1].End
	}
	remaining := r.End - start
	if remaining <= epsilon {
		return nil, fmt.Errorf("%w: last block ends at %.2f", ErrRangeFullyAllocated, start)
	}
	if tooShort(remaining) {
		return nil, fmt.Errorf("%w: only %.2f left in range", ErrBelowMinimumDuration, remaining)
	}

	out := make([]Block, 0, len(blocks)+1)
	out = append(out, blocks...)
	out = append(out, Block{Start: start, End: r.End, Category: category, Color: color})
	return out, nil
}

// SplitBlock halves blocks[index] and gives the right half to a new block.
// It lets a category be added to a day that is already fully allocated.
func SplitBlock(blocks []Block, index int, category string, color Color) ([]Block, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, ErrEmptyCategory
	}
	if index < 0 || index >= len(blocks) {
		return nil, fmt.Errorf("%w: block %d (have %d blocks)", ErrIndexOutOfRange, index, len(blocks))
	}

	target := blocks[index]
	half := target.Duration() / 2
	if tooShort(half) {
		return nil, fmt.Errorf("%w: %q is too short to split (%.2f)", ErrBelowMinimumDuration, target.Category, target.Duration())
	}
	mid := target.Start + half

	out := make([]Block, 0, len(blocks)+1)
	out = append(out, blocks[:index]...)
	out = append(out,
		Block{Start: target.Start, End: mid, Category: target.Category, Color: target.Color},
		Block{Start: mid, End: target.End, Category: category, Color: color},
	)
	out = append(out, blocks[index+1:]...)
	return out, nil
}
