package partition

import "fmt"

// ResizeBoundary moves the boundary shared by blocks[index] and
// blocks[index+1] to at. The move is rejected with ErrBelowMinimumDuration
// if either neighbor would become shorter than MinDuration.
//
// Callers that take drag input should Snap the value first so that moves
// quantize consistently.
func ResizeBoundary(blocks []Block, index int, at float64) ([]Block, error) {
	if index < 0 || index >= len(blocks)-1 {
		return nil, fmt.Errorf("%w: boundary %d (have %d blocks)", ErrIndexOutOfRange, index, len(blocks))
	}
	if err := checkBoundary(blocks[index], blocks[index+1], at); err != nil {
		return nil, err
	}

	out := cloneBlocks(blocks)
	out[index].End = at
	out[index+1].Start = at
	return out, nil
}

// ResizeBlock moves both edges of blocks[index] at once, adjusting the
// neighbors on each side. The outer edges of the first and last block are
// pinned to the range and cannot move. Both moves are validated before
// either is applied.
func ResizeBlock(blocks []Block, index int, start, end float64) ([]Block, error) {
	if index < 0 || index >= len(blocks) {
		return nil, fmt.Errorf("%w: block %d (have %d blocks)", ErrIndexOutOfRange, index, len(blocks))
	}
	last := len(blocks) - 1
	if index == 0 {
		start = blocks[0].Start
	}
	if index == last {
		end = blocks[last].End
	}
	if !isFinite(start) || !isFinite(end) || tooShort(end-start) {
		return nil, fmt.Errorf("%w: %q would span %.2f-%.2f", ErrBelowMinimumDuration, blocks[index].Category, start, end)
	}

	moveStart := index > 0 && !approxEqual(start, blocks[index].Start)
	moveEnd := index < last && !approxEqual(end, blocks[index].End)

	if moveStart && tooShort(start-blocks[index-1].Start) {
		return nil, fmt.Errorf("%w: %q would shrink to %.2f", ErrBelowMinimumDuration, blocks[index-1].Category, start-blocks[index-1].Start)
	}
	if moveEnd && tooShort(blocks[index+1].End-end) {
		return nil, fmt.Errorf("%w: %q would shrink to %.2f", ErrBelowMinimumDuration, blocks[index+1].Category, blocks[index+1].End-end)
	}

	out := cloneBlocks(blocks)
	if moveStart {
		out[index-1].End = start
		out[index].Start = start
	}
	if moveEnd {
		out[index].End = end
		out[index+1].Start = end
	}
	return out, nil
}

func checkBoundary(left, right Block, at float64) error {
	if !isFinite(at) {
		return fmt.Errorf("%w: boundary %v is not a finite time", ErrBelowMinimumDuration, at)
	}
	if d := at - left.Start; tooShort(d) {
		return fmt.Errorf("%w: %q would shrink to %.2f", ErrBelowMinimumDuration, left.Category, d)
	}
	if d := right.End - at; tooShort(d) {
		return fmt.Errorf("%w: %q would shrink to %.2f", ErrBelowMinimumDuration, right.Category, d)
	}
	return nil
}
