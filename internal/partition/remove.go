package partition

import "fmt"

// RemoveBlock deletes blocks[index] and hands its span to the neighbors:
// the first block's span goes to the new first block, the last block's span
// to the new last block, and an interior block's span is split evenly
// between its left and right neighbors.
func RemoveBlock(blocks []Block, index int) ([]Block, error) {
	if index < 0 || index >= len(blocks) {
		return nil, fmt.Errorf("%w: block %d (have %d blocks)", ErrIndexOutOfRange, index, len(blocks))
	}
	if len(blocks) == 1 {
		return nil, ErrCannotRemoveLastBlock
	}

	removed := blocks[index]
	out := make([]Block, 0, len(blocks)-1)
	out = append(out, blocks[:index]...)
	out = append(out, blocks[index+1:]...)

	switch {
	case index == 0:
		out[0].Start = removed.Start
	case index == len(blocks)-1:
		out[len(out)-1].End = removed.End
	default:
		mid := removed.Start + removed.Duration()/2
		out[index-1].End = mid
		out[index].Start = mid
	}
	return out, nil
}
