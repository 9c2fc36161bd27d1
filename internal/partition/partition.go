// Package partition maintains a contiguous partition of a bounded range into
// labeled blocks and applies structural edits to it.
//
// Every operation is a pure function: it receives the current blocks (and
// range where needed) and returns a freshly allocated result or an error. The
// input slice is never modified, so a rejected edit leaves the caller's state
// exactly as it was.
package partition

import (
	"errors"
	"fmt"
	"math"
)

// MinDuration is the smallest allowed block length, in range units (hours).
const MinDuration = 0.5

// DefaultSnap is the granularity drag input is quantized to.
const DefaultSnap = 0.5

// MinRangeSpan is the smallest span a range may be rescaled to.
const MinRangeSpan = 1.0

// DefaultCategory labels the block synthesized when nothing else survives.
const DefaultCategory = "Default"

// DefaultColor is the color of the synthesized default block.
const DefaultColor Color = "#9e9e9e"

// epsilon absorbs float drift from repeated halving and clamping.
const epsilon = 1e-9

// Engine errors. Details are attached with fmt.Errorf("%w: ...").
var (
	ErrInvalidRange          = errors.New("invalid range")
	ErrBelowMinimumDuration  = errors.New("block below minimum duration")
	ErrCannotRemoveLastBlock = errors.New("cannot remove last remaining block")
	ErrRangeFullyAllocated   = errors.New("range already fully allocated")
	ErrIndexOutOfRange       = errors.New("block index out of range")
	ErrEmptyCategory         = errors.New("category cannot be empty")
	ErrUnknownEdit           = errors.New("unknown edit")
	ErrInvalidPlan           = errors.New("invalid plan")
)

// Causes wrapped under ErrInvalidRange.
var (
	errRangeNotFinite = errors.New("bounds must be finite")
	errRangeReversed  = errors.New("end must exceed start")
	errRangeTooShort  = fmt.Errorf("range must span at least %g unit", MinRangeSpan)
)

// Color is an opaque attribute attached to a block. The engine never
// interprets it.
type Color string

// Range is the total span being partitioned.
type Range struct {
	Start float64 `toml:"start"`
	End   float64 `toml:"end"`
}

// DayRange is the default range: one day in hours.
var DayRange = Range{Start: 0, End: 24}

// Span returns the length of the range.
func (r Range) Span() float64 {
	return r.End - r.Start
}

// Equal reports whether two ranges have the same bounds within tolerance.
func (r Range) Equal(o Range) bool {
	return approxEqual(r.Start, o.Start) && approxEqual(r.End, o.End)
}

// Block is a labeled, colored segment of the range.
type Block struct {
	Start    float64 `toml:"start"`
	End      float64 `toml:"end"`
	Category string  `toml:"category"`
	Color    Color   `toml:"color"`
}

// Duration returns the length of the block.
func (b Block) Duration() float64 {
	return b.End - b.Start
}

// Plan is the application state the engine transforms: a range and the
// blocks tiling it.
type Plan struct {
	Range  Range   `toml:"range"`
	Blocks []Block `toml:"blocks"`
}

// Clone returns a copy of the plan that shares no memory with p.
func (p Plan) Clone() Plan {
	return Plan{Range: p.Range, Blocks: cloneBlocks(p.Blocks)}
}

// Categories returns the distinct block categories in block order.
// This is the set of names the task registry offers as options.
func Categories(blocks []Block) []string {
	seen := make(map[string]bool, len(blocks))
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if seen[b.Category] {
			continue
		}
		seen[b.Category] = true
		out = append(out, b.Category)
	}
	return out
}

// Snap rounds v to the nearest multiple of step. A non-positive step
// returns v unchanged.
func Snap(v, step float64) float64 {
	if step <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return math.Round(v/step) * step
}

func cloneBlocks(blocks []Block) []Block {
	if blocks == nil {
		return nil
	}
	out := make([]Block, len(blocks))
	copy(out, blocks)
	return out
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}

// tooShort reports whether a span of length d violates MinDuration.
func tooShort(d float64) bool {
	return d < MinDuration-epsilon
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func defaultBlock(r Range) Block {
	return Block{Start: r.Start, End: r.End, Category: DefaultCategory, Color: DefaultColor}
}
