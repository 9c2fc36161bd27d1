package partition

import "fmt"

// RescaleRange re-expresses blocks under next. Blocks that fall entirely
// outside next are dropped, the rest are clamped into it, and clamped blocks
// left shorter than MinDuration are dropped too. If anything was dropped the
// result carries NoticeBlocksPruned. When nothing survives, a single Default
// block spans next. Otherwise the first and last survivors are stretched to
// the range edges, which may enlarge them beyond their original share.
//
// prev is the range the blocks currently tile; it is only used for
// diagnostics in the notice.
func RescaleRange(blocks []Block, prev, next Range) (Result, error) {
	if err := ValidateRange(next); err != nil {
		return Result{}, err
	}

	survivors := make([]Block, 0, len(blocks))
	pruned := 0
	for _, b := range blocks {
		if b.End <= next.Start+epsilon || b.Start >= next.End-epsilon {
			pruned++
			continue
		}
		b.Start = max(b.Start, next.Start)
		b.End = min(b.End, next.End)
		if tooShort(b.Duration()) {
			pruned++
			continue
		}
		survivors = append(survivors, b)
	}

	res := Result{Plan: Plan{Range: next}}
	if pruned > 0 {
		res.Notices = append(res.Notices, Notice{
			Kind:    NoticeBlocksPruned,
			Message: fmt.Sprintf("%d block(s) removed: outside or too small for %s (was %s)", pruned, FormatRange(next), FormatRange(prev)),
		})
	}

	if len(survivors) == 0 {
		res.Plan.Blocks = []Block{defaultBlock(next)}
		return res, nil
	}

	survivors[0].Start = next.Start
	for i := 1; i < len(survivors); i++ {
		survivors[i-1].End = survivors[i].Start
	}
	survivors[len(survivors)-1].End = next.End
	res.Plan.Blocks = survivors
	return res, nil
}

// ValidateRange rejects ranges whose end does not exceed the start or whose
// span is shorter than MinRangeSpan.
func ValidateRange(r Range) error {
	if !isFinite(r.Start) || !isFinite(r.End) {
		return fmt.Errorf("%w: %w", ErrInvalidRange, errRangeNotFinite)
	}
	if r.End <= r.Start {
		return fmt.Errorf("%w: %w", ErrInvalidRange, errRangeReversed)
	}
	if r.Span() < MinRangeSpan-epsilon {
		return fmt.Errorf("%w: %w", ErrInvalidRange, errRangeTooShort)
	}
	return nil
}
