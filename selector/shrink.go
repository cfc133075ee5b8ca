package selector

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hupe1980/widening"
)

// ShrinkHandler is called when a selector keeps fewer candidates than it
// could have, that is fewer than min(n, k) for n inputs. kept is the number
// of survivors, want is min(n, k). A non-nil error aborts the selection.
type ShrinkHandler func(kept, want int) error

// ShrinkFail turns frontier shrinkage into an error wrapping ErrFrontierShrunk.
func ShrinkFail(kept, want int) error {
	return fmt.Errorf("%w: kept %d of %d", ErrFrontierShrunk, kept, want)
}

// ShrinkLog reports frontier shrinkage at warn level and carries on.
func ShrinkLog(logger *widening.Logger) ShrinkHandler {
	if logger == nil {
		logger = widening.NoopLogger()
	}
	return func(kept, want int) error {
		logger.LogAttrs(context.Background(), slog.LevelWarn, "frontier shrunk",
			slog.Int("kept", kept),
			slog.Int("want", want),
		)
		return nil
	}
}

// WithFillUp tops a shrunk bucket selection up to min(n, k) with the best
// candidates that lost their bucket. It buffers the input. A shrink handler,
// if any, only sees what is still missing afterwards, which can only happen
// with dedup.
func WithFillUp[C any]() BucketOption[C] {
	return func(o *bucketOptions[C]) {
		o.fillUp = true
	}
}
