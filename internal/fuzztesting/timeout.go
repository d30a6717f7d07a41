// Package fuzztesting contains helpers for the fuzz and property tests of the
// lexers and tape builders: a deadline for replaying fuzzer findings, and
// generators of random well-formed and malformed documents.
package fuzztesting

import (
	"context"
	"testing"
	"time"
)

// RunWithFuzzerTimeout runs fn a few times, failing t if that takes longer
// than a fuzzer would allow a single input to take.
func RunWithFuzzerTimeout(t *testing.T, fn func(ctx context.Context)) {
	// Fuzz testing complains if 100 iterations takes longer than 60 seconds.
	// We're only running 3 iterations, so these tests aren't too slow.
	// So we can use a much tighter deadline.
	allowedDuration := 2 * time.Second
	if isRace {
		// The race detector has been observed to make it take ~8x as long.
		allowedDuration = 20 * time.Second
		t.Logf("allowing %v since race detector is enabled", allowedDuration)
	}
	ctx, cancel := context.WithTimeout(context.Background(), allowedDuration)
	defer func() {
		if ctx.Err() != nil {
			t.Errorf("test took too long to execute (> %v)", allowedDuration)
		}
		cancel()
	}()
	for range 3 {
		if ctx.Err() != nil {
			break
		}
		fn(ctx)
	}
}
