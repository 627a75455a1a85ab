package coupletsdk

import (
	"context"
	"fmt"
	"time"
)

// Countdown emits the time left until expiresAt, rounded up to whole
// seconds, right away and then once a second. It sends a final zero and
// closes the channel at expiry, or closes early when ctx ends. Slow
// readers miss ticks rather than delay them.
func Countdown(ctx context.Context, expiresAt time.Time) <-chan time.Duration {
	return countdown(ctx, expiresAt, time.Second, time.Now)
}

func countdown(ctx context.Context, expiresAt time.Time, every time.Duration, now func() time.Time) <-chan time.Duration {
	out := make(chan time.Duration, 1)

	go func() {
		defer close(out)

		ticker := time.NewTicker(every)
		defer ticker.Stop()

		for {
			left := remaining(expiresAt, now())

			// Drop a stale unread value so the reader always sees the latest.
			select {
			case <-out:
			default:
			}
			out <- left

			if left == 0 {
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return out
}

// remaining rounds up so a code never reads 0:00 while still redeemable.
func remaining(expiresAt, now time.Time) time.Duration {
	left := expiresAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return (left + time.Second - 1).Truncate(time.Second)
}

// FormatRemaining renders d as m:ss for display.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
