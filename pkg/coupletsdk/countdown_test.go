package coupletsdk

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRemainingRoundsUp(t *testing.T) {
	base := time.Unix(1_700_000_000, 0)
	require.Equal(t, 60*time.Minute, remaining(base.Add(time.Hour), base))
	require.Equal(t, time.Second, remaining(base.Add(200*time.Millisecond), base))
	require.Equal(t, 2*time.Second, remaining(base.Add(1500*time.Millisecond), base))
	require.Zero(t, remaining(base, base))
	require.Zero(t, remaining(base, base.Add(time.Minute)))
}

func TestFormatRemaining(t *testing.T) {
	require.Equal(t, "60:00", FormatRemaining(time.Hour))
	require.Equal(t, "4:05", FormatRemaining(4*time.Minute+5*time.Second))
	require.Equal(t, "0:00", FormatRemaining(-time.Second))
}

// steppingClock advances one second every time it is read.
type steppingClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *steppingClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.t
	c.t = c.t.Add(time.Second)
	return t
}

func TestCountdownRunsToZero(t *testing.T) {
	clk := &steppingClock{t: time.Unix(1_700_000_000, 0)}
	expires := clk.t.Add(3 * time.Second)

	ticks := countdown(context.Background(), expires, time.Millisecond, clk.now)

	var got []time.Duration
	for left := range ticks {
		got = append(got, left)
	}
	require.NotEmpty(t, got)
	require.Equal(t, time.Duration(0), got[len(got)-1])
	for i := 1; i < len(got); i++ {
		require.Less(t, got[i], got[i-1])
	}
}

func TestCountdownStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ticks := Countdown(ctx, time.Now().Add(time.Hour))

	first := <-ticks
	require.InDelta(t, float64(time.Hour), float64(first), float64(2*time.Second))

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ticks:
			return !ok
		default:
			return false
		}
	}, 3*time.Second, 10*time.Millisecond)
}

func TestCountdownAlreadyExpired(t *testing.T) {
	ticks := Countdown(context.Background(), time.Now().Add(-time.Minute))
	require.Equal(t, time.Duration(0), <-ticks)
	_, ok := <-ticks
	require.False(t, ok)
}
