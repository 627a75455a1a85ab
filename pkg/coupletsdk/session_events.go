package coupletsdk

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Subscribe opens the realtime event stream. The returned channel is closed
// when ctx is cancelled or the server ends the stream. Connection and
// heartbeat frames are not delivered.
func (s *Session) Subscribe(ctx context.Context) (<-chan Event, error) {
	token, err := s.validToken()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.client.url("/v1/events"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "text/event-stream")

	// The stream outlives any per-request timeout.
	stream := *s.client.HTTPClient
	stream.Timeout = 0

	resp, err := stream.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open event stream: %w", ErrRemote, err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return nil, parseErrorResponse(resp, body)
	}

	out := make(chan Event, 16)
	go func() {
		defer close(out)
		defer resp.Body.Close()
		readEvents(ctx, resp.Body, out)
	}()
	return out, nil
}

// readEvents parses text/event-stream frames whose data line is a JSON
// Event.
func readEvents(ctx context.Context, r io.Reader, out chan<- Event) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)

	var data strings.Builder
	for sc.Scan() {
		line := sc.Text()
		switch {
		case line == "":
			if data.Len() == 0 {
				continue
			}
			var e Event
			err := json.Unmarshal([]byte(data.String()), &e)
			data.Reset()
			if err != nil || e.Type == eventConnected || e.Type == eventHeartbeat {
				continue
			}
			select {
			case out <- e:
			case <-ctx.Done():
				return
			}
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
	}
}
