package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestReadSSEFrames(t *testing.T) {
	in := strings.Join([]string{
		": heartbeat",
		"event: message",
		`data: {"movieId":"1"}`,
		"",
		"data: line-one",
		"data: line-two",
		"",
		"event: ignored-without-data",
		"",
		`data: {"movieId":"2"}`,
	}, "\n")

	type frame struct{ event, data string }
	var got []frame
	err := readSSE(strings.NewReader(in), func(event, data string) error {
		got = append(got, frame{event, data})
		return nil
	})
	if err != nil {
		t.Fatalf("readSSE: %v", err)
	}
	want := []frame{
		{"message", `{"movieId":"1"}`},
		{"", "line-one\nline-two"},
		{"", `{"movieId":"2"}`},
	}
	if len(got) != len(want) {
		t.Fatalf("frames: want=%d got=%d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frame %d: want=%v got=%v", i, want[i], got[i])
		}
	}
}

func TestReadSSEKeepsValueWhitespace(t *testing.T) {
	in := "data:  indented \ndata:tight\n\nevent:  named\ndata: tail"
	var events, data []string
	err := readSSE(strings.NewReader(in), func(event, d string) error {
		events = append(events, event)
		data = append(data, d)
		return nil
	})
	if err != nil {
		t.Fatalf("readSSE: %v", err)
	}
	if len(data) != 2 {
		t.Fatalf("frames: want=2 got=%d (%q)", len(data), data)
	}
	if want := " indented \ntight"; data[0] != want {
		t.Fatalf("data: want=%q got=%q", want, data[0])
	}
	if events[1] != " named" || data[1] != "tail" {
		t.Fatalf("unterminated frame: want=(%q, %q) got=(%q, %q)", " named", "tail", events[1], data[1])
	}
}

func TestReadSSEStopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	err := readSSE(strings.NewReader("data: a\n\ndata: b\n\n"), func(string, string) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Fatalf("want stop after first frame, got err=%v calls=%d", err, calls)
	}
}

func TestStreamDeliversEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "text/event-stream" {
			t.Errorf("Accept: want=text/event-stream got=%q", r.Header.Get("Accept"))
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for i := 1; i <= 3; i++ {
			fmt.Fprintf(w, "event: message\ndata: {\"n\":%d}\n\n", i)
		}
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL + "/stream", Retry: RetryPolicy{MaxAttempts: 1}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var data []string
	err = c.Stream(context.Background(), Request{}, func(_ string, d string) error {
		data = append(data, d)
		return nil
	})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	if len(data) != 3 || data[2] != `{"n":3}` {
		t.Fatalf("events: got=%v", data)
	}
}

func TestStreamClassifiesFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "stream unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL, Retry: RetryPolicy{MaxAttempts: 1}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = c.Stream(context.Background(), Request{}, func(string, string) error { return nil })
	ue, ok := AsError(err)
	if !ok || ue.Kind != KindServer || ue.StatusCode != http.StatusBadGateway {
		t.Fatalf("want server_error 502, got %v", err)
	}
	if ue.Message != "stream unavailable" {
		t.Fatalf("message: want=%q got=%q", "stream unavailable", ue.Message)
	}
}
