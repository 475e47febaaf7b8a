package checker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fosscu/subdomain-checker/internal/model"
)

// fakeClient records calls and answers from a fixed table.
type fakeClient struct {
	mu      sync.Mutex
	calls   []string
	answers map[string]bool
	err     error
}

func (f *fakeClient) CheckAvailability(_ context.Context, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	if f.err != nil {
		return false, f.err
	}
	return f.answers[name], nil
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// gateClient blocks each call until released, so tests can observe the
// pending state.
type gateClient struct {
	started chan string
	release chan bool
}

func newGateClient() *gateClient {
	return &gateClient{started: make(chan string, 4), release: make(chan bool)}
}

func (g *gateClient) CheckAvailability(ctx context.Context, name string) (bool, error) {
	g.started <- name
	select {
	case v := <-g.release:
		return v, nil
	case <-ctx.Done():
		return false, &model.TransportError{Name: name, Err: ctx.Err()}
	}
}

func TestSubmitCheck_EmptyInputMakesNoCall(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", " ", "   ", "\t", "\n \t"} {
		client := &fakeClient{}
		c := New(context.Background(), client)
		c.OnTextChanged(text)

		err := c.SubmitCheck(context.Background())
		if !model.IsValidation(err) {
			t.Errorf("SubmitCheck(%q) error = %v, want validation error", text, err)
		}
		if client.callCount() != 0 {
			t.Errorf("SubmitCheck(%q) made %d calls, want 0", text, client.callCount())
		}

		st := c.Snapshot()
		if st.ErrorMessage != model.MsgEmptySubdomain {
			t.Errorf("error message = %q, want %q", st.ErrorMessage, model.MsgEmptySubdomain)
		}
		if st.Availability.Known() {
			t.Errorf("availability = %v, want unknown", st.Availability)
		}
		if st.IsPending {
			t.Error("pending after validation failure")
		}
	}
}

func TestSubmitCheck_SendsTrimmedName(t *testing.T) {
	t.Parallel()

	client := &fakeClient{answers: map[string]bool{"acme": true}}
	c := New(context.Background(), client)
	c.OnTextChanged("  acme \t")

	if err := c.SubmitCheck(context.Background()); err != nil {
		t.Fatalf("SubmitCheck: %v", err)
	}
	if len(client.calls) != 1 || client.calls[0] != "acme" {
		t.Fatalf("calls = %v, want [acme]", client.calls)
	}

	st := c.Snapshot()
	if st.Availability != model.AvailabilityFree {
		t.Errorf("availability = %v, want available", st.Availability)
	}
	if st.HasError() {
		t.Errorf("unexpected error message %q", st.ErrorMessage)
	}
	if st.QueryText != "  acme \t" {
		t.Errorf("query text = %q, want untouched input", st.QueryText)
	}
}

func TestSubmitCheck_Outcomes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		client    *fakeClient
		wantAvail model.Availability
		wantMsg   string
	}{
		{
			name:      "available",
			text:      "acme",
			client:    &fakeClient{answers: map[string]bool{"acme": true}},
			wantAvail: model.AvailabilityFree,
		},
		{
			name:      "taken",
			text:      "taken",
			client:    &fakeClient{answers: map[string]bool{"taken": false}},
			wantAvail: model.AvailabilityTaken,
		},
		{
			name:      "unreachable",
			text:      "acme",
			client:    &fakeClient{err: &model.TransportError{Name: "acme", Err: errors.New("connection refused")}},
			wantAvail: model.AvailabilityUnknown,
			wantMsg:   model.MsgCheckFailed,
		},
		{
			name:      "untyped failure",
			text:      "acme",
			client:    &fakeClient{err: errors.New("boom")},
			wantAvail: model.AvailabilityUnknown,
			wantMsg:   model.MsgCheckFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := New(context.Background(), tt.client)
			c.OnTextChanged(tt.text)

			err := c.SubmitCheck(context.Background())
			if tt.wantMsg != "" && !model.IsTransport(err) {
				t.Errorf("error = %v, want transport error", err)
			}
			if tt.wantMsg == "" && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			st := c.Snapshot()
			if st.IsPending {
				t.Error("pending after SubmitCheck returned")
			}
			if st.Availability != tt.wantAvail {
				t.Errorf("availability = %v, want %v", st.Availability, tt.wantAvail)
			}
			if st.ErrorMessage != tt.wantMsg {
				t.Errorf("error message = %q, want %q", st.ErrorMessage, tt.wantMsg)
			}
		})
	}
}

func TestSubmitCheck_PendingWhileInFlight(t *testing.T) {
	t.Parallel()

	gate := newGateClient()
	c := New(context.Background(), gate)
	c.OnTextChanged("taken")

	// Seed a previous result so clearing on dispatch is observable.
	c.mu.Lock()
	c.state.Availability = model.AvailabilityFree
	c.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- c.SubmitCheck(context.Background()) }()

	<-gate.started
	st := c.Snapshot()
	if !st.IsPending {
		t.Fatal("not pending while request in flight")
	}
	if st.Availability.Known() {
		t.Errorf("stale availability %v visible during pending check", st.Availability)
	}

	// Editing while pending does not affect the request.
	c.OnTextChanged("taken-and-more")

	gate.release <- false
	if err := <-done; err != nil {
		t.Fatalf("SubmitCheck: %v", err)
	}

	st = c.Snapshot()
	if st.IsPending {
		t.Error("still pending after resolution")
	}
	if st.Availability != model.AvailabilityTaken {
		t.Errorf("availability = %v, want taken", st.Availability)
	}
	if st.QueryText != "taken-and-more" {
		t.Errorf("query text = %q, want latest edit", st.QueryText)
	}
}

func TestOnTextChanged_ClearResetsResultAndError(t *testing.T) {
	t.Parallel()

	client := &fakeClient{answers: map[string]bool{"acme": true}}
	c := New(context.Background(), client)
	c.OnTextChanged("acme")
	if err := c.SubmitCheck(context.Background()); err != nil {
		t.Fatalf("SubmitCheck: %v", err)
	}

	for i := 0; i < 3; i++ {
		c.OnTextChanged("")
		st := c.Snapshot()
		if st.Availability.Known() || st.HasError() {
			t.Fatalf("clear #%d left state %+v", i+1, st)
		}
	}

	c.OnTextChanged("")
	_ = c.SubmitCheck(context.Background())
	c.OnTextChanged("   ")
	if st := c.Snapshot(); st.HasError() {
		t.Errorf("whitespace-only edit kept error %q", st.ErrorMessage)
	}
}

func TestOnTextChanged_NonEmptyKeepsResult(t *testing.T) {
	t.Parallel()

	client := &fakeClient{answers: map[string]bool{"acme": true}}
	c := New(context.Background(), client)
	c.OnTextChanged("acme")
	if err := c.SubmitCheck(context.Background()); err != nil {
		t.Fatalf("SubmitCheck: %v", err)
	}

	c.OnTextChanged("acme2")
	if st := c.Snapshot(); st.Availability != model.AvailabilityFree {
		t.Errorf("availability = %v, want result kept until next check", st.Availability)
	}
}

func TestResolve_ArrivalOrderLastWins(t *testing.T) {
	t.Parallel()

	c := New(context.Background(), &fakeClient{})
	c.OnTextChanged("first")
	t1, err := c.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	c.OnTextChanged("second")
	t2, err := c.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if t1.Generation == t2.Generation {
		t.Fatal("tickets share a generation")
	}

	// Second response arrives first, first response arrives last.
	if !c.Resolve(t2, true, nil) {
		t.Fatal("second response not applied")
	}
	if !c.Resolve(t1, false, nil) {
		t.Fatal("first response not applied")
	}

	if st := c.Snapshot(); st.Availability != model.AvailabilityTaken {
		t.Errorf("availability = %v, want last arrival (taken)", st.Availability)
	}
}

func TestResolve_LatestOnlyDropsStale(t *testing.T) {
	t.Parallel()

	c := New(context.Background(), &fakeClient{}, WithStalePolicy(ApplyLatestOnly))
	c.OnTextChanged("first")
	t1, _ := c.Begin()
	c.OnTextChanged("second")
	t2, _ := c.Begin()

	if c.Resolve(t1, false, nil) {
		t.Fatal("stale response applied")
	}
	if st := c.Snapshot(); !st.IsPending {
		t.Fatal("stale response cleared pending")
	}

	if !c.Resolve(t2, true, nil) {
		t.Fatal("latest response dropped")
	}
	st := c.Snapshot()
	if st.IsPending {
		t.Error("pending after latest response")
	}
	if st.Availability != model.AvailabilityFree {
		t.Errorf("availability = %v, want available", st.Availability)
	}
}

func TestDoubleSubmit_DispatchesTwoCalls(t *testing.T) {
	t.Parallel()

	gate := newGateClient()
	c := New(context.Background(), gate)
	c.OnTextChanged("acme")

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.SubmitCheck(context.Background())
		}()
	}

	for i := 0; i < 2; i++ {
		select {
		case <-gate.started:
		case <-time.After(2 * time.Second):
			t.Fatalf("only %d calls dispatched", i)
		}
	}
	gate.release <- true
	gate.release <- true
	wg.Wait()

	if st := c.Snapshot(); st.IsPending {
		t.Error("pending after both responses")
	}
}

func TestClose_LateResponseIsNoop(t *testing.T) {
	t.Parallel()

	c := New(context.Background(), &fakeClient{})
	c.OnTextChanged("acme")
	tk, err := c.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}

	c.Close()
	if c.Resolve(tk, true, nil) {
		t.Error("response applied after close")
	}
	st := c.Snapshot()
	if st.Availability.Known() {
		t.Errorf("availability = %v after close, want unknown", st.Availability)
	}

	c.OnTextChanged("other")
	if got := c.Snapshot().QueryText; got != "acme" {
		t.Errorf("query text = %q after close, want unchanged", got)
	}
	if _, err := c.Begin(); !errors.Is(err, model.ErrClosed) {
		t.Errorf("Begin after close error = %v, want ErrClosed", err)
	}
}

func TestClose_CancelsInFlightRequest(t *testing.T) {
	t.Parallel()

	gate := newGateClient()
	c := New(context.Background(), gate)
	c.OnTextChanged("acme")

	done := make(chan error, 1)
	go func() { done <- c.SubmitCheck(context.Background()) }()
	<-gate.started

	c.Close()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("SubmitCheck did not return after Close")
	}
}

func TestParentScopeCancelClosesController(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithCancel(context.Background())
	c := New(parent, &fakeClient{})
	cancel()

	if !c.Closed() {
		t.Error("controller open after parent cancel")
	}
}

func TestParseStalePolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    StalePolicy
		wantErr bool
	}{
		{in: "", want: ApplyInArrivalOrder},
		{in: "arrival", want: ApplyInArrivalOrder},
		{in: "Latest", want: ApplyLatestOnly},
		{in: " latest ", want: ApplyLatestOnly},
		{in: "newest", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseStalePolicy(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseStalePolicy(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseStalePolicy(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}
