package component

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mbolis/obwob/model"
)

type fakeSource struct {
	mu      sync.Mutex
	calls   []string
	answers map[string]model.Question
	err     error
	// block, when set, holds the call for that event until released
	block   map[string]chan struct{}
	started chan string
}

func (s *fakeSource) CurrentQuestion(ctx context.Context, eventID string) (model.Question, error) {
	s.mu.Lock()
	s.calls = append(s.calls, eventID)
	wait := s.block[eventID]
	s.mu.Unlock()

	if s.started != nil {
		s.started <- eventID
	}
	if wait != nil {
		<-wait
	}
	if s.err != nil {
		return model.Question{}, s.err
	}
	return s.answers[eventID], nil
}

func (s *fakeSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type fakeSink struct {
	calls []model.Response
	err   error
}

func (s *fakeSink) SubmitResponse(ctx context.Context, eventID, questionID string, response model.Response) error {
	s.calls = append(s.calls, response)
	return s.err
}

type fakeCreator struct {
	calls []model.Event
	err   error
}

func (c *fakeCreator) CreateEvent(ctx context.Context, event model.Event) error {
	c.calls = append(c.calls, event)
	return c.err
}

func TestQuestionDisplayShowsQuestion(t *testing.T) {
	src := &fakeSource{answers: map[string]model.Question{"evt-42": {Text: "How was the talk?"}}}
	d := NewQuestionDisplay(src)

	if d.Text() != LoadingQuestionText {
		t.Fatalf("expected placeholder before fetch, got %q", d.Text())
	}
	if err := d.Show(context.Background(), "evt-42"); err != nil {
		t.Fatalf("show: %v", err)
	}
	if d.Text() != "How was the talk?" {
		t.Fatalf("unexpected text %q", d.Text())
	}
	if d.Status() != Succeeded {
		t.Fatalf("expected succeeded, got %s", d.Status())
	}
}

func TestQuestionDisplayRefreshesOnlyOnIdentifierChange(t *testing.T) {
	src := &fakeSource{answers: map[string]model.Question{
		"evt-1": {Text: "one"},
		"evt-2": {Text: "two"},
	}}
	d := NewQuestionDisplay(src)
	ctx := context.Background()

	d.Show(ctx, "evt-1")
	d.Show(ctx, "evt-1")
	if src.callCount() != 1 {
		t.Fatalf("expected 1 fetch for unchanged identifier, got %d", src.callCount())
	}
	if d.NeedsRefresh("evt-1") {
		t.Fatal("expected no refresh for loaded identifier")
	}
	if !d.NeedsRefresh("evt-2") {
		t.Fatal("expected refresh for new identifier")
	}

	d.Show(ctx, "evt-2")
	if src.callCount() != 2 || d.Text() != "two" {
		t.Fatalf("expected refetch for new identifier, calls=%d text=%q", src.callCount(), d.Text())
	}
}

func TestQuestionDisplayFailure(t *testing.T) {
	boom := errors.New("boom")
	src := &fakeSource{err: boom}
	d := NewQuestionDisplay(src)

	err := d.Show(context.Background(), "evt-42")
	if !errors.Is(err, boom) {
		t.Fatalf("expected failure to be returned, got %v", err)
	}
	if d.Status() != Failed || !errors.Is(d.Err(), boom) {
		t.Fatalf("expected failed state, got %s %v", d.Status(), d.Err())
	}
	if d.Text() != LoadingQuestionText {
		t.Fatalf("expected placeholder after failure, got %q", d.Text())
	}
	if !d.NeedsRefresh("evt-42") {
		t.Fatal("expected a failed identifier to be fetchable again")
	}
}

func TestQuestionDisplayEmptyQuestion(t *testing.T) {
	src := &fakeSource{answers: map[string]model.Question{}}
	d := NewQuestionDisplay(src)

	d.Show(context.Background(), "evt-42")
	if d.Text() != NoQuestionText {
		t.Fatalf("unexpected text %q", d.Text())
	}
}

func TestQuestionDisplayDiscardsStaleResult(t *testing.T) {
	release := make(chan struct{})
	src := &fakeSource{
		answers: map[string]model.Question{"old": {Text: "old"}, "new": {Text: "new"}},
		block:   map[string]chan struct{}{"old": release},
		started: make(chan string, 2),
	}
	d := NewQuestionDisplay(src)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		d.Show(ctx, "old")
		close(done)
	}()
	<-src.started

	d.Show(ctx, "new")
	<-src.started
	close(release)
	<-done

	if d.Text() != "new" || d.EventID() != "new" {
		t.Fatalf("expected late result to be discarded, got %q for %q", d.Text(), d.EventID())
	}
}

func TestResponseFormSubmit(t *testing.T) {
	sink := &fakeSink{}
	f := NewResponseForm(sink, "evt-42", "q-7")
	f.SetInput("Great session!")

	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(sink.calls) != 1 || sink.calls[0].Text != "Great session!" {
		t.Fatalf("unexpected calls %+v", sink.calls)
	}
	if f.Input() != "" {
		t.Fatalf("expected input to be cleared, got %q", f.Input())
	}
	if f.Notice() != ThankYouNotice {
		t.Fatalf("unexpected notice %q", f.Notice())
	}
}

func TestResponseFormSubmitsEmptyInput(t *testing.T) {
	sink := &fakeSink{}
	f := NewResponseForm(sink, "evt-42", "q-7")

	f.Submit(context.Background())
	if len(sink.calls) != 1 || sink.calls[0].Text != "" {
		t.Fatalf("expected one empty submission, got %+v", sink.calls)
	}
}

func TestResponseFormRepeatedSubmitsAreNotDeduplicated(t *testing.T) {
	sink := &fakeSink{}
	f := NewResponseForm(sink, "evt-42", "q-7")

	f.SetInput("a")
	f.Submit(context.Background())
	f.SetInput("a")
	f.Submit(context.Background())
	if len(sink.calls) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(sink.calls))
	}
}

// gateSink holds every submission until release is closed.
type gateSink struct {
	mu      sync.Mutex
	calls   []model.Response
	started chan struct{}
	release chan struct{}
}

func (s *gateSink) SubmitResponse(ctx context.Context, eventID, questionID string, response model.Response) error {
	s.mu.Lock()
	s.calls = append(s.calls, response)
	s.mu.Unlock()

	s.started <- struct{}{}
	<-s.release
	return nil
}

func TestResponseFormConcurrentSubmitsAreNotDeduplicated(t *testing.T) {
	sink := &gateSink{started: make(chan struct{}, 2), release: make(chan struct{})}
	f := NewResponseForm(sink, "evt-42", "q-7")
	f.SetInput("Great session!")

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- f.Submit(context.Background())
		}()
	}

	// both requests are in flight before either one completes
	<-sink.started
	<-sink.started
	close(sink.release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.calls) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(sink.calls))
	}
	for _, call := range sink.calls {
		if call.Text != "Great session!" {
			t.Fatalf("unexpected submission %+v", call)
		}
	}
	if f.Notice() != ThankYouNotice {
		t.Fatalf("unexpected notice %q", f.Notice())
	}
}

func TestResponseFormFailureKeepsInput(t *testing.T) {
	boom := errors.New("boom")
	f := NewResponseForm(&fakeSink{err: boom}, "evt-42", "q-7")
	f.SetInput("keep me")

	if err := f.Submit(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected failure, got %v", err)
	}
	if f.Input() != "keep me" {
		t.Fatalf("expected input to be kept, got %q", f.Input())
	}
	if f.Notice() != "" || f.Status() != Failed {
		t.Fatalf("unexpected state %s %q", f.Status(), f.Notice())
	}
}

func TestEventFormFailureKeepsFields(t *testing.T) {
	creator := &fakeCreator{err: errors.New("500")}
	f := NewEventForm(creator)
	f.SetEvent(model.Event{Name: "Meetup"})

	if err := f.Submit(context.Background()); err == nil {
		t.Fatal("expected failure")
	}
	if f.Notice() != EventFailedNotice {
		t.Fatalf("unexpected notice %q", f.Notice())
	}
	if f.Event() != (model.Event{Name: "Meetup"}) {
		t.Fatalf("expected fields unchanged, got %+v", f.Event())
	}
}

func TestEventFormSuccess(t *testing.T) {
	creator := &fakeCreator{}
	f := NewEventForm(creator)
	f.SetEvent(model.Event{Name: "Meetup", Description: "Monthly"})

	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if f.Notice() != EventCreatedNotice || f.Status() != Succeeded {
		t.Fatalf("unexpected state %s %q", f.Status(), f.Notice())
	}
	if len(creator.calls) != 1 || creator.calls[0].Name != "Meetup" {
		t.Fatalf("unexpected calls %+v", creator.calls)
	}
}
