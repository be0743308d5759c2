package component

import (
	"context"
	"sync"

	"github.com/mbolis/obwob/model"
)

const (
	LoadingQuestionText = "Loading question..."
	NoQuestionText      = "No question is open right now."
)

type QuestionDisplay struct {
	source QuestionSource

	mu       sync.Mutex
	eventID  string
	loaded   bool
	gen      uint64
	status   Status
	question model.Question
	err      error
}

func NewQuestionDisplay(source QuestionSource) *QuestionDisplay {
	return &QuestionDisplay{source: source}
}

// NeedsRefresh reports whether Show would fetch for eventID.
func (d *QuestionDisplay) NeedsRefresh(eventID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.needsRefresh(eventID)
}

func (d *QuestionDisplay) needsRefresh(eventID string) bool {
	return !d.loaded || d.eventID != eventID
}

// Show displays the current question of eventID, fetching it only when the
// identifier differs from the one already loaded.
func (d *QuestionDisplay) Show(ctx context.Context, eventID string) error {
	d.mu.Lock()
	if !d.needsRefresh(eventID) {
		err := d.err
		d.mu.Unlock()
		return err
	}
	d.mu.Unlock()

	return d.fetch(ctx, eventID)
}

func (d *QuestionDisplay) fetch(ctx context.Context, eventID string) error {
	d.mu.Lock()
	if d.eventID != eventID {
		d.question = model.Question{}
	}
	d.gen++
	gen := d.gen
	d.eventID = eventID
	d.loaded = false
	d.status = Requesting
	d.err = nil
	d.mu.Unlock()

	q, err := d.source.CurrentQuestion(ctx, eventID)

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen {
		// superseded by a later fetch
		return err
	}
	if err != nil {
		d.status = Failed
		d.err = err
		return err
	}
	d.status = Succeeded
	d.loaded = true
	d.question = q
	return nil
}

func (d *QuestionDisplay) EventID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.eventID
}

func (d *QuestionDisplay) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

func (d *QuestionDisplay) Question() model.Question {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.question
}

func (d *QuestionDisplay) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Text is what the page shows: a placeholder until a fetch succeeded.
func (d *QuestionDisplay) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.status != Succeeded {
		return LoadingQuestionText
	}
	if d.question.Text == "" {
		return NoQuestionText
	}
	return d.question.Text
}
