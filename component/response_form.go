package component

import (
	"context"
	"sync"

	"github.com/mbolis/obwob/model"
)

const ThankYouNotice = "Thank you for submitting your response!"

type ResponseForm struct {
	sink       ResponseSink
	eventID    string
	questionID string

	mu     sync.Mutex
	input  string
	status Status
	notice string
	err    error
}

func NewResponseForm(sink ResponseSink, eventID, questionID string) *ResponseForm {
	return &ResponseForm{sink: sink, eventID: eventID, questionID: questionID}
}

func (f *ResponseForm) EventID() string    { return f.eventID }
func (f *ResponseForm) QuestionID() string { return f.questionID }

func (f *ResponseForm) SetInput(text string) {
	f.mu.Lock()
	f.input = text
	f.mu.Unlock()
}

func (f *ResponseForm) Input() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.input
}

// Submit sends the current input as is. Every call issues one request; an
// empty input is sent too. The input is cleared only on success.
func (f *ResponseForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	text := f.input
	f.status = Requesting
	f.notice = ""
	f.err = nil
	f.mu.Unlock()

	err := f.sink.SubmitResponse(ctx, f.eventID, f.questionID, model.Response{Text: text})

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.status = Failed
		f.err = err
		return err
	}
	f.status = Succeeded
	f.notice = ThankYouNotice
	f.input = ""
	return nil
}

func (f *ResponseForm) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *ResponseForm) Notice() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notice
}

func (f *ResponseForm) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}
