package component

import (
	"context"
	"sync"

	"github.com/mbolis/obwob/model"
)

const (
	EventCreatedNotice = "Event created successfully!"
	EventFailedNotice  = "Failed to create event"
)

// EventForm is the organization's event creation form. Its fields are never
// reset, whatever the outcome.
type EventForm struct {
	creator EventCreator

	mu     sync.Mutex
	event  model.Event
	status Status
	notice string
	err    error
}

func NewEventForm(creator EventCreator) *EventForm {
	return &EventForm{creator: creator}
}

func (f *EventForm) SetEvent(event model.Event) {
	f.mu.Lock()
	f.event = event
	f.mu.Unlock()
}

func (f *EventForm) Event() model.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.event
}

func (f *EventForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	event := f.event
	f.status = Requesting
	f.notice = ""
	f.err = nil
	f.mu.Unlock()

	err := f.creator.CreateEvent(ctx, event)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.status = Failed
		f.notice = EventFailedNotice
		f.err = err
		return err
	}
	f.status = Succeeded
	f.notice = EventCreatedNotice
	return nil
}

func (f *EventForm) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *EventForm) Notice() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notice
}

func (f *EventForm) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}
