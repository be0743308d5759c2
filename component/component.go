// Package component holds the page state of the front-ends. Handlers build a
// component, drive it with one operation and render what it exposes.
package component

import (
	"context"

	"github.com/mbolis/obwob/model"
)

type Status int

const (
	Idle Status = iota
	Requesting
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Requesting:
		return "requesting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "idle"
}

type QuestionSource interface {
	CurrentQuestion(ctx context.Context, eventID string) (model.Question, error)
}

type ResponseSink interface {
	SubmitResponse(ctx context.Context, eventID, questionID string, response model.Response) error
}

type EventCreator interface {
	CreateEvent(ctx context.Context, event model.Event) error
}
