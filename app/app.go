package app

import (
	"image"

	"github.com/mbolis/obwob/component"
	"github.com/mbolis/obwob/config"
	"github.com/mbolis/obwob/scanner"
	"github.com/mbolis/obwob/templates"
)

// Backend is everything the pages need from the events API.
type Backend interface {
	component.QuestionSource
	component.ResponseSink
	component.EventCreator
}

// CapabilityFunc builds the decode capability for the uploaded frames.
type CapabilityFunc func(frames ...image.Image) scanner.Capability

type App struct {
	Backend
	templates.Set
	config.Config
	Capability CapabilityFunc
}
