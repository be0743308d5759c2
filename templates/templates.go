// Package templates holds the HTML pages of both front-ends.
package templates

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed *.html
var files embed.FS

const (
	Dashboard        = "dashboard.html"
	EventCreate      = "event_create.html"
	Question         = "question.html"
	QuestionFragment = "question_fragment.html"
	ResponseForm     = "response_form.html"
	Register         = "register.html"
)

var pages = []string{Dashboard, EventCreate, Question, ResponseForm, Register}

var fragments = []string{QuestionFragment}

// Set maps a page name to its parsed template.
type Set map[string]*template.Template

func Load() (Set, error) {
	set := Set{}
	for _, page := range pages {
		t, err := template.New("layout.html").ParseFS(files, "layout.html", "response_fields.html", page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		set[page] = t
	}
	for _, fragment := range fragments {
		t, err := template.New(fragment).ParseFS(files, fragment, "response_fields.html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", fragment, err)
		}
		set[fragment] = t
	}
	return set, nil
}

func MustLoad() Set {
	set, err := Load()
	if err != nil {
		panic(err)
	}
	return set
}
