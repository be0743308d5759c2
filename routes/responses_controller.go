package routes

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/mbolis/obwob/app"
	"github.com/mbolis/obwob/component"
	"github.com/mbolis/obwob/httpx"
	"github.com/mbolis/obwob/log"
	"github.com/mbolis/obwob/model"
	"github.com/mbolis/obwob/templates"
)

// pathParam returns the URL parameter decoded exactly once. chi matches on
// RawPath when the request has one, so only then is the parameter still
// escaped.
func pathParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value
	}
	if unescaped, err := url.PathUnescape(value); err == nil {
		return unescaped
	}
	return value
}

type questionView struct {
	FragmentURL string
	Text        string
	Failed      bool
	Form        *responseView
}

type responseView struct {
	Action string
	Input  string
	Notice string
	Failed bool
}

func newResponseView(form *component.ResponseForm) *responseView {
	return &responseView{
		Action: responsePath(form.EventID(), form.QuestionID()),
		Input:  form.Input(),
		Notice: form.Notice(),
		Failed: form.Status() == component.Failed,
	}
}

// QuestionPage renders the placeholder; htmx then loads the question.
func QuestionPage(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := pathParam(r, "eventId")

		httpx.Render(w, app.Set[templates.Question], http.StatusOK, questionView{
			FragmentURL: questionFragmentPath(eventID),
			Text:        component.LoadingQuestionText,
		})
	}
}

func QuestionFragment(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := pathParam(r, "eventId")

		display := component.NewQuestionDisplay(app)
		err := display.Show(r.Context(), eventID)

		status := http.StatusOK
		if err != nil {
			status = httpx.LogUpstream("api.current_question", err)
		}

		if httpx.WantsJSON(r) {
			render.Status(r, status)
			render.JSON(w, r, map[string]any{
				"eventId":  eventID,
				"status":   display.Status().String(),
				"question": display.Question(),
			})
			return
		}

		view := questionView{
			FragmentURL: questionFragmentPath(eventID),
			Text:        display.Text(),
			Failed:      err != nil,
		}
		if q := display.Question(); err == nil && q.ID != "" {
			view.Form = newResponseView(component.NewResponseForm(app, eventID, string(q.ID)))
		}

		// htmx only swaps successful responses
		if httpx.IsHTMX(r) {
			status = http.StatusOK
		}
		httpx.Render(w, app.Set[templates.QuestionFragment], status, view)
	}
}

func ResponsePage(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := component.NewResponseForm(app, pathParam(r, "eventId"), pathParam(r, "questionId"))
		httpx.Render(w, app.Set[templates.ResponseForm], http.StatusOK, newResponseView(form))
	}
}

func SubmitResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := model.Response{}
		err := render.Decode(r, &response)
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "could not read the response: %s", err)
			return
		}

		form := component.NewResponseForm(app, pathParam(r, "eventId"), pathParam(r, "questionId"))
		form.SetInput(response.Text)

		status := http.StatusOK
		if err = form.Submit(r.Context()); err != nil {
			status = httpx.LogUpstream("api.submit_response", err)
		}

		if render.GetRequestContentType(r) == render.ContentTypeJSON {
			render.Status(r, status)
			render.JSON(w, r, map[string]any{
				"ok":     err == nil,
				"notice": form.Notice(),
			})
			return
		}

		httpx.Render(w, app.Set[templates.ResponseForm], status, newResponseView(form))
	}
}
