package routes

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/mbolis/obwob/app"
	"github.com/mbolis/obwob/component"
	"github.com/mbolis/obwob/httpx"
	"github.com/mbolis/obwob/log"
	"github.com/mbolis/obwob/model"
	"github.com/mbolis/obwob/templates"
)

type dashboardView struct {
	OrgName        string
	CreateEventURL string
}

func Dashboard(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.Render(w, app.Set[templates.Dashboard], http.StatusOK, dashboardView{
			OrgName:        app.OrgName,
			CreateEventURL: EventCreatePath,
		})
	}
}

type eventCreateView struct {
	Action       string
	DashboardURL string
	Event        model.Event
	Notice       string
}

func EventCreatePage(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.Render(w, app.Set[templates.EventCreate], http.StatusOK, eventCreateView{
			Action:       EventCreatePath,
			DashboardURL: DashboardPath,
		})
	}
}

func CreateEvent(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event := model.Event{}
		err := render.Decode(r, &event)
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "could not read the event: %s", err)
			return
		}

		form := component.NewEventForm(app)
		form.SetEvent(event)

		status := http.StatusOK
		if err = form.Submit(r.Context()); err != nil {
			status = httpx.LogUpstream("api.create_event", err)
		}

		if httpx.WantsJSON(r) {
			render.Status(r, status)
			render.JSON(w, r, map[string]any{
				"ok":     err == nil,
				"notice": form.Notice(),
			})
			return
		}

		httpx.Render(w, app.Set[templates.EventCreate], status, eventCreateView{
			Action:       EventCreatePath,
			DashboardURL: DashboardPath,
			Event:        form.Event(),
			Notice:       form.Notice(),
		})
	}
}
