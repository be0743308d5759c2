package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/mbolis/obwob/app"
	"github.com/mbolis/obwob/httpx"
	"github.com/mbolis/obwob/log"
	"github.com/mbolis/obwob/metrics"
	"github.com/mbolis/obwob/routes/middlewares"
)

// Wire builds the handler serving both front-ends. Every page receives its
// identifiers from the URL, nothing is read from ambient state.
func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.RequestID, middleware.RealIP, middlewares.RequestLogger, middlewares.Metrics, middleware.Recoverer)

	root.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]any{"status": "ok"})
	})
	root.Handle("/metrics", metrics.Handler())

	// set before mounting so sub-routers inherit it
	root.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.LogStatus(w, http.StatusNotFound, log.DebugLevel, "route.not_found: "+r.URL.Path)
	})

	root.Mount("/org", orgRouter(app))
	root.Mount("/", responsesRouter(app))

	return root
}

func orgRouter(app app.App) http.Handler {
	org := chi.NewRouter()

	org.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
	})
	org.Get("/dashboard", Dashboard(app))
	org.Get("/event-create", EventCreatePage(app))
	org.Post("/event-create", CreateEvent(app))

	return org
}

func responsesRouter(app app.App) http.Handler {
	responses := chi.NewRouter()

	responses.Get("/events/{eventId}", QuestionPage(app))
	responses.Get("/events/{eventId}/question", QuestionFragment(app))
	responses.Get("/events/{eventId}/questions/{questionId}", ResponsePage(app))
	responses.Post("/events/{eventId}/questions/{questionId}/response", SubmitResponse(app))

	responses.Get("/register", RegisterPage(app))
	responses.With(middlewares.LimitBody(app.MaxUploadBytes)).
		Post("/register", Scan(app))

	responses.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, RegisterPath, http.StatusSeeOther)
	})

	return responses
}
