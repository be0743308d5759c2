package main

import (
	"errors"
	"image"
	"net/http"
	"os"
	"time"

	"github.com/mbolis/obwob/api"
	"github.com/mbolis/obwob/app"
	"github.com/mbolis/obwob/config"
	"github.com/mbolis/obwob/log"
	"github.com/mbolis/obwob/metrics"
	"github.com/mbolis/obwob/routes"
	"github.com/mbolis/obwob/scanner"
	"github.com/mbolis/obwob/scanner/qrimage"
	"github.com/mbolis/obwob/templates"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	client, err := api.New(cfg.APIUrl, api.WithTimeout(cfg.APITimeout))
	if err != nil {
		log.Fatal("main.api:", err)
	}

	tmpl, err := templates.Load()
	if err != nil {
		log.Fatal("main.templates:", err)
	}

	metrics.Init()

	app := app.App{
		Backend: client,
		Set:     tmpl,
		Config:  cfg,
		Capability: func(frames ...image.Image) scanner.Capability {
			return qrimage.FromImages(frames...)
		},
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Infof("Listening on %s (backend %s)", cfg.Url(), cfg.APIUrl)
	return srv.ListenAndServe()
}
