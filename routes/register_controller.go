package routes

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	"github.com/go-chi/render"

	"github.com/mbolis/obwob/app"
	"github.com/mbolis/obwob/httpx"
	"github.com/mbolis/obwob/log"
	"github.com/mbolis/obwob/model"
	"github.com/mbolis/obwob/scanner"
	"github.com/mbolis/obwob/templates"
)

const noCodeHint = "No QR code was found, please try again."

type registerView struct {
	Action string
	Error  string
	Hint   string
}

func RegisterPage(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.Render(w, app.Set[templates.Register], http.StatusOK, registerView{Action: RegisterPath})
	}
}

// Scan decodes the uploaded frames and sends the visitor to the question
// page of the first event identifier found.
func Scan(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		frames, err := readFrames(r, app.MaxUploadBytes)
		if err != nil {
			log.Debugf("scan.read_frames: %s", err)
			renderScan(w, r, app, nil, err)
			return
		}

		var payloads []model.ScanResult
		s := scanner.New(app.Capability(frames...), func(p model.ScanResult) {
			payloads = append(payloads, p)
		})
		if err = s.Run(r.Context()); err != nil {
			httpx.LogInternalError(w, "scan.run", err)
			return
		}

		renderScan(w, r, app, payloads, s.Err())
	}
}

func renderScan(w http.ResponseWriter, r *http.Request, app app.App, payloads []model.ScanResult, scanErr error) {
	if httpx.WantsJSON(r) {
		if payloads == nil {
			payloads = []model.ScanResult{}
		}
		body := map[string]any{"payloads": payloads}
		if scanErr != nil {
			body["error"] = scanErr.Error()
		}
		if len(payloads) == 0 && scanErr != nil {
			render.Status(r, http.StatusUnprocessableEntity)
		}
		render.JSON(w, r, body)
		return
	}

	if len(payloads) > 0 {
		http.Redirect(w, r, questionPath(string(payloads[0])), http.StatusSeeOther)
		return
	}

	view := registerView{Action: RegisterPath}
	status := http.StatusOK
	if scanErr != nil {
		view.Error = scanErr.Error()
		status = http.StatusUnprocessableEntity
	} else {
		view.Hint = noCodeHint
	}
	httpx.Render(w, app.Set[templates.Register], status, view)
}

func readFrames(r *http.Request, maxBytes int64) ([]image.Image, error) {
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, fmt.Errorf("could not read the upload: %w", err)
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["frame"]
	if len(headers) == 0 {
		return nil, errors.New("no image was uploaded")
	}

	frames := make([]image.Image, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("could not open %s: %w", fh.Filename, err)
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s is not a readable image: %w", fh.Filename, err)
		}
		frames = append(frames, img)
	}
	return frames, nil
}
