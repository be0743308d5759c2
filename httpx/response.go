package httpx

import (
	"bytes"
	"html/template"
	"net/http"
)

// ResponseBuffer holds a whole response until Flush, so a page whose
// template fails half way can still be answered with a clean error.
type ResponseBuffer struct {
	status int
	header http.Header
	body   bytes.Buffer
}

func NewResponseBuffer() *ResponseBuffer {
	return &ResponseBuffer{status: http.StatusOK, header: http.Header{}}
}

func (resp *ResponseBuffer) Header() http.Header {
	return resp.header
}

func (resp *ResponseBuffer) Write(body []byte) (int, error) {
	return resp.body.Write(body)
}

func (resp *ResponseBuffer) WriteHeader(statusCode int) {
	resp.status = statusCode
}

func (resp *ResponseBuffer) Flush(w http.ResponseWriter) error {
	header := w.Header()
	for key, value := range resp.header {
		header[key] = value
	}
	w.WriteHeader(resp.status)
	_, err := w.Write(resp.body.Bytes())
	return err
}

// Render executes tmpl into a buffer and sends it with the given status.
func Render(w http.ResponseWriter, tmpl *template.Template, status int, data any) {
	buf := NewResponseBuffer()
	buf.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteHeader(status)

	if err := tmpl.Execute(buf, data); err != nil {
		LogInternalError(w, "render."+tmpl.Name(), err)
		return
	}
	buf.Flush(w)
}
