// Package api is the client for the events backend. It knows three calls:
// event creation, current question lookup and response submission.
package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"

	"github.com/mbolis/obwob/log"
	"github.com/mbolis/obwob/metrics"
	"github.com/mbolis/obwob/model"
)

const (
	OpCreateEvent     = "create_event"
	OpCurrentQuestion = "current_question"
	OpSubmitResponse  = "submit_response"
)

const RequestIDHeader = "X-Request-Id"

type Client struct {
	base *url.URL
	http *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every call. Zero keeps calls unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "api.parse_base_url")
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.Errorf("api.parse_base_url: %q is not absolute", baseURL)
	}

	c := &Client{base: base, http: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CreateEvent posts a new event. Only the response status is consumed.
func (c *Client) CreateEvent(ctx context.Context, event model.Event) (err error) {
	defer observe(OpCreateEvent, time.Now(), &err)

	_, err = c.do(ctx, OpCreateEvent, http.MethodPost, "/api/events/", event)
	return
}

// CurrentQuestion fetches the question currently open for eventID.
func (c *Client) CurrentQuestion(ctx context.Context, eventID string) (q model.Question, err error) {
	defer observe(OpCurrentQuestion, time.Now(), &err)

	path := "/api/events/" + url.PathEscape(eventID) + "/current-question"
	body, err := c.do(ctx, OpCurrentQuestion, http.MethodGet, path, nil)
	if err != nil {
		return
	}

	if err = json.Unmarshal(body, &q); err != nil {
		err = &Error{Op: OpCurrentQuestion, Kind: KindDecode, Err: errors.Wrap(err, "decode question")}
	}
	return
}

// SubmitResponse posts the response for an event/question pair. The reply
// must be JSON (or empty), its fields are ignored.
func (c *Client) SubmitResponse(ctx context.Context, eventID, questionID string, response model.Response) (err error) {
	defer observe(OpSubmitResponse, time.Now(), &err)

	path := "/api/events/" + url.PathEscape(eventID) + "/questions/" + url.PathEscape(questionID) + "/response"
	body, err := c.do(ctx, OpSubmitResponse, http.MethodPost, path, response)
	if err != nil {
		return
	}

	if len(bytes.TrimSpace(body)) > 0 && !json.Valid(body) {
		err = &Error{Op: OpSubmitResponse, Kind: KindDecode, Err: errors.New("reply is not JSON")}
	}
	return
}

func (c *Client) do(ctx context.Context, op, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrap(err, op+".marshal")
		}
		reqBody = bytes.NewReader(raw)
	}

	endpoint := c.base.String() + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, errors.Wrap(err, op+".new_request")
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(RequestIDHeader, requestID(ctx))

	log.Debugf("%s: %s %s", op, method, endpoint)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindNetwork, Err: errors.WithStack(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindNetwork, Err: errors.Wrap(err, "read body")}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Op: op, Kind: KindStatus, StatusCode: resp.StatusCode}
	}
	return body, nil
}

func observe(op string, start time.Time, err *error) {
	metrics.APICallDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	outcome := "ok"
	if *err != nil {
		outcome = KindOf(*err).String()
		log.WithFields(log.Fields{"op": op, "kind": outcome}).Debug(*err)
	}
	metrics.APICallCounter.WithLabelValues(op, outcome).Inc()
}

// requestID reuses the inbound request ID so backend logs can be correlated.
func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	id, err := uuid.NewV4()
	if err != nil {
		return ""
	}
	return id.String()
}
