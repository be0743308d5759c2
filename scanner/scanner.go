// Package scanner forwards registration QR payloads decoded by an external
// capability to the caller.
package scanner

import (
	"context"
	"sync"

	"github.com/mbolis/obwob/log"
	"github.com/mbolis/obwob/metrics"
	"github.com/mbolis/obwob/model"
)

// Capability runs a decode loop until ctx is done or its input ends. It calls
// onResult with an empty payload when a frame held no code.
type Capability interface {
	StartScanning(ctx context.Context, onResult func(payload string), onError func(err error)) error
}

type Scanner struct {
	capability     Capability
	onScanComplete func(model.ScanResult)

	mu  sync.Mutex
	err error
}

func New(capability Capability, onScanComplete func(model.ScanResult)) *Scanner {
	return &Scanner{capability: capability, onScanComplete: onScanComplete}
}

// Run blocks while the capability scans.
func (s *Scanner) Run(ctx context.Context) error {
	return s.capability.StartScanning(ctx, s.handleScan, s.handleError)
}

func (s *Scanner) handleScan(payload string) {
	if payload == "" {
		metrics.ScanCounter.WithLabelValues("empty").Inc()
		return
	}
	metrics.ScanCounter.WithLabelValues("decoded").Inc()
	s.onScanComplete(model.ScanResult(payload))
}

func (s *Scanner) handleError(err error) {
	metrics.ScanCounter.WithLabelValues("error").Inc()
	log.Debugf("scanner.decode: %s", err)

	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Err is the last decode error, kept for display.
func (s *Scanner) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
