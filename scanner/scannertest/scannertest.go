// Package scannertest provides a scripted scanner.Capability.
package scannertest

import "context"

// Event is one synthetic scan: a payload, or an error when Err is set.
type Event struct {
	Payload string
	Err     error
}

func Payload(p string) Event { return Event{Payload: p} }
func Failure(err error) Event { return Event{Err: err} }

// Capability emits its events in order, then returns.
type Capability struct {
	Events []Event
}

func (c *Capability) StartScanning(ctx context.Context, onResult func(string), onError func(error)) error {
	for _, ev := range c.Events {
		if err := ctx.Err(); err != nil {
			return err
		}
		if ev.Err != nil {
			onError(ev.Err)
			continue
		}
		onResult(ev.Payload)
	}
	return nil
}
