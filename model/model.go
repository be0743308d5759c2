package model

import (
	"bytes"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Event is the payload sent when an organization creates an event.
type Event struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	Date        string `json:"date,omitempty" form:"date"`
	Location    string `json:"location,omitempty" form:"location"`
}

// Question is the prompt currently open for an event.
// ID is only filled when the backend sends it.
type Question struct {
	ID   ID     `json:"id,omitempty"`
	Text string `json:"question"`
}

type Response struct {
	Text string `json:"response" form:"response"`
}

// ScanResult is the opaque payload decoded from a registration QR code.
type ScanResult string

// ID is a backend identifier. The backend may send it as a JSON string or
// as a number; numbers keep their decimal text.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.Wrap(err, "decode id")
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrapf(err, "decode id %s", data)
	}
	*id = ID(n.String())
	return nil
}
