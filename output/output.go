// Package output renders the JSON envelope every command emits under
// --json: {ok, command, data, error, meta}.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"ordergate/pkg/clierr"
)

type Envelope struct {
	OK      bool           `json:"ok"`
	Command string         `json:"command"`
	Data    any            `json:"data,omitempty"`
	Error   *ErrorBody     `json:"error,omitempty"`
	Meta    map[string]any `json:"meta"`
}

type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retriable bool   `json:"retriable"`
}

func Success(command string, data any) Envelope {
	return Envelope{
		OK:      true,
		Command: command,
		Data:    data,
		Meta:    meta(),
	}
}

func Failure(command string, err error) Envelope {
	body := &ErrorBody{
		Code:    string(clierr.InternalError),
		Message: err.Error(),
	}
	var ce *clierr.Error
	if errors.As(err, &ce) {
		body.Code = string(ce.Code)
		body.Message = ce.Message
		body.Retriable = ce.Retriable
	}
	return Envelope{
		OK:      false,
		Command: command,
		Error:   body,
		Meta:    meta(),
	}
}

func meta() map[string]any {
	return map[string]any{
		"timestamp": time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// Write renders the envelope as indented JSON.
func (e Envelope) Write(w io.Writer) error {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
