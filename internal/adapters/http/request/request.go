// Package request decodes JSON request bodies.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const maxBodyBytes = 1 << 20

var ErrEmptyBody = errors.New("request body is empty")

type RequestDecoder interface {
	Decode(r *http.Request, v any) error
}

type jsonDecoder struct{}

func NewJSONDecoder() RequestDecoder {
	return jsonDecoder{}
}

func (jsonDecoder) Decode(r *http.Request, v any) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}

		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return fmt.Errorf("invalid value for field %q", typeErr.Field)
		}

		return fmt.Errorf("malformed request body: %w", err)
	}

	return nil
}
