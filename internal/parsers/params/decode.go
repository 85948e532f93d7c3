// Package params decodes raw verity and integrity parameter records
// populated by the engine into owned, validated domain values.
package params

import (
	"fmt"
	"unicode/utf8"

	"github.com/deploymenttheory/go-cryptstatus/internal/types"
)

// mandatoryText copies an engine-owned text field into an owned string. A
// null field or invalid encoding is a decode failure.
func mandatoryText(field string, b []byte) (string, error) {
	if b == nil {
		return "", &types.DecodeError{Field: field, Reason: "unexpected null in mandatory field"}
	}
	if !utf8.Valid(b) {
		return "", &types.DecodeError{Field: field, Reason: "text is not valid UTF-8"}
	}
	return string(b), nil
}

// optionalText copies an engine-owned text field into an owned string, or
// reports absence for a null field. Invalid encoding is still a decode
// failure: absence and malformed text are different conditions.
func optionalText(field string, b []byte) (*string, error) {
	if b == nil {
		return nil, nil
	}
	if !utf8.Valid(b) {
		return nil, &types.DecodeError{Field: field, Reason: "text is not valid UTF-8"}
	}
	s := string(b)
	return &s, nil
}

// sizedBuffer copies a buffer-and-length pair into an owned slice of exactly
// size bytes. A non-null buffer with size zero is a valid empty sequence; a
// null buffer with a nonzero declared size, or a buffer whose length
// disagrees with the size field, is a decode failure.
func sizedBuffer(field string, b []byte, size uint32) ([]byte, error) {
	if b == nil {
		if size != 0 {
			return nil, &types.DecodeError{
				Field:  field,
				Reason: fmt.Sprintf("null buffer with declared size %d", size),
			}
		}
		return []byte{}, nil
	}
	if uint32(len(b)) != size {
		return nil, &types.DecodeError{
			Field:  field,
			Reason: fmt.Sprintf("buffer length %d disagrees with declared size %d", len(b), size),
		}
	}
	out := make([]byte, size)
	copy(out, b)
	return out, nil
}
