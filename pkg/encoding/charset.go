// Package encoding provides text encoding utilities for legacy terrain
// files. Scene and material files from the terrn era predate UTF-8 and are
// frequently Windows-1252 encoded.
package encoding

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// DecodeText returns the file contents as a UTF-8 string. Valid UTF-8 input
// passes through untouched; anything else is decoded as Windows-1252.
// Returns the input as-is if decoding fails.
func DecodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	decoder := charmap.Windows1252.NewDecoder()
	result, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// DecodeString converts a possibly Windows-1252 encoded string to UTF-8.
func DecodeString(s string) string {
	return DecodeText([]byte(s))
}
