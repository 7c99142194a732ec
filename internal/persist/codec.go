package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"unicode/utf8"
)

// document is the on-disk shape: {"entries":{"key":"value",...}}.
type document struct {
	Entries map[string]string `json:"entries"`
}

// Encode serializes entries as a compact JSON document with sorted keys.
func Encode(entries map[string]string) ([]byte, error) {
	if entries == nil {
		entries = map[string]string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(document{Entries: entries}); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses a document produced by Encode.
func Decode(data []byte) (map[string]string, error) {
	if !utf8.Valid(data) {
		return nil, errors.New("invalid UTF-8")
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Entries == nil {
		return nil, errors.New(`missing "entries" object`)
	}
	return doc.Entries, nil
}
