package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// ErrNotObject is returned when the source document is not a JSON object.
var ErrNotObject = errors.New("data source is not a JSON object of tables")

// LoadFile reads and decodes the dataset at path.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return s, nil
}

// Decode reads a document shaped {"table": [{...}, ...], ...}.
// Tables that are not arrays and array elements that are not objects are
// skipped with a warning rather than failing the load.
func Decode(r io.Reader) (*Store, error) {
	var raw map[string]json.RawMessage
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotObject, err)
	}
	if raw == nil {
		return nil, ErrNotObject
	}

	tables := make(map[string][]Record, len(raw))
	for name, msg := range raw {
		recs, err := DecodeTable(msg)
		if err != nil {
			slog.Warn("skipping table", "table", name, "error", err)
			continue
		}
		tables[name] = recs
	}

	return New(tables), nil
}

// DecodeTable decodes one table's JSON array, dropping non-object elements.
func DecodeTable(msg json.RawMessage) ([]Record, error) {
	var items []json.RawMessage
	if err := unmarshalNumbers(msg, &items); err != nil {
		return nil, fmt.Errorf("table is not an array: %w", err)
	}

	recs := make([]Record, 0, len(items))
	for i, item := range items {
		rec, err := DecodeRecord(item)
		if err != nil {
			slog.Debug("skipping record", "position", i, "error", err)
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// DecodeRecord decodes a single JSON object, keeping numbers as json.Number.
func DecodeRecord(msg []byte) (Record, error) {
	var rec map[string]any
	if err := unmarshalNumbers(msg, &rec); err != nil {
		return nil, fmt.Errorf("record is not an object: %w", err)
	}
	if rec == nil {
		return nil, errors.New("record is null")
	}
	return Record(rec), nil
}

func unmarshalNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
