package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/shannonfano/pkg/errors"
	"github.com/matzehuels/shannonfano/pkg/fano"
)

type codeTable struct {
	Codes []fano.Coded `json:"codes"`
}

// ReadCodes decodes a code table from r.
//
// Fields other than "codes" are ignored so an exported result can be used
// directly. ReadCodes returns an error if:
//   - The JSON is malformed or has no "codes" array
//   - A name is empty or appears twice
//   - A code is empty or contains characters other than 0 and 1
//   - The codes are not prefix-free
func ReadCodes(r io.Reader) ([]fano.Coded, error) {
	var data codeTable
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	if len(data.Codes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "code table has no \"codes\"")
	}

	seen := make(map[string]bool, len(data.Codes))
	for _, c := range data.Codes {
		if c.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "code table entry without a name")
		}
		if seen[c.Name] {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "duplicate name %q in code table", c.Name)
		}
		seen[c.Name] = true
		if c.Code == "" || strings.Trim(c.Code, "01") != "" {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "symbol %q: invalid code %q", c.Name, c.Code)
		}
	}
	if !fano.IsPrefixFree(data.Codes) {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "code table is not prefix-free")
	}
	return data.Codes, nil
}

// ImportCodes reads the code table at path. See [ReadCodes].
func ImportCodes(path string) ([]fano.Coded, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	codes, err := ReadCodes(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return codes, nil
}

// WriteJSON encodes v as indented JSON and writes it to w.
func WriteJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes v as indented JSON to the file at path, creating or
// truncating it.
func ExportJSON(v any, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(v, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
