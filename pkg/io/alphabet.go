package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/shannonfano/pkg/alphabet"
	"github.com/matzehuels/shannonfano/pkg/errors"
)

// Format identifies an alphabet file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath returns the format implied by the extension of path.
// Anything other than .toml is treated as JSON.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

type alphabetFile struct {
	Symbols []alphabet.Symbol `json:"symbols" toml:"symbols"`
}

// ReadAlphabet decodes an alphabet in the given format from r.
// ReadAlphabet does not close r.
func ReadAlphabet(r io.Reader, format Format) ([]alphabet.Symbol, error) {
	var data alphabetFile

	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown field %q", undecoded[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&data); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}

	if data.Symbols == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "missing \"symbols\" list")
	}
	return data.Symbols, nil
}

// ImportAlphabet reads the alphabet file at path, choosing the decoder with
// [FormatFromPath].
func ImportAlphabet(path string) ([]alphabet.Symbol, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	symbols, err := ReadAlphabet(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return symbols, nil
}

// WriteAlphabet encodes symbols in the given format to w. The output can be
// read back with [ReadAlphabet].
func WriteAlphabet(symbols []alphabet.Symbol, w io.Writer, format Format) error {
	data := alphabetFile{Symbols: symbols}
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(data); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		_, err := w.Write(buf.Bytes())
		return err
	case FormatJSON:
		return WriteJSON(data, w)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
}
