// Package io reads and writes the file formats of shannonfano.
//
// # Alphabet Files
//
// An alphabet lists symbols with their probabilities. JSON and TOML are
// accepted; [ImportAlphabet] picks the decoder from the file extension:
//
//	{
//	  "symbols": [
//	    {"name": "A", "probability": 0.5},
//	    {"name": "B", "probability": 0.25},
//	    {"name": "C", "probability": 0.25}
//	  ]
//	}
//
// The same alphabet in TOML:
//
//	[[symbols]]
//	name = "A"
//	probability = 0.5
//
//	[[symbols]]
//	name = "B"
//	probability = 0.25
//
// Unknown fields are rejected in both formats. Decoding does not validate
// the alphabet itself; that happens when codes are computed, so all issues
// are reported together.
//
// # Code Tables
//
// [WriteJSON] serializes any result value. A code table is any JSON object
// carrying a "codes" array of {"name", "code"} entries, which includes an
// exported pipeline result. [ReadCodes] decodes and checks such a table so
// text can be encoded against it later:
//
//	codes, err := io.ImportCodes("codes.json")
//	bits := fano.Encode("ABBA", codes)
//
// All decode failures carry [errors.ErrCodeInvalidFormat].
//
// [errors.ErrCodeInvalidFormat]: github.com/matzehuels/shannonfano/pkg/errors.ErrCodeInvalidFormat
package io
