package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// DefaultKeyer produces keys of the form "codes:<source>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// CodesKey implements Keyer. The digest covers the JSON form of input
// followed by opts. Input that cannot be marshalled, such as a NaN
// probability, yields "".
func (DefaultKeyer) CodesKey(source string, input any, opts CodesKeyOpts) string {
	data, err := json.Marshal([]any{input, opts})
	if err != nil {
		return ""
	}
	return "codes:" + source + ":" + Hash(data)
}

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
