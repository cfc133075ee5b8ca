// Package codec centralizes the encodings of declarative configuration such
// as selector specs.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json", "go-json":
		return GoJSON{}, true
	case "yaml", "yml":
		return YAML{}, true
	default:
		return nil, false
	}
}

// ForExtension picks a codec from a file extension such as ".yaml".
// Unknown extensions fall back to Default.
func ForExtension(ext string) Codec {
	switch ext {
	case ".yaml", ".yml":
		return YAML{}
	default:
		return Default
	}
}

// MustMarshal is a helper for tests and examples.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}

// Default is the codec used when none is given.
var Default Codec = GoJSON{}
