package loader

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
)

// Format is the syntax of an input document.
type Format int

const (
	// FormatAuto detects JSON by a leading '{' or '['.
	FormatAuto Format = iota
	FormatYAML
	FormatJSON
)

// ErrInvalidJSON is returned when a JSON document does not parse.
var ErrInvalidJSON = errors.New("invalid JSON document")

// FormatOf picks the format from a file extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

func isJSON(data []byte, f Format) bool {
	switch f {
	case FormatJSON:
		return true
	case FormatYAML:
		return false
	default:
		trimmed := bytes.TrimSpace(data)

		return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
	}
}

// checkSyntax rejects malformed JSON before it reaches the YAML decoder,
// which would otherwise accept some of it as flow YAML.
func checkSyntax(data []byte, f Format) error {
	if isJSON(data, f) && !sonic.Valid(data) {
		return ErrInvalidJSON
	}

	return nil
}
