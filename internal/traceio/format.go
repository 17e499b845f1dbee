package traceio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the on-disk encoding of a trace.
type Format uint8

const (
	FormatAuto    Format = iota // detect from file extension
	FormatNDJSON                // one JSON object per line
	FormatMsgpack               // stream of msgpack maps
)

// String returns the string representation of Format.
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatNDJSON:
		return "ndjson"
	case FormatMsgpack:
		return "msgpack"
	default:
		return "unknown"
	}
}

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "ndjson", "jsonl", "json":
		return FormatNDJSON, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	default:
		return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|ndjson|msgpack)", s)
	}
}

// DetectFormat picks a format from the file extension, defaulting to NDJSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mp":
		return FormatMsgpack
	default:
		return FormatNDJSON
	}
}
