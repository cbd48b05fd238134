package literal

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces the canonical byte form of a bridged argument
// value, used for compiled-predicate fingerprinting.
//
// Properties:
//  1. Strings are NFC normalized before encoding
//  2. Floats use the shortest round-trip decimal representation
//  3. Timestamps are encoded as RFC 3339 with nanosecond precision in UTC
//  4. nil encodes as the literal "null"
//
// Identical argument lists always produce identical canonical bytes, so a
// fingerprint over them is stable across processes.
func MarshalCanonical(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return []byte("null"), nil
	case Value:
		return MarshalCanonical(val.Bridge())
	case string:
		return marshalCanonicalString(val), nil
	case int64:
		return strconv.AppendInt(nil, val, 10), nil
	case int:
		return strconv.AppendInt(nil, int64(val), 10), nil
	case float64:
		return strconv.AppendFloat(nil, val, 'g', -1, 64), nil
	case bool:
		return strconv.AppendBool(nil, val), nil
	case time.Time:
		return marshalCanonicalString(val.UTC().Format(time.RFC3339Nano)), nil
	default:
		return nil, fmt.Errorf("unsupported canonical value type: %T", v)
	}
}

// marshalCanonicalString encodes a string with NFC normalization and JSON
// string quoting without HTML escaping.
func marshalCanonicalString(s string) []byte {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	buf.WriteByte('"')
	for _, r := range normalized {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				buf.WriteString(fmt.Sprintf(`\u%04x`, r))
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
	return buf.Bytes()
}
