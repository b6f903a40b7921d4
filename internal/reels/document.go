package reels

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Object is a JSON object that remembers member order.
type Object struct {
	Keys   []string
	Values map[string]any
}

// Get returns the member named key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.Values[key]
	return v, ok
}

var byteOrderMark = []byte("\xef\xbb\xbf")

// parseDocument decodes raw JSON into nil, bool, json.Number, string, []any,
// or *Object values. A leading UTF-8 byte order mark is ignored; trailing data
// after the top-level value is an error.
func parseDocument(raw []byte) (any, error) {
	raw = bytes.TrimPrefix(raw, byteOrderMark)
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	value, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after top-level value", ErrParse)
	}
	return value, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			items := []any{}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return items, nil
		case '{':
			obj := &Object{Values: make(map[string]any)}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key %v is not a string", keyTok)
				}
				value, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				if _, dup := obj.Values[key]; !dup {
					obj.Keys = append(obj.Keys, key)
				}
				obj.Values[key] = value
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		return t, nil
	}
}

// stringify renders a scalar document value as text. Arrays and objects are
// re-encoded as compact JSON.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case []any:
		return encodeCompact(t)
	case *Object:
		return encodeCompact(t)
	default:
		return fmt.Sprint(t)
	}
}

func encodeCompact(v any) string {
	var buf bytes.Buffer
	writeCompact(&buf, v)
	return buf.String()
}

func writeCompact(buf *bytes.Buffer, v any) {
	switch t := v.(type) {
	case []any:
		buf.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeCompact(buf, item)
		}
		buf.WriteByte(']')
	case *Object:
		buf.WriteByte('{')
		for i, key := range t.Keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeCompact(buf, key)
			buf.WriteByte(':')
			writeCompact(buf, t.Values[key])
		}
		buf.WriteByte('}')
	case nil:
		buf.WriteString("null")
	default:
		encoded, err := json.Marshal(t)
		if err != nil {
			buf.WriteString(fmt.Sprint(t))
			return
		}
		buf.Write(encoded)
	}
}
