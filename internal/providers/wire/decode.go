package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeList decodes a collection that arrives either as a bare JSON array or
// as an object wrapping the array under key (or "data"). null yields an empty list.
func DecodeList[T any](raw json.RawMessage, key string) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}
	switch trimmed[0] {
	case '[':
		var out []T
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, err
		}
		return out, nil
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, err
		}
		for _, k := range []string{key, "data"} {
			if inner, ok := envelope[k]; ok {
				return DecodeList[T](inner, key)
			}
		}
		return nil, fmt.Errorf("object has no %q field", key)
	default:
		return nil, fmt.Errorf("expected array or object, got %q", string(trimmed[:1]))
	}
}
