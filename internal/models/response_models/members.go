package response_models

import (
	"bytes"
	"encoding/json"
	"errors"
	"maps"
	"slices"
	"sort"
	"strings"
)

// members keeps a model-produced object exactly as it was decoded, so values
// that do not fit the typed view survive into the response.
type members struct {
	raw      map[string]json.RawMessage
	mistyped map[string]bool
	// verbatim holds an array element that was not an object at all
	verbatim json.RawMessage
}

// decodeMembers decodes data into T one member at a time. A member whose
// value does not fit its Go type is left at the zero value in T and kept
// raw; it never fails the whole object.
func decodeMembers[T any](data []byte) (T, members, error) {
	var typed T
	var src members

	if err := json.Unmarshal(data, &src.raw); err != nil || src.raw == nil {
		src.raw = nil
		src.verbatim = append(json.RawMessage(nil), data...)
		return typed, src, nil
	}

	work := maps.Clone(src.raw)
	for {
		buf, err := json.Marshal(work)
		if err != nil {
			return typed, src, err
		}
		var attempt T
		err = json.Unmarshal(buf, &attempt)
		if err == nil {
			return attempt, src, nil
		}
		key, ok := mistypedMember(err, work)
		if !ok {
			return typed, src, err
		}
		delete(work, key)
		if src.mistyped == nil {
			src.mistyped = make(map[string]bool)
		}
		src.mistyped[key] = true
	}
}

func mistypedMember(err error, work map[string]json.RawMessage) (string, bool) {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Field == "" {
		return "", false
	}
	name, _, _ := strings.Cut(typeErr.Field, ".")
	if _, ok := work[name]; ok {
		return name, true
	}
	for key := range work {
		if strings.EqualFold(key, name) {
			return key, true
		}
	}
	return "", false
}

var zeroJSON = [][]byte{[]byte(`""`), []byte(`0`), []byte(`null`), []byte(`false`), []byte(`[]`), []byte(`{}`)}

func isZeroJSON(v json.RawMessage) bool {
	for _, z := range zeroJSON {
		if bytes.Equal(v, z) {
			return true
		}
	}
	return false
}

// encodeMembers writes typed over the decoded members. Mistyped members keep
// their original value, and typed zero values are only added for members
// the source had, or for keys listed in always.
func encodeMembers(typed any, src members, always ...string) ([]byte, error) {
	if src.verbatim != nil {
		return src.verbatim, nil
	}

	buf, err := json.Marshal(typed)
	if err != nil || src.raw == nil {
		return buf, err
	}

	var current map[string]json.RawMessage
	if err := json.Unmarshal(buf, &current); err != nil {
		return nil, err
	}

	out := maps.Clone(src.raw)
	for key, value := range current {
		if src.mistyped[key] {
			continue
		}
		_, had := src.raw[key]
		if had || !isZeroJSON(value) || slices.Contains(always, key) {
			out[key] = value
		}
	}
	return json.Marshal(out)
}

func (m members) mistypedKeys() []string {
	keys := make([]string, 0, len(m.mistyped))
	for key := range m.mistyped {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
