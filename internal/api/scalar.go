package api

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
)

// Scalar is a request field that accepts a JSON string, number or boolean as
// well as query and form values. Numbers and booleans keep their literal text,
// so {"taskId": 5} and taskId=5 bind to the same value.
type Scalar string

var stringType = reflect.TypeOf("")

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*s = ""
	case b[0] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = Scalar(str)
	case b[0] == '[':
		return &json.UnmarshalTypeError{Value: "array", Type: stringType}
	case b[0] == '{':
		return &json.UnmarshalTypeError{Value: "object", Type: stringType}
	default:
		*s = Scalar(b)
	}
	return nil
}

// String returns the value with surrounding whitespace removed.
func (s Scalar) String() string {
	return strings.TrimSpace(string(s))
}

// IsZero reports whether no value was supplied.
func (s Scalar) IsZero() bool {
	return s.String() == ""
}
