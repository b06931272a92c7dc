package config

import (
	"fmt"
	"strconv"
)

// RedactedString holds secret material. Every textual rendering of it is redacted so that
// logging or serializing the configuration never leaks the value itself.
type RedactedString string

func (r RedactedString) redacted() string {
	return fmt.Sprintf("<redacted-%d-chars>", len(r))
}

func (r RedactedString) String() string {
	return r.redacted()
}

func (r RedactedString) GoString() string {
	return r.redacted()
}

func (r RedactedString) MarshalText() ([]byte, error) {
	return []byte(r.redacted()), nil
}

func (r RedactedString) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(r.redacted())), nil
}

func (r RedactedString) MarshalBinary() ([]byte, error) {
	return []byte(r.redacted()), nil
}

// Value returns the secret itself, for the places that actually need it.
func (r RedactedString) Value() string {
	return string(r)
}
