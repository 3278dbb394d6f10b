package domain

import "encoding/json"

// Secret wraps a sensitive string so it cannot leak through logging or
// serialization. The plain value is reachable only through Reveal, which is
// called at the single point where the value is persisted.
type Secret struct {
	value string
}

// NewSecret wraps a plain value.
func NewSecret(v string) Secret {
	return Secret{value: v}
}

// Reveal returns the wrapped plain value.
func (s Secret) Reveal() string {
	return s.value
}

func (s Secret) String() string {
	return "**********"
}

// MarshalJSON masks the value if a Secret ever reaches a serializer.
func (s Secret) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
