package entities

import (
	"encoding/json"
	"fmt"
	"io"
)

const redacted = "[SECRET]"

// Secret holds an account secret and keeps it out of logs and formatted output.
type Secret string

func (s Secret) String() string { return redacted }

// Format implements fmt.Formatter so %v, %s, %q and %#v all redact.
func (s Secret) Format(f fmt.State, _ rune) {
	_, _ = io.WriteString(f, redacted)
}

func (s Secret) MarshalJSON() ([]byte, error) { return json.Marshal(redacted) }

// Reveal returns the raw value. Only the codec and credential checks call it.
func (s Secret) Reveal() string { return string(s) }

// Masked returns one '*' per byte, for summaries.
func (s Secret) Masked() string {
	masked := make([]byte, len(s))
	for i := range masked {
		masked[i] = '*'
	}
	return string(masked)
}
