package transcript

import "fmt"

// Kind classifies a transcript entry.
type Kind int

const (
	Welcome Kind = iota
	UserCommand
	SystemResponse
)

var kindNames = [...]string{
	Welcome:        "welcome",
	UserCommand:    "command",
	SystemResponse: "response",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText encodes the kind by name so JSON payloads stay readable.
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("unknown transcript kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown transcript kind %q", string(text))
}

// Entry is one displayed line of the transcript. Text is opaque data:
// displays must render it literally, never as markup.
type Entry struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}
