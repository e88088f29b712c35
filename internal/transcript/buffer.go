package transcript

// Input is the input field collaborator: it holds the not-yet-submitted
// command text.
type Input interface {
	Value() string
	Clear()
}

// Buffer is an in-memory Input used by frontends that do not own a widget
// (line mode, web sessions).
type Buffer struct {
	value string
}

func (b *Buffer) Value() string {
	if b == nil {
		return ""
	}
	return b.value
}

// Set replaces the buffer, mirroring a field whose value is read from the
// outside world (a browser form, a scanned line).
func (b *Buffer) Set(value string) {
	if b == nil {
		return
	}
	b.value = value
}

// Type appends keystroke text.
func (b *Buffer) Type(text string) {
	if b == nil {
		return
	}
	b.value += text
}

func (b *Buffer) Clear() {
	if b == nil {
		return
	}
	b.value = ""
}
