// Package transcript owns the adventure transcript: an append-only log of
// displayed entries fed by line input.
package transcript

import (
	"adventure/internal/logger"
)

const (
	// WelcomeText is shown once when a session starts.
	WelcomeText = "Welcome to your text adventure! It's dark here."

	// KeyEnter is the logical submit key.
	KeyEnter = "Enter"
)

// ResponseFor returns the placeholder reply for a submitted command.
func ResponseFor(raw string) string {
	return "You typed '" + raw + "', but nothing happens yet."
}

// Display is the display surface collaborator.
type Display interface {
	// Append renders one new entry after all previous ones.
	Append(entry Entry)
	// ScrollToNewest brings the last appended entry into view.
	ScrollToNewest()
}

// Controller mediates between raw key events and the transcript.
// It is not safe for concurrent use; frontends deliver events serially.
type Controller struct {
	display     Display
	input       Input
	entries     []Entry
	initialized bool
	log         *logger.LogEntry
	observers   []func(Entry)
}

type Option func(*Controller)

// WithLogger sets the log entry used for debug tracing.
func WithLogger(entry *logger.LogEntry) Option {
	return func(c *Controller) {
		if entry != nil {
			c.log = entry
		}
	}
}

// WithObserver registers fn to be called for every appended entry, after
// the display has received it.
func WithObserver(fn func(Entry)) Option {
	return func(c *Controller) {
		if fn != nil {
			c.observers = append(c.observers, fn)
		}
	}
}

// New builds a controller bound to its two collaborators.
func New(display Display, input Input, opts ...Option) *Controller {
	c := &Controller{
		display: display,
		input:   input,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize appends the welcome entry. It must run once, when the display
// is ready; later calls are ignored.
func (c *Controller) Initialize() {
	if c.initialized {
		c.log.Warn("initialize called twice; ignoring")
		return
	}
	c.initialized = true
	c.append(Entry{Kind: Welcome, Text: WelcomeText})
	c.log.Debug("initialized")
}

// Submit records raw verbatim as a command, answers it, scrolls to the
// newest entry and empties the input buffer.
func (c *Controller) Submit(raw string) {
	c.append(Entry{Kind: UserCommand, Text: raw})
	c.append(Entry{Kind: SystemResponse, Text: ResponseFor(raw)})
	if c.display != nil {
		c.display.ScrollToNewest()
	}
	if c.input != nil {
		c.input.Clear()
	}
	c.log.WithField("length", len(raw)).Debug("submit")
}

// OnKeyEvent submits current when key is the submit key. Every other key is
// ignored.
func (c *Controller) OnKeyEvent(key string, current string) {
	if key != KeyEnter {
		return
	}
	c.Submit(current)
}

// Press delivers key using the input collaborator's current value.
func (c *Controller) Press(key string) {
	value := ""
	if c.input != nil {
		value = c.input.Value()
	}
	c.OnKeyEvent(key, value)
}

// Entries returns a copy of the transcript in display order.
func (c *Controller) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Len reports the number of entries without copying.
func (c *Controller) Len() int {
	return len(c.entries)
}

func (c *Controller) append(entry Entry) {
	c.entries = append(c.entries, entry)
	if c.display != nil {
		c.display.Append(entry)
	}
	for _, fn := range c.observers {
		fn(entry)
	}
}
