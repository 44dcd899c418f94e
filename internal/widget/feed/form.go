package feed

import (
	"net/url"
	"sync"
)

// Key names understood by Widget.KeyDown.
const KeyEnter = "Enter"

// KeyEvent is a key press in the form's text field.
type KeyEvent struct {
	Key   string
	Shift bool
}

// Form holds the submit form fields. Field is the text input the user types
// into ("message" for chat, "content" for comments).
type Form struct {
	mu     sync.Mutex
	field  string
	values url.Values
}

func NewForm(field string) *Form {
	return &Form{field: field, values: url.Values{}}
}

// Type appends text to the main field.
func (f *Form) Type(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values.Set(f.field, f.values.Get(f.field)+text)
}

// Set replaces a field value.
func (f *Form) Set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values.Set(key, value)
}

// Text returns the main field.
func (f *Form) Text() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values.Get(f.field)
}

// Values returns a copy of all fields.
func (f *Form) Values() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(url.Values, len(f.values))
	for k, v := range f.values {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Reset clears every field.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = url.Values{}
}
