package diag

import (
	"gaia/internal/source"
)

// Note attaches secondary context to a diagnostic; each note should
// add new information rather than restate the message.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one structured finding of a semantic pass.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Item     string // name of the item being analyzed when emitted
	Primary  source.Span
	Notes    []Note
}
