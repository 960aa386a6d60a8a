package models

// DateSource names the source a DateResolution came from.
type DateSource string

// Date sources, most to least authoritative.
const (
	SourceHistory     DateSource = "history"
	SourceFrontMatter DateSource = "front-matter"
	SourceNone        DateSource = "none"
)

// DateResolution holds the resolved creation and update dates of a document.
// Each is an ISO YYYY-MM-DD date or Draft.
type DateResolution struct {
	Created string
	Updated string
	Source  DateSource
}

// DraftDates returns the resolution used when no date can be determined.
func DraftDates() DateResolution {
	return DateResolution{Created: Draft, Updated: Draft, Source: SourceNone}
}
