// Package models defines data structures shared by the extractor, the manifest builder and the view layer.
package models

// Draft is the date sentinel for documents without a determinable date.
const Draft = "DRAFT"

// Document is one source file: its identifier and raw UTF-8 text.
// An optional front-matter block is part of Content.
type Document struct {
	ID      string
	Content string
}

// Article is the manifest record built from a Document.
type Article struct {
	Title    string `json:"title"`
	Filename string `json:"filename"`
	Created  string `json:"created"`
	Updated  string `json:"updated"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
}

// IsDraft reports whether the article has no determinable creation date.
func (a Article) IsDraft() bool {
	return a.Created == Draft
}

// Failure records a document that was skipped during a build.
type Failure struct {
	Err error
	ID  string
}

// Error implements error.
func (f Failure) Error() string {
	return f.ID + ": " + f.Err.Error()
}

// Unwrap returns the underlying cause.
func (f Failure) Unwrap() error {
	return f.Err
}
