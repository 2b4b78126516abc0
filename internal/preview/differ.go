// Package preview marks which lines of a freshly generated script differ from the previous one.
//
// The comparison is strictly positional: line i of the new document is compared with line i
// of the previous document, or with "" when the previous document is shorter. Lines that only
// exist in the previous document are not reported.
package preview

import "strings"

// Line is one line of the new document and whether it differs from the aligned previous line
type Line struct {
	Text    string
	Changed bool
}

// SplitLines splits a document on "\r\n" or "\n"
// An empty document has zero lines
func SplitLines(doc string) []string {
	if doc == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(doc, "\r\n", "\n"), "\n")
}

// Diff aligns newDoc against prevDoc by line index
func Diff(newDoc, prevDoc string) []Line {
	newLines := SplitLines(newDoc)
	prevLines := SplitLines(prevDoc)

	result := make([]Line, len(newLines))
	for i, text := range newLines {
		prev := ""
		if i < len(prevLines) {
			prev = prevLines[i]
		}
		result[i] = Line{Text: text, Changed: text != prev}
	}
	return result
}

// Changed counts the changed lines
func Changed(lines []Line) int {
	n := 0
	for _, l := range lines {
		if l.Changed {
			n++
		}
	}
	return n
}

// Differ holds the single previous-document slot
// A Differ is not safe for concurrent use; run one generation cycle at a time
type Differ struct {
	previous string
}

// NewDiffer creates a differ seeded with a previous document, which may be empty
func NewDiffer(previous string) *Differ {
	return &Differ{previous: previous}
}

// Preview diffs newDoc against the stored document, then stores newDoc
func (d *Differ) Preview(newDoc string) []Line {
	lines := Diff(newDoc, d.previous)
	d.previous = newDoc
	return lines
}

// Previous returns the stored document
func (d *Differ) Previous() string {
	return d.previous
}

// Reset replaces the stored document without diffing
func (d *Differ) Reset(doc string) {
	d.previous = doc
}
