package document

import (
	"fmt"
	"sync"

	"docsync/internal/textedit"
)

// Document holds one open document's current text and version. All access
// goes through its own lock so a reader never observes a half-applied
// batch and two changes to the same document never race.
type Document struct {
	uri        string
	languageID string

	mu      sync.RWMutex
	text    string
	version int32
}

func newDocument(uri, languageID, text string, version int32) *Document {
	return &Document{
		uri:        uri,
		languageID: languageID,
		text:       text,
		version:    version,
	}
}

// URI returns the document's identifier.
func (d *Document) URI() string {
	return d.uri
}

// LanguageID returns the language identifier the editor supplied at open.
// The cache itself never interprets it.
func (d *Document) LanguageID() string {
	return d.languageID
}

// Contents returns the current text snapshot. The snapshot is superseded
// by the next change; callers must not assume it stays current.
func (d *Document) Contents() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text
}

// Version returns the version of the most recently applied change.
func (d *Document) Version() int32 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

// applyBatch computes the post-batch text against the current snapshot
// and swaps text and version together. On any failure the stored state is
// left untouched.
func (d *Document) applyBatch(version int32, edits []textedit.Edit, strict bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if strict && version <= d.version {
		return fmt.Errorf("change %s to version %d (stored %d): %w",
			d.uri, version, d.version, ErrStaleVersion)
	}

	newText, err := textedit.Apply(d.text, edits)
	if err != nil {
		return fmt.Errorf("change %s: %w", d.uri, err)
	}

	d.text = newText
	d.version = version
	return nil
}
