// Package document keeps the authoritative current text of every open
// document and mutates it in response to the editor's change
// notifications.
package document

import (
	"fmt"
	"sync"

	"docsync/internal/textedit"
)

// Store maps URIs to open documents. The map lock is held only for
// lookup, insert and delete; per-document locks serialize same-URI work,
// so operations on different URIs never block each other.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*Document

	strictVersions bool
}

// Option configures a Store.
type Option func(*Store)

// WithStrictVersions makes Change reject a version that is not greater
// than the stored one. The protocol does not require this check, so it is
// off by default.
func WithStrictVersions() Option {
	return func(s *Store) { s.strictVersions = true }
}

// NewStore creates an empty document store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		docs: make(map[string]*Document),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open inserts the document for uri, or overwrites it if already open.
// Duplicate opens are last-writer-wins, never an error.
func (s *Store) Open(uri, languageID, text string, version int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = newDocument(uri, languageID, text, version)
}

// Change applies one notification's edit batch to the document for uri.
// Ranges are resolved against the text as stored before the batch; on any
// failure the stored text and version are untouched.
func (s *Store) Change(uri string, version int32, edits []textedit.Edit) error {
	doc, err := s.get(uri)
	if err != nil {
		return fmt.Errorf("change %s: %w", uri, err)
	}
	return doc.applyBatch(version, edits, s.strictVersions)
}

// Close removes the document for uri.
func (s *Store) Close(uri string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.docs[uri]; !exists {
		return fmt.Errorf("close %s: %w", uri, ErrNotFound)
	}
	delete(s.docs, uri)
	return nil
}

// Contents returns the current text for uri.
func (s *Store) Contents(uri string) (string, error) {
	doc, err := s.get(uri)
	if err != nil {
		return "", fmt.Errorf("contents %s: %w", uri, err)
	}
	return doc.Contents(), nil
}

// Version returns the version of the most recently applied change for uri.
func (s *Store) Version(uri string) (int32, error) {
	doc, err := s.get(uri)
	if err != nil {
		return 0, fmt.Errorf("version %s: %w", uri, err)
	}
	return doc.Version(), nil
}

// Get returns the document for uri, for readers that need more than one
// field from a consistent handle.
func (s *Store) Get(uri string) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, exists := s.docs[uri]
	return doc, exists
}

// URIs returns the identifiers of all open documents.
func (s *Store) URIs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uris := make([]string, 0, len(s.docs))
	for uri := range s.docs {
		uris = append(uris, uri)
	}
	return uris
}

// CloseAll drops every open document. Used at shutdown.
func (s *Store) CloseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = make(map[string]*Document)
}

func (s *Store) get(uri string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, exists := s.docs[uri]
	if !exists {
		return nil, ErrNotFound
	}
	return doc, nil
}
