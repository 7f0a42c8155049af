package lsp

import (
	"errors"
	"testing"

	"docsync/internal/document"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

const testURI = "file:///tmp/handler.txt"

func openDoc(t *testing.T, ls *Server, uri, text string, version int32) {
	t.Helper()
	err := ls.textDocumentDidOpen(nil, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        uri,
			LanguageID: "plaintext",
			Version:    protocol.Integer(version),
			Text:       text,
		},
	})
	if err != nil {
		t.Fatalf("didOpen: %v", err)
	}
}

func TestDidOpenDidClose(t *testing.T) {
	ls := New(document.NewStore())
	openDoc(t, ls, testURI, "hello world", 1)

	text, err := ls.Documents().Contents(testURI)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hello world" {
		t.Errorf("contents = %q, want %q", text, "hello world")
	}

	err = ls.textDocumentDidClose(nil, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	if err != nil {
		t.Fatalf("didClose: %v", err)
	}
	if _, err := ls.Documents().Contents(testURI); !errors.Is(err, document.ErrNotFound) {
		t.Errorf("contents after close: got %v, want ErrNotFound", err)
	}
}

func TestDidChangeWholeDocument(t *testing.T) {
	ls := New(document.NewStore())
	openDoc(t, ls, testURI, "hello world", 1)

	err := ls.textDocumentDidChange(nil, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "hi there"},
		},
	})
	if err != nil {
		t.Fatalf("didChange: %v", err)
	}

	text, _ := ls.Documents().Contents(testURI)
	if text != "hi there" {
		t.Errorf("contents = %q, want %q", text, "hi there")
	}
	version, _ := ls.Documents().Version(testURI)
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}
}

func TestDidChangeIncremental(t *testing.T) {
	ls := New(document.NewStore())
	openDoc(t, ls, testURI, "hi there", 1)

	err := ls.textDocumentDidChange(nil, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEvent{
				Range: &protocol.Range{
					Start: protocol.Position{Line: 0, Character: 0},
					End:   protocol.Position{Line: 0, Character: 2},
				},
				Text: "HELLO",
			},
		},
	})
	if err != nil {
		t.Fatalf("didChange: %v", err)
	}

	text, _ := ls.Documents().Contents(testURI)
	if text != "HELLO there" {
		t.Errorf("contents = %q, want %q", text, "HELLO there")
	}
}

func TestDidChangeUnopenedDocumentIsDropped(t *testing.T) {
	ls := New(document.NewStore())

	// A change for a document that was never opened is logged and
	// swallowed, never a session error.
	err := ls.textDocumentDidChange(nil, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: "file:///never-opened"},
			Version:                1,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "x"},
		},
	})
	if err != nil {
		t.Fatalf("didChange: %v", err)
	}
}

func TestDidCloseUnopenedDocumentIsDropped(t *testing.T) {
	ls := New(document.NewStore())

	err := ls.textDocumentDidClose(nil, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///never-opened"},
	})
	if err != nil {
		t.Fatalf("didClose: %v", err)
	}
}

func TestMalformedChangeLeavesDocumentIntact(t *testing.T) {
	ls := New(document.NewStore())
	openDoc(t, ls, testURI, "hello", 1)

	err := ls.textDocumentDidChange(nil, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEvent{
				Range: &protocol.Range{
					Start: protocol.Position{Line: 0, Character: 4},
					End:   protocol.Position{Line: 0, Character: 1},
				},
				Text: "bad",
			},
		},
	})
	if err != nil {
		t.Fatalf("didChange: %v", err)
	}

	text, _ := ls.Documents().Contents(testURI)
	if text != "hello" {
		t.Errorf("contents = %q, want original %q", text, "hello")
	}
	version, _ := ls.Documents().Version(testURI)
	if version != 1 {
		t.Errorf("version = %d, want 1", version)
	}
}
