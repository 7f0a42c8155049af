// Package lsp adapts protocol text-document notifications onto the
// document store.
package lsp

import (
	"docsync/internal/document"

	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"
)

const lsName = "docsync"

var version = "0.1.0"

type Server struct {
	docs    *document.Store
	handler *protocol.Handler
}

// New builds a server around the given document store.
func New(docs *document.Store) *Server {
	ls := &Server{
		docs: docs,
	}

	ls.handler = &protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidSave:   ls.textDocumentDidSave,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		Shutdown:              ls.shutdown,
	}

	return ls
}

// Documents exposes the store to downstream readers (parsers, analyzers).
func (ls *Server) Documents() *document.Store {
	return ls.docs
}

// RunStdio serves the protocol over stdin/stdout until the client
// disconnects.
func (ls *Server) RunStdio() error {
	return glspserver.NewServer(ls.handler, lsName, false).RunStdio()
}
