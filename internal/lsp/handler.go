package lsp

import (
	"errors"

	"docsync/internal/document"
	"docsync/internal/textedit"
	"docsync/internal/textpos"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var log = commonlog.GetLogger("docsync.lsp")

func (ls *Server) initialize(
	context *glsp.Context,
	params *protocol.InitializeParams,
) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()
	syncKind := protocol.TextDocumentSyncKindIncremental
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True, // Notify on open/close of documents
		Change:    &syncKind,      // Sync documents by incremental edits
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func (ls *Server) initialized(
	context *glsp.Context,
	params *protocol.InitializedParams,
) error {
	log.Info("server initialized")
	return nil
}

func (ls *Server) shutdown(context *glsp.Context) error {
	log.Info("server shutting down")
	ls.docs.CloseAll()
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *Server) setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(
	context *glsp.Context,
	params *protocol.DidOpenTextDocumentParams,
) error {
	item := params.TextDocument
	ls.docs.Open(item.URI, item.LanguageID, item.Text, int32(item.Version))
	log.Debugf("opened %s (version %d)", item.URI, item.Version)
	return nil
}

func (ls *Server) textDocumentDidChange(
	context *glsp.Context,
	params *protocol.DidChangeTextDocumentParams,
) error {
	uri := params.TextDocument.URI
	edits := toEdits(params.ContentChanges)

	err := ls.docs.Change(uri, int32(params.TextDocument.Version), edits)
	if errors.Is(err, document.ErrNotFound) {
		// A change for an unopened document means the client's
		// notification order is off; not fatal to the session.
		log.Warningf("dropped change for unopened document %s", uri)
		return nil
	}
	if errors.Is(err, textedit.ErrMalformedEdit) {
		log.Errorf("rejected change for %s: %s", uri, err.Error())
		return nil
	}
	return err
}

func (ls *Server) textDocumentDidSave(
	context *glsp.Context,
	params *protocol.DidSaveTextDocumentParams,
) error {
	// Nothing to persist; the editor owns the file on disk.
	log.Debugf("saved %s", params.TextDocument.URI)
	return nil
}

func (ls *Server) textDocumentDidClose(
	context *glsp.Context,
	params *protocol.DidCloseTextDocumentParams,
) error {
	uri := params.TextDocument.URI
	if err := ls.docs.Close(uri); errors.Is(err, document.ErrNotFound) {
		log.Warningf("dropped close for unopened document %s", uri)
	}
	return nil
}

// toEdits converts protocol content-change events into document edits.
// A whole-document event becomes a rangeless edit.
func toEdits(changes []any) []textedit.Edit {
	edits := make([]textedit.Edit, 0, len(changes))
	for _, change := range changes {
		switch contentChange := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			edits = append(edits, textedit.Edit{NewText: contentChange.Text})

		case protocol.TextDocumentContentChangeEvent:
			edit := textedit.Edit{NewText: contentChange.Text}
			if contentChange.Range != nil {
				edit.Range = &textpos.Range{
					Start: textpos.Position{
						Line:      uint32(contentChange.Range.Start.Line),
						Character: uint32(contentChange.Range.Start.Character),
					},
					End: textpos.Position{
						Line:      uint32(contentChange.Range.End.Line),
						Character: uint32(contentChange.Range.End.Character),
					},
				}
			}
			edits = append(edits, edit)
		}
	}
	return edits
}
