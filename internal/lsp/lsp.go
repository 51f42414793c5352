// Package lsp serves grammar description diagnostics over Language Server Protocol.
package lsp

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/ava12/parsec"
	"github.com/ava12/parsec/langdef"
)

const lsName = "parsec"

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string
	log     commonlog.Logger

	mu   sync.Mutex
	docs map[string]string
}

// NewServer creates server, verbosity is passed to commonlog (0 for errors only).
func NewServer(version string, verbosity int) *Server {
	commonlog.Configure(verbosity, nil)

	s := &Server{
		version: version,
		log:     commonlog.GetLogger(lsName),
		docs:    make(map[string]string),
	}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,
		TextDocumentDidSave:   s.textDocumentDidSave,
	}

	s.server = server.NewServer(&s.handler, lsName, false)
	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	s.log.Info("initialized")
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}

	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		s.update(ctx, params.TextDocument.URI, whole.Text)
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := params.TextDocument.URI
	if params.Text != nil {
		s.update(ctx, uri, *params.Text)
		return nil
	}

	s.mu.Lock()
	text, found := s.docs[uri]
	s.mu.Unlock()
	if found {
		s.update(ctx, uri, text)
	}
	return nil
}

func (s *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	s.mu.Lock()
	s.docs[uri] = text
	s.mu.Unlock()

	diags := Diagnose(documentName(uri), text)
	s.log.Debugf("%s: %d diagnostics", uri, len(diags))
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

// Diagnose compiles grammar description and returns its errors as diagnostics.
func Diagnose(name, text string) []protocol.Diagnostic {
	_, e := langdef.ParseString(name, text)
	if e == nil {
		return []protocol.Diagnostic{}
	}

	var pe *parsec.Error
	if !errors.As(e, &pe) {
		return []protocol.Diagnostic{newDiagnostic(0, 0, 0, e.Error())}
	}

	line, col := pe.Line, pe.Col
	if line > 0 {
		line--
	}
	if col > 0 {
		col--
	}
	return []protocol.Diagnostic{newDiagnostic(line, col, pe.Code, message(pe))}
}

func newDiagnostic(line, col, code int, msg string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName
	d := protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col)},
			End:   protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col + 1)},
		},
		Severity: &severity,
		Source:   &source,
		Message:  msg,
	}
	if code != 0 {
		d.Code = &protocol.IntegerOrString{Value: protocol.Integer(code)}
	}
	return d
}

// message strips position suffix, the range carries it.
func message(e *parsec.Error) string {
	if e.Line == 0 || e.Col == 0 {
		return e.Message
	}

	suffix := fmt.Sprintf(" at line %d col %d", e.Line, e.Col)
	if e.SourceName != "" {
		suffix = " in " + e.SourceName + suffix
	}
	return strings.TrimSuffix(e.Message, suffix)
}

func documentName(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		if parsed, e := url.Parse(uri); e == nil {
			return filepath.Base(parsed.Path)
		}
	}
	return uri
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
