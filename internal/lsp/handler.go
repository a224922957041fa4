package lsp

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"limn/internal/document"
	"limn/internal/langs"
	"limn/internal/syntax"
	"limn/token"
)

// LimnHandler implements the LSP server handlers. It keeps one Document per
// open URI and serves semantic tokens straight from the rule tables, so an
// edit re-tokenizes only the lines whose entering state actually changed.
type LimnHandler struct {
	mu       sync.RWMutex
	registry *langs.Registry
	docs     map[protocol.DocumentUri]*document.Document
}

// NewLimnHandler creates a handler backed by the given language registry.
func NewLimnHandler(registry *langs.Registry) *LimnHandler {
	return &LimnHandler{
		registry: registry,
		docs:     make(map[protocol.DocumentUri]*document.Document),
	}
}

// Initialize responds to the LSP client's initialize request and advertises
// the server's capabilities.
func (h *LimnHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindIncremental),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

// Initialized is called after the client receives the server's capabilities
// and completes initialization.
func (h *LimnHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("Limn LSP Initialized")
	return nil
}

// Shutdown handles the LSP shutdown request.
func (h *LimnHandler) Shutdown(ctx *glsp.Context) error {
	log.Println("Limn LSP Shutdown")
	return nil
}

// SetTrace adjusts the trace level on the client's request.
func (h *LimnHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen starts tracking an opened file, provided some
// registered language claims it. Files no language claims are ignored;
// requests about them answer empty rather than erroring.
func (h *LimnHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("Opened file: %s\n", params.TextDocument.URI)

	uri := params.TextDocument.URI
	table := h.tableFor(uri, params.TextDocument.LanguageID)
	if table == nil {
		return nil
	}

	doc := document.New(table, params.TextDocument.Text)
	h.mu.Lock()
	h.docs[uri] = doc
	h.mu.Unlock()

	h.checkDefinition(ctx, uri, params.TextDocument.Text)
	return nil
}

// TextDocumentDidClose stops tracking a closed file.
func (h *LimnHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("Closed file: %s\n", params.TextDocument.URI)

	uri := params.TextDocument.URI

	h.mu.Lock()
	delete(h.docs, uri)
	h.mu.Unlock()

	if isDefinitionURI(uri) {
		sendDiagnosticNotification(ctx, uri, []protocol.Diagnostic{})
	}
	return nil
}

// TextDocumentDidChange applies content changes to the tracked document.
// Whole-document events replace the text; ranged events splice only the
// lines they touch.
func (h *LimnHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("Changed file: %s\n", params.TextDocument.URI)

	uri := params.TextDocument.URI

	h.mu.Lock()
	doc, ok := h.docs[uri]
	if !ok {
		h.mu.Unlock()
		return nil
	}
	var applyErr error
	for _, raw := range params.ContentChanges {
		switch change := raw.(type) {
		case protocol.TextDocumentContentChangeEvent:
			applyErr = applyChange(doc, change.Range, change.Text)
		case *protocol.TextDocumentContentChangeEvent:
			applyErr = applyChange(doc, change.Range, change.Text)
		case protocol.TextDocumentContentChangeEventWhole:
			doc.SetText(change.Text)
		case *protocol.TextDocumentContentChangeEventWhole:
			doc.SetText(change.Text)
		}
		if applyErr != nil {
			break
		}
	}
	text := doc.Text()
	h.mu.Unlock()

	if applyErr != nil {
		return fmt.Errorf("failed to apply change to %s: %w", uri, applyErr)
	}
	h.checkDefinition(ctx, uri, text)
	return nil
}

// TextDocumentCompletion offers the conventional tag vocabulary inside
// definition files. Other languages get an empty list.
func (h *LimnHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	list := &protocol.CompletionList{
		IsIncomplete: false,
		Items:        []protocol.CompletionItem{},
	}
	if !isDefinitionURI(params.TextDocument.URI) {
		return list, nil
	}

	kind := protocol.CompletionItemKindValue
	detail := "token tag"
	for _, tag := range token.Conventional() {
		list.Items = append(list.Items, protocol.CompletionItem{
			Label:  string(tag),
			Kind:   &kind,
			Detail: &detail,
		})
	}
	return list, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the
// entire document.
func (h *LimnHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	log.Println("TextDocumentSemanticTokensFull called for:", params.TextDocument.URI)

	doc, err := h.getOrOpenDocument(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}

	h.mu.RLock()
	data := encodeSemanticTokens(doc)
	h.mu.RUnlock()

	return &protocol.SemanticTokens{Data: data}, nil
}

// getOrOpenDocument returns the tracked document for uri, reading the file
// from disk when the client asks about one it never opened.
func (h *LimnHandler) getOrOpenDocument(uri protocol.DocumentUri) (*document.Document, error) {
	h.mu.RLock()
	doc, ok := h.docs[uri]
	h.mu.RUnlock()
	if ok {
		return doc, nil
	}

	table := h.tableFor(uri, "")
	if table == nil {
		return nil, nil
	}

	path, err := uriToPath(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	doc = document.New(table, string(content))
	h.mu.Lock()
	h.docs[uri] = doc
	h.mu.Unlock()
	return doc, nil
}

// tableFor picks a table by the client's language identifier first and the
// file extension second.
func (h *LimnHandler) tableFor(uri protocol.DocumentUri, languageID string) *syntax.Table {
	if languageID != "" {
		if table, ok := h.registry.Lookup(languageID); ok {
			return table
		}
	}
	if table, ok := h.registry.ForFilename(string(uri)); ok {
		return table
	}
	return nil
}

// checkDefinition re-parses .limn sources and pushes the results. Other
// languages have no diagnostics to publish.
func (h *LimnHandler) checkDefinition(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	if !isDefinitionURI(uri) {
		return
	}
	_, diags := langs.ParseDSL(string(uri), text)
	sendDiagnosticNotification(ctx, uri, convertConfigErrors(diags))
}

func isDefinitionURI(uri protocol.DocumentUri) bool {
	return strings.EqualFold(filepath.Ext(string(uri)), ".limn")
}

// applyChange performs one ranged content change. A nil range means the
// client sent the whole text despite the ranged event type.
func applyChange(doc *document.Document, rng *protocol.Range, text string) error {
	if rng == nil {
		doc.SetText(text)
		return nil
	}

	startLine := clampLine(int(rng.Start.Line), doc.LineCount())
	endLine := clampLine(int(rng.End.Line), doc.LineCount())
	start := doc.Line(startLine)
	end := doc.Line(endLine)
	prefix := start[:byteOffset(start, rng.Start.Character)]
	suffix := end[byteOffset(end, rng.End.Character):]

	repl := strings.Split(strings.ReplaceAll(prefix+text+suffix, "\r\n", "\n"), "\n")
	return doc.ReplaceLines(startLine, endLine+1, repl)
}

func clampLine(line, count int) int {
	if line >= count {
		return count - 1
	}
	if line < 0 {
		return 0
	}
	return line
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove the leading slash (e.g., /C:/... to C:/...)
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	// Normalize to platform-specific separators
	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}

	log.Printf("Sending %d diagnostics for %s\n", len(diagnostics), uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
