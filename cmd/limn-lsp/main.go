// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"limn/internal/langs"
	"limn/internal/lsp"
)

const lsName = "limn" // Name identifier for the language server

var (
	version = "0.0.1"        // Server version
	handler protocol.Handler // Protocol handler instance (wired up below)
)

func main() {
	// 1 = debug level, nil = default backend
	commonlog.Configure(1, nil)

	limnHandler := lsp.NewLimnHandler(langs.Builtin())

	handler = protocol.Handler{
		Initialize:                     limnHandler.Initialize,
		Initialized:                    limnHandler.Initialized,
		Shutdown:                       limnHandler.Shutdown,
		SetTrace:                       limnHandler.SetTrace,
		TextDocumentDidOpen:            limnHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           limnHandler.TextDocumentDidClose,
		TextDocumentDidChange:          limnHandler.TextDocumentDidChange,
		TextDocumentCompletion:         limnHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: limnHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Printf("Starting limn LSP server %s...\n", version)

	// Editors talk to the server over standard input/output.
	err := s.RunStdio()
	if err != nil {
		log.Println("Error starting limn LSP server:", err)
		os.Exit(1)
	}
}
