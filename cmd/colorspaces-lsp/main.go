package main

import (
	"os"

	"github.com/jsvensson/colorspaces/internal/lsp"
	"github.com/tliron/commonlog"
)

var version = "dev"

func main() {
	commonlog.Configure(1, nil)
	s := lsp.NewServer(version)
	if err := s.Run(); err != nil {
		os.Exit(1)
	}
}
