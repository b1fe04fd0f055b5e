// Package stdlog silences the standard library logger during package
// initialization.
//
// Some dependencies write to the log package from their init functions,
// before main has configured anything. Importing this package for its side
// effect sends that output to io.Discard. Its import path sorts ahead of
// those dependencies, so its init runs first. Once main installs a slog
// default, log output is routed through that handler instead.
package stdlog

import (
	"io"
	"log"
)

func init() {
	log.SetOutput(io.Discard)
}
