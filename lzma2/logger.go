package lzma2

import (
	"io"
	"log"

	"github.com/ulikunitz/unlzma2/internal/xlog"
)

// debug stores a reference to a logger. It may contain nil for no
// output.
var debug xlog.Logger

// DebugOn enables chunk-level debug output on the given writer. If w is
// nil no output will be written.
func DebugOn(w io.Writer) {
	if w == nil {
		debug = nil
		return
	}
	debug = log.New(w, "lzma2 ", 0)
}

// DebugOff switches the debugging output off.
func DebugOff() { debug = nil }
