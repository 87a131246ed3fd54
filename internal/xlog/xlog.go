// Package xlog provides the nil-safe trace output of the decoder. A
// trace sink is any type with the Output method of the standard
// log.Logger; a nil sink disables a call site completely, so the
// decoder can leave trace calls in place without paying for formatting
// in normal operation.
package xlog

import "fmt"

// Logger is the sink for trace lines. The *log.Logger type satisfies
// the interface.
type Logger interface {
	Output(calldepth int, s string) error
}

// Printf formats one trace line and hands it to the logger. A nil
// logger drops the line before any formatting happens.
func Printf(l Logger, format string, v ...interface{}) {
	if l == nil {
		return
	}
	l.Output(2, fmt.Sprintf(format, v...))
}
