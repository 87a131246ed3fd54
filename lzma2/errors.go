package lzma2

import "errors"

// Status values returned by Uncompress. A nil error reports a clean end
// of stream.
var (
	// ErrData indicates a malformed LZMA2 stream: a reserved control
	// byte, an invalid property byte, a chunk that requires state the
	// stream never established, a declared size that the data
	// contradicts, or a match distance reaching outside the dictionary.
	ErrData = errors.New("lzma2: data error")

	// ErrInputLimit indicates that the input was exhausted before the
	// stream reached its end marker.
	ErrInputLimit = errors.New("lzma2: input limit reached")

	// ErrOutputLimit indicates that the output buffer cannot hold the
	// next decoded byte while the stream itself is consistent.
	ErrOutputLimit = errors.New("lzma2: output limit reached")

	// ErrNoMemory is declared for API completeness. The decoder keeps
	// all working state in the call frame and never returns it.
	ErrNoMemory = errors.New("lzma2: no memory")
)

// errRangeLimit is the internal signal that the range coder needed a
// byte past the end of the current chunk's compressed data. The chunk
// driver converts it into ErrInputLimit or ErrData.
var errRangeLimit = errors.New("lzma2: range coder limit reached")
