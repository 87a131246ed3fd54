// Package lzma2 provides a one-shot decoder for raw LZMA2 chunk
// streams, the compressed payload used by the xz and 7z formats.
//
// The decoder works buffer to buffer: the caller supplies the complete
// compressed input and a preallocated output buffer, and Uncompress
// reports how much of each was used together with a status. The
// dictionary is the output buffer itself, so the output buffer must be
// large enough for the whole uncompressed content.
//
//	n, k, err := lzma2.Uncompress(dst, src)
//
// The decoder does not allocate on the decode path and performs no I/O.
package lzma2
