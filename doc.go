// Package unlzma2 decompresses LZMA2 data from one memory buffer into
// another, optionally stripping and verifying the xz stream envelope
// around a single LZMA2 block.
//
// The core decoder lives in the lzma2 subpackage; this package adds
// detection of the xz container, validation of its headers and
// checksums, and verification of an embedded CRC32 check against the
// decoded output.
package unlzma2
