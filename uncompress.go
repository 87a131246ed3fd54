package unlzma2

import (
	"errors"
	"hash/crc32"

	"github.com/ulikunitz/unlzma2/lzma2"
)

var errCheckMismatch = errors.New(
	"unlzma2: CRC32 of decoded data does not match the stream check")

// Uncompress decompresses src into dst. If src starts with a valid xz
// stream header the envelope is stripped and verified; otherwise src is
// decoded as a raw LZMA2 chunk stream.
//
// It returns the number of bytes written to dst and the number of bytes
// consumed from src; both are valid on error.
func Uncompress(dst, src []byte) (n, k int, err error) {
	if HasXZHeader(src) {
		return UncompressXZ(dst, src)
	}
	return lzma2.Uncompress(dst, src)
}

// UncompressRaw decodes src as a raw LZMA2 chunk stream without any
// envelope handling.
func UncompressRaw(dst, src []byte) (n, k int, err error) {
	return lzma2.Uncompress(dst, src)
}

// UncompressXZ requires src to be a complete xz stream holding a single
// LZMA2 block. The envelope is validated before decoding, and if the
// stream carries a CRC32 check it is verified against the decoded
// output.
func UncompressXZ(dst, src []byte) (n, k int, err error) {
	env, err := parseEnvelope(src)
	if err != nil {
		return 0, 0, err
	}
	n, k, err = lzma2.Uncompress(dst, env.payload)
	k += env.payloadStart
	if err != nil {
		return n, k, err
	}

	// Between the end marker and the check field the block may carry
	// up to three zero bytes padding it to a multiple of four.
	pad := env.payload[k-env.payloadStart:]
	if len(pad) > 3 {
		return n, k, errors.New("unlzma2: block padding too long")
	}
	for _, b := range pad {
		if b != 0 {
			return n, k, errors.New(
				"unlzma2: non-zero block padding")
		}
	}

	if env.checkType == CheckCRC32 {
		if crc32.ChecksumIEEE(dst[:n]) != getLE32(env.check) {
			return n, k, errCheckMismatch
		}
	}
	return n, k, nil
}
