package lzma2

import (
	"github.com/ulikunitz/unlzma2/internal/xlog"
)

// Uncompress decodes the raw LZMA2 chunk stream src into dst. The
// dictionary is dst itself, so dst must be large enough for the whole
// uncompressed content.
//
// It returns the number of bytes written to dst and the number of bytes
// consumed from src. Both counts are valid when an error is returned.
// err is nil after a clean end-of-stream marker; otherwise it is one of
// ErrData, ErrInputLimit and ErrOutputLimit.
func Uncompress(dst, src []byte) (n, k int, err error) {
	f := frame{in: src, out: dst}
	var (
		needProps     bool
		dictResetDone bool
	)

	for {
		if f.incount >= len(f.in) {
			return f.outcount, f.incount, ErrInputLimit
		}
		c := control(f.in[f.incount])
		f.incount++

		if c.eos() {
			xlog.Printf(debug, "end of stream after %d bytes in, %d out",
				f.incount, f.outcount)
			return f.outcount, f.incount, nil
		}
		if c.resetDict() {
			needProps = true
			dictResetDone = true
			f.dictOrigin = f.outcount
		} else if !dictResetDone {
			return f.outcount, f.incount, ErrData
		}

		switch {
		case c.packed():
			if c.newProps() {
				needProps = false
			} else if needProps {
				return f.outcount, f.incount, ErrData
			}
			h, hn, err := c.parseHeader(f.in[f.incount:])
			f.incount += hn
			if err != nil {
				return f.outcount, f.incount, err
			}
			xlog.Printf(debug,
				"chunk %02x unpacked=%d packed=%d",
				byte(c), h.unpackedSize, h.packedSize)
			if c.newProps() {
				f.setProperties(h.props)
			}
			if c.resetState() {
				f.lzmaReset()
			}

			f.rcLimit = f.incount + h.packedSize
			if f.rcLimit > len(f.in) {
				f.rcLimit = len(f.in)
			}
			if h.packedSize < rcInitBytes {
				return f.outcount, f.incount, ErrData
			}
			if len(f.in)-f.incount < rcInitBytes {
				return f.outcount, f.incount, ErrInputLimit
			}
			f.rcInit()

			outLimit := len(f.out)
			moreRun := false
			if outLimit-f.outcount > h.unpackedSize {
				outLimit = f.outcount + h.unpackedSize
				moreRun = true
			}
			if err = f.run(outLimit, moreRun); err != nil {
				if err == errRangeLimit {
					if f.incount >= len(f.in) {
						err = ErrInputLimit
					} else {
						err = ErrData
					}
				}
				return f.outcount, f.incount, err
			}
			// The chunk must have consumed exactly the compressed
			// data it declared.
			if f.incount < f.rcLimit {
				return f.outcount, f.incount, ErrData
			}

		case c.reserved():
			return f.outcount, f.incount, ErrData

		default:
			// uncompressed chunk
			h, hn, err := c.parseHeader(f.in[f.incount:])
			f.incount += hn
			if err != nil {
				return f.outcount, f.incount, err
			}
			xlog.Printf(debug, "uncompressed chunk %02x size=%d",
				byte(c), h.unpackedSize)
			copyLen := h.unpackedSize
			if len(f.in)-f.incount < copyLen {
				copyLen = len(f.in) - f.incount
				err = ErrInputLimit
			}
			if len(f.out)-f.outcount < copyLen {
				copyLen = len(f.out) - f.outcount
				err = ErrOutputLimit
			}
			copy(f.out[f.outcount:], f.in[f.incount:f.incount+copyLen])
			f.incount += copyLen
			f.outcount += copyLen
			if err != nil {
				return f.outcount, f.incount, err
			}
		}
	}
}
