// Command unlzma2 decompresses a single LZMA2 stream, raw or wrapped in
// an xz envelope, and writes the result to standard output. It is the
// test bench for the unlzma2 package.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/ulikunitz/unlzma2"
	"github.com/ulikunitz/unlzma2/lzma2"
)

const usageStr = `Usage: unlzma2 [OPTION]... [FILE]
Decompress an LZMA2 stream from FILE (or standard input when FILE is -
or absent) and write the result to standard output.

  -b, --buffer-size=SIZE  output buffer size; suffixes K, M and G are
                          accepted (default: 4 times the input size)
  -c, --crc32             require the xz envelope to carry a CRC32 check
  -h, --help              print this help
  -r, --raw               treat the input as a raw LZMA2 chunk stream
  -v, --verbose           increase verbosity; twice enables decode traces
  -x, --xz                require an xz envelope

Exit status is 0 on success, 1 on a decode or I/O error, 2 on usage
errors and 3 if the decoder reported inconsistent cursor positions.
`

func usage(w io.Writer) {
	fmt.Fprint(w, usageStr)
}

// strToSize converts a size argument with an optional K, M or G suffix
// into a byte count.
func strToSize(s string) (size int64, err error) {
	t := strings.TrimSpace(s)
	unit := int64(1)
	switch {
	case strings.HasSuffix(t, "K"):
		unit = 1 << 10
		t = strings.TrimSpace(t[:len(t)-1])
	case strings.HasSuffix(t, "M"):
		unit = 1 << 20
		t = strings.TrimSpace(t[:len(t)-1])
	case strings.HasSuffix(t, "G"):
		unit = 1 << 30
		t = strings.TrimSpace(t[:len(t)-1])
	}
	v, err := strconv.ParseUint(t, 0, 63)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	size = int64(v) * unit
	if unit != 1 && size/unit != int64(v) {
		return 0, fmt.Errorf("size %q overflows", s)
	}
	return size, nil
}

// statusString renders the decoder status the way the verbose summary
// reports it.
func statusString(err error) string {
	switch err {
	case nil:
		return "OK"
	case lzma2.ErrData:
		return "DATA_ERROR"
	case lzma2.ErrInputLimit:
		return "INLIMIT"
	case lzma2.ErrOutputLimit:
		return "OUTLIMIT"
	case lzma2.ErrNoMemory:
		return "NO_MEMORY"
	}
	return err.Error()
}

func main() {
	cmdName := filepath.Base(os.Args[0])
	log.SetPrefix(fmt.Sprintf("%s: ", cmdName))
	log.SetFlags(0)

	var (
		verbose int
		raw     bool
		xzOnly  bool
		needCRC bool
		bufArg  string
		help    bool
	)
	flags := pflag.NewFlagSet(cmdName, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.CountVarP(&verbose, "verbose", "v", "")
	flags.BoolVarP(&raw, "raw", "r", false, "")
	flags.BoolVarP(&xzOnly, "xz", "x", false, "")
	flags.BoolVarP(&needCRC, "crc32", "c", false, "")
	flags.BoolVarP(&help, "help", "h", false, "")
	flags.StringVarP(&bufArg, "buffer-size", "b", "", "")
	if err := flags.Parse(os.Args[1:]); err != nil {
		log.Print(err)
		usage(os.Stderr)
		os.Exit(2)
	}
	if help {
		usage(os.Stdout)
		os.Exit(0)
	}
	if raw && xzOnly {
		log.Print("-r and -x exclude each other")
		os.Exit(2)
	}
	if raw && needCRC {
		log.Print("-c requires an xz envelope, which -r excludes")
		os.Exit(2)
	}
	if flags.NArg() > 1 {
		log.Print("too many arguments")
		os.Exit(2)
	}

	filename := "-"
	if flags.NArg() == 1 {
		filename = flags.Arg(0)
	}

	var (
		data []byte
		err  error
	)
	if filename == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(filename)
	}
	if err != nil {
		log.Fatalf("%s: %s", filename, err)
	}
	if len(data) == 0 {
		log.Fatalf("%s: file is empty", filename)
	}

	// By default the output buffer is four times the input size,
	// assuming a compression ratio of 25 percent.
	outSize := int64(len(data)) * 4
	if bufArg != "" {
		if outSize, err = strToSize(bufArg); err != nil {
			log.Print(err)
			os.Exit(2)
		}
	}
	if outSize != int64(int(outSize)) {
		log.Fatalf("output buffer size %d too large", outSize)
	}
	dst := make([]byte, outSize)

	if verbose >= 2 {
		lzma2.DebugOn(os.Stderr)
	}

	if needCRC {
		t, err := unlzma2.CheckType(data)
		if err != nil {
			log.Fatalf("%s: %s", filename, err)
		}
		if t != unlzma2.CheckCRC32 {
			log.Fatalf("%s: xz stream has no CRC32 check", filename)
		}
	}

	var n, k int
	switch {
	case raw:
		n, k, err = unlzma2.UncompressRaw(dst, data)
	case xzOnly:
		n, k, err = unlzma2.UncompressXZ(dst, data)
	default:
		n, k, err = unlzma2.Uncompress(dst, data)
	}

	if verbose > 0 {
		fmt.Fprintf(os.Stderr,
			"%s: uncompress([%d -> %d], [%d -> %d]) = %s\n",
			cmdName, len(data), k, len(dst), n, statusString(err))
	}

	if k > len(data) || n > len(dst) || k < 0 || n < 0 {
		log.Printf("decoder reported inconsistent cursors: "+
			"in %d/%d, out %d/%d", k, len(data), n, len(dst))
		os.Exit(3)
	}

	if _, werr := os.Stdout.Write(dst[:n]); werr != nil {
		log.Fatalf("(standard output): %s", werr)
	}

	if err != nil {
		log.Print(err)
		os.Exit(1)
	}
}
