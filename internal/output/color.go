package output

import (
	"io"
	"os"
)

// ResolveColorMode folds a --color flag value into the isTTY decision the
// Printer styles key off: "never" and "always" force the answer, anything
// else (the "auto" default) trusts the detected value.
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch colorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return isTTY
	}
}

// IsTTY reports whether a writer is an interactive terminal. Anything that
// is not an *os.File character device (buffers in tests, pipes in shell
// composition) gets plain output.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
