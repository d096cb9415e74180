package diag

import (
	"fmt"
	"io"

	"github.com/hknutzen/caida-to-cache/pkg/oslink"
)

// Reporter writes messages to stderr of the running program.
type Reporter struct {
	w        io.Writer
	showDiag bool
}

func New(d oslink.Data) *Reporter {
	return &Reporter{w: d.Stderr, showDiag: d.ShowDiag}
}

func (r *Reporter) Err(format string, args ...interface{}) {
	fmt.Fprintf(r.w, "Error: "+format+"\n", args...)
}

func (r *Reporter) Warn(format string, args ...interface{}) {
	fmt.Fprintf(r.w, "Warning: "+format+"\n", args...)
}

// Msg is only shown if environment variable SHOW_DIAG is set.
func (r *Reporter) Msg(format string, args ...interface{}) {
	if r.showDiag {
		fmt.Fprintf(r.w, "DIAG: "+format+"\n", args...)
	}
}

// Abort shows err and returns exit status 1.
func (r *Reporter) Abort(err error) int {
	r.Err("%s", err)
	fmt.Fprintln(r.w, "Aborted")
	return 1
}
