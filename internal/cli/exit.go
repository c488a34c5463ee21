package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/nexusfab/tiletopo/pkg/errors"
)

// Process exit statuses.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitCorrupt     = 2   // the bit database violates the wire grammar
	ExitInterrupted = 130 // shell convention for SIGINT
)

// ExitCode maps the error returned by the root command to an exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.IsFatal(err):
		return ExitCorrupt
	}
	return ExitFailure
}

// ReportError writes err to w. Coded errors show the code after the
// message instead of before it.
func ReportError(w io.Writer, err error) {
	msg := err.Error()
	if code := errors.GetCode(err); code != "" {
		msg = strings.TrimPrefix(msg, string(code)+": ") + " " + StyleDim.Render("["+string(code)+"]")
	}
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}
