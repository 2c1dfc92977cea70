// Command ibgrep searches lines and file names for a pattern typed in pinyin
// or romaji.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/cockroachdb/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, newRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext)
	stop()
	os.Exit(code)
}

// execute runs the command and maps its error to an exit status: 0 on
// matches, 1 on no match, 2 on failure.
func execute(ctx context.Context, exec func(context.Context) error) int {
	err := exec(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errNoMatch):
		return 1
	}
	reportError(os.Stderr, err)
	return 2
}

func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "ibgrep: %v\n", err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "hint: %s\n", hint)
	}
}
