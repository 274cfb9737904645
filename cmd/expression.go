package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/relex/gotils/logger"
	"github.com/relex/slog-protocol/base/bparse"
	"github.com/relex/slog-protocol/defs"
)

func runSelectCommand(args []string) {
	if len(args) < 1 {
		logger.Fatal("missing selector expression")
	}
	if err := runSelect(os.Stdout, args[0], args[1:]); err != nil {
		reportSyntaxError(os.Stderr, err)
		logger.WithField(defs.LabelExpression, args[0]).Fatalf("%s", err)
	}
}

// runSelect prints the canonical form of the selector and whether it matches the tags
func runSelect(writer io.Writer, expression string, tags []string) error {
	selector, err := bparse.ParseTagSelector(expression)
	if err != nil {
		return err
	}
	fmt.Fprintf(writer, "selector: %s\n", selector)
	fmt.Fprintf(writer, "matches %v: %t\n", tags, selector.MatchNames(tags...))
	return nil
}

func runCheckCommand(args []string) {
	if len(args) != 1 {
		logger.Fatal("expected exactly one matcher expression")
	}
	if err := runCheck(os.Stdout, args[0]); err != nil {
		reportSyntaxError(os.Stderr, err)
		logger.WithField(defs.LabelExpression, args[0]).Fatalf("%s", err)
	}
}

// runCheck prints the normalized form of the matcher
func runCheck(writer io.Writer, expression string) error {
	m, err := bparse.ParseMatcher(expression)
	if err != nil {
		return err
	}
	fmt.Fprintf(writer, "matcher: %s\n", m)
	fmt.Fprintf(writer, "kind: %s\n", m.Kind())
	fmt.Fprintf(writer, "tag selector: %t\n", m.IsTagSelector())
	return nil
}

func reportSyntaxError(writer io.Writer, err error) {
	var syntaxErr *bparse.SyntaxError
	if errors.As(err, &syntaxErr) {
		if marker := syntaxErr.Marker(); marker != "" {
			fmt.Fprintln(writer, marker)
		}
	}
}
