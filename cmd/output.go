package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	headingColor = color.New(color.Bold, color.FgCyan)  //nolint:gochecknoglobals // colour palette
	errorColor   = color.New(color.FgRed)               //nolint:gochecknoglobals // colour palette
	successColor = color.New(color.FgGreen)             //nolint:gochecknoglobals // colour palette
)

// Heading prints title as a section heading.
// Colours are only used if the output is a terminal.
func Heading(w io.Writer, title string) {
	_, _ = headingColor.Fprintln(w, title)
}

// Item prints one entry of a list below a Heading.
func Item(w io.Writer, item any) {
	_, _ = fmt.Fprintf(w, "- %v\n", item)
}

// Failure reports an error that does not stop the command.
func Failure(w io.Writer, err error) {
	_, _ = errorColor.Fprintf(w, "error: %v\n", err)
}

// Success reports a finished step.
func Success(w io.Writer, msg string) {
	_, _ = successColor.Fprintln(w, msg)
}
