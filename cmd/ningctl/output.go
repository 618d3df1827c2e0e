package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ningdev/ningapi/ningapi/client"

	"github.com/mattn/go-isatty"
)

// Writes the response envelope; indented when stdout is a terminal.
func printResult(w io.Writer, res *client.Result) error {
	return writeEnvelope(w, res.Raw, isatty.IsTerminal(os.Stdout.Fd()))
}

func writeEnvelope(w io.Writer, raw []byte, indent bool) error {
	raw = bytes.TrimSpace(raw)
	if !indent {
		_, err := fmt.Fprintln(w, string(raw))
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, buf.String())
	return err
}
