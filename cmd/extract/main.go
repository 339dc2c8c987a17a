// Command extract runs the FIR extraction pipeline once: FIR text from a
// file argument or stdin, structured record as JSON on stdout.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dharma-project/fir-extractor/internal/extract"
	"github.com/dharma-project/fir-extractor/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	witnesses := flag.Bool("witnesses", true, "enable the witness heuristic")
	verbose := flag.Bool("v", false, "log pipeline details to stderr")
	flag.Parse()

	text, err := readInput(flag.Arg(0))
	if err != nil {
		return err
	}
	if extract.IsBlank(text) {
		return fmt.Errorf("input is empty or whitespace-only")
	}

	log := logger.NewNop()
	if *verbose {
		log = logger.Must(logger.Config{Level: "debug", OutputPaths: []string{"stderr"}})
		defer log.Sync()
	}

	extractor := extract.New(log, nil, extract.Config{WitnessHeuristic: *witnesses})
	rec := extractor.Extract(context.Background(), extract.InputCLI, text)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	_, err = os.Stdout.Write(buf.Bytes())
	return err
}

// readInput reads the FIR text from the path argument, or stdin when no
// argument (or "-") is given.
func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
