package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/candidatehq/docparse/constants"
	"github.com/candidatehq/docparse/internal/pipeline"
	"github.com/candidatehq/docparse/internal/validation"
)

// parsefile runs the parsing pipeline over a single local file and prints
// the result as JSON. No database involved; useful for tuning dictionaries.
func main() {
	var (
		file     = flag.String("file", "", "path to a .txt or .md document (required)")
		typeHint = flag.String("type", "", "optional document type hint (CV, ASSESSMENT, INTERVIEW, COVER_LETTER)")
		minConf  = flag.Float64("min-confidence", 0.5, "confidence below which the result is routed to manual review")
		verbose  = flag.Bool("v", false, "log pipeline stages to stderr")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "error: --file is required")
		flag.Usage()
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var hint *constants.DocumentType
	if *typeHint != "" {
		dt, ok := constants.ParseDocumentType(*typeHint)
		if !ok {
			fmt.Fprintf(os.Stderr, "error: unknown document type %q\n", *typeHint)
			os.Exit(1)
		}
		hint = &dt
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	pipe := pipeline.New(logger, validation.NewEngine(logger), float32(*minConf))
	res := pipe.Run(pipeline.Request{
		DocumentID:   uuid.New(),
		Text:         string(raw),
		FilenameHint: *file,
		TypeHint:     hint,
	})

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if res.Status == constants.StatusError {
		os.Exit(2)
	}
}
