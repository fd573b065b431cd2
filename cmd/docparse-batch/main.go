package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/candidatehq/docparse/constants"
	"github.com/candidatehq/docparse/internal/ingest"
	"github.com/candidatehq/docparse/internal/pipeline"
	"github.com/candidatehq/docparse/internal/store"
	"github.com/candidatehq/docparse/internal/validation"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

// docparse-batch walks a directory of candidate documents, parses each file
// and records the outcomes in a local SQLite database. Files whose content
// was already parsed are skipped unless --force is set.
func main() {
	var (
		dir     = flag.String("dir", "", "directory of documents to process (required)")
		dbPath  = flag.String("db", "", "SQLite results database (defaults to <dir>/../docparse.db)")
		minConf = flag.Float64("min-confidence", 0.5, "confidence below which results need review")
		force   = flag.Bool("force", false, "re-parse documents already present in the results database")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *dbPath == "" {
		*dbPath = filepath.Join(filepath.Dir(*dir), "docparse.db")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	st, err := store.Open(*dbPath)
	if err != nil {
		printError("Error: open results database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	pipe := pipeline.New(logger, validation.NewEngine(logger), float32(*minConf))

	var scanned, parsed, skipped, failed int
	err = filepath.WalkDir(*dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			logger.Error("walk error", "path", path, "error", walkErr)
			failed++
			return nil
		}
		if ingest.IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !ingest.AllowedExt(filepath.Ext(path)) {
			return nil
		}
		scanned++

		raw, err := os.ReadFile(path)
		if err != nil {
			logger.Error("read failed", "path", path, "error", err)
			failed++
			return nil
		}

		hash := pipeline.ContentHash(string(raw))
		if !*force {
			seen, err := st.SeenHash(hash)
			if err != nil {
				logger.Error("dedup check failed", "path", path, "error", err)
				failed++
				return nil
			}
			if seen {
				skipped++
				return nil
			}
		}

		res := pipe.Run(pipeline.Request{
			DocumentID:   uuid.New(),
			Text:         string(raw),
			FilenameHint: filepath.Base(path),
		})
		if err := st.SaveResult(hash, filepath.Base(path), res); err != nil {
			logger.Error("save failed", "path", path, "error", err)
			failed++
			return nil
		}
		parsed++
		return nil
	})
	if err != nil {
		printError("Error: walk: %v\n", err)
		os.Exit(1)
	}

	counts, err := st.CountByStatus()
	if err != nil {
		printError("Error: summarize results: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("scanned %d, parsed %d, skipped %d, failed %d\n", scanned, parsed, skipped, failed)
	for _, status := range constants.Statuses {
		if n := counts[status]; n > 0 {
			fmt.Printf("  %-14s %d\n", status, n)
		}
	}

	review, err := st.ListNeedsReview()
	if err == nil && len(review) > 0 {
		fmt.Printf("\n%d document(s) need review:\n", len(review))
		for _, r := range review {
			line := r.Filename
			if r.DocType != "" {
				line += " (" + strings.ToLower(r.DocType) + ")"
			}
			fmt.Printf("  %s confidence=%.2f\n", line, r.Confidence)
		}
	}
}
