// docparse-ingest bulk-loads candidate documents from a directory into the
// database. Loaded documents sit in UPLOADED until the server parses them.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/candidatehq/docparse/internal/common"
	"github.com/candidatehq/docparse/internal/ingest"
	repo "github.com/candidatehq/docparse/internal/repository"
)

func main() {
	dir := flag.String("dir", "", "directory of .txt/.md documents to load (required)")
	keepHidden := flag.Bool("keep-hidden", false, "do not skip hidden files and directories")
	verbose := flag.Bool("v", false, "log every ingested file")
	flag.Parse()

	if *dir == "" {
		fmt.Fprintln(os.Stderr, "usage: docparse-ingest --dir <path> [--keep-hidden] [-v]")
		os.Exit(2)
	}

	_ = godotenv.Load()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := common.LoadConfig()
	if cfg.Database.DSN == "" {
		fmt.Fprintln(os.Stderr, "DB_URL is required")
		os.Exit(2)
	}

	ctx := context.Background()
	pool, err := repo.Open(ctx, repo.Config{
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer repo.Close(pool, logger)

	if err := repo.Migrate(ctx, pool, logger); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}

	ingestor := ingest.NewFSIngestor(repo.NewDocumentRepository(pool, logger), logger)
	results, stats, err := ingestor.IngestDirectory(ctx, *dir, !*keepHidden)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ingest: %v\n", err)
		os.Exit(1)
	}

	for _, r := range results {
		if r.Err != "" {
			fmt.Fprintf(os.Stderr, "failed: %s: %s\n", r.SourcePath, r.Err)
			continue
		}
		if *verbose {
			fmt.Printf("loaded: %s -> %s (dedup=%v)\n", r.SourcePath, r.DocumentID, r.Deduplicated)
		}
	}

	fmt.Printf("scanned %d, matched %d, loaded %d, deduplicated %d, failed %d\n",
		stats.Scanned, stats.Matched, stats.Succeeded, stats.Deduplicated, stats.Failed)
	if stats.Failed > 0 {
		os.Exit(1)
	}
}
