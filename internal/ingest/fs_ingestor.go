package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/candidatehq/docparse/constants"
	"github.com/candidatehq/docparse/internal/entity"
	"github.com/candidatehq/docparse/internal/repository"
)

// MaxFileSize caps how much text we are willing to ingest from one file.
const MaxFileSize = 4 << 20

// FSIngestor reads candidate documents from the local filesystem.
type FSIngestor struct {
	Docs   repository.DocumentRepository
	Logger *slog.Logger
}

func NewFSIngestor(docs repository.DocumentRepository, logger *slog.Logger) *FSIngestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FSIngestor{Docs: docs, Logger: logger}
}

func (i *FSIngestor) IngestPath(ctx context.Context, path string) (IngestionResult, error) {
	var out IngestionResult

	abs, err := filepath.Abs(path)
	if err != nil {
		i.Logger.Error("ingest.path.failed", "path", path, "err", err)
		return out, err
	}

	ext := constants.NormalizeExt(filepath.Ext(abs))
	if ext == "" || !AllowedExt(ext) {
		return out, fmt.Errorf("unsupported or missing extension: %q", ext)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return out, err
	}
	if info.Size() > MaxFileSize {
		return out, fmt.Errorf("file too large: %d bytes", info.Size())
	}

	raw, err := os.ReadFile(abs)
	if err != nil {
		i.Logger.Error("ingest.read.failed", "path", abs, "err", err)
		return out, err
	}
	if !utf8.Valid(raw) {
		return out, fmt.Errorf("file is not valid UTF-8 text")
	}

	sum := sha256.Sum256(raw)
	now := time.Now().UTC()

	row, dedup, err := i.Docs.UpsertByHash(ctx, &entity.Document{
		ID:          uuid.New(),
		SourcePath:  abs,
		Filename:    filepath.Base(abs),
		FileExt:     ext,
		ContentHash: sum[:],
		Text:        string(raw),
		Status:      constants.StatusUploaded,
		UploadedAt:  now,
	})
	if err != nil {
		return out, err
	}

	out = IngestionResult{
		SourcePath:   row.SourcePath,
		DocumentID:   row.ID.String(),
		Deduplicated: dedup,
		HashHex:      hex.EncodeToString(sum[:]),
		FileExt:      row.FileExt,
		UploadedAt:   row.UploadedAt,
	}
	return out, nil
}

// IngestDirectory walks root, skips hidden entries if requested,
// and calls IngestPath for each file. Returns per-file results + aggregate stats.
func (i *FSIngestor) IngestDirectory(
	ctx context.Context,
	root string,
	skipHidden bool,
) ([]IngestionResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root_path is required")
	}

	var results []IngestionResult
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			results = append(results, IngestionResult{SourcePath: path, Err: walkErr.Error()})
			stats.Failed++
			return nil
		}
		if skipHidden && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}
		ext := constants.NormalizeExt(filepath.Ext(path))
		if !AllowedExt(ext) {
			return nil
		}
		stats.Matched++

		r, err := i.IngestPath(ctx, path)
		if err != nil {
			results = append(results, IngestionResult{SourcePath: path, Err: err.Error()})
			stats.Failed++
			return nil
		}

		results = append(results, r)
		stats.Succeeded++
		if r.Deduplicated {
			stats.Deduplicated++
		}
		return nil
	})

	if err != nil {
		return results, stats, fmt.Errorf("walk: %w", err)
	}
	return results, stats, nil
}
