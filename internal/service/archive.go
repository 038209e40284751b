package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"quoteapi/internal/model"
	"quoteapi/internal/repository"
	"quoteapi/internal/storage"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("analysis not found")
)

// DownloadURLExpiry is how long presigned download links stay valid.
const DownloadURLExpiry = 15 * time.Minute

// ArchiveInput is a finished analysis and the upload it was produced from.
type ArchiveInput struct {
	Upload   model.Upload
	Mode     model.Mode
	Location string
	Analysis any
}

// AnalysisListResult is a page of archived analyses.
type AnalysisListResult struct {
	Items []model.Record `json:"data"`
	Total int            `json:"total"`
}

// ArchivedAnalysis is a record plus a short-lived link to the original upload.
type ArchivedAnalysis struct {
	model.Record
	DownloadURL string `json:"download_url,omitempty"`
}

// Archiver is the part of the archive the analysis flow needs.
type Archiver interface {
	Store(ctx context.Context, in ArchiveInput) (*model.Record, error)
}

// ArchiveService keeps uploads in object storage and their analyses in the database.
type ArchiveService interface {
	Archiver

	// List returns archived analyses newest first, without payloads.
	List(ctx context.Context, limit, offset int) (*AnalysisListResult, error)

	// Get returns one archived analysis with a presigned download URL.
	Get(ctx context.Context, id string) (*ArchivedAnalysis, error)

	// Open streams the original upload. The caller closes the reader.
	Open(ctx context.Context, id string) (io.ReadCloser, *model.Record, error)

	// Delete removes the stored object, then the row.
	Delete(ctx context.Context, id string) error
}

type archiveService struct {
	store storage.Storage
	repo  repository.AnalysisRepository
}

func NewArchiveService(store storage.Storage, repo repository.AnalysisRepository) ArchiveService {
	return &archiveService{store: store, repo: repo}
}

// Store uploads the file, then saves the row. A failed insert removes the uploaded object.
func (s *archiveService) Store(ctx context.Context, in ArchiveInput) (*model.Record, error) {
	payload, err := json.Marshal(in.Analysis)
	if err != nil {
		return nil, fmt.Errorf("encode analysis: %w", err)
	}

	id := uuid.New().String()
	now := time.Now().UTC()
	key := storage.QuoteKey(id, in.Upload.Filename, now)

	obj, err := s.store.Put(ctx, key, bytes.NewReader(in.Upload.Data), storage.PutObjectOptions{
		Size:        int64(len(in.Upload.Data)),
		ContentType: in.Upload.ContentType,
		Metadata: map[string]string{
			"original-filename": in.Upload.Filename,
			"analysis-mode":     string(in.Mode),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	rec, err := s.repo.Create(ctx, &model.Record{
		ID:          id,
		Filename:    in.Upload.Filename,
		StoragePath: obj.Key,
		Size:        int64(len(in.Upload.Data)),
		ContentType: in.Upload.ContentType,
		Mode:        in.Mode,
		Location:    in.Location,
		Analysis:    payload,
		CreatedAt:   now,
	})
	if err != nil {
		if delErr := s.store.Delete(ctx, obj.Key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return rec, nil
}

func (s *archiveService) List(ctx context.Context, limit, offset int) (*AnalysisListResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &AnalysisListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *archiveService) Get(ctx context.Context, id string) (*ArchivedAnalysis, error) {
	rec, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	url, err := s.store.PresignGet(ctx, rec.StoragePath, DownloadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign download: %w", err)
	}
	return &ArchivedAnalysis{Record: *rec, DownloadURL: url}, nil
}

func (s *archiveService) Open(ctx context.Context, id string) (io.ReadCloser, *model.Record, error) {
	rec, err := s.find(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, rec.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open stored file: %w", err)
	}
	return rc, rec, nil
}

// Delete keeps the row when the object cannot be removed, so the path is not lost.
func (s *archiveService) Delete(ctx context.Context, id string) error {
	rec, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, rec.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *archiveService) find(ctx context.Context, id string) (*model.Record, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}
