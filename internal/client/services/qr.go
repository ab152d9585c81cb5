package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"qrstudio/internal/client/api"
	"qrstudio/internal/client/models"
	"qrstudio/internal/logging"
)

// QRService drives the generate/scan/history workflow. Every successful
// mutation is followed by a full synchronizer refresh; the returned item is
// the server's record, never a locally invented one.
type QRService interface {
	Generate(ctx context.Context, text string) (models.HistoryItem, error)
	GenerateFromImage(ctx context.Context, path string) (models.HistoryItem, error)
	Scan(ctx context.Context, path string) (string, error)
	UploadDocument(ctx context.Context, path string) (models.HistoryItem, error)
	Delete(ctx context.Context, id int64) error
	ClearHistory(ctx context.Context) (int, error)
	Refresh(ctx context.Context) (models.Snapshot, error)
	SaveImage(item models.HistoryItem, dir string) (string, error)
}

type qrService struct {
	backend Backend
	sync    *Synchronizer
	log     logging.Logger
}

func NewQRService(backend Backend, sync *Synchronizer, log logging.Logger) QRService {
	return &qrService{backend: backend, sync: sync, log: log.With("component", "qr")}
}

func (q *qrService) Generate(ctx context.Context, text string) (models.HistoryItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.HistoryItem{}, ErrEmptyText
	}
	item, err := q.backend.Generate(ctx, text)
	if err != nil {
		return models.HistoryItem{}, err
	}
	if _, err := q.sync.Refresh(ctx); err != nil {
		return item, err
	}
	return item, nil
}

func (q *qrService) GenerateFromImage(ctx context.Context, path string) (models.HistoryItem, error) {
	u, closeFn, err := api.OpenFile(path)
	if err != nil {
		return models.HistoryItem{}, err
	}
	defer closeFn()

	item, err := q.backend.GenerateFromImage(ctx, u)
	if err != nil {
		return models.HistoryItem{}, err
	}
	if _, err := q.sync.Refresh(ctx); err != nil {
		return item, err
	}
	return item, nil
}

func (q *qrService) Scan(ctx context.Context, path string) (string, error) {
	u, closeFn, err := api.OpenFile(path)
	if err != nil {
		return "", err
	}
	defer closeFn()

	text, err := q.backend.Scan(ctx, u)
	if err != nil {
		return "", err
	}
	if _, err := q.sync.Refresh(ctx); err != nil {
		return text, err
	}
	return text, nil
}

func (q *qrService) UploadDocument(ctx context.Context, path string) (models.HistoryItem, error) {
	u, closeFn, err := api.OpenFile(path)
	if err != nil {
		return models.HistoryItem{}, err
	}
	defer closeFn()

	item, err := q.backend.UploadDocument(ctx, u)
	if err != nil {
		return models.HistoryItem{}, err
	}
	if _, err := q.sync.Refresh(ctx); err != nil {
		return item, err
	}
	return item, nil
}

func (q *qrService) Delete(ctx context.Context, id int64) error {
	if err := q.backend.DeleteQR(ctx, id); err != nil {
		return err
	}
	_, err := q.sync.Refresh(ctx)
	return err
}

// ClearHistory deletes every history item one by one (the backend has no
// bulk endpoint), then refreshes once. Returns how many were deleted.
func (q *qrService) ClearHistory(ctx context.Context) (int, error) {
	items, err := q.backend.History(ctx)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, item := range items {
		if err := q.backend.DeleteQR(ctx, item.ID); err != nil {
			return deleted, err
		}
		deleted++
	}
	if _, err := q.sync.Refresh(ctx); err != nil {
		return deleted, err
	}
	return deleted, nil
}

func (q *qrService) Refresh(ctx context.Context) (models.Snapshot, error) {
	return q.sync.Refresh(ctx)
}

const dataURLPrefix = "data:image/png;base64,"

// SaveImage writes a history item's QR image to a PNG file under dir and
// returns the path. The filename is derived from the item's text, the way
// the downloaded file was named in the web UI.
func (q *qrService) SaveImage(item models.HistoryItem, dir string) (string, error) {
	if !strings.HasPrefix(item.Image, dataURLPrefix) {
		return "", fmt.Errorf("history item %d has no image: %w", item.ID, ErrNotFound)
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(item.Image, dataURLPrefix))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("qr-code-%s.png", sanitizeFilename(item.Text, 20))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// sanitizeFilename keeps a safe prefix of the text for use in a filename.
func sanitizeFilename(text string, max int) string {
	if len(text) > max {
		text = text[:max]
	}
	var b strings.Builder
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "qr"
	}
	return b.String()
}
