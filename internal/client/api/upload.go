package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"qrstudio/internal/client/models"
)

// Upload size limits, checked client-side before any request is issued.
const (
	MaxImageSize    = 100 << 20 // 100 MiB
	MaxDocumentSize = 50 << 20  // 50 MiB
)

// allowedDocumentTypes is the document upload allow-list.
var allowedDocumentTypes = map[string]struct{}{
	"application/pdf":    {},
	"text/plain":         {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

// Upload describes a file about to be sent as multipart form data.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// OpenFile prepares an Upload from a path. The content type comes from the
// file extension, falling back to sniffing the first bytes. The returned
// close func must be called after the upload is sent.
func OpenFile(path string) (Upload, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return Upload{}, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return Upload{}, nil, err
	}

	u := Upload{Name: filepath.Base(path), Size: info.Size(), Reader: f}

	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		head := make([]byte, 512)
		n, _ := io.ReadFull(f, head)
		ct = http.DetectContentType(head[:n])
		u.Reader = io.MultiReader(bytes.NewReader(head[:n]), f)
	}
	// Strip parameters: "text/plain; charset=utf-8" -> "text/plain".
	if base, _, ok := strings.Cut(ct, ";"); ok {
		ct = base
	}
	u.ContentType = strings.TrimSpace(ct)

	return u, f.Close, nil
}

// validateImage enforces the client-side image upload rules. A non-nil
// return means no request may be issued.
func validateImage(u Upload) error {
	if !strings.HasPrefix(u.ContentType, "image/") {
		return fmt.Errorf("please upload an image file: %w", ErrUnsupportedFileType)
	}
	if u.Size > MaxImageSize {
		return fmt.Errorf("file size exceeds 100MB limit: %w", ErrFileTooLarge)
	}
	return nil
}

// validateDocument enforces the document allow-list and size limit.
func validateDocument(u Upload) error {
	if _, ok := allowedDocumentTypes[u.ContentType]; !ok {
		return fmt.Errorf("unsupported document type: %w", ErrUnsupportedFileType)
	}
	if u.Size > MaxDocumentSize {
		return fmt.Errorf("file size exceeds 50MB limit: %w", ErrFileTooLarge)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// postMultipart sends the file as the "file" form field. The request's
// Content-Type is only what multipart.Writer computes (boundary included);
// nothing is set by hand, mirroring how the transport must own the boundary.
func (c *Client) postMultipart(ctx context.Context, path string, u Upload, out any, fallback string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(u.Name)))
	h.Set("Content-Type", u.ContentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, u.Reader); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, &buf, w.FormDataContentType())
	if err != nil {
		return err
	}
	return c.do(req, out, fallback)
}

// GenerateFromImage scans an uploaded image server-side and re-generates a
// QR code from its contents. Validation failures issue no request.
func (c *Client) GenerateFromImage(ctx context.Context, u Upload) (models.HistoryItem, error) {
	if err := validateImage(u); err != nil {
		return models.HistoryItem{}, err
	}
	var item models.HistoryItem
	err := c.postMultipart(ctx, "/api/qr/generate-image", u, &item, "Failed to generate QR code from image")
	return item, err
}

// Scan decodes the QR code in an uploaded image and returns its text.
func (c *Client) Scan(ctx context.Context, u Upload) (string, error) {
	if err := validateImage(u); err != nil {
		return "", err
	}
	var resp struct {
		Text string `json:"text"`
	}
	if err := c.postMultipart(ctx, "/api/qr/scan", u, &resp, "QR code not readable"); err != nil {
		return "", err
	}
	return resp.Text, nil
}

// UploadDocument uploads a document and returns the QR history item the
// backend generated for it.
func (c *Client) UploadDocument(ctx context.Context, u Upload) (models.HistoryItem, error) {
	if err := validateDocument(u); err != nil {
		return models.HistoryItem{}, err
	}
	var item models.HistoryItem
	err := c.postMultipart(ctx, "/api/qr/upload-doc", u, &item, "Failed to upload document")
	return item, err
}
