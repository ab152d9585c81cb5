package api

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func imageUpload(size int64) Upload {
	return Upload{
		Name:        "qr.png",
		ContentType: "image/png",
		Size:        size,
		Reader:      strings.NewReader("fake png bytes"),
	}
}

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name    string
		u       Upload
		wantErr error
	}{
		{"ok", imageUpload(1024), nil},
		{"exactly at limit", imageUpload(MaxImageSize), nil},
		{"over limit", imageUpload(MaxImageSize + 1), ErrFileTooLarge},
		{"not an image", Upload{Name: "a.pdf", ContentType: "application/pdf", Size: 10}, ErrUnsupportedFileType},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateImage(tc.u)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		ct      string
		size    int64
		wantErr error
	}{
		{"pdf ok", "application/pdf", 1024, nil},
		{"plain text ok", "text/plain", 1024, nil},
		{"docx ok", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", 1024, nil},
		{"image rejected", "image/png", 1024, ErrUnsupportedFileType},
		{"over limit", "application/pdf", MaxDocumentSize + 1, ErrFileTooLarge},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateDocument(Upload{Name: "f", ContentType: tc.ct, Size: tc.size})
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestGenerateFromImage_OversizeIssuesNoRequest(t *testing.T) {
	requests := 0
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{}`))
	}))

	// 101 MiB png: short-circuits with a size-limit error, zero requests.
	_, err := c.GenerateFromImage(context.Background(), imageUpload(101<<20))
	require.ErrorIs(t, err, ErrFileTooLarge)
	assert.Zero(t, requests)

	_, err = c.UploadDocument(context.Background(), imageUpload(10))
	require.ErrorIs(t, err, ErrUnsupportedFileType)
	assert.Zero(t, requests)
}

func TestScan_SendsMultipartWithBearer(t *testing.T) {
	var gotAuth, gotCT, gotFilename, gotPartCT, gotBody string
	c, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCT = r.Header.Get("Content-Type")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		gotFilename = header.Filename
		gotPartCT = header.Header.Get("Content-Type")
		buf := make([]byte, header.Size)
		n, _ := file.Read(buf)
		gotBody = string(buf[:n])

		w.Write([]byte(`{"text":"https://example.org"}`))
	}))

	require.NoError(t, store.SetToken("tok"))

	text, err := c.Scan(context.Background(), imageUpload(14))
	require.NoError(t, err)
	assert.Equal(t, "https://example.org", text)

	assert.Equal(t, "Bearer tok", gotAuth)
	// The transport owns the boundary; we only pass through what the
	// multipart writer computed.
	assert.True(t, strings.HasPrefix(gotCT, "multipart/form-data; boundary="), gotCT)
	assert.Equal(t, "qr.png", gotFilename)
	assert.Equal(t, "image/png", gotPartCT)
	assert.Equal(t, "fake png bytes", gotBody)
}

func TestScan_ServerError(t *testing.T) {
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"No QR code found in image"}`))
	}))

	_, err := c.Scan(context.Background(), imageUpload(10))
	require.Error(t, err)
	assert.EqualError(t, err, "No QR code found in image")
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hello"), 0o600))

	u, closeFn, err := OpenFile(txt)
	require.NoError(t, err)
	defer closeFn()

	assert.Equal(t, "note.txt", u.Name)
	assert.Equal(t, int64(5), u.Size)
	// Parameters like charset are stripped so the allow-list matches.
	assert.Equal(t, "text/plain", u.ContentType)
}

func TestOpenFile_UnknownExtensionSniffs(t *testing.T) {
	dir := t.TempDir()

	// PNG magic bytes with an extension the mime table does not know.
	png := append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, make([]byte, 64)...)
	path := filepath.Join(dir, "snapshot.qrimg")
	require.NoError(t, os.WriteFile(path, png, 0o600))

	u, closeFn, err := OpenFile(path)
	require.NoError(t, err)
	defer closeFn()

	assert.Equal(t, "image/png", u.ContentType)

	// The sniffed head must still be part of the streamed body.
	all := make([]byte, len(png)+10)
	n, _ := u.Reader.Read(all)
	assert.GreaterOrEqual(t, n, 8)
	assert.Equal(t, png[:8], all[:8])
}

func TestOpenFile_Missing(t *testing.T) {
	_, _, err := OpenFile(filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
}
