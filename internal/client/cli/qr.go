package cli

import (
	"context"
	"errors"
	"fmt"

	"qrstudio/internal/client/api"
	"qrstudio/internal/client/services"
)

// Generate creates a QR code from text. The synchronizer re-renders the
// history and stats as a side effect of the mutation.
func (a *App) Generate(ctx context.Context, text string) error {
	item, err := a.qrService.Generate(ctx, text)
	if err != nil {
		if errors.Is(err, services.ErrEmptyText) {
			fmt.Fprintln(a.out, "Nothing to encode: give me some text.")
			return err
		}
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}
	fmt.Fprintf(a.out, "Generated QR code #%d. Use 'save %d' to write the image to disk.\n", item.ID, item.ID)
	return nil
}

// GenerateFromImage uploads an image file and generates a QR code that
// encodes it. The file is validated locally before any bytes leave the
// machine.
func (a *App) GenerateFromImage(ctx context.Context, path string) error {
	item, err := a.qrService.GenerateFromImage(ctx, path)
	if err != nil {
		a.printUploadError(err)
		return err
	}
	fmt.Fprintf(a.out, "Generated QR code #%d from image.\n", item.ID)
	return nil
}

// Scan uploads a QR code image and prints the decoded text.
func (a *App) Scan(ctx context.Context, path string) error {
	text, err := a.qrService.Scan(ctx, path)
	if err != nil {
		a.printUploadError(err)
		return err
	}
	fmt.Fprintf(a.out, "Decoded: %s\n", text)
	return nil
}

// Upload sends a document file and generates a QR code linking to it.
func (a *App) Upload(ctx context.Context, path string) error {
	item, err := a.qrService.UploadDocument(ctx, path)
	if err != nil {
		a.printUploadError(err)
		return err
	}
	fmt.Fprintf(a.out, "Generated QR code #%d from document.\n", item.ID)
	return nil
}

func (a *App) printUploadError(err error) {
	switch {
	case errors.Is(err, api.ErrFileTooLarge):
		fmt.Fprintln(a.out, "File is too large.")
	case errors.Is(err, api.ErrUnsupportedFileType):
		fmt.Fprintln(a.out, "Unsupported file type.")
	default:
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
	}
}

// History fetches the current history and stats and renders them.
func (a *App) History(ctx context.Context) error {
	if _, err := a.qrService.Refresh(ctx); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}
	return nil
}

// ShowStats is an alias for History: the snapshot always carries both.
func (a *App) ShowStats(ctx context.Context) error {
	return a.History(ctx)
}

// Save writes a history item's QR image into the downloads directory.
func (a *App) Save(ctx context.Context, id int64) error {
	snap, err := a.qrService.Refresh(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}
	for _, item := range snap.History {
		if item.ID != id {
			continue
		}
		path, err := a.qrService.SaveImage(item, a.config.DownloadsDir)
		if err != nil {
			fmt.Fprintf(a.out, "Error: %s\n", err.Error())
			return err
		}
		fmt.Fprintf(a.out, "Saved to %s\n", path)
		return nil
	}
	fmt.Fprintf(a.out, "No history item with id %d\n", id)
	return services.ErrNotFound
}

// Delete removes a single history item.
func (a *App) Delete(ctx context.Context, id int64) error {
	if err := a.qrService.Delete(ctx, id); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}
	fmt.Fprintf(a.out, "Deleted #%d.\n", id)
	return nil
}

// Clear deletes the whole history after a confirmation prompt.
func (a *App) Clear(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Delete ALL history items? (yes/no)", a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	deleted, err := a.qrService.ClearHistory(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Error after deleting %d item(s): %s\n", deleted, err.Error())
		return err
	}
	fmt.Fprintf(a.out, "Deleted %d item(s).\n", deleted)
	return nil
}
