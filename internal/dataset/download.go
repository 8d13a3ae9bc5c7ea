package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Downloader fetches the disclosure workbook over HTTP. Fetching is a
// one-time bootstrap concern: files already on disk are never re-fetched.
type Downloader struct {
	client *http.Client
	logger *zap.Logger
}

// NewDownloader creates a downloader. The generous timeout covers the
// multi-hundred-megabyte workbook on slow links.
func NewDownloader(logger *zap.Logger) *Downloader {
	return &Downloader{
		client: &http.Client{Timeout: 30 * time.Minute},
		logger: logger,
	}
}

// Fetch downloads url into path unless the file already exists. Partial
// downloads resume via a Range request when the server honors them.
func (d *Downloader) Fetch(ctx context.Context, url, path string) error {
	if _, err := os.Stat(path); err == nil {
		d.logger.Info("dataset already present, skipping download",
			zap.String("path", path))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	partial := path + ".partial"
	offset := int64(0)
	if st, err := os.Stat(partial); err == nil {
		offset = st.Size()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if offset > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", offset))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	flags := os.O_CREATE | os.O_WRONLY
	switch resp.StatusCode {
	case http.StatusPartialContent:
		flags |= os.O_APPEND
	case http.StatusOK:
		offset = 0
		flags |= os.O_TRUNC
	default:
		return fmt.Errorf("download %s: unexpected status %s", url, resp.Status)
	}

	out, err := os.OpenFile(filepath.Clean(partial), flags, 0o640)
	if err != nil {
		return fmt.Errorf("open %s: %w", partial, err)
	}

	n, copyErr := io.Copy(out, resp.Body)
	closeErr := out.Close()
	if copyErr != nil {
		return fmt.Errorf("write %s: %w", partial, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close %s: %w", partial, closeErr)
	}

	if err := os.Rename(partial, path); err != nil {
		return fmt.Errorf("finalize %s: %w", path, err)
	}

	d.logger.Info("dataset downloaded",
		zap.String("path", path),
		zap.Int64("bytes", offset+n))
	return nil
}
