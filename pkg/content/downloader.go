package content

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/japaniel/alifba/pkg/logger"
)

// maxPackSize bounds the extracted pack file.
const maxPackSize = 64 << 20

// Downloader fetches content packs published as .tar.gz archives.
type Downloader struct {
	Client *http.Client
	Log    *logger.Logger
}

func NewDownloader(log *logger.Logger) *Downloader {
	return &Downloader{
		Client: &http.Client{Timeout: 60 * time.Second},
		Log:    logger.OrNop(log),
	}
}

// EnsureContent checks if a content pack exists at path.
// If not, it downloads the archive at url and extracts the first JSON file
// it holds to path.
func (d *Downloader) EnsureContent(ctx context.Context, path, url string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	if url == "" {
		return fmt.Errorf("content pack not found at %s and no download url configured", path)
	}

	d.Log.Info("content pack missing, downloading", "path", path, "url", url)
	return d.downloadAndExtract(ctx, url, path)
}

func (d *Downloader) downloadAndExtract(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "alifba-cli")

	resp, err := d.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: %s", resp.Status)
	}

	gzReader, err := gzip.NewReader(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzReader.Close()

	tarReader := tar.NewReader(gzReader)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("error reading tar archive: %w", err)
		}
		if header.Typeflag != tar.TypeReg || !strings.HasSuffix(header.Name, ".json") {
			continue
		}
		if header.Size > maxPackSize {
			return fmt.Errorf("pack %s is %d bytes, limit is %d", header.Name, header.Size, maxPackSize)
		}
		return writeAtomic(destPath, io.LimitReader(tarReader, maxPackSize))
	}

	return fmt.Errorf("no json file found in downloaded archive")
}

// writeAtomic replaces destPath only once r has been copied in full.
func writeAtomic(destPath string, r io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(destPath), ".alifba-pack-*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write to file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), destPath)
}
