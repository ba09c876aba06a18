package kaggle

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"git.appkode.ru/pub/go/failure"

	"play_insights/internal/config"
	"play_insights/pkg/contextx"
	"play_insights/pkg/errcodes"
	"play_insights/pkg/httpx"
	"play_insights/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const downloadTimeout = 5 * time.Minute

// Client скачивает датасет через Kaggle API (zip-архив, basic auth) и
// держит извлечённый CSV в локальном кеше на диске.
type Client struct {
	cfg        config.Kaggle
	httpClient *http.Client
}

func NewClient(cfg config.Kaggle, logFieldMaxLen int) *Client {
	transport := http.RoundTripper(http.DefaultTransport)
	transport = httpx.NewAuthBasicRoundTripper(transport, cfg.Username, cfg.Key)
	transport = httpx.NewLoggingRoundTripper(
		transport,
		httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
		httpx.WithLogFieldMaxLen(logFieldMaxLen),
	)

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   downloadTimeout,
		},
	}
}

// DatasetCSV возвращает путь к CSV-файлу датасета. Локальный кеш имеет
// приоритет: при наличии файла сеть не используется вовсе.
func (c *Client) DatasetCSV(ctx context.Context) (string, error) {
	cached := filepath.Join(c.cfg.CacheDir, c.cfg.DatasetFile)

	if _, err := os.Stat(cached); err == nil {
		logger(ctx).Info("dataset found in local cache", slog.String("path", cached))

		return cached, nil
	}

	if c.cfg.Username == "" || c.cfg.Key == "" {
		return "", failure.NewUnauthorizedError(
			"kaggle credentials are not configured",
			failure.WithCode(errcodes.CredentialsMissing),
			failure.WithDescription("Set KAGGLE_USERNAME and KAGGLE_KEY"),
		)
	}

	archivePath, err := c.download(ctx)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer os.Remove(archivePath)

	if err := extractFile(archivePath, c.cfg.DatasetFile, cached); err != nil {
		return "", fmt.Errorf("extractFile: %w", err)
	}

	logger(ctx).Info("dataset downloaded",
		slog.String("dataset", c.cfg.Dataset),
		slog.String("path", cached),
	)

	return cached, nil
}

func (c *Client) download(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/datasets/download/%s", c.cfg.BaseURL, c.cfg.Dataset)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", failure.NewUnauthorizedError(
			fmt.Sprintf("kaggle rejected credentials: status %d", resp.StatusCode),
			failure.WithCode(errcodes.CredentialsMissing),
			failure.WithDescription("Check KAGGLE_USERNAME and KAGGLE_KEY"),
		)
	case http.StatusNotFound:
		return "", failure.NewNotFoundError(
			fmt.Sprintf("dataset %q not found", c.cfg.Dataset),
			failure.WithCode(errcodes.DatasetNotFound),
			failure.WithDescription("The dataset handle is unknown to Kaggle"),
		)
	default:
		return "", fmt.Errorf("kaggle responded with status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(c.cfg.CacheDir, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll: %w", err)
	}

	archive, err := os.CreateTemp(c.cfg.CacheDir, "dataset-*.zip")
	if err != nil {
		return "", fmt.Errorf("os.CreateTemp: %w", err)
	}
	defer archive.Close()

	if _, err := io.Copy(archive, resp.Body); err != nil {
		return "", fmt.Errorf("io.Copy: %w", err)
	}

	return archive.Name(), nil
}

func extractFile(archivePath, name, dest string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("zip.OpenReader: %w", err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if file.Name != name {
			continue
		}

		src, err := file.Open()
		if err != nil {
			return fmt.Errorf("file.Open: %w", err)
		}
		defer src.Close()

		dst, err := os.Create(dest)
		if err != nil {
			return fmt.Errorf("os.Create: %w", err)
		}
		defer dst.Close()

		if _, err := io.Copy(dst, src); err != nil {
			return fmt.Errorf("io.Copy: %w", err)
		}

		return nil
	}

	return failure.NewNotFoundError(
		fmt.Sprintf("file %q not found in dataset archive", name),
		failure.WithCode(errcodes.DatasetNotFound),
		failure.WithDescription("The dataset archive has no such file"),
	)
}
