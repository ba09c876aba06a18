package kaggle_test

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"git.appkode.ru/pub/go/failure"
	"github.com/stretchr/testify/require"

	"play_insights/internal/config"
	"play_insights/internal/infrastructure/kaggle"
	"play_insights/pkg/errcodes"
)

const datasetFile = "googleplaystore.csv"

const csvContent = "App,Category,Rating,Reviews,Size,Installs,Type,Price\n" +
	"Photo Editor,ART_AND_DESIGN,4.1,159,19M,\"10,000+\",Free,0\n"

func datasetZip(t *testing.T) []byte {
	t.Helper()
	rq := require.New(t)

	var buf bytes.Buffer

	w := zip.NewWriter(&buf)

	f, err := w.Create(datasetFile)
	rq.NoError(err)

	_, err = f.Write([]byte(csvContent))
	rq.NoError(err)

	rq.NoError(w.Close())

	return buf.Bytes()
}

func testConfig(baseURL, cacheDir string) config.Kaggle {
	return config.Kaggle{
		Username:    "user",
		Key:         "secret",
		BaseURL:     baseURL,
		Dataset:     "lava18/google-play-store-apps",
		DatasetFile: datasetFile,
		CacheDir:    cacheDir,
	}
}

func TestDatasetCSVDownloadsAndExtracts(t *testing.T) {
	rq := require.New(t)

	archive := datasetZip(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rq.Equal("/datasets/download/lava18/google-play-store-apps", r.URL.Path)

		user, key, ok := r.BasicAuth()
		rq.True(ok)
		rq.Equal("user", user)
		rq.Equal("secret", key)

		_, _ = w.Write(archive)
	}))
	defer srv.Close()

	cacheDir := t.TempDir()
	client := kaggle.NewClient(testConfig(srv.URL, cacheDir), 2048)

	path, err := client.DatasetCSV(context.Background())
	rq.NoError(err)
	rq.Equal(filepath.Join(cacheDir, datasetFile), path)

	content, err := os.ReadFile(path)
	rq.NoError(err)
	rq.Equal(csvContent, string(content))
}

func TestDatasetCSVPrefersLocalCache(t *testing.T) {
	rq := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("network must not be used when the file is cached")
	}))
	defer srv.Close()

	cacheDir := t.TempDir()
	cached := filepath.Join(cacheDir, datasetFile)
	rq.NoError(os.WriteFile(cached, []byte(csvContent), 0o600))

	// Кеш работает и без кредов.
	cfg := testConfig(srv.URL, cacheDir)
	cfg.Username = ""
	cfg.Key = ""

	path, err := kaggle.NewClient(cfg, 2048).DatasetCSV(context.Background())
	rq.NoError(err)
	rq.Equal(cached, path)
}

func TestDatasetCSVMissingCredentials(t *testing.T) {
	rq := require.New(t)

	cfg := testConfig("http://kaggle.invalid", t.TempDir())
	cfg.Username = ""
	cfg.Key = ""

	_, err := kaggle.NewClient(cfg, 2048).DatasetCSV(context.Background())
	rq.Error(err)
	rq.True(failure.IsUnauthorizedError(err))
	rq.Equal(errcodes.CredentialsMissing, failure.Code(err))
}

func TestDatasetCSVErrorStatuses(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name     string
		status   int
		wantCode failure.ErrorCode
		check    func(error) bool
	}{
		{
			name:     "Rejected credentials",
			status:   http.StatusUnauthorized,
			wantCode: errcodes.CredentialsMissing,
			check:    failure.IsUnauthorizedError,
		},
		{
			name:     "Unknown dataset",
			status:   http.StatusNotFound,
			wantCode: errcodes.DatasetNotFound,
			check:    failure.IsNotFoundError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			client := kaggle.NewClient(testConfig(srv.URL, t.TempDir()), 2048)

			_, err := client.DatasetCSV(context.Background())
			rq.Error(err)
			rq.True(tc.check(err))
			rq.Equal(tc.wantCode, failure.Code(err))
		})
	}
}

func TestDatasetCSVFileMissingFromArchive(t *testing.T) {
	rq := require.New(t)

	var buf bytes.Buffer

	w := zip.NewWriter(&buf)
	f, err := w.Create("readme.txt")
	rq.NoError(err)
	_, err = f.Write([]byte("no csv here"))
	rq.NoError(err)
	rq.NoError(w.Close())

	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		_, _ = rw.Write(buf.Bytes())
	}))
	defer srv.Close()

	client := kaggle.NewClient(testConfig(srv.URL, t.TempDir()), 2048)

	_, err = client.DatasetCSV(context.Background())
	rq.Error(err)
	rq.True(failure.IsNotFoundError(err))
	rq.Equal(errcodes.DatasetNotFound, failure.Code(err))
}
