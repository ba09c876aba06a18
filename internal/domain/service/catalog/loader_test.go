package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"git.appkode.ru/pub/go/failure"
	"github.com/stretchr/testify/require"

	"play_insights/internal/domain/service/catalog"
	"play_insights/pkg/errcodes"
)

type fileSource struct {
	path string
}

func (s fileSource) DatasetCSV(_ context.Context) (string, error) {
	return s.path, nil
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "googleplaystore.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoaderLoad(t *testing.T) {
	rq := require.New(t)

	csv := "App,Category,Rating,Reviews,Size,Installs,Type,Price,Genres\n" +
		"Photo Editor,ART_AND_DESIGN,4.1,159,19M,\"10,000+\",Free,0,Art & Design\n" +
		"Life Made Better,LIFESTYLE,4.0,10,1M,100+,Free,0,Lifestyle\n" +
		"Broken Row,GAME,NaN,10,1M,100+,Free,0,Games\n"

	loader := catalog.NewLoader(fileSource{path: writeCSV(t, csv)})

	table, err := loader.Load(context.Background())
	rq.NoError(err)
	rq.Equal(1, table.Len())
	rq.Equal("Photo Editor", table.Apps()[0].Name)
}

func TestLoaderLoadIgnoresUnknownColumns(t *testing.T) {
	rq := require.New(t)

	// Лишние колонки и сокращённые строки не мешают извлечению нужных полей.
	csv := "Extra,App,Category,Rating,Reviews,Size,Installs,Type,Price\n" +
		"x,Chess,GAME,4.5,100,5M,\"1,000+\",Free,0\n" +
		"y,Short Row,GAME,4.0\n"

	loader := catalog.NewLoader(fileSource{path: writeCSV(t, csv)})

	table, err := loader.Load(context.Background())
	rq.NoError(err)
	rq.Equal(1, table.Len())
}

func TestLoaderLoadMalformedHeader(t *testing.T) {
	rq := require.New(t)

	loader := catalog.NewLoader(fileSource{path: writeCSV(t, "App,Category\nChess,GAME\n")})

	_, err := loader.Load(context.Background())
	rq.Error(err)
	rq.True(failure.IsNotFoundError(err))
	rq.Equal(errcodes.DatasetMalformed, failure.Code(err))
}

func TestLoaderLoadEmptyAfterCleaning(t *testing.T) {
	rq := require.New(t)

	csv := "App,Category,Rating,Reviews,Size,Installs,Type,Price\n" +
		"Broken,GAME,not-a-number,10,1M,100+,Free,0\n"

	loader := catalog.NewLoader(fileSource{path: writeCSV(t, csv)})

	_, err := loader.Load(context.Background())
	rq.Error(err)
	rq.True(failure.IsNotFoundError(err))
	rq.Equal(errcodes.DatasetEmpty, failure.Code(err))
}
