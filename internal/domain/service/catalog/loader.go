package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"git.appkode.ru/pub/go/failure"

	"play_insights/pkg/errcodes"
)

// DatasetSource отдаёт путь к локальному CSV-файлу датасета.
type DatasetSource interface {
	DatasetCSV(ctx context.Context) (string, error)
}

type Loader struct {
	source DatasetSource
}

func NewLoader(source DatasetSource) Loader {
	return Loader{
		source: source,
	}
}

// Load — однократная операция "загрузить и очистить". Ошибка получения
// датасета фатальна; битые значения внутри строк отбрасываются на
// уровне строк и фиксируются в метриках.
func (l Loader) Load(ctx context.Context) (Table, error) {
	path, err := l.source.DatasetCSV(ctx)
	if err != nil {
		return Table{}, fmt.Errorf("source.DatasetCSV: %w", err)
	}

	rows, err := readRawCSV(path)
	if err != nil {
		return Table{}, fmt.Errorf("readRawCSV: %w", err)
	}

	apps, stats := Clean(rows)

	rowsReadTotal.Add(float64(len(rows)))
	rowsDroppedTotal.WithLabelValues(dropReasonCorrupted).Add(float64(stats.Corrupted))
	rowsDroppedTotal.WithLabelValues(dropReasonMissing).Add(float64(stats.Missing))
	rowsDroppedTotal.WithLabelValues(dropReasonZeroInstalls).Add(float64(stats.ZeroInstalls))

	logger(ctx).Info("dataset cleaned",
		slog.String("path", path),
		slog.Int("rows", len(rows)),
		slog.Int("kept", len(apps)),
		slog.Int("dropped-corrupted", stats.Corrupted),
		slog.Int("dropped-missing", stats.Missing),
		slog.Int("dropped-zero-installs", stats.ZeroInstalls),
	)

	if len(apps) == 0 {
		return Table{}, failure.NewNotFoundError(
			"no rows survived cleaning",
			failure.WithCode(errcodes.DatasetEmpty),
			failure.WithDescription("The dataset is empty after cleaning"),
		)
	}

	return NewTable(apps), nil
}

//nolint:gochecknoglobals
var requiredColumns = []string{"App", "Category", "Rating", "Reviews", "Size", "Installs", "Type", "Price"}

func readRawCSV(path string) ([]RawApp, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// Датасет содержит сдвинутые строки с неполным набором полей.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	for _, column := range requiredColumns {
		if _, ok := index[column]; !ok {
			return nil, failure.NewNotFoundError(
				fmt.Sprintf("column %q not found in dataset", column),
				failure.WithCode(errcodes.DatasetMalformed),
				failure.WithDescription("The dataset extract is missing required columns"),
			)
		}
	}

	var rows []RawApp

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				// Нечитаемая строка — та же политика, что и для
				// нераспознанных значений: пропустить.
				continue
			}

			return nil, fmt.Errorf("csv.Read: %w", err)
		}

		rows = append(rows, RawApp{
			Name:     fieldAt(record, index["App"]),
			Category: fieldAt(record, index["Category"]),
			Rating:   fieldAt(record, index["Rating"]),
			Reviews:  fieldAt(record, index["Reviews"]),
			Size:     fieldAt(record, index["Size"]),
			Installs: fieldAt(record, index["Installs"]),
			Type:     fieldAt(record, index["Type"]),
			Price:    fieldAt(record, index["Price"]),
		})
	}

	return rows, nil
}

func fieldAt(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}

	return record[i]
}
