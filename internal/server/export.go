package server

import (
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Apps"

//nolint:gochecknoglobals
var exportColumns = []string{
	"App", "Category", "Rating", "Reviews", "Installs", "Size (MB)", "Type", "Price", "Popularity score",
}

// getV1Export отдаёт отфильтрованную таблицу как xlsx. Пустая выборка —
// валидный файл с одной строкой заголовков.
func (s CatalogServer) getV1Export(w http.ResponseWriter, r *http.Request) error {
	_, filter, err := s.filterFromRequest(r)
	if err != nil {
		return err
	}

	apps := s.table.Filter(filter)

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return fmt.Errorf("excelize.NewSheet: %w", err)
	}

	f.SetActiveSheet(index)

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("excelize.DeleteSheet: %w", err)
	}

	for i, column := range exportColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("excelize.CoordinatesToCellName: %w", err)
		}

		if err := f.SetCellValue(exportSheet, cell, column); err != nil {
			return fmt.Errorf("excelize.SetCellValue: %w", err)
		}
	}

	for rowIndex, app := range apps {
		size := any("Varies with device")
		if app.SizeMB != nil {
			size = *app.SizeMB
		}

		row := []any{
			app.Name,
			app.Category,
			app.Rating,
			app.Reviews,
			app.Installs,
			size,
			app.Type.String(),
			app.Price,
			app.PopularityScore,
		}

		for i, cellValue := range row {
			cell, err := excelize.CoordinatesToCellName(i+1, rowIndex+2) //nolint:mnd // первая строка — заголовки
			if err != nil {
				return fmt.Errorf("excelize.CoordinatesToCellName: %w", err)
			}

			if err := f.SetCellValue(exportSheet, cell, cellValue); err != nil {
				return fmt.Errorf("excelize.SetCellValue: %w", err)
			}
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="apps.xlsx"`)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("excelize.Write: %w", err)
	}

	return nil
}
