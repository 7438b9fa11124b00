package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportForDate renders one day's report as an XLSX workbook for download.
// The caller owns the returned file and must Close it.
func (s *Service) ExportForDate(ctx context.Context, date string) (*excelize.File, error) {
	lines, err := s.GetReportForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{"Nama", "Stok Awal", "Sisa", "Penggunaan", "Persentase (%)", "Kategori"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write export header: %w", err)
	}

	row := 2
	for _, line := range lines {
		cells := []interface{}{line.Nama, line.StokAwal, line.Sisa, line.Penggunaan, line.Persentase, line.Kategori}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write export row %d: %w", row, err)
		}
		row++
	}

	return f, nil
}
