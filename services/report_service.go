package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"paint-estimator/models"
	"paint-estimator/utils"
)

const (
	CSVFileName  = "paint_estimate.csv"
	CSVMimeType  = "text/csv"
	XLSXFileName = "paint_estimate.xlsx"
	XLSXMimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	TotalLabel   = "Total Paintable Area × Coats"
)

// ExportHeader is the fixed column order of every export.
var ExportHeader = []string{
	"Room",
	"Length (ft)",
	"Width (ft)",
	"Height (ft)",
	"Doors",
	"Windows",
	"Wall Area (sqft)",
	"Ceiling Area (sqft)",
	"Openings (sqft)",
	"Paintable Area (sqft)",
	"Coats",
	"Total Area × Coats (sqft)",
}

var exportColumnWidths = []float64{20, 12, 12, 12, 8, 10, 16, 18, 15, 20, 8, 24}

// ReportService renders room lists. It never mutates them.
type ReportService struct {
	logger *zap.Logger
}

// NewReportService Constructor
func NewReportService(logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{logger: logger}
}

// Summarize builds the table view and the coats-adjusted total.
func (s *ReportService) Summarize(rooms []models.Room) models.Summary {
	if len(rooms) == 0 {
		return models.Summary{Rooms: []models.Room{}, Empty: true, TotalLabel: "0 sq ft"}
	}

	var total float64
	for _, r := range rooms {
		total += r.TotalAreaWithCoats
	}
	total = Round2(total)

	out := make([]models.Room, len(rooms))
	copy(out, rooms)
	return models.Summary{
		Rooms:      out,
		TotalArea:  total,
		TotalLabel: utils.FormatWhole(total) + " sq ft",
	}
}

// ExportRow renders one room in export column order.
func ExportRow(r models.Room) []string {
	return []string{
		r.Name,
		utils.FormatDimension(r.Length),
		utils.FormatDimension(r.Width),
		utils.FormatDimension(r.Height),
		strconv.Itoa(r.Doors),
		strconv.Itoa(r.Windows),
		utils.FormatArea(r.WallArea),
		utils.FormatArea(r.CeilingArea),
		utils.FormatArea(r.OpeningArea),
		utils.FormatArea(r.PaintableArea),
		strconv.Itoa(r.Coats),
		utils.FormatArea(r.TotalAreaWithCoats),
	}
}

// ToCSV serializes rooms as UTF-8 CSV, header first, no aggregate row.
func (s *ReportService) ToCSV(rooms []models.Room) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(ExportHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for i, r := range rooms {
		if err := w.Write(ExportRow(r)); err != nil {
			return nil, fmt.Errorf("failed to write csv row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	s.logger.Debug("csv rendered", zap.Int("rows", len(rooms)), zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

// ToXLSX renders the same table as a single-sheet workbook.
func (s *ReportService) ToXLSX(rooms []models.Room) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Paint Estimate"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range ExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheetName, name, name, exportColumnWidths[col]); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, r := range rooms {
		values := []any{
			r.Name, r.Length, r.Width, r.Height, r.Doors, r.Windows,
			r.WallArea, r.CeilingArea, r.OpeningArea, r.PaintableArea,
			r.Coats, r.TotalAreaWithCoats,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	s.logger.Debug("xlsx rendered", zap.Int("rows", len(rooms)), zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}
