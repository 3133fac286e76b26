// Package export формирует выгрузки инцидентов.
package export

import (
	"fmt"
	"time"

	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/xuri/excelize/v2"
)

// SheetName имя листа с инцидентами
const SheetName = "Incidents"

// ContentTypeXLSX MIME-тип книги Excel
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// IncidentHeader заголовки колонок выгрузки
var IncidentHeader = []string{
	"ID",
	"User ID",
	"Type",
	"Title",
	"Description",
	"Latitude",
	"Longitude",
	"Urgency",
	"Status",
	"Created At",
	"Updated At",
}

var columnWidths = []float64{8, 18, 18, 30, 50, 12, 12, 10, 12, 22, 22}

// IncidentsXLSX строит книгу Excel со списком инцидентов
func IncidentsXLSX(incidents []*models.Incident) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
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

	header := make([]any, len(IncidentHeader))
	for i, h := range IncidentHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(IncidentHeader))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve last column: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}

	for i, width := range columnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, incident := range incidents {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		row := []any{
			incident.ID,
			incident.UserID,
			incident.Type,
			incident.Title,
			incident.Description,
			incident.Latitude,
			incident.Longitude,
			string(incident.Urgency),
			string(incident.Status),
			incident.CreatedAt.UTC().Format(time.RFC3339),
			incident.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze header: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
