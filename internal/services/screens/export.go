package screens

import (
	"bytes"
	"log"
	"strings"
	"time"

	"finedesk/internal/models"
	"finedesk/internal/services/mapper"

	"github.com/xuri/excelize/v2"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportHeader = []any{
	"ID", "Fine ID", "Fine", "Description", "Amount",
	"Issued At", "Paid At", "Expires At",
	"Station", "Officer", "Driver", "Driver ID", "Reason", "Status",
}

// Export writes rows as a single sheet workbook. Dates use the display
// format; absent dates are left blank.
func Export(title string, rows []models.ViewRow) ([]byte, error) {
	start := time.Now()
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(title)
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return nil, err
		}
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return nil, err
	}
	if err := sw.SetRow("A1", exportHeader); err != nil {
		return nil, err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(cell, []any{
			r.ID, r.FineID, r.FineName, r.Description, r.Amount,
			exportDate(r.IssuedAt), exportDate(r.PaidAt), exportDate(r.ExpiresAt),
			r.Station, r.Officer, r.Driver, r.DriverID, r.Reason, string(r.Status),
		}); err != nil {
			return nil, err
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	log.Printf("[EXPORT][XLSX] sheet=%q rows=%d size=%d took=%s", sheet, len(rows), buf.Len(), time.Since(start))
	return bytes.Clone(buf.Bytes()), nil
}

func exportDate(s *string) string {
	if s == nil {
		return ""
	}
	return mapper.FormatDate(*s)
}

func sheetName(title string) string {
	title = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	if title == "" {
		return "Sheet1"
	}
	if r := []rune(title); len(r) > 31 {
		title = string(r[:31])
	}
	return title
}
