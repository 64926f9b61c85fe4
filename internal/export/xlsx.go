// Package export renders inventory and audit data as XLSX workbooks.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/labaid/labaid-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// ContentTypeXLSX is the media type of generated workbooks
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	antibodySheet = "Antibodies"
	lotSheet      = "Lots"
	auditSheet    = "Audit"
)

// InventoryWorkbook writes one sheet of antibodies with stock levels and one sheet of lots
func InventoryWorkbook(antibodies []domain.AntibodyDTO, lots []domain.LotDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), antibodySheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(lotSheet); err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}

	abRows := make([][]interface{}, 0, len(antibodies))
	for _, a := range antibodies {
		abRows = append(abRows, []interface{}{
			a.Target,
			a.Fluorochrome,
			a.Clone,
			a.Vendor,
			a.CatalogNumber,
			strings.ToUpper(string(a.Designation)),
			a.Counts.Sealed,
			a.Counts.Opened,
			a.StockCount,
			a.ApprovedStockCount,
			intOrBlank(a.LowStockThreshold),
			yesNo(a.IsLowStock),
			yesNo(a.IsApprovedLow),
		})
	}
	err := writeSheet(f, antibodySheet, []interface{}{
		"Target", "Fluorochrome", "Clone", "Vendor", "Catalog #", "Designation",
		"Sealed", "Opened", "Stock", "Approved stock", "Low threshold", "Low stock", "Approved low",
	}, abRows)
	if err != nil {
		return nil, err
	}

	lotRows := make([][]interface{}, 0, len(lots))
	for _, l := range lots {
		lotRows = append(lotRows, []interface{}{
			l.AntibodyName,
			l.LotNumber,
			l.VendorBarcode,
			stringOrBlank(l.ExpirationDate),
			string(l.QCStatus),
			l.Counts.Sealed,
			l.Counts.Opened,
			l.Counts.Depleted,
			yesNo(l.IsExpired),
			yesNo(l.IsArchived),
		})
	}
	err = writeSheet(f, lotSheet, []interface{}{
		"Antibody", "Lot #", "Vendor barcode", "Expiration", "QC", "Sealed", "Opened", "Depleted", "Expired", "Archived",
	}, lotRows)
	if err != nil {
		return nil, err
	}

	return encode(f)
}

// AuditWorkbook writes audit entries, newest first as given
func AuditWorkbook(entries []domain.AuditLogDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), auditSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	rows := make([][]interface{}, 0, len(entries))
	for _, e := range entries {
		entityID := ""
		if e.EntityID != nil {
			entityID = e.EntityID.String()
		}
		rows = append(rows, []interface{}{
			e.CreatedAt,
			e.UserName,
			e.Action,
			e.EntityType,
			entityID,
			e.Note,
			string(e.BeforeState),
			string(e.AfterState),
			e.IPAddress,
		})
	}
	err := writeSheet(f, auditSheet, []interface{}{
		"Time (UTC)", "User", "Action", "Entity", "Entity ID", "Note", "Before", "After", "IP",
	}, rows)
	if err != nil {
		return nil, err
	}
	return encode(f)
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	if len(header) > 0 {
		last, err := excelize.CoordinatesToCellName(len(header), 1)
		if err != nil {
			return err
		}
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("failed to create header style: %w", err)
		}
		if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
	}
	return nil
}

func encode(f *excelize.File) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func intOrBlank(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func stringOrBlank(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
