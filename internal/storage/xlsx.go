package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/naveenspark/timesheet/pkg/domain"
)

// DefaultSheet is the worksheet name used for new workbooks.
const DefaultSheet = "Timesheet"

// XLSX stores rows in one worksheet of an Excel workbook.
type XLSX struct {
	path  string
	sheet string
}

// NewXLSX returns a store backed by the workbook at path. An empty sheet
// name selects DefaultSheet.
func NewXLSX(path, sheet string) *XLSX {
	if sheet == "" {
		sheet = DefaultSheet
	}
	return &XLSX{path: path, sheet: sheet}
}

// Path returns the workbook location.
func (x *XLSX) Path() string {
	return x.path
}

// Init creates the workbook with a header row if it does not exist yet.
func (x *XLSX) Init() error {
	if _, err := os.Stat(x.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage.Init: stat %s: %w", x.path, err)
	}

	if dir := filepath.Dir(x.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("storage.Init: create dir: %w", err)
		}
	}

	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck
	// Write picks the package content type (.xlsx or .xlsm) from Path.
	f.Path = x.path
	if err := f.SetSheetName(f.GetSheetName(0), x.sheet); err != nil {
		return fmt.Errorf("storage.Init: name sheet: %w", err)
	}
	if err := setRow(f, x.sheet, 1, domain.Header); err != nil {
		return fmt.Errorf("storage.Init: %w", err)
	}
	if err := x.save(f); err != nil {
		return fmt.Errorf("storage.Init: %w", err)
	}
	return nil
}

// ReadRows returns all data rows, skipping the header and blank rows.
func (x *XLSX) ReadRows() ([]domain.Row, error) {
	f, err := excelize.OpenFile(x.path)
	if err != nil {
		return nil, fmt.Errorf("storage.ReadRows: open %s: %w", x.path, err)
	}
	defer f.Close() //nolint:errcheck

	sheet, err := x.resolveSheet(f)
	if err != nil {
		return nil, fmt.Errorf("storage.ReadRows: %w", err)
	}
	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("storage.ReadRows: read %s: %w", sheet, err)
	}

	rows := make([]domain.Row, 0, len(cells))
	for i, c := range cells {
		if i == 0 {
			continue // header
		}
		r := domain.RowFromValues(c)
		if r.IsBlank() {
			continue
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// WriteRows rewrites the header and every row, then replaces the file.
func (x *XLSX) WriteRows(rows []domain.Row) error {
	f, err := excelize.OpenFile(x.path)
	if err != nil {
		return fmt.Errorf("storage.WriteRows: open %s: %w", x.path, err)
	}
	defer f.Close() //nolint:errcheck

	sheet, err := x.resolveSheet(f)
	if err != nil {
		return fmt.Errorf("storage.WriteRows: %w", err)
	}
	existing, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("storage.WriteRows: read %s: %w", sheet, err)
	}

	if err := setRow(f, sheet, 1, domain.Header); err != nil {
		return fmt.Errorf("storage.WriteRows: %w", err)
	}
	for i, r := range rows {
		if err := setRow(f, sheet, i+2, r.Values()); err != nil {
			return fmt.Errorf("storage.WriteRows: %w", err)
		}
	}
	// Drop leftovers from a longer previous table, bottom up.
	for n := len(existing); n > len(rows)+1; n-- {
		if err := f.RemoveRow(sheet, n); err != nil {
			return fmt.Errorf("storage.WriteRows: remove row %d: %w", n, err)
		}
	}

	if err := x.save(f); err != nil {
		return fmt.Errorf("storage.WriteRows: %w", err)
	}
	return nil
}

// resolveSheet prefers the configured sheet and falls back to the
// workbook's active sheet.
func (x *XLSX) resolveSheet(f *excelize.File) (string, error) {
	idx, err := f.GetSheetIndex(x.sheet)
	if err != nil {
		return "", fmt.Errorf("lookup sheet %q: %w", x.sheet, err)
	}
	if idx >= 0 {
		return x.sheet, nil
	}
	name := f.GetSheetName(f.GetActiveSheetIndex())
	if name == "" {
		return "", fmt.Errorf("workbook %s has no sheets", x.path)
	}
	return name, nil
}

// save writes the workbook next to its destination and renames it into
// place so readers never see a half-written file.
func (x *XLSX) save(f *excelize.File) error {
	tmp, err := os.CreateTemp(filepath.Dir(x.path), ".timesheet-*.xlsx")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) //nolint:errcheck
	tmp.Chmod(0644)          //nolint:errcheck // best effort; CreateTemp uses 0600

	if err := f.Write(tmp); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("write workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, x.path); err != nil {
		return fmt.Errorf("replace %s: %w", x.path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", row, err)
	}
	vals := append([]string(nil), values...)
	if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
		return fmt.Errorf("set row %d: %w", row, err)
	}
	return nil
}
