package office

import (
	"fmt"
	"strings"

	"github.com/negokaz/comobject-mcp-server/internal/comobject"
)

// ExcelProgID identifies Excel's automation server.
const ExcelProgID = "Excel.Application"

// MaxRangeCells bounds how many cells ReadRange fetches in one call.
const MaxRangeCells = 5000

// WorkbookInfo contains information about an open workbook.
type WorkbookInfo struct {
	Name     string `json:"name"`
	FullPath string `json:"fullPath"`
	Saved    bool   `json:"saved"`
}

// Excel drives an Excel.Application object.
type Excel struct {
	app *comobject.Proxy
}

func NewExcel(app *comobject.Proxy) *Excel {
	return &Excel{app: app}
}

// ListWorkbooks returns the workbooks currently open.
func (e *Excel) ListWorkbooks() ([]WorkbookInfo, error) {
	workbooks, err := walk(e.app, "Workbooks")
	if err != nil {
		return nil, err
	}
	count, err := integer(workbooks.Get("Count"))
	if err != nil {
		return nil, fmt.Errorf("failed to get Workbooks.Count: %w", err)
	}

	var result []WorkbookInfo
	for i := 1; i <= count; i++ {
		wb, err := object(workbooks.Index(i))
		if err != nil {
			continue
		}
		info, err := workbookInfo(wb)
		if err != nil {
			continue
		}
		result = append(result, info)
	}
	return result, nil
}

func workbookInfo(wb *comobject.Proxy) (WorkbookInfo, error) {
	name, err := text(wb.Get("Name"))
	if err != nil {
		return WorkbookInfo{}, err
	}
	fullName, err := text(wb.Get("FullName"))
	if err != nil {
		return WorkbookInfo{}, err
	}
	saved, err := boolean(wb.Get("Saved"))
	if err != nil {
		return WorkbookInfo{}, err
	}
	return WorkbookInfo{Name: name, FullPath: fullName, Saved: saved}, nil
}

// OpenWorkbook returns the workbook at absolutePath, opening it unless it
// is already open.
func (e *Excel) OpenWorkbook(absolutePath string) (*comobject.Proxy, error) {
	workbooks, err := walk(e.app, "Workbooks")
	if err != nil {
		return nil, err
	}
	count, err := integer(workbooks.Get("Count"))
	if err != nil {
		return nil, fmt.Errorf("failed to get Workbooks.Count: %w", err)
	}
	for i := 1; i <= count; i++ {
		wb, err := object(workbooks.Index(i))
		if err != nil {
			continue
		}
		fullName, err := text(wb.Get("FullName"))
		if err == nil && strings.EqualFold(fullName, absolutePath) {
			return wb, nil
		}
	}

	wb, err := object(workbooks.Invoke("Open", absolutePath))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return wb, nil
}

// RunMacro runs a VBA macro with up to ten string arguments.
func (e *Excel) RunMacro(macroName string, args []string) (string, error) {
	if len(args) > 10 {
		return "", fmt.Errorf("macro supports at most 10 arguments")
	}
	callArgs := make([]any, 0, 1+len(args))
	callArgs = append(callArgs, macroName)
	for _, arg := range args {
		callArgs = append(callArgs, arg)
	}

	result, err := e.app.Invoke("Run", callArgs...)
	if err != nil {
		return "", fmt.Errorf("failed to run macro '%s': %w", macroName, err)
	}
	if result == nil {
		return "", nil
	}
	return fmt.Sprintf("%v", result), nil
}

// ReadRange returns the values of rangeStr on the named sheet, row by row.
func (e *Excel) ReadRange(wb *comobject.Proxy, sheetName, rangeStr string) ([][]any, error) {
	cells, err := ParseRange(rangeStr)
	if err != nil {
		return nil, err
	}
	if cells.Cells() > MaxRangeCells {
		return nil, fmt.Errorf("range %s has %d cells, at most %d can be read at once", cells, cells.Cells(), MaxRangeCells)
	}

	worksheets, err := walk(wb, "Worksheets")
	if err != nil {
		return nil, err
	}
	sheet, err := object(worksheets.Index(sheetName))
	if err != nil {
		return nil, fmt.Errorf("sheet not found: %s: %w", sheetName, err)
	}
	rng, err := object(sheet.Invoke("Range", cells.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to get range %s: %w", cells, err)
	}
	// cell proxies are only needed while reading
	defer rng.Dispose()

	rows := make([][]any, cells.Rows())
	for r := range rows {
		row := make([]any, cells.Cols())
		for c := range row {
			cell, err := object(rng.Index(r+1, c+1))
			if err != nil {
				return nil, fmt.Errorf("failed to get cell: %w", err)
			}
			if row[c], err = cell.Get("Value"); err != nil {
				return nil, err
			}
		}
		rows[r] = row
	}
	return rows, nil
}
