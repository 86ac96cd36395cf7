package office

import (
	"fmt"
	"math"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/negokaz/comobject-mcp-server/internal/comobject"
)

var rangeRegexp = regexp.MustCompile(`^(\$?[A-Z]+\$?\d+)(?::(\$?[A-Z]+\$?\d+))?$`)

// CellRange is a rectangular block of cells, 1-based and inclusive.
type CellRange struct {
	StartCol, StartRow int
	EndCol, EndRow     int
}

// ParseRange parses an A1-style range such as A1:C10 or B5.
func ParseRange(rangeStr string) (CellRange, error) {
	matches := rangeRegexp.FindStringSubmatch(rangeStr)
	if matches == nil {
		return CellRange{}, fmt.Errorf("invalid range format: %s", rangeStr)
	}
	startCol, startRow, err := excelize.CellNameToCoordinates(matches[1])
	if err != nil {
		return CellRange{}, err
	}
	if matches[2] == "" {
		return CellRange{startCol, startRow, startCol, startRow}, nil
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(matches[2])
	if err != nil {
		return CellRange{}, err
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}
	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	return CellRange{startCol, startRow, endCol, endRow}, nil
}

func (r CellRange) Cols() int {
	return r.EndCol - r.StartCol + 1
}

func (r CellRange) Rows() int {
	return r.EndRow - r.StartRow + 1
}

// Cells returns the number of cells in the range.
func (r CellRange) Cells() int {
	return r.Cols() * r.Rows()
}

// String formats the range without absolute markers, e.g. A1:C10.
func (r CellRange) String() string {
	start, err := excelize.CoordinatesToCellName(r.StartCol, r.StartRow)
	if err != nil {
		return ""
	}
	end, err := excelize.CoordinatesToCellName(r.EndCol, r.EndRow)
	if err != nil {
		return ""
	}
	return start + ":" + end
}

// NormalizeRange strips absolute markers, returning the input unchanged
// when it cannot be parsed.
func NormalizeRange(rangeStr string) string {
	r, err := ParseRange(rangeStr)
	if err != nil {
		return rangeStr
	}
	if s := r.String(); s != "" {
		return s
	}
	return rangeStr
}

// FileURL converts an absolute file path into the file URL form that
// LibreOffice expects, e.g. C:\docs\a b.odt -> file:///C:/docs/a%20b.odt.
func FileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}

// object asserts that an access produced a proxy.
func object(v any, err error) (*comobject.Proxy, error) {
	if err != nil {
		return nil, err
	}
	p, ok := v.(*comobject.Proxy)
	if !ok {
		return nil, fmt.Errorf("expected an automation object, got %T", v)
	}
	return p, nil
}

// walk follows a chain of property reads, e.g. walk(app, "Selection", "Find").
func walk(p *comobject.Proxy, names ...string) (*comobject.Proxy, error) {
	for _, name := range names {
		next, err := object(p.Get(name))
		if err != nil {
			return nil, fmt.Errorf("failed to get %s: %w", name, err)
		}
		p = next
	}
	return p, nil
}

func text(v any, err error) (string, error) {
	if err != nil {
		return "", err
	}
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	}
	return fmt.Sprintf("%v", v), nil
}

func integer(v any, err error) (int, error) {
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case float32:
		return integral(float64(n))
	case float64:
		return integral(n)
	}
	return 0, fmt.Errorf("expected a number, got %T", v)
}

func integral(n float64) (int, error) {
	if n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
		return 0, fmt.Errorf("expected an integer, got %v", n)
	}
	return int(n), nil
}

func boolean(v any, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case int16:
		return b != 0, nil
	case int:
		return b != 0, nil
	}
	return false, fmt.Errorf("expected a boolean, got %T", v)
}
