package office

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/negokaz/comobject-mcp-server/internal/comobject"
	"github.com/negokaz/comobject-mcp-server/internal/comobject/comobjecttest"
)

func newFakeExcel(b *comobjecttest.Binder) {
	b.Register(ExcelProgID, func(app *fakeObject) {
		workbooks := b.NewObject("Workbooks")
		var open []*fakeObject
		addWorkbook := func(name, fullName string) *fakeObject {
			wb := b.NewObject("Workbook")
			wb.Props["Name"] = name
			wb.Props["FullName"] = fullName
			wb.Props["Saved"] = true

			sheet := b.NewObject("Worksheet")
			method(sheet, "Range", func(self *fakeObject, args []any) (any, error) {
				cells, err := ParseRange(args[0].(string))
				if err != nil {
					return nil, err
				}
				rng := b.NewObject("Range")
				method(rng, "Item", func(self *fakeObject, args []any) (any, error) {
					cell := b.NewObject("Range")
					col := cells.StartCol + args[1].(int) - 1
					row := cells.StartRow + args[0].(int) - 1
					cell.Props["Value"] = fmt.Sprintf("R%dC%d", row, col)
					return cell, nil
				})
				return rng, nil
			})
			worksheets := b.NewObject("Sheets")
			method(worksheets, "Item", func(self *fakeObject, args []any) (any, error) {
				if args[0] != "Sheet1" {
					return nil, errors.New("subscript out of range")
				}
				return sheet, nil
			})
			wb.Props["Worksheets"] = worksheets

			open = append(open, wb)
			workbooks.Props["Count"] = len(open)
			return wb
		}
		addWorkbook("Book1.xlsx", "C:\\Book1.xlsx")
		workbooks.Props["Count"] = len(open)
		method(workbooks, "Item", func(self *fakeObject, args []any) (any, error) {
			return open[args[0].(int)-1], nil
		})
		method(workbooks, "Open", func(self *fakeObject, args []any) (any, error) {
			path := args[0].(string)
			return addWorkbook("Opened.xlsx", path), nil
		})
		app.Props["Workbooks"] = workbooks
		method(app, "Run", func(self *fakeObject, args []any) (any, error) {
			return fmt.Sprintf("%s%v", args[0], args[1:]), nil
		})
	})
}

func newExcel(t *testing.T) (*Excel, *comobjecttest.Binder) {
	t.Helper()
	b := comobjecttest.NewBinder()
	newFakeExcel(b)
	app, err := comobject.New(b, ExcelProgID)
	require.NoError(t, err)
	t.Cleanup(func() { app.Dispose() })
	return NewExcel(app), b
}

func TestExcelListWorkbooks(t *testing.T) {
	e, _ := newExcel(t)

	got, err := e.ListWorkbooks()
	require.NoError(t, err)
	assert.Equal(t, []WorkbookInfo{{Name: "Book1.xlsx", FullPath: "C:\\Book1.xlsx", Saved: true}}, got)
}

func TestExcelOpenWorkbookReusesOpenWorkbook(t *testing.T) {
	e, _ := newExcel(t)

	wb, err := e.OpenWorkbook("c:\\book1.xlsx")
	require.NoError(t, err)
	name, err := wb.Get("Name")
	require.NoError(t, err)
	assert.Equal(t, "Book1.xlsx", name)

	wb, err = e.OpenWorkbook("C:\\Other.xlsx")
	require.NoError(t, err)
	name, err = wb.Get("Name")
	require.NoError(t, err)
	assert.Equal(t, "Opened.xlsx", name)

	list, err := e.ListWorkbooks()
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestExcelRunMacro(t *testing.T) {
	e, _ := newExcel(t)

	got, err := e.RunMacro("Module1.Greet", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "Module1.Greet[a b]", got)

	_, err = e.RunMacro("Module1.Greet", make([]string, 11))
	assert.EqualError(t, err, "macro supports at most 10 arguments")
}

func TestExcelReadRange(t *testing.T) {
	e, b := newExcel(t)
	wb, err := e.OpenWorkbook("C:\\Book1.xlsx")
	require.NoError(t, err)

	got, err := e.ReadRange(wb, "Sheet1", "$B$2:C3")
	require.NoError(t, err)
	assert.Equal(t, [][]any{
		{"R2C2", "R2C3"},
		{"R3C2", "R3C3"},
	}, got)

	// the range and its four cells are released once read
	released := map[string]int{}
	for _, o := range b.Releases {
		released[o.TypeName]++
	}
	assert.Equal(t, 5, released["Range"])

	_, err = e.ReadRange(wb, "Missing", "A1")
	assert.ErrorContains(t, err, "sheet not found: Missing")

	_, err = e.ReadRange(wb, "Sheet1", "A1:Z1000")
	assert.ErrorContains(t, err, "at most 5000 can be read at once")
}
