package office

// PageCount returns how many pages of at most pageSize cells r splits
// into. Rows are grouped into bands; a row wider than pageSize is split
// further into column runs, row by row.
func (r CellRange) PageCount(pageSize int) int {
	pageSize = pageSizeOrDefault(pageSize)
	if r.Cols() > pageSize {
		return r.Rows() * ceilDiv(r.Cols(), pageSize)
	}
	return ceilDiv(r.Rows(), pageSize/r.Cols())
}

// Page returns the n-th page of r, counting from 1, and false when n is
// out of range.
func (r CellRange) Page(n, pageSize int) (CellRange, bool) {
	pageSize = pageSizeOrDefault(pageSize)
	if n < 1 || n > r.PageCount(pageSize) {
		return CellRange{}, false
	}
	i := n - 1
	if r.Cols() > pageSize {
		perRow := ceilDiv(r.Cols(), pageSize)
		row := r.StartRow + i/perRow
		col := r.StartCol + (i%perRow)*pageSize
		return CellRange{StartCol: col, StartRow: row, EndCol: min(col+pageSize-1, r.EndCol), EndRow: row}, true
	}
	rowsPerPage := pageSize / r.Cols()
	row := r.StartRow + i*rowsPerPage
	return CellRange{StartCol: r.StartCol, StartRow: row, EndCol: r.EndCol, EndRow: min(row+rowsPerPage-1, r.EndRow)}, true
}

// Pages returns every page of r in reading order.
func (r CellRange) Pages(pageSize int) []CellRange {
	pages := make([]CellRange, 0, r.PageCount(pageSize))
	for n := 1; ; n++ {
		p, ok := r.Page(n, pageSize)
		if !ok {
			return pages
		}
		pages = append(pages, p)
	}
}

func pageSizeOrDefault(pageSize int) int {
	if pageSize <= 0 {
		return MaxRangeCells
	}
	return pageSize
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
