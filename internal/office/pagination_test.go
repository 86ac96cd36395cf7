package office

import (
	"testing"
)

func TestPages(t *testing.T) {
	tests := []struct {
		name     string
		rangeStr string
		pageSize int
		want     []string
	}{
		{
			name:     "single page fits all",
			rangeStr: "A1:C10",
			pageSize: 100,
			want:     []string{"A1:C10"},
		},
		{
			name:     "multiple pages",
			rangeStr: "A1:C10",
			pageSize: 9, // 3 rows of 3 columns
			want:     []string{"A1:C3", "A4:C6", "A7:C9", "A10:C10"},
		},
		{
			name:     "single column",
			rangeStr: "A1:A5",
			pageSize: 2,
			want:     []string{"A1:A2", "A3:A4", "A5:A5"},
		},
		{
			name:     "page size smaller than a row",
			rangeStr: "A1:E2",
			pageSize: 2,
			want:     []string{"A1:B1", "C1:D1", "E1:E1", "A2:B2", "C2:D2", "E2:E2"},
		},
		{
			name:     "full sheet row",
			rangeStr: "A1:XFD1",
			pageSize: 0,
			want:     []string{"A1:GJH1", "GJI1:NTP1", "NTQ1:VDX1", "VDY1:XFD1"},
		},
		{
			name:     "long column",
			rangeStr: "A1:A20000",
			pageSize: 0,
			want:     []string{"A1:A5000", "A5001:A10000", "A10001:A15000", "A15001:A20000"},
		},
		{
			name:     "single cell",
			rangeStr: "B2",
			pageSize: 100,
			want:     []string{"B2:B2"},
		},
		{
			name:     "default page size",
			rangeStr: "A1:J1001",
			pageSize: 0,
			want:     []string{"A1:J500", "A501:J1000", "A1001:J1001"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRange(tt.rangeStr)
			if err != nil {
				t.Fatalf("ParseRange(%q) failed: %v", tt.rangeStr, err)
			}
			got := r.Pages(tt.pageSize)
			if len(got) != len(tt.want) {
				t.Errorf("Pages(%d) of %s returned %d pages, want %d: got %v",
					tt.pageSize, tt.rangeStr, len(got), len(tt.want), got)
				return
			}
			for i := range got {
				if got[i].String() != tt.want[i] {
					t.Errorf("Pages(%d) of %s [%d] = %q, want %q",
						tt.pageSize, tt.rangeStr, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPage(t *testing.T) {
	r, err := ParseRange("A1:XFD1048576")
	if err != nil {
		t.Fatalf("ParseRange failed: %v", err)
	}

	if got, want := r.PageCount(0), 1048576*4; got != want {
		t.Errorf("PageCount(0) = %d, want %d", got, want)
	}

	tests := []struct {
		name string
		n    int
		want string
	}{
		{name: "first page", n: 1, want: "A1:GJH1"},
		{name: "last run of first row", n: 4, want: "VDY1:XFD1"},
		{name: "second row", n: 5, want: "A2:GJH2"},
		{name: "last page", n: 1048576 * 4, want: "VDY1048576:XFD1048576"},
		{name: "zero", n: 0, want: ""},
		{name: "past the end", n: 1048576*4 + 1, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ""
			if p, ok := r.Page(tt.n, 0); ok {
				got = p.String()
			}
			if got != tt.want {
				t.Errorf("Page(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}
