package office

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/negokaz/comobject-mcp-server/internal/comobject"
	"github.com/negokaz/comobject-mcp-server/internal/comobject/comobjecttest"
)

func newLibreOffice(t *testing.T) (*LibreOffice, *comobject.Proxy, *comobjecttest.Binder) {
	t.Helper()
	b := comobjecttest.NewBinder()
	newFakeLibreOffice(b)
	sm, err := comobject.New(b, ServiceManagerProgID)
	require.NoError(t, err)
	t.Cleanup(func() { sm.Dispose() })
	l, err := NewLibreOffice(sm)
	require.NoError(t, err)
	return l, sm, b
}

func TestLibreOfficeLoadDocument(t *testing.T) {
	l, _, _ := newLibreOffice(t)

	doc, err := l.Load(FileURL("/tmp/Document.odt"))
	require.NoError(t, err)

	native := doc.Value().(*comobjecttest.Object)
	assert.Equal(t, "file:///tmp/Document.odt", native.Props["URL"])

	props := native.Props["LoadProps"].([]any)
	require.Len(t, props, 2)
	hidden := props[0].(*comobjecttest.Object)
	assert.Equal(t, "Hidden", hidden.Props["Name"])
	assert.Equal(t, true, hidden.Props["Value"])
	tracked := props[1].(*comobjecttest.Object)
	assert.Equal(t, "ShowTrackedChanges", tracked.Props["Name"])
	assert.Equal(t, false, tracked.Props["Value"])

	got, err := l.FirstParagraph(doc)
	require.NoError(t, err)
	assert.Equal(t, "Paragraph 1", got)
}

func TestLibreOfficeAppendParagraph(t *testing.T) {
	l, _, _ := newLibreOffice(t)
	doc, err := l.NewDocument()
	require.NoError(t, err)

	require.NoError(t, l.AppendParagraph(doc, "Pagragraph 1"))

	got, err := l.FirstParagraph(doc)
	require.NoError(t, err)
	assert.Equal(t, "Pagragraph 1", got)
}

func TestLibreOfficeReplaceAll(t *testing.T) {
	l, _, _ := newLibreOffice(t)
	doc, err := l.NewDocument()
	require.NoError(t, err)
	require.NoError(t, l.AppendParagraph(doc, "Text"))

	n, err := l.ReplaceAll(doc, "Text", "TextReplace")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := l.FirstParagraph(doc)
	require.NoError(t, err)
	assert.Equal(t, "TextReplace", got)
}

func TestLibreOfficeExport(t *testing.T) {
	tests := []struct {
		path   string
		filter string
	}{
		{path: "/tmp/out.docx", filter: "MS Word 2007 XML"},
		{path: "/tmp/out.doc", filter: "MS Word 97"},
		{path: "/tmp/out.pdf", filter: "writer_pdf_Export"},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			l, sm, b := newLibreOffice(t)
			doc, err := l.NewDocument()
			require.NoError(t, err)

			filter, ok := LibreOfficeFilterFor(tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.filter, filter)

			require.NoError(t, l.Export(doc, FileURL(tt.path), filter))
			require.NoError(t, l.Close(doc))

			native := doc.Value().(*comobjecttest.Object)
			stored := native.Props["StoredTo"].([]any)
			assert.Equal(t, "file://"+tt.path, stored[0])
			prop := stored[1].([]any)[0].(*comobjecttest.Object)
			assert.Equal(t, "FilterName", prop.Props["Name"])
			assert.Equal(t, tt.filter, prop.Props["Value"])
			assert.Equal(t, true, native.Props["Closed"])

			require.NoError(t, sm.Dispose())
			for _, o := range b.Releases {
				assert.Equal(t, 1, o.Released, "%s released more than once", o.TypeName)
			}
		})
	}
}

func TestLibreOfficeStore(t *testing.T) {
	l, _, _ := newLibreOffice(t)
	doc, err := l.NewDocument()
	require.NoError(t, err)

	require.NoError(t, l.Store(doc, "file:///tmp/out.odt"))
	native := doc.Value().(*comobjecttest.Object)
	assert.Equal(t, []any{"file:///tmp/out.odt", []any{}}, native.Props["StoredAs"])
}
