package office

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/negokaz/comobject-mcp-server/internal/comobject"
	"github.com/negokaz/comobject-mcp-server/internal/comobject/comobjecttest"
)

func newWord(t *testing.T, launched bool) (*Word, *comobject.Proxy, *comobjecttest.Binder) {
	t.Helper()
	b := comobjecttest.NewBinder()
	newFakeWord(b)
	app, err := comobject.New(b, WordProgID)
	require.NoError(t, err)
	t.Cleanup(func() { app.Dispose() })
	w, err := NewWord(app, launched)
	require.NoError(t, err)
	return w, app, b
}

func TestWordOpenDocument(t *testing.T) {
	w, app, _ := newWord(t, true)

	visible, err := app.Get("Visible")
	require.NoError(t, err)
	assert.Equal(t, false, visible)

	doc, err := w.Open("C:/docs/Document.docx")
	require.NoError(t, err)

	got, err := w.Paragraph(doc, 1)
	require.NoError(t, err)
	assert.Equal(t, "Paragraph 1", got)

	count, err := w.ParagraphCount(doc)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = w.Paragraph(doc, 3)
	assert.Error(t, err)

	_, err = w.Open("C:/docs/Document.txt")
	assert.ErrorContains(t, err, "failed to open document")
}

func TestWordAttachedInstanceStaysVisible(t *testing.T) {
	w, app, _ := newWord(t, false)

	visible, err := app.Get("Visible")
	require.NoError(t, err)
	assert.Equal(t, true, visible)

	require.NoError(t, w.Quit())
	assert.NotContains(t, app.Value().(*comobjecttest.Object).Props, "Quit")
}

func TestWordAddParagraph(t *testing.T) {
	w, _, _ := newWord(t, true)
	doc, err := w.NewDocument()
	require.NoError(t, err)

	require.NoError(t, w.AddParagraph(doc, "Pagragraph 1"))

	got, err := w.Paragraph(doc, 1)
	require.NoError(t, err)
	assert.Equal(t, "Pagragraph 1", got)
}

func TestWordReplaceAll(t *testing.T) {
	w, _, b := newWord(t, true)
	doc, err := w.NewDocument()
	require.NoError(t, err)
	require.NoError(t, w.AddParagraph(doc, "Text"))

	require.NoError(t, w.ReplaceAll(doc, "Text", "TextReplace"))

	got, err := w.Paragraph(doc, 1)
	require.NoError(t, err)
	assert.Equal(t, "TextReplace", got)

	var execute *comobjecttest.Call
	for i := range b.Calls {
		if b.Calls[i].Name == "Execute" {
			execute = &b.Calls[i]
		}
	}
	require.NotNil(t, execute)
	require.Len(t, execute.Args, 11)
	assert.Equal(t, comobject.Missing, execute.Args[0])
	assert.Equal(t, wdReplaceAll, execute.Args[10])
}

func TestWordSaveAsAndClose(t *testing.T) {
	tests := []struct {
		path   string
		format int
	}{
		{path: "C:/out/Document.docx", format: WdFormatDocumentDefault},
		{path: "C:/out/Document.doc", format: WdFormatDocument},
		{path: "C:/out/Document.PDF", format: WdFormatPDF},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w, app, _ := newWord(t, true)
			doc, err := w.NewDocument()
			require.NoError(t, err)

			format, ok := WordFormatFor(tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.format, format)

			require.NoError(t, w.SaveAs(doc, tt.path, format))
			require.NoError(t, w.Close(doc))
			require.NoError(t, w.Quit())

			native := doc.Value().(*comobjecttest.Object)
			assert.Equal(t, []any{tt.path, tt.format}, native.Props["SavedAs"])
			assert.Equal(t, true, native.Props["Closed"])
			assert.Equal(t, true, app.Value().(*comobjecttest.Object).Props["Quit"])
		})
	}

	_, ok := WordFormatFor("C:/out/Document.odt")
	assert.False(t, ok)
}
