package office

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/negokaz/comobject-mcp-server/internal/comobject"
)

// WordProgID identifies Word's automation server.
const WordProgID = "Word.Application"

// WdSaveFormat values accepted by Document.SaveAs.
const (
	WdFormatDocument        = 0
	WdFormatText            = 2
	WdFormatRTF             = 6
	WdFormatHTML            = 8
	WdFormatDocumentDefault = 16
	WdFormatPDF             = 17
	WdFormatXPS             = 18
)

const (
	wdFindContinue     = 1
	wdReplaceAll       = 2
	wdDoNotSaveChanges = 0
)

var wordFormats = map[string]int{
	".doc":  WdFormatDocument,
	".docx": WdFormatDocumentDefault,
	".htm":  WdFormatHTML,
	".html": WdFormatHTML,
	".pdf":  WdFormatPDF,
	".rtf":  WdFormatRTF,
	".txt":  WdFormatText,
	".xps":  WdFormatXPS,
}

// WordFormatFor picks the save format from a file extension.
func WordFormatFor(path string) (int, bool) {
	format, ok := wordFormats[strings.ToLower(filepath.Ext(path))]
	return format, ok
}

// Word drives a Word.Application object.
type Word struct {
	app      *comobject.Proxy
	launched bool
}

// NewWord wraps app. A launched instance is hidden and quit on Quit; an
// attached one is left as the user had it.
func NewWord(app *comobject.Proxy, launched bool) (*Word, error) {
	if launched {
		if err := app.Set("Visible", false); err != nil {
			return nil, fmt.Errorf("failed to set Visible: %w", err)
		}
	}
	return &Word{app: app, launched: launched}, nil
}

func (w *Word) documents() (*comobject.Proxy, error) {
	return walk(w.app, "Documents")
}

// Open opens the document at an absolute path.
func (w *Word) Open(path string) (*comobject.Proxy, error) {
	documents, err := w.documents()
	if err != nil {
		return nil, err
	}
	doc, err := object(documents.Invoke("Open", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	return doc, nil
}

// NewDocument creates an empty document.
func (w *Word) NewDocument() (*comobject.Proxy, error) {
	documents, err := w.documents()
	if err != nil {
		return nil, err
	}
	doc, err := object(documents.Invoke("Add"))
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return doc, nil
}

// SaveAs writes doc to path in the given WdSaveFormat.
func (w *Word) SaveAs(doc *comobject.Proxy, path string, format int) error {
	if _, err := doc.Invoke("SaveAs", path, format); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// Paragraph returns the text of the 1-based paragraph without its
// trailing paragraph mark.
func (w *Word) Paragraph(doc *comobject.Proxy, index int) (string, error) {
	paragraphs, err := walk(doc, "Paragraphs")
	if err != nil {
		return "", err
	}
	paragraph, err := object(paragraphs.Index(index))
	if err != nil {
		return "", fmt.Errorf("failed to get paragraph %d: %w", index, err)
	}
	rng, err := walk(paragraph, "Range")
	if err != nil {
		return "", err
	}
	s, err := text(rng.Get("Text"))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// ParagraphCount returns the number of paragraphs in doc.
func (w *Word) ParagraphCount(doc *comobject.Proxy) (int, error) {
	paragraphs, err := walk(doc, "Paragraphs")
	if err != nil {
		return 0, err
	}
	return integer(paragraphs.Get("Count"))
}

// AddParagraph appends a paragraph holding text.
func (w *Word) AddParagraph(doc *comobject.Proxy, s string) error {
	paragraphs, err := walk(doc, "Paragraphs")
	if err != nil {
		return err
	}
	paragraph, err := object(paragraphs.Invoke("Add"))
	if err != nil {
		return fmt.Errorf("failed to add paragraph: %w", err)
	}
	rng, err := walk(paragraph, "Range")
	if err != nil {
		return err
	}
	return rng.Set("Text", s)
}

// ReplaceAll replaces every occurrence of search in the document body.
func (w *Word) ReplaceAll(doc *comobject.Proxy, search, replace string) error {
	find, err := walk(doc, "Content", "Find")
	if err != nil {
		return err
	}
	if _, err := find.Invoke("ClearFormatting"); err != nil {
		return err
	}
	replacement, err := walk(find, "Replacement")
	if err != nil {
		return err
	}
	if _, err := replacement.Invoke("ClearFormatting"); err != nil {
		return err
	}
	if err := replacement.Set("Text", replace); err != nil {
		return err
	}

	settings := []struct {
		name  string
		value any
	}{
		{"Text", search},
		{"Forward", true},
		{"Wrap", wdFindContinue},
		{"Format", false},
		{"MatchCase", false},
		{"MatchWholeWord", false},
		{"MatchWildcards", false},
		{"MatchSoundsLike", false},
		{"MatchAllWordForms", false},
	}
	for _, s := range settings {
		if err := find.Set(s.name, s.value); err != nil {
			return fmt.Errorf("failed to set Find.%s: %w", s.name, err)
		}
	}

	// Replace is the eleventh parameter of Find.Execute
	args := make([]any, 11)
	for i := range args[:10] {
		args[i] = comobject.Missing
	}
	args[10] = wdReplaceAll
	if _, err := find.Invoke("Execute", args...); err != nil {
		return fmt.Errorf("failed to replace text: %w", err)
	}
	return nil
}

// Close closes doc without saving.
func (w *Word) Close(doc *comobject.Proxy) error {
	_, err := doc.Invoke("Close", wdDoNotSaveChanges)
	return err
}

// Quit exits Word if this process launched it.
func (w *Word) Quit() error {
	if !w.launched {
		return nil
	}
	_, err := w.app.Invoke("Quit", wdDoNotSaveChanges)
	return err
}
