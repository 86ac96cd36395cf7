package office

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/negokaz/comobject-mcp-server/internal/comobject"
)

// ServiceManagerProgID is the COM entry point of the LibreOffice bridge.
const ServiceManagerProgID = "com.sun.star.ServiceManager"

const paragraphBreak = 0

var libreOfficeFilters = map[string]string{
	".doc":  "MS Word 97",
	".docx": "MS Word 2007 XML",
	".html": "HTML (StarWriter)",
	".odt":  "writer8",
	".pdf":  "writer_pdf_Export",
	".rtf":  "Rich Text Format",
	".txt":  "Text",
}

// LibreOfficeFilterFor picks an export filter from a file extension.
func LibreOfficeFilterFor(path string) (string, bool) {
	filter, ok := libreOfficeFilters[strings.ToLower(filepath.Ext(path))]
	return filter, ok
}

// LibreOffice drives Writer documents through the service manager.
type LibreOffice struct {
	serviceManager *comobject.Proxy
	desktop        *comobject.Proxy
}

func NewLibreOffice(serviceManager *comobject.Proxy) (*LibreOffice, error) {
	desktop, err := object(serviceManager.Invoke("createInstance", "com.sun.star.frame.Desktop"))
	if err != nil {
		return nil, fmt.Errorf("failed to create desktop: %w", err)
	}
	return &LibreOffice{serviceManager: serviceManager, desktop: desktop}, nil
}

// PropertyValue builds a com.sun.star.beans.PropertyValue struct.
func (l *LibreOffice) PropertyValue(name string, value any) (*comobject.Proxy, error) {
	prop, err := object(l.serviceManager.Invoke("Bridge_GetStruct", "com.sun.star.beans.PropertyValue"))
	if err != nil {
		return nil, fmt.Errorf("failed to create PropertyValue: %w", err)
	}
	if err := prop.Set("Name", name); err != nil {
		return nil, err
	}
	if err := prop.Set("Value", value); err != nil {
		return nil, err
	}
	return prop, nil
}

func (l *LibreOffice) loadProps() ([]any, error) {
	hidden, err := l.PropertyValue("Hidden", true)
	if err != nil {
		return nil, err
	}
	tracked, err := l.PropertyValue("ShowTrackedChanges", false)
	if err != nil {
		return nil, err
	}
	return []any{hidden, tracked}, nil
}

// Load opens the document at url in a hidden frame.
func (l *LibreOffice) Load(url string) (*comobject.Proxy, error) {
	props, err := l.loadProps()
	if err != nil {
		return nil, err
	}
	doc, err := object(l.desktop.Invoke("loadComponentFromURL", url, "_blank", 0, props))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", url, err)
	}
	return doc, nil
}

// NewDocument creates an empty Writer document.
func (l *LibreOffice) NewDocument() (*comobject.Proxy, error) {
	return l.Load("private:factory/swriter")
}

// Store saves doc at url in its native format.
func (l *LibreOffice) Store(doc *comobject.Proxy, url string) error {
	if _, err := doc.Invoke("storeAsURL", url, []any{}); err != nil {
		return fmt.Errorf("failed to store %s: %w", url, err)
	}
	return nil
}

// Export writes a copy of doc at url through the named filter.
func (l *LibreOffice) Export(doc *comobject.Proxy, url, filter string) error {
	prop, err := l.PropertyValue("FilterName", filter)
	if err != nil {
		return err
	}
	if _, err := doc.Invoke("storeToURL", url, []any{prop}); err != nil {
		return fmt.Errorf("failed to export %s: %w", url, err)
	}
	return nil
}

// AppendParagraph adds s followed by a paragraph break at the end of the text.
func (l *LibreOffice) AppendParagraph(doc *comobject.Proxy, s string) error {
	xText, err := object(doc.Invoke("getText"))
	if err != nil {
		return err
	}
	end, err := xText.Invoke("getEnd")
	if err != nil {
		return err
	}
	if _, err := xText.Invoke("insertString", end, s, false); err != nil {
		return err
	}
	end, err = xText.Invoke("getEnd")
	if err != nil {
		return err
	}
	_, err = xText.Invoke("insertControlCharacter", end, paragraphBreak, false)
	return err
}

// FirstParagraph returns the text of the first paragraph.
func (l *LibreOffice) FirstParagraph(doc *comobject.Proxy) (string, error) {
	xText, err := object(doc.Invoke("getText"))
	if err != nil {
		return "", err
	}
	cursor, err := object(xText.Invoke("createTextCursor"))
	if err != nil {
		return "", err
	}
	if _, err := cursor.Invoke("gotoStartOfParagraph", false); err != nil {
		return "", err
	}
	if _, err := cursor.Invoke("gotoEndOfParagraph", true); err != nil {
		return "", err
	}
	return text(cursor.Invoke("getString"))
}

// ReplaceAll replaces every occurrence of search and returns the count.
func (l *LibreOffice) ReplaceAll(doc *comobject.Proxy, search, replace string) (int, error) {
	descriptor, err := object(doc.Invoke("createReplaceDescriptor"))
	if err != nil {
		return 0, err
	}
	if _, err := descriptor.Invoke("setSearchString", search); err != nil {
		return 0, err
	}
	if _, err := descriptor.Invoke("setReplaceString", replace); err != nil {
		return 0, err
	}
	return integer(doc.Invoke("replaceAll", descriptor))
}

// Close closes doc, discarding changes.
func (l *LibreOffice) Close(doc *comobject.Proxy) error {
	_, err := doc.Invoke("close", false)
	return err
}
