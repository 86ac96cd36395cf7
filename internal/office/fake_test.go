package office

import (
	"errors"
	"strings"

	"github.com/negokaz/comobject-mcp-server/internal/comobject/comobjecttest"
)

type fakeObject = comobjecttest.Object

func method(o *fakeObject, name string, m comobjecttest.Method) {
	o.Methods[name] = m
}

// newFakeWord registers a Word.Application whose documents keep their
// paragraphs as Range.Text properties.
func newFakeWord(b *comobjecttest.Binder) {
	b.Register(WordProgID, func(app *fakeObject) {
		app.Props["Visible"] = true
		documents := b.NewObject("Documents")
		app.Props["Documents"] = documents

		newDocument := func(paragraphTexts ...string) *fakeObject {
			doc := b.NewObject("Document")
			var paragraphs []*fakeObject
			addParagraph := func(s string) *fakeObject {
				p := b.NewObject("Paragraph")
				rng := b.NewObject("Range")
				rng.Props["Text"] = s + "\r"
				p.Props["Range"] = rng
				paragraphs = append(paragraphs, p)
				return p
			}
			for _, s := range paragraphTexts {
				addParagraph(s)
			}

			collection := b.NewObject("Paragraphs")
			method(collection, "Add", func(self *fakeObject, args []any) (any, error) {
				p := addParagraph("")
				self.Props["Count"] = len(paragraphs)
				return p, nil
			})
			method(collection, "Item", func(self *fakeObject, args []any) (any, error) {
				i, _ := args[0].(int)
				if i < 1 || i > len(paragraphs) {
					return nil, errors.New("The requested member of the collection does not exist.")
				}
				return paragraphs[i-1], nil
			})
			doc.Props["Paragraphs"] = collection

			find := b.NewObject("Find")
			replacement := b.NewObject("Replacement")
			method(find, "ClearFormatting", func(self *fakeObject, args []any) (any, error) { return nil, nil })
			method(replacement, "ClearFormatting", func(self *fakeObject, args []any) (any, error) { return nil, nil })
			find.Props["Replacement"] = replacement
			method(find, "Execute", func(self *fakeObject, args []any) (any, error) {
				if len(args) != 11 || args[10] != wdReplaceAll {
					return false, nil
				}
				search, _ := self.Props["Text"].(string)
				replace, _ := replacement.Props["Text"].(string)
				for _, p := range paragraphs {
					rng := p.Props["Range"].(*fakeObject)
					rng.Props["Text"] = strings.ReplaceAll(rng.Props["Text"].(string), search, replace)
				}
				return true, nil
			})
			content := b.NewObject("Range")
			content.Props["Find"] = find
			doc.Props["Content"] = content

			method(doc, "SaveAs", func(self *fakeObject, args []any) (any, error) {
				self.Props["SavedAs"] = args
				return nil, nil
			})
			method(doc, "Close", func(self *fakeObject, args []any) (any, error) {
				self.Props["Closed"] = true
				return nil, nil
			})
			collection.Props["Count"] = len(paragraphs)
			return doc
		}

		method(documents, "Add", func(self *fakeObject, args []any) (any, error) {
			return newDocument(), nil
		})
		method(documents, "Open", func(self *fakeObject, args []any) (any, error) {
			path, _ := args[0].(string)
			if !strings.HasSuffix(path, ".docx") {
				return nil, errors.New("Word could not open the document")
			}
			return newDocument("Paragraph 1", "Paragraph 2"), nil
		})
		method(app, "Quit", func(self *fakeObject, args []any) (any, error) {
			self.Props["Quit"] = true
			return nil, nil
		})
	})
}

// newFakeLibreOffice registers a service manager whose Writer documents
// keep their text as a single string.
func newFakeLibreOffice(b *comobjecttest.Binder) {
	b.Register(ServiceManagerProgID, func(sm *fakeObject) {
		desktop := b.NewObject("Desktop")
		method(sm, "createInstance", func(self *fakeObject, args []any) (any, error) {
			if args[0] != "com.sun.star.frame.Desktop" {
				return nil, errors.New("unknown service")
			}
			return desktop, nil
		})
		method(sm, "Bridge_GetStruct", func(self *fakeObject, args []any) (any, error) {
			prop := b.NewObject(args[0].(string))
			prop.Props["Name"] = ""
			prop.Props["Value"] = nil
			return prop, nil
		})

		method(desktop, "loadComponentFromURL", func(self *fakeObject, args []any) (any, error) {
			doc := b.NewObject("TextDocument")
			doc.Props["URL"] = args[0]
			doc.Props["LoadProps"] = args[3]
			body := ""
			if args[0] != "private:factory/swriter" {
				body = "Paragraph 1\nParagraph 2\n"
			}

			xText := b.NewObject("Text")
			method(doc, "getText", func(self *fakeObject, args []any) (any, error) { return xText, nil })
			method(xText, "getEnd", func(self *fakeObject, args []any) (any, error) { return b.NewObject("TextRange"), nil })
			method(xText, "insertString", func(self *fakeObject, args []any) (any, error) {
				body += args[1].(string)
				return nil, nil
			})
			method(xText, "insertControlCharacter", func(self *fakeObject, args []any) (any, error) {
				if args[1] == paragraphBreak {
					body += "\n"
				}
				return nil, nil
			})
			method(xText, "createTextCursor", func(self *fakeObject, args []any) (any, error) {
				cursor := b.NewObject("TextCursor")
				noop := func(self *fakeObject, args []any) (any, error) { return nil, nil }
				method(cursor, "gotoStartOfParagraph", noop)
				method(cursor, "gotoEndOfParagraph", noop)
				method(cursor, "getString", func(self *fakeObject, args []any) (any, error) {
					first, _, _ := strings.Cut(body, "\n")
					return first, nil
				})
				return cursor, nil
			})
			method(doc, "createReplaceDescriptor", func(self *fakeObject, args []any) (any, error) {
				d := b.NewObject("ReplaceDescriptor")
				method(d, "setSearchString", func(self *fakeObject, args []any) (any, error) {
					self.Props["Search"] = args[0]
					return nil, nil
				})
				method(d, "setReplaceString", func(self *fakeObject, args []any) (any, error) {
					self.Props["Replace"] = args[0]
					return nil, nil
				})
				return d, nil
			})
			method(doc, "replaceAll", func(self *fakeObject, args []any) (any, error) {
				d := args[0].(*fakeObject)
				search := d.Props["Search"].(string)
				n := strings.Count(body, search)
				body = strings.ReplaceAll(body, search, d.Props["Replace"].(string))
				return int32(n), nil
			})
			method(doc, "storeToURL", func(self *fakeObject, args []any) (any, error) {
				self.Props["StoredTo"] = args
				return nil, nil
			})
			method(doc, "storeAsURL", func(self *fakeObject, args []any) (any, error) {
				self.Props["StoredAs"] = args
				return nil, nil
			})
			method(doc, "close", func(self *fakeObject, args []any) (any, error) {
				self.Props["Closed"] = true
				return nil, nil
			})
			return doc, nil
		})
	})
}
