package tools

import (
	"github.com/hashicorp/go-multierror"

	"github.com/negokaz/comobject-mcp-server/internal/comobject"
	"github.com/negokaz/comobject-mcp-server/internal/office"
	"github.com/negokaz/comobject-mcp-server/internal/session"
)

// withWord runs fn against Word, quitting it afterwards if it was
// launched for this call.
func (h *Host) withWord(s *session.Session, fn func(w *office.Word) error) (err error) {
	app, launched, release, err := h.open(s, office.WordProgID)
	if err != nil {
		return err
	}
	defer release(&err)

	w, err := office.NewWord(app, launched)
	if err != nil {
		return err
	}
	defer func() {
		if qerr := w.Quit(); qerr != nil {
			err = multierror.Append(err, qerr).ErrorOrNil()
		}
	}()
	return fn(w)
}

// withWordDocument opens path in Word and closes it without saving once
// fn returns.
func (h *Host) withWordDocument(s *session.Session, path string, fn func(w *office.Word, doc *comobject.Proxy) error) error {
	return h.withWord(s, func(w *office.Word) (err error) {
		doc, err := w.Open(path)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := w.Close(doc); cerr != nil {
				err = multierror.Append(err, cerr).ErrorOrNil()
			}
		}()
		return fn(w, doc)
	})
}

func (h *Host) withLibreOfficeDocument(s *session.Session, url string, fn func(l *office.LibreOffice, doc *comobject.Proxy) error) (err error) {
	sm, _, release, err := h.open(s, office.ServiceManagerProgID)
	if err != nil {
		return err
	}
	defer release(&err)

	l, err := office.NewLibreOffice(sm)
	if err != nil {
		return err
	}
	doc, err := l.Load(url)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := l.Close(doc); cerr != nil {
			err = multierror.Append(err, cerr).ErrorOrNil()
		}
	}()
	return fn(l, doc)
}

func (h *Host) withExcel(s *session.Session, fn func(e *office.Excel) error) (err error) {
	app, launched, release, err := h.open(s, office.ExcelProgID)
	if err != nil {
		return err
	}
	defer release(&err)

	if launched {
		// make the newly launched Excel visible
		if err := app.Set("Visible", true); err != nil {
			return err
		}
	}
	return fn(office.NewExcel(app))
}
