package vicalc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/javajack/vicalc/cellref"
)

// DocumentVersion is written into every saved document.
const DocumentVersion = "1.0"

// ErrUnsupportedVersion is returned when loading a document from a newer
// major format version.
var ErrUnsupportedVersion = errors.New("unsupported document version")

// Document is the native file format: raw cell contents keyed by address
// and explicit column widths keyed by column letter.
type Document struct {
	Version   string                `json:"version"`
	Name      string                `json:"name"`
	Cells     map[string]RawContent `json:"cells"`
	ColWidths map[string]int        `json:"col_widths,omitempty"`
}

// RawContent is a cell's raw input. It is written as a JSON string; older
// files storing {"value": ..., "formula": ...} objects are read too, taking
// the formula when present.
type RawContent string

func (r *RawContent) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*r = RawContent(s)
		return nil
	}
	var obj struct {
		Value   string  `json:"value"`
		Formula *string `json:"formula"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("cell content must be a string or object: %w", err)
	}
	if obj.Formula != nil {
		*r = RawContent(*obj.Formula)
	} else {
		*r = RawContent(obj.Value)
	}
	return nil
}

// DecodeDocument reads a JSON document.
func DecodeDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

// Encode writes the document as indented JSON.
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}

// Save captures the sheet as a Document.
func (s *Session) Save() *Document {
	doc := &Document{
		Version: DocumentVersion,
		Name:    s.sheet.Name(),
		Cells:   make(map[string]RawContent, s.sheet.Len()),
	}
	for _, a := range s.sheet.Addresses() {
		doc.Cells[a.Name()] = RawContent(s.sheet.Raw(a))
	}
	for col, w := range s.sheet.Widths() {
		if doc.ColWidths == nil {
			doc.ColWidths = make(map[string]int)
		}
		doc.ColWidths[cellref.ColToName(col)] = w
	}
	return doc
}

// Load replaces the sheet with the document's contents and recalculates.
// Undo history is cleared; the clipboard is kept. Invalid addresses or
// column names reject the whole document and leave the session unchanged.
func (s *Session) Load(doc *Document) error {
	if major, _, _ := strings.Cut(doc.Version, "."); major != "" && major != "1" {
		return fmt.Errorf("%w %q", ErrUnsupportedVersion, doc.Version)
	}
	cells := make(map[cellref.Address]string, len(doc.Cells))
	var errs []error
	for name, raw := range doc.Cells {
		a, err := cellref.Parse(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("cell %q: %w", name, err))
			continue
		}
		cells[a.Key()] = string(raw)
	}
	widths := make(map[int]int, len(doc.ColWidths))
	for name, w := range doc.ColWidths {
		col, err := cellref.NameToCol(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("column width %q: %w", name, err))
			continue
		}
		widths[col] = w
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	s.sheet.Reset()
	if doc.Name != "" {
		s.sheet.SetName(doc.Name)
	}
	for col, w := range widths {
		s.sheet.SetColWidth(col, w)
	}
	if err := s.sheet.Plan("load", cells).Apply(s.sheet); err != nil {
		return err
	}
	s.history.Reset()
	s.logger.Info("document loaded",
		slog.String("name", s.sheet.Name()),
		slog.Int("cells", s.sheet.Len()))
	return nil
}
