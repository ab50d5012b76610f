package docweave

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Document represents a parsed word-processing document.
type Document struct {
	XMLName xml.Name `xml:"document"`
	Body    *Body    `xml:"body"`
}

// BodyElement is any element that can appear in a document body.
type BodyElement interface {
	isBodyElement()
}

// Body holds the ordered sequence of block-level elements.
type Body struct {
	Elements []BodyElement `xml:"-"`
}

// Paragraph is a container of formatted text runs.
type Paragraph struct {
	Properties *ParagraphProperties `xml:"pPr"`
	Runs       []Run                `xml:"r"`
}

func (p Paragraph) isBodyElement() {}

// ParagraphProperties carries paragraph-level formatting.
type ParagraphProperties struct {
	Style     *Style     `xml:"pStyle"`
	Alignment *Alignment `xml:"jc"`
	Spacing   *Spacing   `xml:"spacing"`
}

// Run is the minimal unit of formatted text: a text fragment plus an
// opaque formatting handle. The engine copies RunProperties around but
// never interprets them.
type Run struct {
	Properties *RunProperties `xml:"rPr"`
	Text       *Text          `xml:"t"`
	Break      *Break         `xml:"br"`
}

// RunProperties carries run-level formatting.
type RunProperties struct {
	Bold      *Empty          `xml:"b"`
	Italic    *Empty          `xml:"i"`
	Underline *UnderlineStyle `xml:"u"`
	Strike    *Empty          `xml:"strike"`
	Color     *Color          `xml:"color"`
	Size      *Size           `xml:"sz"`
	Font      *Font           `xml:"rFonts"`
}

// Text is the character content of a run.
type Text struct {
	XMLName xml.Name `xml:"t"`
	Space   string   `xml:"space,attr,omitempty"`
	Content string   `xml:",chardata"`
}

// Table is an ordered sequence of rows.
type Table struct {
	Properties *TableProperties `xml:"tblPr"`
	Grid       *TableGrid       `xml:"tblGrid"`
	Rows       []TableRow       `xml:"tr"`
}

func (t Table) isBodyElement() {}

// TableRow is an ordered sequence of cells.
type TableRow struct {
	Properties *TableRowProperties `xml:"trPr"`
	Cells      []TableCell         `xml:"tc"`
}

// TableCell holds an ordered sequence of paragraphs.
type TableCell struct {
	Properties *TableCellProperties `xml:"tcPr"`
	Paragraphs []Paragraph          `xml:"p"`
}

// Empty marks boolean formatting properties.
type Empty struct{}

// Style is a style reference.
type Style struct {
	Val string `xml:"val,attr"`
}

// Alignment is a text alignment value.
type Alignment struct {
	Val string `xml:"val,attr"`
}

// Spacing is paragraph spacing.
type Spacing struct {
	Before int `xml:"before,attr"`
	After  int `xml:"after,attr"`
}

// Color is a text color value.
type Color struct {
	Val string `xml:"val,attr"`
}

// Size is a font size value.
type Size struct {
	Val int `xml:"val,attr"`
}

// Font names the run font.
type Font struct {
	ASCII string `xml:"ascii,attr"`
}

// UnderlineStyle is an underline style value.
type UnderlineStyle struct {
	Val string `xml:"val,attr"`
}

// Break is a line or page break.
type Break struct {
	Type string `xml:"type,attr,omitempty"`
}

// TableProperties carries table-level formatting.
type TableProperties struct {
	Style *Style `xml:"tblStyle"`
}

// TableGrid defines the table columns.
type TableGrid struct {
	Columns []GridColumn `xml:"gridCol"`
}

// GridColumn is a single table column definition.
type GridColumn struct {
	Width int `xml:"w,attr"`
}

// TableRowProperties carries row-level formatting.
type TableRowProperties struct {
	Height *Height `xml:"trHeight"`
}

// Height is a row height value.
type Height struct {
	Val int `xml:"val,attr"`
}

// TableCellProperties carries cell-level formatting.
type TableCellProperties struct {
	Width    *Width    `xml:"tcW"`
	GridSpan *GridSpan `xml:"gridSpan"`
}

// Width is a width setting.
type Width struct {
	Type string `xml:"type,attr"`
	Val  int    `xml:"w,attr"`
}

// GridSpan is a cell column span.
type GridSpan struct {
	Val int `xml:"val,attr"`
}

// UnmarshalXML decodes body children while preserving their order.
func (b *Body) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				var para Paragraph
				if err := d.DecodeElement(&para, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, &para)
			case "tbl":
				var table Table
				if err := d.DecodeElement(&table, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, &table)
			}
		case xml.EndElement:
			if t.Name.Local == "body" {
				return nil
			}
		}
	}

	return nil
}

// MarshalXML encodes body children in their stored order.
func (b Body) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, elem := range b.Elements {
		switch el := elem.(type) {
		case *Paragraph:
			if err := e.EncodeElement(el, xml.StartElement{Name: xml.Name{Local: "p"}}); err != nil {
				return err
			}
		case *Table:
			if err := e.EncodeElement(el, xml.StartElement{Name: xml.Name{Local: "tbl"}}); err != nil {
				return err
			}
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// ParseDocument parses document XML into a Document tree.
func ParseDocument(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)

	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	return &doc, nil
}

// GetText returns the text content of a run.
func (r *Run) GetText() string {
	if r.Text == nil {
		return ""
	}
	return r.Text.Content
}

// SetText replaces the text content of a run, allocating the text node
// if the run had none. Replacement text keeps leading and trailing
// whitespace intact.
func (r *Run) SetText(s string) {
	if r.Text == nil {
		r.Text = &Text{Content: s}
	} else {
		r.Text.Content = s
	}
	if s != strings.TrimSpace(s) {
		r.Text.Space = "preserve"
	}
}

// GetText returns the concatenated text of all runs in a paragraph.
func (p *Paragraph) GetText() string {
	var sb strings.Builder
	for _, run := range p.Runs {
		sb.WriteString(run.GetText())
	}
	return sb.String()
}

// GetText returns the concatenated text of all paragraphs in a cell,
// one line per paragraph.
func (c *TableCell) GetText() string {
	var texts []string
	for i := range c.Paragraphs {
		if text := c.Paragraphs[i].GetText(); text != "" {
			texts = append(texts, text)
		}
	}
	return strings.Join(texts, "\n")
}
