// test_helpers.go contains fixture builders shared by the package
// tests. Nothing here is meant for production use.

package docweave

import (
	"archive/zip"
	"bytes"
	"io"
)

// textRun builds a run carrying plain text.
func textRun(text string) Run {
	return Run{Text: &Text{Content: text}}
}

// styledRun builds a run carrying text plus formatting.
func styledRun(text string, props *RunProperties) Run {
	return Run{Properties: props, Text: &Text{Content: text}}
}

// para builds a paragraph with one run per text fragment.
func para(texts ...string) *Paragraph {
	p := &Paragraph{}
	for _, text := range texts {
		p.Runs = append(p.Runs, textRun(text))
	}
	return p
}

// tableFromCells builds a table with one paragraph per cell text.
func tableFromCells(rows ...[]string) *Table {
	table := &Table{}
	for _, cells := range rows {
		var row TableRow
		for _, text := range cells {
			row.Cells = append(row.Cells, TableCell{
				Paragraphs: []Paragraph{*para(text)},
			})
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// docOf builds a document around the given body elements.
func docOf(elements ...BodyElement) *Document {
	return &Document{Body: &Body{Elements: elements}}
}

// bodyTexts returns the text of every top-level paragraph, in order.
// Tables contribute one entry per cell.
func bodyTexts(doc *Document) []string {
	var texts []string
	for _, elem := range doc.Body.Elements {
		switch el := elem.(type) {
		case *Paragraph:
			texts = append(texts, el.GetText())
		case *Table:
			for i := range el.Rows {
				for j := range el.Rows[i].Cells {
					texts = append(texts, el.Rows[i].Cells[j].GetText())
				}
			}
		}
	}
	return texts
}

// createDocxBytes builds a minimal DOCX package whose document body is
// a single paragraph with a single run holding content.
func createDocxBytes(content string) []byte {
	return createDocxBytesWithBody(`<w:p><w:r><w:t>` + content + `</w:t></w:r></w:p>`)
}

// createDocxBytesWithBody builds a minimal DOCX package with the given
// body XML.
func createDocxBytesWithBody(bodyXML string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	rels, _ := w.Create("_rels/.rels")
	io.WriteString(rels, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`)

	doc, _ := w.Create("word/document.xml")
	io.WriteString(doc, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`+bodyXML+`</w:body></w:document>`)

	ct, _ := w.Create("[Content_Types].xml")
	io.WriteString(ct, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`)

	w.Close()
	return buf.Bytes()
}
