package docweave

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

const documentPart = "word/document.xml"

// DocxReader reads the parts of a DOCX package.
type DocxReader struct {
	reader *zip.Reader
	parts  map[string]*zip.File
}

// NewDocxReader opens a DOCX package from a random-access reader.
func NewDocxReader(r io.ReaderAt, size int64) (*DocxReader, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, NewDocumentError("open", "", fmt.Errorf("failed to read zip archive: %w", err))
	}

	dr := &DocxReader{
		reader: zipReader,
		parts:  make(map[string]*zip.File),
	}
	for _, file := range zipReader.File {
		dr.parts[file.Name] = file
	}

	if _, ok := dr.parts[documentPart]; !ok {
		return nil, NewDocumentError("open", documentPart, fmt.Errorf("not a valid DOCX package"))
	}

	return dr, nil
}

// DocxReaderFromFile opens a DOCX package from a file path.
func DocxReaderFromFile(path string) (*DocxReader, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, NewDocumentError("open", path, err)
	}
	return NewDocxReader(bytes.NewReader(content), int64(len(content)))
}

// GetDocumentXML returns the content of word/document.xml.
func (dr *DocxReader) GetDocumentXML() ([]byte, error) {
	return dr.GetPart(documentPart)
}

// GetPart returns the content of a named package part.
func (dr *DocxReader) GetPart(name string) ([]byte, error) {
	file, ok := dr.parts[name]
	if !ok {
		return nil, NewDocumentError("read", name, fmt.Errorf("part not found"))
	}

	rc, err := file.Open()
	if err != nil {
		return nil, NewDocumentError("read", name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, NewDocumentError("read", name, err)
	}
	return content, nil
}

// ListParts returns the names of all parts in archive order.
func (dr *DocxReader) ListParts() []string {
	parts := make([]string, 0, len(dr.reader.File))
	for _, file := range dr.reader.File {
		parts = append(parts, file.Name)
	}
	return parts
}

// ParseDocx parses the main document tree of a DOCX package.
func (dr *DocxReader) ParseDocx() (*Document, error) {
	content, err := dr.GetDocumentXML()
	if err != nil {
		return nil, err
	}
	return ParseDocument(bytes.NewReader(content))
}

// MarshalDocument serializes a document tree back to the
// word/document.xml wire form. The tree marshals with local element
// names; the wordprocessingml prefixes are applied in a fix pass over
// the serialized bytes, which is safe because character data has its
// angle brackets and quotes escaped.
func MarshalDocument(doc *Document) ([]byte, error) {
	// A parsed tree carries the namespaced element name; zero it so the
	// field tag's local name applies.
	clean := *doc
	clean.XMLName = xml.Name{}

	data, err := xml.Marshal(&clean)
	if err != nil {
		return nil, NewDocumentError("marshal", documentPart, err)
	}

	xmlStr := string(data)
	for _, r := range elementPrefixes {
		xmlStr = strings.ReplaceAll(xmlStr, r.old, r.new)
	}

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`)
	buf.WriteString(` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">`)

	start := strings.Index(xmlStr, "<w:document>")
	end := strings.LastIndex(xmlStr, "</w:document>")
	if start < 0 || end <= start {
		return nil, NewDocumentError("marshal", documentPart, fmt.Errorf("missing document root"))
	}
	buf.WriteString(xmlStr[start+len("<w:document>") : end])
	buf.WriteString("</w:document>")

	return buf.Bytes(), nil
}

// elementPrefixes maps locally-named serialized elements to their
// prefixed wire form. Attribute rewrites rely on encoding/xml escaping
// quotes inside character data, so a bare ` val="` can only be an
// attribute.
var elementPrefixes = []struct {
	old string
	new string
}{
	{"<document>", "<w:document>"},
	{"</document>", "</w:document>"},
	{"<body>", "<w:body>"},
	{"</body>", "</w:body>"},
	{"<p>", "<w:p>"},
	{"</p>", "</w:p>"},
	{"<r>", "<w:r>"},
	{"</r>", "</w:r>"},
	{"<t ", "<w:t "},
	{"<t>", "<w:t>"},
	{"</t>", "</w:t>"},
	{"<br>", "<w:br/>"},
	{"<br ", "<w:br "},
	{"></br>", "/>"},
	{"</br>", ""},
	{"<pPr>", "<w:pPr>"},
	{"</pPr>", "</w:pPr>"},
	{"<rPr>", "<w:rPr>"},
	{"</rPr>", "</w:rPr>"},
	{"<b></b>", "<w:b/>"},
	{"<i></i>", "<w:i/>"},
	{"<strike></strike>", "<w:strike/>"},
	{"<u ", "<w:u "},
	{"</u>", "</w:u>"},
	{"<color ", "<w:color "},
	{"</color>", "</w:color>"},
	{"<sz ", "<w:sz "},
	{"</sz>", "</w:sz>"},
	{"<rFonts ", "<w:rFonts "},
	{"</rFonts>", "</w:rFonts>"},
	{"<pStyle ", "<w:pStyle "},
	{"</pStyle>", "</w:pStyle>"},
	{"<jc ", "<w:jc "},
	{"</jc>", "</w:jc>"},
	{"<spacing ", "<w:spacing "},
	{"</spacing>", "</w:spacing>"},
	{"<tbl>", "<w:tbl>"},
	{"</tbl>", "</w:tbl>"},
	{"<tblPr>", "<w:tblPr>"},
	{"</tblPr>", "</w:tblPr>"},
	{"<tblStyle ", "<w:tblStyle "},
	{"</tblStyle>", "</w:tblStyle>"},
	{"<tblGrid>", "<w:tblGrid>"},
	{"</tblGrid>", "</w:tblGrid>"},
	{"<gridCol ", "<w:gridCol "},
	{"</gridCol>", "</w:gridCol>"},
	{"<tr>", "<w:tr>"},
	{"</tr>", "</w:tr>"},
	{"<trPr>", "<w:trPr>"},
	{"</trPr>", "</w:trPr>"},
	{"<trHeight ", "<w:trHeight "},
	{"</trHeight>", "</w:trHeight>"},
	{"<tc>", "<w:tc>"},
	{"</tc>", "</w:tc>"},
	{"<tcPr>", "<w:tcPr>"},
	{"</tcPr>", "</w:tcPr>"},
	{"<tcW ", "<w:tcW "},
	{"</tcW>", "</w:tcW>"},
	{"<gridSpan ", "<w:gridSpan "},
	{"</gridSpan>", "</w:gridSpan>"},
	{` space="preserve"`, ` xml:space="preserve"`},
	{`<w:pPr></w:pPr>`, ""},
	{`<w:rPr></w:rPr>`, ""},
	{` val="`, ` w:val="`},
	{` type="`, ` w:type="`},
	{` w="`, ` w:w="`},
	{` ascii="`, ` w:ascii="`},
	{` before="`, ` w:before="`},
	{` after="`, ` w:after="`},
}

// WriteDocx writes a DOCX package to w, copying every part of the
// source package and substituting documentXML for word/document.xml.
// Part order is preserved.
func WriteDocx(w io.Writer, source *DocxReader, documentXML []byte) error {
	zw := zip.NewWriter(w)

	for _, file := range source.reader.File {
		if file.Name == documentPart {
			fw, err := zw.Create(documentPart)
			if err != nil {
				return NewDocumentError("write", documentPart, err)
			}
			if _, err := fw.Write(documentXML); err != nil {
				return NewDocumentError("write", documentPart, err)
			}
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return NewDocumentError("write", file.Name, err)
		}
		fw, err := zw.Create(file.Name)
		if err != nil {
			rc.Close()
			return NewDocumentError("write", file.Name, err)
		}
		if _, err := io.Copy(fw, rc); err != nil {
			rc.Close()
			return NewDocumentError("write", file.Name, err)
		}
		rc.Close()
	}

	if err := zw.Close(); err != nil {
		return NewDocumentError("write", "", err)
	}
	return nil
}
