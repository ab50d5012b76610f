package docweave

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewDocxReader(t *testing.T) {
	docx := createDocxBytes("Hello")

	reader, err := NewDocxReader(bytes.NewReader(docx), int64(len(docx)))
	if err != nil {
		t.Fatalf("NewDocxReader: %v", err)
	}

	content, err := reader.GetDocumentXML()
	if err != nil {
		t.Fatalf("GetDocumentXML: %v", err)
	}
	if !strings.Contains(string(content), "Hello") {
		t.Errorf("document.xml missing content: %s", content)
	}
}

func TestNewDocxReaderRejectsNonDocx(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("not a zip archive")

	if _, err := NewDocxReader(bytes.NewReader(buf.Bytes()), int64(buf.Len())); err == nil {
		t.Error("expected error for non-zip input")
	}
}

func TestNewDocxReaderRequiresDocumentPart(t *testing.T) {
	docx := createDocxBytes("x")
	reader, err := NewDocxReader(bytes.NewReader(docx), int64(len(docx)))
	if err != nil {
		t.Fatalf("NewDocxReader: %v", err)
	}

	_, err = reader.GetPart("word/nonexistent.xml")
	if err == nil {
		t.Fatal("expected error for missing part")
	}
	if !IsDocumentError(err) {
		t.Errorf("want DocumentError, got %T", err)
	}
}

func TestParseDocx(t *testing.T) {
	docx := createDocxBytesWithBody(
		`<w:p><w:r><w:t>First</w:t></w:r></w:p>` +
			`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>Cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>` +
			`<w:p><w:r><w:t>Last</w:t></w:r></w:p>`)

	reader, err := NewDocxReader(bytes.NewReader(docx), int64(len(docx)))
	if err != nil {
		t.Fatalf("NewDocxReader: %v", err)
	}
	doc, err := reader.ParseDocx()
	if err != nil {
		t.Fatalf("ParseDocx: %v", err)
	}

	if len(doc.Body.Elements) != 3 {
		t.Fatalf("element count = %d, want 3", len(doc.Body.Elements))
	}
	if _, ok := doc.Body.Elements[0].(*Paragraph); !ok {
		t.Errorf("element 0 is %T, want *Paragraph", doc.Body.Elements[0])
	}
	if _, ok := doc.Body.Elements[1].(*Table); !ok {
		t.Errorf("element 1 is %T, want *Table", doc.Body.Elements[1])
	}

	texts := bodyTexts(doc)
	want := []string{"First", "Cell", "Last"}
	for i, text := range want {
		if texts[i] != text {
			t.Errorf("texts[%d] = %q, want %q", i, texts[i], text)
		}
	}
}

func TestMarshalDocument(t *testing.T) {
	doc := docOf(
		para("Hello"),
		tableFromCells([]string{"Cell"}),
	)

	data, err := MarshalDocument(doc)
	if err != nil {
		t.Fatalf("MarshalDocument: %v", err)
	}

	out := string(data)
	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`,
		`<w:document xmlns:w=`,
		`<w:body>`,
		`<w:p><w:r><w:t>Hello</w:t></w:r></w:p>`,
		`<w:tbl>`,
		`<w:tr>`,
		`<w:tc>`,
		`</w:document>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMarshalDocumentPreservesSpace(t *testing.T) {
	p := &Paragraph{}
	run := Run{}
	run.SetText("trailing space ")
	p.Runs = []Run{run}

	data, err := MarshalDocument(docOf(p))
	if err != nil {
		t.Fatalf("MarshalDocument: %v", err)
	}
	if !strings.Contains(string(data), `<w:t xml:space="preserve">trailing space </w:t>`) {
		t.Errorf("space attribute not preserved:\n%s", data)
	}
}

func TestMarshalDocumentRoundTrip(t *testing.T) {
	original := docOf(
		para("Hello World"),
		tableFromCells([]string{"A", "B"}, []string{"C", "D"}),
	)

	data, err := MarshalDocument(original)
	if err != nil {
		t.Fatalf("MarshalDocument: %v", err)
	}

	parsed, err := ParseDocument(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}

	want := bodyTexts(original)
	got := bodyTexts(parsed)
	if len(got) != len(want) {
		t.Fatalf("texts = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("texts[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWriteDocx(t *testing.T) {
	docx := createDocxBytes("Old")
	source, err := NewDocxReader(bytes.NewReader(docx), int64(len(docx)))
	if err != nil {
		t.Fatalf("NewDocxReader: %v", err)
	}

	replacement, err := MarshalDocument(docOf(para("New")))
	if err != nil {
		t.Fatalf("MarshalDocument: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteDocx(&buf, source, replacement); err != nil {
		t.Fatalf("WriteDocx: %v", err)
	}

	repacked, err := NewDocxReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("repacked archive unreadable: %v", err)
	}

	content, err := repacked.GetDocumentXML()
	if err != nil {
		t.Fatalf("GetDocumentXML: %v", err)
	}
	if !strings.Contains(string(content), "New") || strings.Contains(string(content), "Old") {
		t.Errorf("document part not replaced: %s", content)
	}

	// Every other part must survive the repack, in order.
	if len(repacked.ListParts()) != len(source.ListParts()) {
		t.Errorf("part count = %d, want %d", len(repacked.ListParts()), len(source.ListParts()))
	}
}
