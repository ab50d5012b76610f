package docweave

import (
	"bytes"
	"io"
	"os"
)

// PreparedTemplate is a parsed template package ready to be executed
// any number of times. Each execution works on its own copy of the
// document tree, so a prepared template is safe to reuse.
type PreparedTemplate struct {
	source *DocxReader
	doc    *Document
	engine *Engine
}

// Prepare loads a template package from a reader.
func (e *Engine) Prepare(r io.Reader) (*PreparedTemplate, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, NewDocumentError("open", "", err)
	}

	source, err := NewDocxReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}

	doc, err := source.ParseDocx()
	if err != nil {
		return nil, err
	}

	return &PreparedTemplate{source: source, doc: doc, engine: e}, nil
}

// PrepareFile loads a template package from a file path.
func (e *Engine) PrepareFile(path string) (*PreparedTemplate, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, NewDocumentError("open", path, err)
	}
	defer file.Close()

	return e.Prepare(file)
}

// Prepare loads a template package from a reader using a default
// engine.
func Prepare(r io.Reader) (*PreparedTemplate, error) {
	return NewEngine().Prepare(r)
}

// PrepareFile loads a template package from a file path using a
// default engine.
func PrepareFile(path string) (*PreparedTemplate, error) {
	return NewEngine().PrepareFile(path)
}

// Document returns the parsed template tree.
func (t *PreparedTemplate) Document() *Document {
	return t.doc
}

// Execute resolves the template against data and returns the
// resulting package bytes along with the processing report. The
// prepared tree itself is never modified.
func (t *PreparedTemplate) Execute(data TemplateData, opts Options) (*bytes.Buffer, *ProcessingResult, error) {
	working := &Document{}
	if t.doc.Body != nil {
		working.Body = &Body{Elements: cloneElements(t.doc.Body.Elements)}
	}

	result := t.engine.Process(working, data, opts)

	documentXML, err := MarshalDocument(working)
	if err != nil {
		return nil, result, err
	}

	var buf bytes.Buffer
	if err := WriteDocx(&buf, t.source, documentXML); err != nil {
		return nil, result, err
	}
	return &buf, result, nil
}

// Close releases the template's resources.
func (t *PreparedTemplate) Close() error {
	t.source = nil
	t.doc = nil
	return nil
}
