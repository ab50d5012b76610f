// Package docweave resolves placeholder templates inside
// word-processing documents (DOCX).
//
// Docweave takes a parsed document tree containing directives and a
// set of data bindings, and rewrites the tree in place: placeholders
// are substituted, conditional regions are kept or dropped, and loop
// regions are expanded once per sequence item. Run formatting survives
// substitution even when a placeholder is split across several
// differently-formatted runs.
//
// # Quick Start
//
//	tmpl, err := docweave.PrepareFile("template.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tmpl.Close()
//
//	data := docweave.TemplateData{
//	    "CustomerName": "Jane Doe",
//	    "Products": []map[string]interface{}{
//	        {"Name": "Widget", "Price": 19.99},
//	        {"Name": "Gadget", "Price": 29.99},
//	    },
//	}
//
//	output, result, err := tmpl.Execute(data, docweave.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.IsSuccess {
//	    log.Fatal(result.Errors)
//	}
//
//	os.WriteFile("output.docx", output.Bytes(), 0644)
//
// # Template Syntax
//
// All directives use double curly braces:
//
//	{{name}}                      - Value placeholder
//	{{Customer.Address.City}}     - Dotted property path
//	{{Items[0].Name}}             - Indexed access
//
// Conditional regions keep or drop the bounded content:
//
//	{{#if IsVip}}...{{/if}}
//	{{#if Active}}...{{else}}...{{/if}}
//
// Loop regions repeat the bounded content once per item:
//
//	{{#each Products}}{{.Name}}: {{.Price}}{{/each}}
//	{{#each Products as product}}{{product.Name}}{{/each}}
//
// A block directive that is the only content of a paragraph (or of a
// table row) bounds whole elements: the enclosed paragraphs, tables or
// rows are kept, dropped or repeated as units. Block directives mixed
// with other text inside one paragraph must be balanced within that
// paragraph and operate on the text between them.
//
// Missing value placeholders are handled per Options.OnMissing: left
// in place, replaced with empty text, or failing the whole run while
// leaving the document untouched.
package docweave
