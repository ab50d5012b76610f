package docweave

import (
	"fmt"
	"strings"
)

// Engine applies template data to parsed document trees. An Engine is
// safe for concurrent use; every Process call carries its own state.
type Engine struct {
	config *Config
	log    *Logger
}

// NewEngine creates an engine using the global configuration.
func NewEngine() *Engine {
	return NewEngineWithConfig(GetGlobalConfig())
}

// NewEngineWithConfig creates an engine with an explicit configuration.
func NewEngineWithConfig(config *Config) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	return &Engine{
		config: config,
		log:    GetLogger(),
	}
}

// Process resolves all directives of doc against data, mutating the
// tree in place, and returns a report of what happened.
//
// Value placeholders are substituted according to opts.OnMissing.
// Conditional regions keep or drop their bounded content, loop regions
// expand once per sequence item. Structural errors (unbalanced
// delimiters, unmatched block markers, block paths of the wrong shape)
// leave the affected region unchanged and are reported on the result;
// processing continues past them. Under the Fail policy the first
// unresolvable value placeholder aborts the run and the tree is left
// exactly as it was.
func (e *Engine) Process(doc *Document, data TemplateData, opts Options) *ProcessingResult {
	result := newProcessingResult()
	if doc == nil || doc.Body == nil {
		return result
	}

	p := &processor{
		opts:     opts,
		result:   result,
		maxDepth: e.config.MaxDepth,
		log:      e.log,
	}

	elements := p.processElements(doc.Body.Elements, data, 0)
	if p.failed {
		// Nothing is spliced back, so no substitution succeeded.
		result.ReplacementCount = 0
		return result
	}

	doc.Body.Elements = elements

	e.log.WithFields(Fields{
		"replacements": result.ReplacementCount,
		"missing":      len(result.MissingVariables),
		"errors":       len(result.Errors),
	}).Debug("document processed")

	return result
}

// Process resolves doc against data using a default engine.
func Process(doc *Document, data TemplateData, opts Options) *ProcessingResult {
	return NewEngine().Process(doc, data, opts)
}

// processor carries the walk state of a single Process call. The walk
// never mutates the input tree: paragraphs and tables are rebuilt into
// fresh nodes and spliced into the body only when the run did not
// abort.
type processor struct {
	opts     Options
	result   *ProcessingResult
	maxDepth int
	failed   bool
	log      *Logger
}

// processElements walks an ordered element sequence, expanding block
// regions bounded by marker-only paragraphs and substituting value
// placeholders in everything else.
func (p *processor) processElements(elements []BodyElement, ctx Context, depth int) []BodyElement {
	if depth > p.maxDepth {
		p.result.recordError(newDirectiveError("", 0, fmt.Sprintf("nesting depth exceeds limit of %d", p.maxDepth)))
		return elements
	}

	out := make([]BodyElement, 0, len(elements))
	for i := 0; i < len(elements); i++ {
		if p.failed {
			return out
		}

		para, isPara := elements[i].(*Paragraph)
		if !isPara {
			if table, isTable := elements[i].(*Table); isTable {
				out = append(out, p.processTable(table, ctx, depth))
			} else {
				out = append(out, elements[i])
			}
			continue
		}

		marker, isMarker := blockMarker(para.GetText())
		if !isMarker {
			out = append(out, p.processParagraph(para, ctx))
			continue
		}

		if !marker.opensBlock() {
			p.result.recordError(newDirectiveError(marker.Raw(strings.TrimSpace(para.GetText())), 0,
				fmt.Sprintf("%s marker without matching opening marker", marker.Kind)))
			out = append(out, para)
			continue
		}

		end, elseIdx, err := matchRegion(marker, func(j int) (Directive, bool) {
			if q, ok := elements[j].(*Paragraph); ok {
				return blockMarker(q.GetText())
			}
			return Directive{}, false
		}, len(elements), i)
		if err != nil {
			p.result.recordError(err)
			out = append(out, para)
			continue
		}

		switch marker.Kind {
		case DirectiveIf:
			kept, ok := p.conditionalBranch(marker, ctx, elements[i+1:end], elements, i, end, elseIdx)
			if !ok {
				out = append(out, elements[i:end+1]...)
			} else {
				out = append(out, p.processElements(kept, ctx, depth+1)...)
			}

		case DirectiveEach:
			expanded, ok := p.expandLoop(marker, ctx, elements[i+1:end], depth)
			if !ok {
				out = append(out, elements[i:end+1]...)
			} else {
				out = append(out, expanded...)
			}
		}
		i = end
	}

	return out
}

// conditionalBranch resolves an {{#if}} marker and returns the branch
// to keep. The boolean result is false when the path did not resolve,
// in which case the whole region stays as it was.
func (p *processor) conditionalBranch(marker Directive, ctx Context, inner []BodyElement, elements []BodyElement, start, end, elseIdx int) ([]BodyElement, bool) {
	val, found := Resolve(ctx, marker.Body)
	if !found {
		p.result.recordError(newDirectiveError(marker.Source(), 0,
			fmt.Sprintf("conditional path %q did not resolve", marker.Body)))
		return nil, false
	}

	if elseIdx < 0 {
		if isTruthy(val) {
			return inner, true
		}
		return nil, true
	}

	if isTruthy(val) {
		return elements[start+1 : elseIdx], true
	}
	return elements[elseIdx+1 : end], true
}

// expandLoop resolves an {{#each}} marker and expands the bounded
// region once per item, each expansion processed against a context
// binding the item under its alias or under the current-item name.
func (p *processor) expandLoop(marker Directive, ctx Context, inner []BodyElement, depth int) ([]BodyElement, bool) {
	val, found := Resolve(ctx, marker.Body)
	if !found {
		p.result.recordError(newDirectiveError(marker.Source(), 0,
			fmt.Sprintf("loop path %q did not resolve", marker.Body)))
		return nil, false
	}

	items, ok := sequenceItems(val)
	if !ok {
		p.result.recordError(newDirectiveError(marker.Source(), 0,
			fmt.Sprintf("loop path %q did not resolve to a sequence", marker.Body)))
		return nil, false
	}

	binding := marker.Alias
	if binding == "" {
		binding = CurrentItemName
	}

	var out []BodyElement
	for _, item := range items {
		if p.failed {
			break
		}
		itemCtx := WithValue(ctx, binding, item)
		out = append(out, p.processElements(cloneElements(inner), itemCtx, depth+1)...)
	}
	return out, true
}

// processTable rebuilds a table, expanding row-level block regions and
// substituting placeholders in every remaining cell.
func (p *processor) processTable(table *Table, ctx Context, depth int) *Table {
	return &Table{
		Properties: table.Properties,
		Grid:       table.Grid,
		Rows:       p.processRows(table.Rows, ctx, depth),
	}
}

// processRows walks an ordered row sequence the same way processElements
// walks body elements: marker rows bound regions, everything else is
// resolved cell by cell. Surviving and cloned region rows come back
// through here, so row regions nest.
func (p *processor) processRows(rows []TableRow, ctx Context, depth int) []TableRow {
	if depth > p.maxDepth {
		p.result.recordError(newDirectiveError("", 0, fmt.Sprintf("nesting depth exceeds limit of %d", p.maxDepth)))
		return rows
	}

	out := make([]TableRow, 0, len(rows))
	for i := 0; i < len(rows); i++ {
		if p.failed {
			return out
		}

		marker, isMarker := blockMarker(rowText(&rows[i]))
		if !isMarker {
			out = append(out, p.processRow(&rows[i], ctx, depth))
			continue
		}

		if !marker.opensBlock() {
			p.result.recordError(newDirectiveError(marker.Raw(strings.TrimSpace(rowText(&rows[i]))), 0,
				fmt.Sprintf("%s marker without matching opening marker", marker.Kind)))
			out = append(out, rows[i])
			continue
		}

		end, elseIdx, err := matchRegion(marker, func(j int) (Directive, bool) {
			return blockMarker(rowText(&rows[j]))
		}, len(rows), i)
		if err != nil {
			p.result.recordError(err)
			out = append(out, rows[i])
			continue
		}

		switch marker.Kind {
		case DirectiveIf:
			kept, ok := p.conditionalRows(marker, ctx, rows, i, end, elseIdx)
			if !ok {
				out = append(out, rows[i:end+1]...)
			} else {
				out = append(out, p.processRows(kept, ctx, depth+1)...)
			}

		case DirectiveEach:
			expanded, ok := p.expandRowLoop(marker, ctx, rows[i+1:end], depth)
			if !ok {
				out = append(out, rows[i:end+1]...)
			} else {
				out = append(out, expanded...)
			}
		}
		i = end
	}

	return out
}

func (p *processor) conditionalRows(marker Directive, ctx Context, rows []TableRow, start, end, elseIdx int) ([]TableRow, bool) {
	val, found := Resolve(ctx, marker.Body)
	if !found {
		p.result.recordError(newDirectiveError(marker.Source(), 0,
			fmt.Sprintf("conditional path %q did not resolve", marker.Body)))
		return nil, false
	}

	if elseIdx < 0 {
		if isTruthy(val) {
			return rows[start+1 : end], true
		}
		return nil, true
	}

	if isTruthy(val) {
		return rows[start+1 : elseIdx], true
	}
	return rows[elseIdx+1 : end], true
}

// expandRowLoop expands a row-bounded {{#each}} region once per item.
// Every expansion clones the template rows so formatting carries over
// to each produced row.
func (p *processor) expandRowLoop(marker Directive, ctx Context, inner []TableRow, depth int) ([]TableRow, bool) {
	val, found := Resolve(ctx, marker.Body)
	if !found {
		p.result.recordError(newDirectiveError(marker.Source(), 0,
			fmt.Sprintf("loop path %q did not resolve", marker.Body)))
		return nil, false
	}

	items, ok := sequenceItems(val)
	if !ok {
		p.result.recordError(newDirectiveError(marker.Source(), 0,
			fmt.Sprintf("loop path %q did not resolve to a sequence", marker.Body)))
		return nil, false
	}

	binding := marker.Alias
	if binding == "" {
		binding = CurrentItemName
	}

	var out []TableRow
	for _, item := range items {
		if p.failed {
			break
		}
		itemCtx := WithValue(ctx, binding, item)
		out = append(out, p.processRows(cloneRows(inner), itemCtx, depth+1)...)
	}
	return out, true
}

// processRow rebuilds a row, resolving every cell's paragraphs. Cell
// paragraphs may themselves form block regions, so they go through the
// element walk.
func (p *processor) processRow(row *TableRow, ctx Context, depth int) TableRow {
	result := TableRow{Properties: row.Properties}
	result.Cells = make([]TableCell, len(row.Cells))
	for i := range row.Cells {
		result.Cells[i] = p.processCell(&row.Cells[i], ctx, depth)
	}
	return result
}

func (p *processor) processCell(cell *TableCell, ctx Context, depth int) TableCell {
	result := TableCell{Properties: cell.Properties}

	elements := make([]BodyElement, 0, len(cell.Paragraphs))
	for i := range cell.Paragraphs {
		elements = append(elements, &cell.Paragraphs[i])
	}

	for _, elem := range p.processElements(elements, ctx, depth) {
		if para, ok := elem.(*Paragraph); ok {
			result.Paragraphs = append(result.Paragraphs, *para)
		}
	}
	return result
}

// blockMarker reports whether text consists, up to surrounding
// whitespace, of exactly one block directive: an element carrying one
// is a region marker rather than content.
func blockMarker(text string) (Directive, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, openDelim) {
		return Directive{}, false
	}

	directives, errs := MatchDirectives(trimmed)
	if len(errs) != 0 || len(directives) != 1 {
		return Directive{}, false
	}

	d := directives[0]
	if !d.isBlock() || d.Raw(trimmed) != trimmed {
		return Directive{}, false
	}
	return d, true
}

// matchRegion finds the close marker matching the opener at start.
// markers reports the block marker of element j, if any; n is the
// element count. Returns the close index plus the index of a same-level
// {{else}} (or -1) for conditional regions.
func matchRegion(open Directive, markers func(j int) (Directive, bool), n, start int) (end, elseIdx int, err error) {
	stack := []DirectiveKind{open.Kind}
	elseIdx = -1

	for j := start + 1; j < n; j++ {
		d, ok := markers(j)
		if !ok {
			continue
		}

		switch {
		case d.opensBlock():
			stack = append(stack, d.Kind)

		case d.Kind == DirectiveElse:
			if len(stack) == 1 {
				if open.Kind != DirectiveIf {
					return 0, -1, newDirectiveError(d.Source(), 0, "{{else}} marker outside a conditional region")
				}
				if elseIdx >= 0 {
					return 0, -1, newDirectiveError(d.Source(), 0, "conditional region with more than one {{else}} marker")
				}
				elseIdx = j
			}

		default:
			top := stack[len(stack)-1]
			if !d.closes(top) {
				return 0, -1, newDirectiveError("", 0,
					fmt.Sprintf("%s marker closed by mismatched %s marker", top, d.Kind))
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return j, elseIdx, nil
			}
		}
	}

	return 0, -1, newDirectiveError("", 0,
		fmt.Sprintf("%s marker without matching close marker", open.Kind))
}

// rowText is the concatenated text of every cell in a row.
func rowText(row *TableRow) string {
	var sb strings.Builder
	for i := range row.Cells {
		sb.WriteString(row.Cells[i].GetText())
	}
	return sb.String()
}
