package docweave

import (
	"fmt"
	"strings"
)

// processParagraph resolves every directive in a paragraph and returns
// the resulting paragraph. The input paragraph is never mutated.
//
// Two strategies apply. A paragraph holding only value placeholders is
// rewritten run by run through the scan's offset map, so each
// fragment keeps its own formatting. A paragraph holding balanced
// inline block directives is rendered textually and collapses to a
// single run carrying the first text run's formatting, since branch
// selection and loop expansion cannot preserve a per-fragment mapping.
func (p *processor) processParagraph(para *Paragraph, ctx Context) *Paragraph {
	scan := ScanRuns(para.Runs)
	if !strings.Contains(scan.Text, openDelim) && !strings.Contains(scan.Text, closeDelim) {
		return para
	}

	directives, errs := MatchDirectives(scan.Text)
	for _, err := range errs {
		p.result.recordError(err)
	}
	if len(directives) == 0 {
		return para
	}

	if hasBlockDirective(directives) {
		count := p.result.ReplacementCount
		rendered, ok := p.renderInline(scan.Text, directives, ctx)
		if !ok || p.failed {
			// Substitutions rendered into a discarded paragraph never
			// reach the tree and do not count.
			p.result.ReplacementCount = count
			return para
		}
		return collapseParagraph(para, rendered)
	}

	return p.rewriteRuns(para, scan, directives, ctx)
}

func hasBlockDirective(directives []Directive) bool {
	for _, d := range directives {
		if d.isBlock() {
			return true
		}
	}
	return false
}

// rewriteRuns substitutes value placeholders while preserving the
// formatting of every run. Replacement text lands in the run owning
// the placeholder's opening delimiter; runs wholly inside a
// placeholder are emptied and dropped.
func (p *processor) rewriteRuns(para *Paragraph, scan *RunScan, directives []Directive, ctx Context) *Paragraph {
	bufs := make([]strings.Builder, scan.RunCount())

	pos := 0
	for _, d := range directives {
		appendLiteral(scan, bufs, pos, d.Start)

		replacement, ok := p.substituteValue(d, scan.Text, ctx)
		if p.failed {
			return para
		}
		if ok || replacement != "" {
			owner, _ := scan.RunAt(d.Start)
			bufs[owner].WriteString(replacement)
		}
		pos = d.End
	}
	appendLiteral(scan, bufs, pos, len(scan.Text))

	result := &Paragraph{Properties: para.Properties}
	for i := range para.Runs {
		text := bufs[i].String()
		start, end := scan.Span(i)
		hadText := end > start

		if text == "" && hadText && para.Runs[i].Break == nil {
			// Run fully consumed by a placeholder spanning it.
			continue
		}

		run := cloneRun(para.Runs[i])
		if hadText || text != "" {
			run.SetText(text)
		}
		result.Runs = append(result.Runs, run)
	}
	return result
}

// appendLiteral copies the literal text range [lo, hi) into the
// buffers of the runs that own it.
func appendLiteral(scan *RunScan, bufs []strings.Builder, lo, hi int) {
	for _, i := range scan.RunsIn(lo, hi) {
		start, end := scan.Span(i)
		from := max(start, lo)
		to := min(end, hi)
		bufs[i].WriteString(scan.Text[from:to])
	}
}

// substituteValue resolves a value placeholder and applies the
// missing-variable policy. The boolean result reports whether a value
// was substituted; under LeaveUnchanged the literal placeholder text
// comes back instead.
func (p *processor) substituteValue(d Directive, text string, ctx Context) (string, bool) {
	val, found := Resolve(ctx, d.Body)
	if found {
		p.result.ReplacementCount++
		return FormatValue(val), true
	}

	p.result.recordMissing(d.Body)
	if p.log.IsDebugMode() {
		p.log.WithField("path", d.Body).Debug("placeholder did not resolve")
	}

	switch p.opts.OnMissing {
	case ReplaceWithEmpty:
		return "", false
	case Fail:
		p.failed = true
		p.result.recordError(&MissingVariableError{Path: d.Body})
		return "", false
	default:
		return d.Raw(text), false
	}
}

// renderInline renders text holding balanced inline block directives.
// directives must be the ordered matches over text. Returns ok=false
// on a structural error, which was already recorded.
func (p *processor) renderInline(text string, directives []Directive, ctx Context) (string, bool) {
	return p.renderSegment(text, directives, 0, len(directives), 0, len(text), ctx)
}

// renderSegment renders text[lo:hi] using the directive window
// [from, to).
func (p *processor) renderSegment(text string, directives []Directive, from, to, lo, hi int, ctx Context) (string, bool) {
	var sb strings.Builder

	pos := lo
	i := from
	for i < to {
		d := directives[i]
		sb.WriteString(text[pos:d.Start])

		switch d.Kind {
		case DirectiveValue:
			replacement, _ := p.substituteValue(d, text, ctx)
			if p.failed {
				return "", false
			}
			sb.WriteString(replacement)
			pos = d.End
			i++

		case DirectiveIf:
			end, elseIdx, err := matchRegion(d, func(j int) (Directive, bool) {
				return directives[j], directives[j].isBlock()
			}, to, i)
			if err != nil {
				p.result.recordError(err)
				return "", false
			}

			val, found := Resolve(ctx, d.Body)
			if !found {
				p.result.recordError(newDirectiveError(d.Raw(text), d.Start,
					fmt.Sprintf("conditional path %q did not resolve", d.Body)))
				return "", false
			}

			branchFrom, branchTo := i+1, end
			branchLo, branchHi := d.End, directives[end].Start
			if elseIdx >= 0 {
				if isTruthy(val) {
					branchTo, branchHi = elseIdx, directives[elseIdx].Start
				} else {
					branchFrom, branchLo = elseIdx+1, directives[elseIdx].End
				}
			} else if !isTruthy(val) {
				branchFrom, branchTo = end, end
				branchLo, branchHi = d.End, d.End
			}

			rendered, ok := p.renderSegment(text, directives, branchFrom, branchTo, branchLo, branchHi, ctx)
			if !ok {
				return "", false
			}
			sb.WriteString(rendered)
			pos = directives[end].End
			i = end + 1

		case DirectiveEach:
			end, _, err := matchRegion(d, func(j int) (Directive, bool) {
				return directives[j], directives[j].isBlock()
			}, to, i)
			if err != nil {
				p.result.recordError(err)
				return "", false
			}

			val, found := Resolve(ctx, d.Body)
			if !found {
				p.result.recordError(newDirectiveError(d.Raw(text), d.Start,
					fmt.Sprintf("loop path %q did not resolve", d.Body)))
				return "", false
			}
			items, ok := sequenceItems(val)
			if !ok {
				p.result.recordError(newDirectiveError(d.Raw(text), d.Start,
					fmt.Sprintf("loop path %q did not resolve to a sequence", d.Body)))
				return "", false
			}

			binding := d.Alias
			if binding == "" {
				binding = CurrentItemName
			}
			for _, item := range items {
				rendered, ok := p.renderSegment(text, directives, i+1, end, d.End, directives[end].Start, WithValue(ctx, binding, item))
				if !ok {
					return "", false
				}
				sb.WriteString(rendered)
			}
			pos = directives[end].End
			i = end + 1

		default:
			p.result.recordError(newDirectiveError(d.Raw(text), d.Start,
				fmt.Sprintf("%s marker without matching opening marker", d.Kind)))
			return "", false
		}
	}

	sb.WriteString(text[pos:hi])
	return sb.String(), true
}

// collapseParagraph builds a paragraph holding the rendered text in a
// single run, carrying over the formatting of the first text run.
func collapseParagraph(para *Paragraph, rendered string) *Paragraph {
	var props *RunProperties
	for i := range para.Runs {
		if para.Runs[i].Text != nil {
			props = para.Runs[i].Properties
			break
		}
	}

	result := &Paragraph{Properties: para.Properties}
	run := Run{Properties: props}
	run.SetText(rendered)
	result.Runs = []Run{run}
	return result
}
