package docweave

import "strings"

// DirectiveKind classifies a matched directive.
type DirectiveKind int

const (
	DirectiveValue DirectiveKind = iota
	DirectiveIf
	DirectiveElse
	DirectiveEndIf
	DirectiveEach
	DirectiveEndEach
)

func (k DirectiveKind) String() string {
	switch k {
	case DirectiveValue:
		return "value"
	case DirectiveIf:
		return "#if"
	case DirectiveElse:
		return "else"
	case DirectiveEndIf:
		return "/if"
	case DirectiveEach:
		return "#each"
	case DirectiveEndEach:
		return "/each"
	default:
		return "unknown"
	}
}

// Directive is a single matched template directive in logical text.
// Start is the offset of the opening "{{", End the offset just past the
// closing "}}". Body is the directive content with the delimiters and
// any sigil removed: the property path for value, #if and #each
// directives, empty for else and close markers. Alias carries the loop
// variable name of an "{{#each path as alias}}" directive.
type Directive struct {
	Kind  DirectiveKind
	Body  string
	Alias string
	Start int
	End   int
}

// Raw returns the literal source text of the directive.
func (d Directive) Raw(text string) string {
	return text[d.Start:d.End]
}

// Source reconstructs the canonical source form of the directive, for
// use in diagnostics when the original text is no longer at hand.
func (d Directive) Source() string {
	switch d.Kind {
	case DirectiveValue:
		return openDelim + d.Body + closeDelim
	case DirectiveIf:
		return openDelim + "#if " + d.Body + closeDelim
	case DirectiveEach:
		if d.Alias != "" {
			return openDelim + "#each " + d.Body + " as " + d.Alias + closeDelim
		}
		return openDelim + "#each " + d.Body + closeDelim
	default:
		return openDelim + d.Kind.String() + closeDelim
	}
}

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// MatchDirectives scans logical text for {{...}} directives, leftmost
// first, non-overlapping, in a single pass. Unterminated "{{" and stray
// "}}" are reported as structural errors; scanning continues after the
// offending position so that one bad delimiter does not hide the rest
// of the text.
func MatchDirectives(text string) ([]Directive, []error) {
	var (
		directives []Directive
		errs       []error
	)

	pos := 0
	for pos < len(text) {
		open := strings.Index(text[pos:], openDelim)
		if open < 0 {
			if stray := strings.Index(text[pos:], closeDelim); stray >= 0 {
				errs = append(errs, newDirectiveError(closeDelim, pos+stray, "closing delimiter without matching opening delimiter"))
			}
			break
		}
		open += pos

		// A stray }} before the next {{ is an error on its own.
		if stray := strings.Index(text[pos:open], closeDelim); stray >= 0 {
			errs = append(errs, newDirectiveError(closeDelim, pos+stray, "closing delimiter without matching opening delimiter"))
		}

		rest := text[open+len(openDelim):]
		closing := strings.Index(rest, closeDelim)
		nextOpen := strings.Index(rest, openDelim)
		if closing < 0 || (nextOpen >= 0 && nextOpen < closing) {
			errs = append(errs, newDirectiveError(openDelim, open, "opening delimiter without matching closing delimiter"))
			pos = open + len(openDelim)
			continue
		}

		body := rest[:closing]
		end := open + len(openDelim) + closing + len(closeDelim)

		dir, err := classifyDirective(body, open, end)
		if err != nil {
			errs = append(errs, err)
		} else {
			directives = append(directives, dir)
		}
		pos = end
	}

	return directives, errs
}

// classifyDirective decides the kind of a directive from its body. The
// body is trimmed of leading and trailing whitespace only; paths are
// taken verbatim otherwise.
func classifyDirective(body string, start, end int) (Directive, error) {
	trimmed := strings.TrimSpace(body)

	switch {
	case trimmed == "":
		return Directive{}, newDirectiveError(openDelim+body+closeDelim, start, "empty directive")

	case trimmed == "else":
		return Directive{Kind: DirectiveElse, Start: start, End: end}, nil

	case trimmed == "/if":
		return Directive{Kind: DirectiveEndIf, Start: start, End: end}, nil

	case trimmed == "/each":
		return Directive{Kind: DirectiveEndEach, Start: start, End: end}, nil

	case trimmed == "#if" || strings.HasPrefix(trimmed, "#if "):
		cond := strings.TrimSpace(strings.TrimPrefix(trimmed, "#if"))
		if cond == "" {
			return Directive{}, newDirectiveError(openDelim+body+closeDelim, start, "#if directive without a path")
		}
		return Directive{Kind: DirectiveIf, Body: cond, Start: start, End: end}, nil

	case trimmed == "#each" || strings.HasPrefix(trimmed, "#each "):
		return classifyEach(body, trimmed, start, end)

	case strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "/"):
		return Directive{}, newDirectiveError(openDelim+body+closeDelim, start, "unknown block directive")

	default:
		return Directive{Kind: DirectiveValue, Body: trimmed, Start: start, End: end}, nil
	}
}

// classifyEach parses "{{#each path}}" and "{{#each path as alias}}".
func classifyEach(body, trimmed string, start, end int) (Directive, error) {
	expr := strings.TrimSpace(strings.TrimPrefix(trimmed, "#each"))
	if expr == "" {
		return Directive{}, newDirectiveError(openDelim+body+closeDelim, start, "#each directive without a path")
	}

	path := expr
	alias := ""
	if idx := strings.Index(expr, " as "); idx >= 0 {
		path = strings.TrimSpace(expr[:idx])
		alias = strings.TrimSpace(expr[idx+len(" as "):])
		if path == "" || alias == "" || strings.ContainsAny(alias, " .") {
			return Directive{}, newDirectiveError(openDelim+body+closeDelim, start, "malformed #each alias")
		}
	}

	return Directive{Kind: DirectiveEach, Body: path, Alias: alias, Start: start, End: end}, nil
}

// isBlock reports whether the directive opens or closes a bounded
// region rather than substituting a value.
func (d Directive) isBlock() bool {
	return d.Kind != DirectiveValue
}

// opensBlock reports whether the directive opens a bounded region.
func (d Directive) opensBlock() bool {
	return d.Kind == DirectiveIf || d.Kind == DirectiveEach
}

// closes reports whether the directive closes a region opened by kind.
func (d Directive) closes(kind DirectiveKind) bool {
	switch kind {
	case DirectiveIf:
		return d.Kind == DirectiveEndIf
	case DirectiveEach:
		return d.Kind == DirectiveEndEach
	default:
		return false
	}
}
