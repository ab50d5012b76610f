package docweave

import (
	"reflect"
	"strconv"
	"strings"
)

// CurrentItemName is the binding under which an unaliased {{#each}}
// loop exposes the item being iterated. Paths may address it as {{.}}
// (the item itself) or {{.Member}} (a member of the item).
const CurrentItemName = "."

// TemplateData is the root name-to-value binding of a Process
// invocation. Values can be strings, numbers, booleans, nested maps,
// slices, or arbitrary structs reachable through dotted paths.
type TemplateData map[string]interface{}

// Lookup implements Context.
func (d TemplateData) Lookup(name string) (interface{}, bool) {
	v, ok := d[name]
	return v, ok
}

// Context resolves top-level names to values. Contexts form a chain:
// a derived context falls back to its parent for names it does not
// bind itself, and shadows the parent for names it does.
type Context interface {
	Lookup(name string) (interface{}, bool)
}

// MapContext adapts a plain map to the Context interface.
type MapContext map[string]interface{}

// Lookup implements Context.
func (m MapContext) Lookup(name string) (interface{}, bool) {
	v, ok := m[name]
	return v, ok
}

// scope binds a single name over a parent context. Loop iterations
// derive one scope per item, so the parent chain stays shared rather
// than copied.
type scope struct {
	name   string
	value  interface{}
	parent Context
}

func (s *scope) Lookup(name string) (interface{}, bool) {
	if name == s.name {
		return s.value, true
	}
	if s.parent == nil {
		return nil, false
	}
	return s.parent.Lookup(name)
}

// WithValue derives a child context binding name to value, falling
// back to parent for every other name.
func WithValue(parent Context, name string, value interface{}) Context {
	return &scope{name: name, value: value, parent: parent}
}

// Resolve looks up a dotted property path against a context chain.
// The first segment is resolved through the context; every further
// segment descends into the previous value, matching map keys first
// and exported struct fields second, both case-sensitively. Optional
// [n] segments index into sequences. Resolution fails as a whole if
// any segment fails or the terminal value is nil.
func Resolve(ctx Context, path string) (interface{}, bool) {
	if ctx == nil || path == "" {
		return nil, false
	}

	segments, ok := splitPath(path)
	if !ok {
		return nil, false
	}

	current, found := ctx.Lookup(segments[0].name)
	if !found {
		return nil, false
	}
	if segments[0].indexed {
		current, found = indexValue(current, segments[0].index)
		if !found {
			return nil, false
		}
	}

	for _, seg := range segments[1:] {
		current, found = memberValue(current, seg.name)
		if !found {
			return nil, false
		}
		if seg.indexed {
			current, found = indexValue(current, seg.index)
			if !found {
				return nil, false
			}
		}
	}

	if current == nil {
		return nil, false
	}
	return current, true
}

// pathSegment is one dot-separated part of a path, optionally carrying
// a single [n] index suffix.
type pathSegment struct {
	name    string
	index   int
	indexed bool
}

func splitPath(path string) ([]pathSegment, bool) {
	// "." addresses the current loop item; ".Member" a member of it.
	rest := path
	var segments []pathSegment
	if strings.HasPrefix(path, CurrentItemName) {
		segments = append(segments, pathSegment{name: CurrentItemName})
		rest = strings.TrimPrefix(path, CurrentItemName)
		if rest == "" {
			return segments, true
		}
	}

	for _, raw := range strings.Split(rest, ".") {
		if raw == "" {
			return nil, false
		}
		seg := pathSegment{name: raw}
		if open := strings.IndexByte(raw, '['); open >= 0 {
			if !strings.HasSuffix(raw, "]") || open == 0 {
				return nil, false
			}
			idx, err := strconv.Atoi(raw[open+1 : len(raw)-1])
			if err != nil {
				return nil, false
			}
			seg.name = raw[:open]
			seg.index = idx
			seg.indexed = true
		}
		segments = append(segments, seg)
	}

	if len(segments) == 0 {
		return nil, false
	}
	return segments, true
}

// memberValue resolves one path segment against a value that may be a
// mapping or a structured record. Mapping keys win over struct fields.
func memberValue(v interface{}, name string) (interface{}, bool) {
	if v == nil {
		return nil, false
	}

	switch m := v.(type) {
	case TemplateData:
		val, ok := m[name]
		return val, ok
	case MapContext:
		val, ok := m[name]
		return val, ok
	case map[string]interface{}:
		val, ok := m[name]
		return val, ok
	case map[string]string:
		val, ok := m[name]
		return val, ok
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		val := rv.MapIndex(reflect.ValueOf(name))
		if !val.IsValid() {
			return nil, false
		}
		return val.Interface(), true

	case reflect.Struct:
		field := rv.FieldByName(name)
		if !field.IsValid() || !field.CanInterface() {
			return nil, false
		}
		return field.Interface(), true

	default:
		return nil, false
	}
}

// indexValue resolves a [n] segment against a sequence value.
func indexValue(v interface{}, index int) (interface{}, bool) {
	if v == nil {
		return nil, false
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if index < 0 {
		index = rv.Len() + index
	}
	if index < 0 || index >= rv.Len() {
		return nil, false
	}
	return rv.Index(index).Interface(), true
}
