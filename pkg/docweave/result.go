package docweave

// MissingVariableBehavior governs what happens when a value
// placeholder's path does not resolve.
type MissingVariableBehavior int

const (
	// LeaveUnchanged keeps the literal {{path}} text in place.
	LeaveUnchanged MissingVariableBehavior = iota
	// ReplaceWithEmpty substitutes empty text for the placeholder.
	ReplaceWithEmpty
	// Fail aborts the whole operation, leaving the tree unmodified.
	Fail
)

func (b MissingVariableBehavior) String() string {
	switch b {
	case LeaveUnchanged:
		return "leave"
	case ReplaceWithEmpty:
		return "empty"
	case Fail:
		return "fail"
	default:
		return "unknown"
	}
}

// Options configures a processing run. The zero value is valid:
// missing variables leave their placeholder text unchanged.
type Options struct {
	OnMissing MissingVariableBehavior
}

// ProcessingResult is the report returned by Process. Every missing
// variable and every structural anomaly encountered during the walk is
// observable here; nothing is discarded silently.
type ProcessingResult struct {
	// IsSuccess is false when the Fail policy aborted the run or a
	// structural error was recorded.
	IsSuccess bool
	// ReplacementCount is the number of value placeholders that were
	// successfully substituted.
	ReplacementCount int
	// MissingVariables lists the paths of value placeholders that did
	// not resolve, deduplicated, in first-encounter order. Names are
	// recorded under every missing-variable policy.
	MissingVariables []string
	// Errors holds the structural directive errors encountered, in
	// document order.
	Errors []error

	seenMissing map[string]bool
}

func newProcessingResult() *ProcessingResult {
	return &ProcessingResult{
		IsSuccess:   true,
		seenMissing: make(map[string]bool),
	}
}

// recordMissing adds a missing variable path, keeping the list
// deduplicated in insertion order.
func (r *ProcessingResult) recordMissing(path string) {
	if r.seenMissing[path] {
		return
	}
	r.seenMissing[path] = true
	r.MissingVariables = append(r.MissingVariables, path)
}

// recordError adds a structural error and marks the run unsuccessful.
func (r *ProcessingResult) recordError(err error) {
	if err == nil {
		return
	}
	r.Errors = append(r.Errors, err)
	r.IsSuccess = false
}

// HasMissing reports whether path was recorded as missing.
func (r *ProcessingResult) HasMissing(path string) bool {
	return r.seenMissing[path]
}
