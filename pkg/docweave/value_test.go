package docweave

import "testing"

func TestIsTruthy(t *testing.T) {
	tests := []struct {
		name string
		val  interface{}
		want bool
	}{
		{"nil", nil, false},
		{"true", true, true},
		{"false", false, false},
		{"zero int", 0, false},
		{"nonzero int", 42, true},
		{"zero float", 0.0, false},
		{"nonzero float", 0.1, true},
		{"empty string", "", false},
		{"nonempty string", "x", true},
		{"string false is text", "false", true},
		{"empty slice", []interface{}{}, false},
		{"nonempty slice", []interface{}{1}, true},
		{"empty map", map[string]interface{}{}, false},
		{"nonempty map", map[string]interface{}{"a": 1}, true},
		{"typed slice", []string{"a"}, true},
		{"struct value", testAddress{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTruthy(tt.val); got != tt.want {
				t.Errorf("isTruthy(%v) = %v, want %v", tt.val, got, tt.want)
			}
		})
	}
}

func TestSequenceItems(t *testing.T) {
	t.Run("interface slice", func(t *testing.T) {
		items, ok := sequenceItems([]interface{}{"a", "b"})
		if !ok || len(items) != 2 {
			t.Fatalf("sequenceItems = %v, %v", items, ok)
		}
	})

	t.Run("typed slice", func(t *testing.T) {
		items, ok := sequenceItems([]string{"a", "b", "c"})
		if !ok || len(items) != 3 {
			t.Fatalf("sequenceItems = %v, %v", items, ok)
		}
		if items[2] != "c" {
			t.Errorf("items[2] = %v", items[2])
		}
	})

	t.Run("empty slice", func(t *testing.T) {
		items, ok := sequenceItems([]interface{}{})
		if !ok || len(items) != 0 {
			t.Fatalf("sequenceItems = %v, %v", items, ok)
		}
	})

	t.Run("string is not a sequence", func(t *testing.T) {
		if _, ok := sequenceItems("abc"); ok {
			t.Error("strings must not expand as loop sequences")
		}
	})

	t.Run("map is not a sequence", func(t *testing.T) {
		if _, ok := sequenceItems(map[string]interface{}{"a": 1}); ok {
			t.Error("maps must not expand as loop sequences")
		}
	})

	t.Run("nil", func(t *testing.T) {
		if _, ok := sequenceItems(nil); ok {
			t.Error("nil is not a sequence")
		}
	})
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello"},
		{"int", 42, "42"},
		{"whole float", 999.00, "999"},
		{"fractional float", 19.99, "19.99"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.value); got != tt.want {
				t.Errorf("FormatValue(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
