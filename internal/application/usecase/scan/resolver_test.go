package scan

import "testing"

func TestResolverConfiguredSet(t *testing.T) {
	resolver := NewResolver([]string{"Food", "Transport"})

	tests := []struct {
		name      string
		suggested string
		expected  string
	}{
		{name: "exact match", suggested: "Food", expected: "Food"},
		{name: "case mismatch falls back", suggested: "food", expected: ConfiguredFallbackLabel},
		{name: "unknown label falls back", suggested: "Xyz", expected: ConfiguredFallbackLabel},
		{name: "empty label falls back", suggested: "", expected: ConfiguredFallbackLabel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolver.Resolve(tt.suggested); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestResolverBuiltinSet(t *testing.T) {
	resolver := NewResolver(nil)

	if got := resolver.Resolve("food"); got != "food" {
		t.Errorf("expected food, got %q", got)
	}
	if got := resolver.Resolve("groceries"); got != BuiltinFallbackLabel {
		t.Errorf("expected %q, got %q", BuiltinFallbackLabel, got)
	}
	if resolver.Fallback() != BuiltinFallbackLabel {
		t.Errorf("expected builtin fallback label, got %q", resolver.Fallback())
	}
}
