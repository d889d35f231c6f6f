package subtitle

import "testing"

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Y:i", "y:i"},
		{"y:i", "y:i"},
		{"C:$0000ff", "c:$0000ff"},
		{"s:12", "s:12"},
		{"", ""},
		{"Ä:x", "ä:x"},
	}
	for _, tt := range tests {
		if got := normalizeTag(tt.raw); got != tt.want {
			t.Errorf("normalizeTag(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestRenderTag(t *testing.T) {
	// rendering depends only on the requested scope, not on how the tag
	// was spelled in the input
	if got := renderTag("y:i", true); got != "Y:i" {
		t.Errorf("renderTag(y:i, group) = %q, want Y:i", got)
	}
	if got := renderTag("y:i", false); got != "y:i" {
		t.Errorf("renderTag(y:i, line) = %q, want y:i", got)
	}
	if got := renderTag("", true); got != "" {
		t.Errorf("renderTag(empty, group) = %q, want empty", got)
	}
	if got := renderTag("1:b", true); got != "1:b" {
		t.Errorf("renderTag(1:b, group) = %q, want 1:b", got)
	}
}

func TestIsGroupScoped(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"Y:i", true},
		{"y:i", false},
		{"C:$0000ff", true},
		{"1:b", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isGroupScoped(tt.raw); got != tt.want {
			t.Errorf("isGroupScoped(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
