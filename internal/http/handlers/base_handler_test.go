package handlers

import "testing"

func TestIsValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"0123456789abcdef0123456789abcdef", true},
		{"deadbeef", true},
		{"", false},
		{"0123456789abcdef0123456789abcdef0", false}, // 33 chars
		{"DEADBEEF", false},                          // generator emits lowercase
		{"deadbeeg", false},                          // g is not a hex digit
		{"dead-beef", false},
		{"../etc/passwd", false},
	}
	for _, tt := range tests {
		if got := isValidID(tt.id); got != tt.want {
			t.Errorf("isValidID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
