package utils

import "testing"

func TestEncodeURIComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a-b_c.d!~*'()", "a-b_c.d!~*'()"},
		{"x/y?z&", "x%2Fy%3Fz%26"},
		{"café", "caf%C3%A9"},
		{"hello world", "hello%20world"},
		{"a+b", "a%2Bb"},
	}
	for _, tt := range tests {
		if got := EncodeURIComponent(tt.in); got != tt.want {
			t.Errorf("EncodeURIComponent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
