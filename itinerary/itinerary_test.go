package itinerary

import "testing"

func TestStripDataURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"data:application/pdf;base64,JVBERi0x", "JVBERi0x"},
		{"data:image/png;base64,iVBORw0KGgo=", "iVBORw0KGgo="},
		{"JVBERi0x", "JVBERi0x"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := stripDataURL(tt.in); got != tt.want {
			t.Errorf("stripDataURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
