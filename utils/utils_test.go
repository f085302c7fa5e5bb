package utils

import "testing"

func TestSanitizeCityID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bangkok", "Bangkok"},
		{"호이안", "호이안"},
		{"치앙마이 야시장", "치앙마이야시장"},
		{"Napoli!", "Napoli"},
		{"San-Francisco", "SanFrancisco"},
	}
	for _, tt := range tests {
		if got := SanitizeCityID(tt.in); got != tt.want {
			t.Errorf("SanitizeCityID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContainsIgnoreCase(t *testing.T) {
	if !ContainsIgnoreCase("호이안 올드타운", "호이안") {
		t.Error("hangul substring should match")
	}
	if !ContainsIgnoreCase("Bangkok", "BANG") {
		t.Error("case-insensitive match failed")
	}
	if ContainsIgnoreCase("방콕", "다낭") {
		t.Error("unrelated strings must not match")
	}
}

func TestGenerateRandomString(t *testing.T) {
	a := GenerateRandomString(13)
	b := GenerateRandomString(13)
	if len(a) != 13 || len(b) != 13 {
		t.Fatalf("lengths: %d, %d", len(a), len(b))
	}
	if a == b {
		t.Error("two ids should not collide")
	}
}
