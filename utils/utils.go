package utils

import (
	rndm "math/rand"
	"regexp"
)

// --- Random String and ID Generators ---

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789_ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

// idSafeRunes keeps letters, digits and Hangul; everything else is dropped
// when a city token becomes part of a synthetic bucket id.
var idSafeRunes = regexp.MustCompile(`[^a-zA-Z0-9가-힣]`)

// SanitizeCityID strips a city token down to the characters allowed in a
// deterministic day_<n>_<city> bucket id.
func SanitizeCityID(city string) string {
	return idSafeRunes.ReplaceAllString(city, "")
}
