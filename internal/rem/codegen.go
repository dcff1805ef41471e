package rem

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	ownerCodeLength   = 4
	ownerCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	codeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeDigits  = "0123456789"

	// maxGenerateAttempts bounds the collision-retry loop so a nearly
	// exhausted code space produces an error instead of spinning.
	maxGenerateAttempts = 10000
)

// CodeGenerator produces the structured identifiers used as primary keys.
// Candidates are drawn at random and rejected against the store's current
// codes before being returned, so a returned code is never already in use.
// Uniqueness under concurrent generators is not guaranteed; the process is
// single-instance.
type CodeGenerator struct {
	store Store
}

// NewCodeGenerator returns a generator that checks candidates against s.
func NewCodeGenerator(s Store) *CodeGenerator {
	return &CodeGenerator{store: s}
}

// OwnerCode returns a 4-character uppercase alphanumeric code not currently
// assigned to any owner. Fails if the existing code set cannot be read.
func (g *CodeGenerator) OwnerCode() (string, error) {
	codes, err := g.store.ListOwnerCodes()
	if err != nil {
		return "", fmt.Errorf("listing owner codes: %w", err)
	}
	used := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		used[c] = struct{}{}
	}
	for i := 0; i < maxGenerateAttempts; i++ {
		candidate := randomString(ownerCodeAlphabet, ownerCodeLength)
		if _, taken := used[candidate]; !taken {
			return candidate, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}

// PropertyCode returns an 8-character property code: a company prefix of
// one uppercase letter and three digits, followed by four more digits.
// Both the full code and the prefix are checked for uniqueness against all
// existing properties. Fails if the existing code set cannot be read.
func (g *CodeGenerator) PropertyCode() (string, error) {
	codes, err := g.store.ListPropertyCodes()
	if err != nil {
		return "", fmt.Errorf("listing property codes: %w", err)
	}
	usedCodes := make(map[string]struct{}, len(codes))
	usedPrefixes := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		usedCodes[c] = struct{}{}
		if len(c) >= 4 {
			usedPrefixes[c[:4]] = struct{}{}
		}
	}
	for i := 0; i < maxGenerateAttempts; i++ {
		prefix := randomString(codeLetters, 1) + randomString(codeDigits, 3)
		if _, taken := usedPrefixes[prefix]; taken {
			continue
		}
		candidate := prefix + randomString(codeDigits, 4)
		if _, taken := usedCodes[candidate]; taken {
			continue
		}
		return candidate, nil
	}
	return "", ErrCodeSpaceExhausted
}

func randomString(alphabet string, n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(alphabet[rand.IntN(len(alphabet))])
	}
	return b.String()
}

// ValidOwnerCode reports whether code has the generated owner-code shape:
// four uppercase alphanumeric characters.
func ValidOwnerCode(code string) bool {
	if len(code) != ownerCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if !strings.ContainsRune(ownerCodeAlphabet, rune(code[i])) {
			return false
		}
	}
	return true
}

// ValidPropertyCode reports whether code has the structured property-code
// shape: one uppercase letter followed by seven digits.
func ValidPropertyCode(code string) bool {
	if len(code) != 8 {
		return false
	}
	if code[0] < 'A' || code[0] > 'Z' {
		return false
	}
	for i := 1; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
