package importer

import (
	"fmt"
	"strings"
	"unicode"
)

// FileName converts a player name to a file name stem safe on every
// supported filesystem. Letters, digits, '-', '_' and '.' are kept, spaces
// become '_', everything else is dropped. Leading dots are stripped so the
// result is never hidden or a path component like "..".
//
// Postcondition: result is non-empty and idempotent
// (FileName(FileName(s)) == FileName(s)).
func FileName(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == ' ':
			b.WriteRune('_')
		case r == '_' || r == '-' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	s := strings.TrimLeft(b.String(), ".")
	if s == "" {
		return "player"
	}
	return s
}

// assignFiles drops repeated names and gives each remaining player a
// distinct file stem. Stems are compared case-insensitively; a stem already
// taken gets a numeric suffix ("Bob_Smith", "Bob_Smith_2").
//
// Postcondition: len(unique) == len(stems), unique keeps first-seen order,
// and no two stems are equal ignoring case.
func assignFiles(names []string) (unique, stems []string) {
	seen := make(map[string]bool, len(names))
	taken := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		base := FileName(n)
		stem := base
		for i := 2; taken[strings.ToLower(stem)]; i++ {
			stem = fmt.Sprintf("%s_%d", base, i)
		}
		taken[strings.ToLower(stem)] = true
		unique = append(unique, n)
		stems = append(stems, stem)
	}
	return unique, stems
}
