package importer_test

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/tshock2plr/internal/importer"
)

func TestFileName_SafeCharacters(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.String().Draw(t, "name")
		got := importer.FileName(name)
		for _, r := range got {
			assert.True(t, r == '_' || r == '-' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r),
				"unexpected char %q in %q", r, got)
		}
		assert.NotEmpty(t, got)
		assert.False(t, strings.HasPrefix(got, "."))
	})
}

func TestFileName_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.String().Draw(t, "name")
		id := importer.FileName(name)
		assert.Equal(t, id, importer.FileName(id))
	})
}

func TestFileName_KnownValues(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Andrew", "Andrew"},
		{"Dr. Bones", "Dr._Bones"},
		{"../../etc/passwd", "etcpasswd"},
		{"  spaced out  ", "spaced_out"},
		{"Señor Ñu", "Señor_Ñu"},
		{"///", "player"},
		{"", "player"},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, importer.FileName(tc.input))
		})
	}
}
