// Package plrdoc stores Terraria player records as versioned YAML documents.
package plrdoc

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/tshock2plr/internal/terraria/player"
)

// Supported player file versions (Terraria 1.4.0.1 through 1.4.4.9).
const (
	MinVersion     = 230
	MaxVersion     = 279
	DefaultVersion = MaxVersion
)

// Extension is appended to every encoded player file name.
const Extension = ".plr.yaml"

// ErrUnsupportedVersion is returned for versions outside MinVersion..MaxVersion.
var ErrUnsupportedVersion = errors.New("unsupported player file version")

// Document is the on-disk form of a player.
type Document struct {
	Version int            `yaml:"version"`
	Player  *player.Record `yaml:"player"`
}

// SupportedVersion reports whether v can be encoded and decoded.
func SupportedVersion(v int) bool {
	return v >= MinVersion && v <= MaxVersion
}

// Codec reads a template document from disk and encodes players.
type Codec struct {
	templatePath string
}

// New returns a Codec whose template is read from templatePath.
//
// Precondition: templatePath names a readable player document.
func New(templatePath string) *Codec {
	return &Codec{templatePath: templatePath}
}

// DecodeTemplate reads and decodes the template document. Every call
// returns a fresh record.
//
// Postcondition: returns a non-nil record or a non-nil error.
func (c *Codec) DecodeTemplate() (*player.Record, error) {
	data, err := os.ReadFile(c.templatePath)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", c.templatePath, err)
	}
	p, _, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", c.templatePath, err)
	}
	return p, nil
}

// Encode renders p as a document of the given version.
//
// Precondition: p is non-nil.
// Postcondition: returns the encoded bytes, or an error when the version is
// unsupported or p fails validation.
func (c *Codec) Encode(p *player.Record, version int) ([]byte, error) {
	if !SupportedVersion(version) {
		return nil, fmt.Errorf("%w: %d (supported %d-%d)", ErrUnsupportedVersion, version, MinVersion, MaxVersion)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Document{Version: version, Player: p}); err != nil {
		return nil, fmt.Errorf("encoding player %q: %w", p.Name, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding player %q: %w", p.Name, err)
	}
	return buf.Bytes(), nil
}

// Decode parses an encoded document and returns the player and its version.
func (c *Codec) Decode(data []byte) (*player.Record, int, error) {
	return decode(data)
}

// Extension returns the file extension for encoded players.
func (c *Codec) Extension() string { return Extension }

func decode(data []byte) (*player.Record, int, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, 0, fmt.Errorf("parsing player document: %w", err)
	}
	if !SupportedVersion(doc.Version) {
		return nil, 0, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}
	if doc.Player == nil {
		return nil, 0, errors.New("player document has no player section")
	}
	return doc.Player, doc.Version, nil
}
