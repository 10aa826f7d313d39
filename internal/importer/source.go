package importer

import (
	"context"
	"errors"

	"github.com/cory-johannsen/tshock2plr/internal/importer/tshock"
	"github.com/cory-johannsen/tshock2plr/internal/terraria/player"
)

// ErrCharacterNotFound is returned by a Source when no account has the
// requested name.
var ErrCharacterNotFound = errors.New("character not found")

// Source reads character rows from a TShock database.
//
// Postcondition of LoadCharacter: returns a non-nil row, ErrCharacterNotFound,
// or another non-nil error.
type Source interface {
	LoadCharacter(ctx context.Context, name string) (*tshock.CharacterRow, error)
	ListCharacters(ctx context.Context) ([]string, error)
	Close() error
}

// Codec reads the template player and encodes finished players.
//
// DecodeTemplate must return a fresh record on every call; the importer
// mutates it in place. Decode is the inverse of Encode and reports the
// encoded format version.
type Codec interface {
	DecodeTemplate() (*player.Record, error)
	Encode(p *player.Record, version int) ([]byte, error)
	Decode(data []byte) (*player.Record, int, error)
	Extension() string
}
