package item

import "gopkg.in/yaml.v3"

// Prefix is an item modifier id. Every byte value is a valid Prefix; ids
// without a known name render as "Unknown".
type Prefix uint8

// NoPrefix marks an unmodified item.
const NoPrefix Prefix = 0

// prefixNames is indexed by prefix id. Duplicate names are distinct game
// prefixes that share a display name.
var prefixNames = [...]string{
	"None",
	"Large", "Massive", "Dangerous", "Savage", "Sharp", "Pointy", "Tiny", "Terrible", "Small", "Dull",
	"Unhappy", "Bulky", "Shameful", "Heavy", "Light", "Sighted", "Rapid", "Hasty", "Intimidating", "Deadly",
	"Staunch", "Awful", "Lethargic", "Awkward", "Powerful", "Mystic", "Adept", "Masterful", "Inept", "Ignorant",
	"Deranged", "Intense", "Taboo", "Celestial", "Furious", "Keen", "Superior", "Forceful", "Broken", "Damaged",
	"Shoddy", "Quick", "Deadly", "Agile", "Nimble", "Murderous", "Slow", "Sluggish", "Lazy", "Annoying",
	"Nasty", "Manic", "Hurtful", "Strong", "Unpleasant", "Weak", "Ruthless", "Frenzying", "Godly", "Demonic",
	"Zealous", "Hard", "Guarding", "Armored", "Warding", "Arcane", "Precise", "Lucky", "Jagged", "Spiked",
	"Angry", "Menacing", "Brisk", "Fleeting", "Hasty", "Quick", "Wild", "Rash", "Intrepid", "Violent",
	"Legendary", "Unreal", "Mythical", "Legendary",
}

// MaxKnownPrefix is the highest prefix id with a name.
const MaxKnownPrefix = Prefix(len(prefixNames) - 1)

// PrefixFromID maps a raw byte to its Prefix. It never fails.
func PrefixFromID(id uint8) Prefix {
	return Prefix(id)
}

// Known reports whether p has a vanilla name.
func (p Prefix) Known() bool {
	return p <= MaxKnownPrefix
}

// String returns the prefix display name.
func (p Prefix) String() string {
	if !p.Known() {
		return "Unknown"
	}
	return prefixNames[p]
}

// MarshalYAML writes the numeric id so documents survive renamed prefixes.
func (p Prefix) MarshalYAML() (interface{}, error) {
	return uint8(p), nil
}

// UnmarshalYAML reads the numeric id.
func (p *Prefix) UnmarshalYAML(node *yaml.Node) error {
	var id uint8
	if err := node.Decode(&id); err != nil {
		return err
	}
	*p = Prefix(id)
	return nil
}
