package domain

import (
	"fmt"
	"strings"
)

// Rarity is the tier of a reward or shop item
type Rarity uint8

// Rarity tiers. The zero value is not a valid rarity.
const (
	RarityUnknown Rarity = iota
	RarityCommon
	RarityRare
	RarityEpic
	RarityLegendary
)

var rarityNames = map[Rarity]string{
	RarityCommon:    "COMMON",
	RarityRare:      "RARE",
	RarityEpic:      "EPIC",
	RarityLegendary: "LEGENDARY",
}

var rarityColors = map[Rarity]string{
	RarityCommon:    "#54b734",
	RarityRare:      "#0091ff",
	RarityEpic:      "#b038fa",
	RarityLegendary: "#ffc400",
}

// aliases accepted when reading catalogs and legacy documents
var rarityAliases = map[string]Rarity{
	"COMMON":     RarityCommon,
	"COMMUNE":    RarityCommon,
	"COMMUN":     RarityCommon,
	"RARE":       RarityRare,
	"SUPER RARE": RarityRare,
	"EPIC":       RarityEpic,
	"EPIQUE":     RarityEpic,
	"LEGENDARY":  RarityLegendary,
	"LEGENDAIRE": RarityLegendary,
}

// ParseRarity converts a catalog string into a Rarity
func ParseRarity(s string) (Rarity, error) {
	if r, ok := rarityAliases[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return r, nil
	}
	return RarityUnknown, fmt.Errorf("%w: %q", ErrUnknownRarity, s)
}

func (r Rarity) String() string {
	if name, ok := rarityNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

// Color returns the display color of the tier
func (r Rarity) Color() string {
	return rarityColors[r]
}

// Valid reports whether r is one of the four tiers
func (r Rarity) Valid() bool {
	_, ok := rarityNames[r]
	return ok
}

// MarshalText implements encoding.TextMarshaler
func (r Rarity) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRarity, r)
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *Rarity) UnmarshalText(text []byte) error {
	parsed, err := ParseRarity(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
