package domain

import (
	"fmt"
	"strings"
)

// ChildAgeLimit is the age below which school stats are tracked
const ChildAgeLimit = 14

// PinLength is the exact number of digits in a profile PIN
const PinLength = 4

// Gender of a profile
type Gender string

// Genders
const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

// Profile is the identity and cosmetic data of one player.
//
// Pin is stored and compared in plaintext. It is a soft parental gate for
// profile selection and is not a security boundary.
type Profile struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Pin                string `json:"pin"`
	Age                int    `json:"age"`
	Gender             Gender `json:"gender"`
	Avatar             string `json:"avatar"`
	CustomSport        string `json:"customSport,omitempty"`
	OnboardingComplete bool   `json:"onboardingComplete"`
}

// IsChild reports whether school stats apply to this profile
func (p Profile) IsChild() bool {
	return p.Age < ChildAgeLimit
}

// ValidatePin checks that pin is exactly four ASCII digits
func ValidatePin(pin string) error {
	if len(pin) != PinLength {
		return fmt.Errorf("%w: got %d characters", ErrInvalidPin, len(pin))
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return ErrInvalidPin
		}
	}
	return nil
}

// ParseGender accepts M, F or O in any case; anything else maps to O
func ParseGender(s string) Gender {
	switch Gender(strings.ToUpper(strings.TrimSpace(s))) {
	case GenderMale:
		return GenderMale
	case GenderFemale:
		return GenderFemale
	default:
		return GenderOther
	}
}
