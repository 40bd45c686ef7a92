package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_CustomTags(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name    string
		req     AddQuestRequest
		wantErr string
	}{
		{"valid", AddQuestRequest{Txt: "Yoga", Cat: "MNT", Frequency: "WEEKLY"}, ""},
		{"empty frequency allowed", AddQuestRequest{Txt: "Yoga", Cat: "PHY"}, ""},
		{"unknown category", AddQuestRequest{Txt: "Yoga", Cat: "FUN"}, "cat"},
		{"bad frequency", AddQuestRequest{Txt: "Yoga", Cat: "MNT", Frequency: "HOURLY"}, "frequency"},
		{"negative xp", AddQuestRequest{Txt: "Yoga", Cat: "MNT", XP: -5}, "xp"},
		{"missing text", AddQuestRequest{Cat: "MNT"}, "txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, FormatValidationError(err), tt.wantErr)
		})
	}
}

func TestValidator_Pin(t *testing.T) {
	v := GetValidator()

	for pin, valid := range map[string]bool{"1234": true, "0000": true, "123": false, "12345": false, "12a4": false} {
		err := v.ValidateStruct(LoginRequest{Pin: pin})
		assert.NoError(t, err, "login only requires a PIN")

		err = v.ValidateStruct(CreateProfileRequest{Name: "A", Pin: pin, Age: 9})
		if valid {
			assert.NoError(t, err, pin)
		} else {
			assert.Equal(t, ErrMsgInvalidPin, FormatValidationError(err)["pin"], pin)
		}
	}
}

func TestFormatValidationError_NonValidatorError(t *testing.T) {
	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, FormatValidationError(errors.New("boom")))
}
