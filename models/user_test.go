package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePasswordBounds(t *testing.T) {
	assert.Error(t, ValidatePassword("abc"))
	assert.NoError(t, ValidatePassword("sixchars"))
	long := make([]byte, 65)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, ValidatePassword(string(long)))
}

func TestValidateWhiteSpacesTrimsTaggedFields(t *testing.T) {
	req := EditProfileRequest{DisplayName: "  Somchai  ", Phone: " 081 "}
	require.NoError(t, ValidateWhiteSpaces(&req))
	assert.Equal(t, "Somchai", req.DisplayName)
	assert.Equal(t, "081", req.Phone)
}

func TestTranslateErrorPassesThroughPlainErrors(t *testing.T) {
	assert.Nil(t, translateError(nil, nil))

	plain := errors.New("boom")
	out := translateError(plain, nil)
	require.Len(t, out, 1)
	assert.Equal(t, plain, out[0])
}
