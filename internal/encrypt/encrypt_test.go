package encrypt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.apk-group.net/siem/backend/qualys-client/internal/encrypt"
)

func TestEncryptSecret_RoundTrip(t *testing.T) {
	sealed, err := encrypt.EncryptSecret("secretpassword", "passphrase")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "secretpassword")

	plain, err := encrypt.DecryptSecret(sealed, "passphrase")
	require.NoError(t, err)
	assert.Equal(t, "secretpassword", plain)
}

func TestDecryptSecret_WrongPassphrase(t *testing.T) {
	sealed, err := encrypt.EncryptSecret("secretpassword", "passphrase")
	require.NoError(t, err)

	_, err = encrypt.DecryptSecret(sealed, "other")
	assert.Error(t, err)
}

func TestDecryptSecret_EmptyPassphrase(t *testing.T) {
	_, err := encrypt.EncryptSecret("x", "")
	assert.ErrorIs(t, err, encrypt.ErrEmptyPassphrase)
}

func TestDecryptSecret_Garbage(t *testing.T) {
	_, err := encrypt.DecryptSecret("!!not-base64!!", "passphrase")
	assert.Error(t, err)

	_, err = encrypt.DecryptSecret("c2hvcnQ=", "passphrase")
	assert.Error(t, err)
}
