package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpos-core/minercore/common"
)

func TestKeccak256HashIsDeterministic(t *testing.T) {
	h1 := Keccak256Hash([]byte("abc"))
	h2 := Keccak256Hash([]byte("abc"))
	assert.Equal(t, h1, h2)
}

func TestKeccak256HashDiffersOnInput(t *testing.T) {
	h1 := Keccak256Hash([]byte("abc"))
	h2 := Keccak256Hash([]byte("abd"))
	assert.NotEqual(t, h1, h2)
}

func TestKeccak256HashConcatenatesArgs(t *testing.T) {
	h1 := Keccak256Hash([]byte("ab"), []byte("c"))
	h2 := Keccak256Hash([]byte("abc"))
	assert.Equal(t, h1, h2)
}

func TestGenerateKeyPairProducesValidKeys(t *testing.T) {
	priv, pub, err := GenerateKeyPair()
	require.NoError(t, err)
	assert.True(t, priv.IsValid())
	assert.True(t, pub.IsValid())
	assert.Equal(t, pub.Address(), priv.PublicKey().Address())
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	priv, pub, err := GenerateKeyPair()
	require.NoError(t, err)

	msg := common.BytesToHash([]byte("block signature hash"))
	sig, err := priv.Sign(msg)
	require.NoError(t, err)
	assert.True(t, sig.IsValid())
	assert.True(t, Verify(msg, sig, pub))
}

func TestVerifyFailsOnWrongMessage(t *testing.T) {
	priv, pub, err := GenerateKeyPair()
	require.NoError(t, err)

	sig, err := priv.Sign(common.BytesToHash([]byte("original")))
	require.NoError(t, err)

	assert.False(t, Verify(common.BytesToHash([]byte("tampered")), sig, pub))
}

func TestVerifyFailsOnWrongKey(t *testing.T) {
	priv1, _, err := GenerateKeyPair()
	require.NoError(t, err)
	_, pub2, err := GenerateKeyPair()
	require.NoError(t, err)

	msg := common.BytesToHash([]byte("msg"))
	sig, err := priv1.Sign(msg)
	require.NoError(t, err)

	assert.False(t, Verify(msg, sig, pub2))
}

func TestSignWithNilKeyErrors(t *testing.T) {
	var pk PrivateKey
	_, err := pk.Sign(common.BytesToHash([]byte("x")))
	assert.Error(t, err)
}

func TestSignatureToBytesEmptyWhenInvalid(t *testing.T) {
	var sig Signature
	assert.Nil(t, sig.ToBytes())
}

func TestSignatureToBytesNonEmptyWhenValid(t *testing.T) {
	priv, _, err := GenerateKeyPair()
	require.NoError(t, err)
	sig, err := priv.Sign(common.BytesToHash([]byte("x")))
	require.NoError(t, err)
	assert.NotEmpty(t, sig.ToBytes())
}

func TestAddressZeroForInvalidPublicKey(t *testing.T) {
	var pub PublicKey
	assert.Equal(t, common.Address{}, pub.Address())
}
