package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testWIF       = "5JmLoeJhqQaDGJ9YZvm82cFSwgqDG8x3nz1HZkN8c951u3AsP4F"
	testPvtK1     = "PVT_K1_x4Dxrckx1E1HmGXjKDwZWKj61J415y5AwWLaKPNGDNjX11T8B"
	testPrivHex   = "7d02ab2669f0e43dc2364745784f582726989c70fcfd7187c813674adde9f1cb"
	testPubLegacy = "EOS8YPBGxcP3SBKNdUw3A3gEaHumJQGjYUtG4CNKbPqMFLQkicpJh"
	testPubK1     = "PUB_K1_8YPBGxcP3SBKNdUw3A3gEaHumJQGjYUtG4CNKbPqMFLQqs16rR"
	testPubHex    = "03e1215287db3136c1e255f289e0f7921f913990ba7ca0f28804b03bd795c72e44"

	otherWIF       = "5JN5oaZrDiDexHRZhNV9gbawqgvxhkBaDzqSfmHxjCEC2u7THys"
	otherPubLegacy = "EOS6xPYDUfjdvkHJZQFgaTH9ALb4ki4xDEbpHjQqD6bMQ8YUMLtoo"
)

func TestPrivateKeyWIF(t *testing.T) {
	key, err := NewPrivateKey(testWIF)
	assert.Nil(t, err)
	assert.Equal(t, CurveK1, key.Curve)
	assert.Equal(t, testPrivHex, hex.EncodeToString(key.Content))
	assert.Equal(t, testWIF, key.String())
	assert.Equal(t, testPvtK1, key.StringTyped())
}

func TestPrivateKeyTyped(t *testing.T) {
	key, err := NewPrivateKey(testPvtK1)
	assert.Nil(t, err)
	assert.Equal(t, CurveK1, key.Curve)
	assert.Equal(t, testPrivHex, hex.EncodeToString(key.Content))

	// WA private keys never leave the authenticator
	_, err = NewPrivateKey("PVT_WA_whatever")
	assert.True(t, errors.Is(err, ErrUnsupportedCurve))
}

func TestPrivateKeyBadInput(t *testing.T) {
	_, err := NewPrivateKey("not a key at all ###")
	assert.NotNil(t, err)

	// flip a character to break the WIF checksum
	broken := []byte(testWIF)
	if broken[10] == '2' {
		broken[10] = '3'
	} else {
		broken[10] = '2'
	}
	_, err = NewPrivateKey(string(broken))
	assert.NotNil(t, err)
}

func TestPublicKeyDerivation(t *testing.T) {
	key, err := NewPrivateKey(testWIF)
	assert.Nil(t, err)
	pub, err := key.PublicKey()
	assert.Nil(t, err)
	assert.Equal(t, testPubHex, hex.EncodeToString(pub.Content))
	assert.Equal(t, testPubLegacy, pub.String())
	assert.Equal(t, testPubK1, pub.StringTyped())
}

func TestPublicKeyParsing(t *testing.T) {
	legacy, err := NewPublicKey(testPubLegacy)
	assert.Nil(t, err)
	typed, err := NewPublicKey(testPubK1)
	assert.Nil(t, err)
	assert.True(t, legacy.Equals(typed))

	other, err := NewPublicKey(otherPubLegacy)
	assert.Nil(t, err)
	assert.False(t, legacy.Equals(other))
}

func TestPublicKeyChecksumMismatch(t *testing.T) {
	// legacy and typed forms salt their checksums differently, so the
	// same base58 body is not interchangeable between them
	body := testPubK1[len("PUB_K1_"):]
	_, err := NewPublicKey("EOS" + body)
	assert.True(t, errors.Is(err, ErrChecksumMismatch))

	legacyBody := testPubLegacy[len("EOS"):]
	_, err = NewPublicKey("PUB_K1_" + legacyBody)
	assert.True(t, errors.Is(err, ErrChecksumMismatch))

	_, err = NewPublicKey("PUB_XX_abcdef")
	assert.True(t, errors.Is(err, ErrUnknownCurveType))

	_, err = NewPublicKey("garbage")
	assert.True(t, errors.Is(err, ErrInvalidKeyFormat))
}

func TestSignAndRecover(t *testing.T) {
	key, err := NewPrivateKey(testWIF)
	assert.Nil(t, err)
	pub, err := key.PublicKey()
	assert.Nil(t, err)

	digest := sha256.Sum256([]byte("a message to sign"))
	sig, err := key.Sign(digest[:])
	assert.Nil(t, err)
	assert.Equal(t, CurveK1, sig.Curve)
	assert.Len(t, sig.Content, 65)

	// deterministic nonces make signing reproducible
	again, err := key.Sign(digest[:])
	assert.Nil(t, err)
	assert.True(t, sig.Equals(again))

	recovered, err := sig.RecoverPublicKey(digest[:])
	assert.Nil(t, err)
	assert.True(t, recovered.Equals(pub))
	assert.True(t, sig.Verify(digest[:], pub))

	otherDigest := sha256.Sum256([]byte("a different message"))
	assert.False(t, sig.Verify(otherDigest[:], pub))

	_, err = key.Sign(digest[:16])
	assert.NotNil(t, err)
}

func TestSignatureText(t *testing.T) {
	key, _ := NewPrivateKey(testWIF)
	digest := sha256.Sum256([]byte("round trip"))
	sig, err := key.Sign(digest[:])
	assert.Nil(t, err)

	parsed, err := NewSignature(sig.String())
	assert.Nil(t, err)
	assert.True(t, sig.Equals(parsed))

	_, err = NewSignature("EOS_not_a_signature")
	assert.True(t, errors.Is(err, ErrInvalidKeyFormat))
}
