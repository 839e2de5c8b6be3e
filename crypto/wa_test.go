package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	// 33 byte point, presence 1, rpid "example.com"
	waPubContentHex = "03e1215287db3136c1e255f289e0f7921f913990ba7ca0f28804b03bd795c72e44010b6578616d706c652e636f6d"
	waPubString     = "PUB_WA_3moCrQXzfVccXPr6ukTNwMzgAuKMptKGjwCJhQUtcAvRhaFUrcNqgC9ZXaxNWN1c1iKW"

	testPubR1 = "PUB_R1_8YPBGxcP3SBKNdUw3A3gEaHumJQGjYUtG4CNKbPqMFLQmPwpJ6"
)

func TestWAPublicKeyContent(t *testing.T) {
	point, _ := hex.DecodeString(testPubHex)
	content, err := MakeWAPublicKeyContent(point, 1, "example.com")
	assert.Nil(t, err)
	assert.Equal(t, waPubContentHex, hex.EncodeToString(content))

	size, err := waPublicKeySize(content)
	assert.Nil(t, err)
	assert.Equal(t, len(content), size)

	// a truncated rpid is detected
	_, err = waPublicKeySize(content[:len(content)-3])
	assert.NotNil(t, err)
}

func TestWAPublicKeyText(t *testing.T) {
	content, _ := hex.DecodeString(waPubContentHex)
	pk, err := PublicKeyFromContent(CurveWA, content)
	assert.Nil(t, err)
	assert.Equal(t, waPubString, pk.String())

	parsed, err := NewPublicKey(waPubString)
	assert.Nil(t, err)
	assert.True(t, pk.Equals(parsed))
}

func TestWASignatureContent(t *testing.T) {
	compact := make([]byte, 65)
	for i := range compact {
		compact[i] = byte(i)
	}
	authData := make([]byte, 37)
	clientJSON := []byte(`{"origin":"https://example.com"}`)

	content, err := MakeWASignatureContent(compact, authData, clientJSON)
	assert.Nil(t, err)

	size, err := waSignatureSize(content)
	assert.Nil(t, err)
	assert.Equal(t, len(content), size)

	sig, err := SignatureFromContent(CurveWA, content)
	assert.Nil(t, err)

	parsed, err := NewSignature(sig.String())
	assert.Nil(t, err)
	assert.True(t, sig.Equals(parsed))

	// WA signatures carry no recoverable K1 material
	_, err = sig.RecoverPublicKey(make([]byte, 32))
	assert.NotNil(t, err)
	assert.False(t, sig.IsCanonical())
}

func TestR1PublicKeyText(t *testing.T) {
	pk, err := NewPublicKey(testPubR1)
	assert.Nil(t, err)
	assert.Equal(t, CurveR1, pk.Curve)
	// R1 keys have no legacy form, String falls through to the typed one
	assert.Equal(t, testPubR1, pk.String())
	assert.Equal(t, testPubHex, hex.EncodeToString(pk.Content))
}
