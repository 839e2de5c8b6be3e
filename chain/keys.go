package chain

import (
	"github.com/anyswap/eosio-client/crypto"
)

// Wire form of keys and signatures is a curve tag byte followed by the
// curve-specific payload, with no checksum. Payload sizing is the
// crypto package's business since WA payloads size themselves.

// WritePublicKey appends the tagged binary form of pk.
func WritePublicKey(e *Encoder, pk crypto.PublicKey) error {
	if _, err := crypto.PublicKeyPayloadSize(pk.Curve, pk.Content); err != nil {
		return err
	}
	e.WriteUint8(byte(pk.Curve))
	e.WriteRaw(pk.Content)
	return nil
}

// ReadPublicKey consumes a tagged binary public key.
func ReadPublicKey(d *Decoder) (crypto.PublicKey, error) {
	tag, err := d.ReadUint8()
	if err != nil {
		return crypto.PublicKey{}, err
	}
	curve := crypto.CurveType(tag)
	n, err := crypto.PublicKeyPayloadSize(curve, d.data[d.pos:])
	if err != nil {
		return crypto.PublicKey{}, err
	}
	payload, err := d.ReadRaw(n)
	if err != nil {
		return crypto.PublicKey{}, err
	}
	return crypto.PublicKeyFromContent(curve, payload)
}

// WriteSignature appends the tagged binary form of sig.
func WriteSignature(e *Encoder, sig crypto.Signature) error {
	if _, err := crypto.SignaturePayloadSize(sig.Curve, sig.Content); err != nil {
		return err
	}
	e.WriteUint8(byte(sig.Curve))
	e.WriteRaw(sig.Content)
	return nil
}

// ReadSignature consumes a tagged binary signature.
func ReadSignature(d *Decoder) (crypto.Signature, error) {
	tag, err := d.ReadUint8()
	if err != nil {
		return crypto.Signature{}, err
	}
	curve := crypto.CurveType(tag)
	n, err := crypto.SignaturePayloadSize(curve, d.data[d.pos:])
	if err != nil {
		return crypto.Signature{}, err
	}
	payload, err := d.ReadRaw(n)
	if err != nil {
		return crypto.Signature{}, err
	}
	return crypto.SignatureFromContent(curve, payload)
}
