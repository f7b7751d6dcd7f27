package proof

import (
	"crypto/ed25519"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strings"
)

var (
	ErrInvalidPublicKey = errors.New("invalid attester public key")
	ErrInvalidEncoding  = errors.New("invalid proof payload encoding")
	ErrInvalidSignature = errors.New("invalid proof signature")
)

// Ed25519Primitive treats the proof payload as an ed25519 signature by
// a trusted attester over the proof's public fields. It stands in for
// the real proving system behind the same interface.
type Ed25519Primitive struct {
	pub ed25519.PublicKey
}

func NewEd25519Primitive(pubKeyHex string) (*Ed25519Primitive, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(pubKeyHex))
	if err != nil || len(raw) != ed25519.PublicKeySize {
		return nil, ErrInvalidPublicKey
	}
	return &Ed25519Primitive{pub: ed25519.PublicKey(raw)}, nil
}

func (e *Ed25519Primitive) Name() string { return "ed25519" }

func (e *Ed25519Primitive) Verify(p Proof) error {
	if len(p.Payload) != ed25519.SignatureSize {
		return ErrInvalidEncoding
	}
	if !ed25519.Verify(e.pub, SigningMessage(p), p.Payload) {
		return ErrInvalidSignature
	}
	return nil
}

// SigningMessage is the canonical byte string an attester signs:
// kind, version, unix timestamp, then each public input, all
// length-unambiguous big-endian. Exported so tests and attester
// tooling build the identical message.
func SigningMessage(p Proof) []byte {
	buf := make([]byte, 0, 64)
	buf = append(buf, []byte(p.Kind)...)
	buf = append(buf, 0x00)
	buf = binary.BigEndian.AppendUint32(buf, uint32(p.Version))
	buf = binary.BigEndian.AppendUint64(buf, uint64(p.Timestamp.Unix()))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(p.PublicInputs)))
	for _, in := range p.PublicInputs {
		buf = binary.BigEndian.AppendUint64(buf, uint64(in))
	}
	return buf
}
