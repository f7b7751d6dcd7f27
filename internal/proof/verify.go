package proof

import "time"

// Verifier gates loan creation. Verify is a pure function of its
// arguments: same proof, same expectations, same clock reading, same
// result.
type Verifier struct {
	primitive Primitive
	window    time.Duration
}

func NewVerifier(primitive Primitive, window time.Duration) *Verifier {
	if window <= 0 {
		window = DefaultValidityWindow
	}
	return &Verifier{primitive: primitive, window: window}
}

// Verify applies the rejection rules in a fixed order: structure, kind,
// freshness, public-input equality, then the cryptographic primitive.
// The first failing rule decides the status; nothing partial survives.
func (v *Verifier) Verify(p Proof, expectedKind Kind, expectedInputs []int64, now time.Time) Result {
	if len(p.Payload) < MinPayloadLen {
		return Result{Status: StatusMalformedProof, Details: map[string]any{"reason": "payload_too_short", "payload_len": len(p.Payload)}}
	}
	if p.Version != SupportedVersion {
		return Result{Status: StatusMalformedProof, Details: map[string]any{"reason": "unsupported_version", "version": p.Version}}
	}
	if !p.Kind.Valid() {
		return Result{Status: StatusMalformedProof, Details: map[string]any{"reason": "unknown_kind", "kind": string(p.Kind)}}
	}
	if p.Timestamp.IsZero() {
		return Result{Status: StatusMalformedProof, Details: map[string]any{"reason": "missing_timestamp"}}
	}

	if p.Kind != expectedKind {
		return Result{Status: StatusKindMismatch, Details: map[string]any{"kind": string(p.Kind), "expected_kind": string(expectedKind)}}
	}

	// Freshness is one-sided: a timestamp ahead of the clock still
	// satisfies now - ts <= window.
	if now.Sub(p.Timestamp) > v.window {
		return Result{Status: StatusExpired, Details: map[string]any{"proof_at": p.Timestamp.UTC(), "window": v.window.String()}}
	}

	if len(p.PublicInputs) != len(expectedInputs) {
		return Result{Status: StatusPublicInputMismatch, Details: map[string]any{"reason": "public_input_count", "got": len(p.PublicInputs), "expected": len(expectedInputs)}}
	}
	for i, want := range expectedInputs {
		if p.PublicInputs[i] != want {
			return Result{Status: StatusPublicInputMismatch, Details: map[string]any{"index": i, "got": p.PublicInputs[i], "expected": want}}
		}
	}

	if err := v.primitive.Verify(p); err != nil {
		return Result{Status: StatusRejectedByPrimitive, Details: map[string]any{"primitive": v.primitive.Name(), "reason": err.Error()}}
	}

	return Result{Status: StatusVerified}
}
