package proof

import "time"

type Kind string

const (
	KindThresholdScore  Kind = "threshold_score"
	KindRangeMembership Kind = "range_membership"
	KindAttributeSet    Kind = "attribute_set"
	KindHistoryCount    Kind = "history_count"
)

func (k Kind) Valid() bool {
	switch k {
	case KindThresholdScore, KindRangeMembership, KindAttributeSet, KindHistoryCount:
		return true
	}
	return false
}

// Proof is an opaque credential payload plus the public inputs it
// asserts. The core never interprets the payload; only the configured
// primitive does.
type Proof struct {
	Payload      []byte    `json:"payload"`
	PublicInputs []int64   `json:"public_inputs"`
	Kind         Kind      `json:"kind"`
	Timestamp    time.Time `json:"timestamp"`
	Version      int       `json:"version"`
}

type Result struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

func (r Result) Verified() bool { return r.Status == StatusVerified }

const (
	StatusVerified            = "VERIFIED"
	StatusMalformedProof      = "MALFORMED_PROOF"
	StatusKindMismatch        = "KIND_MISMATCH"
	StatusExpired             = "EXPIRED"
	StatusPublicInputMismatch = "PUBLIC_INPUT_MISMATCH"
	StatusRejectedByPrimitive = "REJECTED_BY_PRIMITIVE"
)

const (
	// SupportedVersion is the only proof format version accepted.
	SupportedVersion = 1

	// MinPayloadLen rejects truncated payloads before the primitive sees them.
	MinPayloadLen = 64

	// DefaultValidityWindow bounds proof freshness: a proof older than
	// this relative to verification time is rejected as expired.
	DefaultValidityWindow = 24 * time.Hour
)

// Primitive is the pluggable cryptographic check behind the verifier.
// Implementations must be deterministic and side-effect-free; any
// non-nil error is a rejection.
type Primitive interface {
	Name() string
	Verify(p Proof) error
}
