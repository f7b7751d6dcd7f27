package proof

// StubPrimitive accepts every structurally valid proof. Used when no
// attester key is configured (local development) and by tests that
// exercise the rule ordering rather than the cryptography.
type StubPrimitive struct{}

func (StubPrimitive) Name() string { return "stub" }

func (StubPrimitive) Verify(Proof) error { return nil }
