package policy

import (
	"errors"

	"lendpact-backend/internal/proof"
)

var ErrUnknownKind = errors.New("no policy for proof kind")

// Source supplies the expected public inputs a submitted proof is
// checked against, per proof kind. The verifier never decides policy;
// it only compares.
type Source interface {
	ExpectedInputs(kind proof.Kind) ([]int64, error)
}

// Static is a fixed parameter set loaded at startup.
type Static struct {
	// MinScore is the trust score threshold for threshold_score proofs.
	MinScore int64
	// IncomeMin and IncomeMax bound range_membership proofs.
	IncomeMin int64
	IncomeMax int64
	// Attributes is the expected commitment vector for attribute_set proofs.
	Attributes []int64
	// MinHistoryBps is the minimum repayment success rate in basis
	// points for history_count proofs (8000 = 80%).
	MinHistoryBps int64
}

// Defaults are the community launch parameters.
func Defaults() Static {
	return Static{
		MinScore:      70,
		IncomeMin:     0,
		IncomeMax:     0,
		MinHistoryBps: 8000,
	}
}

func (s Static) ExpectedInputs(kind proof.Kind) ([]int64, error) {
	switch kind {
	case proof.KindThresholdScore:
		return []int64{s.MinScore}, nil
	case proof.KindRangeMembership:
		return []int64{s.IncomeMin, s.IncomeMax}, nil
	case proof.KindAttributeSet:
		out := make([]int64, len(s.Attributes))
		copy(out, s.Attributes)
		return out, nil
	case proof.KindHistoryCount:
		return []int64{s.MinHistoryBps}, nil
	}
	return nil, ErrUnknownKind
}
