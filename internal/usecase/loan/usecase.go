package loan

import (
	"context"
	"time"

	domainEvent "lendpact-backend/internal/domain/event"
	domainLoan "lendpact-backend/internal/domain/loan"
	domainPayment "lendpact-backend/internal/domain/payment"
	"lendpact-backend/internal/domain/uow"
	"lendpact-backend/internal/policy"
	"lendpact-backend/internal/proof"
	"lendpact-backend/pkg/id"

	"github.com/ChainSafe/log15"
)

type Usecase struct {
	loanRepo    domainLoan.Repository
	paymentRepo domainPayment.Repository
	eventRepo   domainEvent.Repository
	uow         uow.UnitOfWork
	verifier    *proof.Verifier
	policy      policy.Source
	log         log15.Logger

	// Now is the clock; overridable by tests. Nil means UTC wall time.
	Now func() time.Time
}

func NewUsecase(
	loans domainLoan.Repository,
	payments domainPayment.Repository,
	events domainEvent.Repository,
	tx uow.UnitOfWork,
	verifier *proof.Verifier,
	pol policy.Source,
	logger log15.Logger,
) *Usecase {
	if logger == nil {
		logger = log15.New("module", "usecase.loan")
	}
	return &Usecase{
		loanRepo:    loans,
		paymentRepo: payments,
		eventRepo:   events,
		uow:         tx,
		verifier:    verifier,
		policy:      pol,
		log:         logger,
	}
}

func (u *Usecase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now().UTC()
}

// Create gates loan creation on proof verification, then commits the
// record, the registry bump, and the creation event as one transaction.
func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if len(in.BorrowerID) != 32 || in.Principal <= 0 || in.RateBps < 0 || in.DurationSecs <= 0 {
		return nil, domainLoan.ErrInvalidInput
	}

	expected, err := u.policy.ExpectedInputs(in.ProofKind)
	if err != nil {
		u.log.Warn("proof kind has no policy", "kind", string(in.ProofKind), "borrower", in.BorrowerID)
		return nil, domainLoan.ErrProofRejected
	}
	res := u.verifier.Verify(in.Proof, in.ProofKind, expected, u.now())
	if !res.Verified() {
		u.log.Warn("credential proof rejected", "status", res.Status, "borrower", in.BorrowerID, "details", res.Details)
		if res.Status == proof.StatusExpired {
			return nil, domainLoan.ErrProofExpired
		}
		return nil, domainLoan.ErrProofRejected
	}

	l := &domainLoan.Loan{
		LoanID:          id.NewID32(),
		BorrowerID:      in.BorrowerID,
		Principal:       in.Principal,
		RateBps:         in.RateBps,
		DurationSecs:    in.DurationSecs,
		CommunityTag:    in.CommunityTag,
		EncryptedTerms:  in.EncryptedTerms,
		Status:          domainLoan.StatusPending,
		StatusUpdatedAt: u.now(),
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		if err := r.Registry.Increment(ctx, l.Principal); err != nil {
			return err
		}
		return domainEvent.Emit(ctx, r.Events, l.LoanID, l.ID, domainEvent.TypeLoanCreated, domainEvent.LoanCreatedPayload{
			LoanID:        l.LoanID,
			Borrower:      l.BorrowerID,
			Amount:        l.Principal,
			ProofVerified: true,
		})
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("loan created", "loan_id", l.LoanID, "borrower", l.BorrowerID, "principal", l.Principal)
	return toLoanDTO(l), nil
}

// Fund moves a pending loan to active. The payer becomes the lender and
// the repayment clock starts: due_at = funded_at + duration.
func (u *Usecase) Fund(ctx context.Context, in FundLoanInput) (*LoanDTO, error) {
	if len(in.CallerID) != 32 || in.Amount <= 0 {
		return nil, domainLoan.ErrInvalidInput
	}

	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusPending {
			return domainLoan.ErrInvalidTransition
		}
		if in.Amount < l.Principal {
			return domainLoan.ErrInsufficientPayment
		}

		now := u.now()
		due := now.Add(time.Duration(l.DurationSecs) * time.Second)
		l.LenderID = in.CallerID
		l.Status = domainLoan.StatusActive
		l.FundedAt = &now
		l.DueAt = &due
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		if err := domainEvent.Emit(ctx, r.Events, l.LoanID, l.ID, domainEvent.TypeLoanFunded, domainEvent.LoanFundedPayload{
			LoanID: l.LoanID,
			Lender: l.LenderID,
			Amount: in.Amount,
		}); err != nil {
			return err
		}
		dto = toLoanDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("loan funded", "loan_id", in.LoanID, "lender", in.CallerID, "amount", in.Amount)
	return dto, nil
}

// MakePayment appends to the ledger and bumps the running total. It
// never completes the loan on its own, even at zero remaining; closing
// requires the consent protocol.
func (u *Usecase) MakePayment(ctx context.Context, in PaymentInput) (*PaymentDTO, error) {
	if len(in.CallerID) != 32 || in.Amount <= 0 {
		return nil, domainLoan.ErrInvalidInput
	}
	kind := in.Kind
	if kind == "" {
		kind = domainPayment.KindPrincipal
	}
	switch kind {
	case domainPayment.KindPrincipal, domainPayment.KindInterest, domainPayment.KindPenalty:
	default:
		return nil, domainLoan.ErrInvalidInput
	}

	var dto *PaymentDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusActive {
			return domainLoan.ErrInvalidTransition
		}

		l.TotalRepaid += in.Amount
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		p := &domainPayment.Payment{
			PaymentID: id.NewID32(),
			LoanRef:   l.LoanID,
			LoanID:    l.ID,
			PayerID:   in.CallerID,
			Amount:    in.Amount,
			Kind:      kind,
			PaidAt:    u.now(),
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}

		if err := domainEvent.Emit(ctx, r.Events, l.LoanID, l.ID, domainEvent.TypePaymentMade, domainEvent.PaymentMadePayload{
			LoanID:    l.LoanID,
			Payer:     in.CallerID,
			Amount:    in.Amount,
			Remaining: l.Remaining(),
		}); err != nil {
			return err
		}
		dto = toPaymentDTO(p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("payment recorded", "loan_id", in.LoanID, "payer", in.CallerID, "amount", in.Amount)
	return dto, nil
}

// MarkDefaulted lets the lender flag an overdue active loan. Defaulted
// is terminal except for the dispute edge.
func (u *Usecase) MarkDefaulted(ctx context.Context, loanID, callerID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusActive {
			return domainLoan.ErrInvalidTransition
		}
		if callerID != l.LenderID {
			return domainLoan.ErrNotLender
		}
		now := u.now()
		if l.DueAt == nil || !now.After(*l.DueAt) {
			return domainLoan.ErrNotYetDue
		}

		l.Status = domainLoan.StatusDefaulted
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if err := domainEvent.Emit(ctx, r.Events, l.LoanID, l.ID, domainEvent.TypeLoanDefaulted, domainEvent.LoanDefaultedPayload{
			LoanID:   l.LoanID,
			MarkedBy: callerID,
		}); err != nil {
			return err
		}
		dto = toLoanDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Warn("loan marked defaulted", "loan_id", loanID, "lender", callerID)
	return dto, nil
}

// Dispute moves an active or defaulted loan to the disputed terminal
// status. Arbitration happens off-system.
func (u *Usecase) Dispute(ctx context.Context, loanID, callerID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if !l.IsParty(callerID) {
			return domainLoan.ErrNotParty
		}
		if l.Status != domainLoan.StatusActive && l.Status != domainLoan.StatusDefaulted {
			return domainLoan.ErrInvalidTransition
		}

		l.Status = domainLoan.StatusDisputed
		l.StatusUpdatedAt = u.now()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if err := domainEvent.Emit(ctx, r.Events, l.LoanID, l.ID, domainEvent.TypeLoanDisputed, domainEvent.LoanDisputedPayload{
			LoanID:   l.LoanID,
			RaisedBy: callerID,
		}); err != nil {
			return err
		}
		dto = toLoanDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Warn("loan disputed", "loan_id", loanID, "raised_by", callerID)
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loanRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return toLoanDTO(l), nil
}

func (u *Usecase) ListPayments(ctx context.Context, loanID string) ([]PaymentDTO, error) {
	if _, err := u.loanRepo.GetByLoanID(ctx, loanID); err != nil {
		return nil, err
	}
	rows, err := u.paymentRepo.ListByLoanRef(ctx, loanID)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toPaymentDTO(&rows[i]))
	}
	return out, nil
}

func (u *Usecase) ListEvents(ctx context.Context, loanID string) ([]EventDTO, error) {
	if _, err := u.loanRepo.GetByLoanID(ctx, loanID); err != nil {
		return nil, err
	}
	rows, err := u.eventRepo.ListByLoanRef(ctx, loanID)
	if err != nil {
		return nil, err
	}
	out := make([]EventDTO, 0, len(rows))
	for _, e := range rows {
		out = append(out, EventDTO{
			EventID:   e.EventID,
			LoanID:    e.LoanRef,
			Seq:       e.Seq,
			Type:      string(e.Type),
			Payload:   e.Payload,
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}
