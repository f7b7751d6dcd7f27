package consent

import (
	"context"
	"time"

	domainConsent "lendpact-backend/internal/domain/consent"
	domainEvent "lendpact-backend/internal/domain/event"
	domainLoan "lendpact-backend/internal/domain/loan"
	"lendpact-backend/internal/domain/uow"

	"github.com/ChainSafe/log15"
)

// DefaultWindow is how long a requested resolution or termination stays
// open for the counterparty.
const DefaultWindow = 24 * time.Hour

// Usecase runs the two-party consent protocol. Every rule executes
// under the loan's row lock so concurrent give/withdraw/expire calls on
// one loan serialize; a consent row exists exactly while the loan sits
// in a pending_resolution or pending_termination status.
type Usecase struct {
	uow    uow.UnitOfWork
	window time.Duration
	log    log15.Logger

	// Now is the clock; overridable by tests. Nil means UTC wall time.
	Now func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, window time.Duration, logger log15.Logger) *Usecase {
	if window <= 0 {
		window = DefaultWindow
	}
	if logger == nil {
		logger = log15.New("module", "usecase.consent")
	}
	return &Usecase{uow: tx, window: window, log: logger}
}

func (u *Usecase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now().UTC()
}

// Request opens a consent window. Resolution additionally requires the
// loan fully repaid; the requester's own flag starts out set.
func (u *Usecase) Request(ctx context.Context, in RequestInput) (*ConsentDTO, error) {
	if in.Kind != domainConsent.KindResolution && in.Kind != domainConsent.KindTermination {
		return nil, domainLoan.ErrInvalidInput
	}

	var dto *ConsentDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if !l.IsParty(in.CallerID) {
			return domainLoan.ErrNotParty
		}
		if l.Status != domainLoan.StatusActive {
			return domainLoan.ErrInvalidTransition
		}
		if in.Kind == domainConsent.KindResolution && l.TotalRepaid < l.TotalDue() {
			return domainLoan.ErrInsufficientPayment
		}

		now := u.now()
		c := &domainConsent.Consent{
			LoanRef:          l.LoanID,
			LoanID:           l.ID,
			Kind:             in.Kind,
			RequesterID:      in.CallerID,
			RequesterConsent: true,
			RequestedAt:      now,
			ExpiresAt:        now.Add(u.window),
		}
		if err := r.Consents.Create(ctx, c); err != nil {
			return err
		}

		if in.Kind == domainConsent.KindResolution {
			l.Status = domainLoan.StatusPendingResolution
		} else {
			l.Status = domainLoan.StatusPendingTermination
		}
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		if err := domainEvent.Emit(ctx, r.Events, l.LoanID, l.ID, domainEvent.TypeConsentRequested, domainEvent.ConsentRequestedPayload{
			LoanID:    l.LoanID,
			Requester: in.CallerID,
			Kind:      string(in.Kind),
			ExpiresAt: c.ExpiresAt,
		}); err != nil {
			return err
		}
		dto = toConsentDTO(l, c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("consent requested", "loan_id", in.LoanID, "kind", string(in.Kind), "requester", in.CallerID)
	return dto, nil
}

// Give sets the caller's consent flag. The expiry boundary is
// inclusive: consent at exactly expires_at still counts, one instant
// later it is rejected, and the status stays pending until someone
// calls CheckExpiration. When the second flag lands the loan completes
// and the consent row is destroyed in the same transaction.
func (u *Usecase) Give(ctx context.Context, in GiveInput) (*ConsentDTO, error) {
	var dto *ConsentDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusPendingResolution && l.Status != domainLoan.StatusPendingTermination {
			return domainLoan.ErrInvalidTransition
		}
		c, err := r.Consents.GetByLoanRef(ctx, l.LoanID)
		if err != nil {
			return err
		}
		if in.Kind != "" && c.Kind != in.Kind {
			return domainLoan.ErrInvalidTransition
		}
		if !l.IsParty(in.CallerID) {
			return domainLoan.ErrNotParty
		}
		now := u.now()
		if c.Expired(now) {
			return domainConsent.ErrWindowExpired
		}
		if c.HasConsented(in.CallerID) {
			return domainConsent.ErrAlreadyConsented
		}

		c.SetConsent(in.CallerID)
		if c.AllConsented() {
			if err := r.Consents.Delete(ctx, c); err != nil {
				return err
			}
			l.Status = domainLoan.StatusCompleted
			l.StatusUpdatedAt = now
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			if err := domainEvent.Emit(ctx, r.Events, l.LoanID, l.ID, domainEvent.TypeLoanCompleted, domainEvent.LoanCompletedPayload{
				LoanID:      l.LoanID,
				TotalRepaid: l.TotalRepaid,
			}); err != nil {
				return err
			}
			dto = toConsentDTO(l, c)
			return nil
		}

		if err := r.Consents.Save(ctx, c); err != nil {
			return err
		}
		if err := domainEvent.Emit(ctx, r.Events, l.LoanID, l.ID, domainEvent.TypeConsentGiven, domainEvent.ConsentGivenPayload{
			LoanID:       l.LoanID,
			Party:        in.CallerID,
			AllConsented: false,
		}); err != nil {
			return err
		}
		dto = toConsentDTO(l, c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if dto.Status == string(domainLoan.StatusCompleted) {
		u.log.Info("loan completed by mutual consent", "loan_id", in.LoanID, "kind", dto.Kind)
	} else {
		u.log.Info("consent given", "loan_id", in.LoanID, "party", in.CallerID)
	}
	return dto, nil
}

// Withdraw retracts the caller's own consent. Only a party whose flag
// is currently set may withdraw; doing so tears down the whole consent
// and reverts the loan to active.
func (u *Usecase) Withdraw(ctx context.Context, in WithdrawInput) (*ConsentDTO, error) {
	var dto *ConsentDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusPendingResolution && l.Status != domainLoan.StatusPendingTermination {
			return domainLoan.ErrInvalidTransition
		}
		c, err := r.Consents.GetByLoanRef(ctx, l.LoanID)
		if err != nil {
			return err
		}
		if !l.IsParty(in.CallerID) {
			return domainLoan.ErrNotParty
		}
		if !c.HasConsented(in.CallerID) {
			return domainConsent.ErrNotFlagHolder
		}

		if err := r.Consents.Delete(ctx, c); err != nil {
			return err
		}
		l.Status = domainLoan.StatusActive
		l.StatusUpdatedAt = u.now()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if err := domainEvent.Emit(ctx, r.Events, l.LoanID, l.ID, domainEvent.TypeConsentWithdrawn, domainEvent.ConsentWithdrawnPayload{
			LoanID: l.LoanID,
			Party:  in.CallerID,
		}); err != nil {
			return err
		}
		dto = toConsentDTO(l, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("consent withdrawn", "loan_id", in.LoanID, "party", in.CallerID)
	return dto, nil
}

// CheckExpiration is the only expiry mechanism: there is no background
// sweep. Anyone may call it; a not-yet-expired or non-pending loan is a
// clean no-op and emits nothing. Expired consent is torn down and the
// loan reverts to active, so repeated calls converge on the same state.
func (u *Usecase) CheckExpiration(ctx context.Context, loanID string) (*ExpirationDTO, error) {
	var dto *ExpirationDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusPendingResolution && l.Status != domainLoan.StatusPendingTermination {
			dto = &ExpirationDTO{LoanID: l.LoanID, Status: string(l.Status), Expired: false}
			return nil
		}
		c, err := r.Consents.GetByLoanRef(ctx, l.LoanID)
		if err != nil {
			return err
		}
		now := u.now()
		if !c.Expired(now) {
			dto = &ExpirationDTO{LoanID: l.LoanID, Status: string(l.Status), Expired: false}
			return nil
		}

		if err := r.Consents.Delete(ctx, c); err != nil {
			return err
		}
		l.Status = domainLoan.StatusActive
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if err := domainEvent.Emit(ctx, r.Events, l.LoanID, l.ID, domainEvent.TypeConsentExpired, domainEvent.ConsentExpiredPayload{
			LoanID: l.LoanID,
		}); err != nil {
			return err
		}
		dto = &ExpirationDTO{LoanID: l.LoanID, Status: string(l.Status), Expired: true}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if dto.Expired {
		u.log.Info("consent expired", "loan_id", loanID)
	}
	return dto, nil
}
