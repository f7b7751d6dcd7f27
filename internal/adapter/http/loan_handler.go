package http

import (
	"net/http"

	"lendpact-backend/internal/domain/payment"
	"lendpact-backend/internal/proof"
	"lendpact-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	BorrowerID     string `json:"borrower_id"     validate:"required,hex32"`
	Principal      int64  `json:"principal"       validate:"required,gte=1"`
	RateBps        int32  `json:"rate_bps"        validate:"gte=0"`
	DurationSecs   int64  `json:"duration_secs"   validate:"required,gte=1"`
	CommunityTag   string `json:"community_tag"   validate:"omitempty,max=64"`
	EncryptedTerms []byte `json:"encrypted_terms" validate:"omitempty,max=8192"`
	// The claimed credential kind; the attested proof must carry the same tag.
	ProofKind string      `json:"proof_kind" validate:"required,oneof=threshold_score range_membership attribute_set history_count"`
	Proof     proof.Proof `json:"proof"      validate:"required"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), loan.CreateLoanInput{
		BorrowerID:     req.BorrowerID,
		Principal:      req.Principal,
		RateBps:        req.RateBps,
		DurationSecs:   req.DurationSecs,
		CommunityTag:   req.CommunityTag,
		EncryptedTerms: req.EncryptedTerms,
		ProofKind:      proof.Kind(req.ProofKind),
		Proof:          req.Proof,
	})
	if err != nil {
		return writeUsecaseErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeUsecaseErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type fundLoanReq struct {
	LenderID string `json:"lender_id" validate:"required,hex32"`
	Amount   int64  `json:"amount"    validate:"required,gte=1"`
}

func (h *LoanHandler) FundLoan(c echo.Context) error {
	var req fundLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Fund(c.Request().Context(), loan.FundLoanInput{
		LoanID:   c.Param("loan_id"),
		CallerID: req.LenderID,
		Amount:   req.Amount,
	})
	if err != nil {
		return writeUsecaseErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type makePaymentReq struct {
	PayerID string `json:"payer_id" validate:"required,hex32"`
	Amount  int64  `json:"amount"   validate:"required,gte=1"`
	Kind    string `json:"kind"     validate:"omitempty,oneof=principal interest penalty"`
}

func (h *LoanHandler) MakePayment(c echo.Context) error {
	var req makePaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.MakePayment(c.Request().Context(), loan.PaymentInput{
		LoanID:   c.Param("loan_id"),
		CallerID: req.PayerID,
		Amount:   req.Amount,
		Kind:     payment.Kind(req.Kind),
	})
	if err != nil {
		return writeUsecaseErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) ListPayments(c echo.Context) error {
	loanID := c.Param("loan_id")
	dtos, err := h.uc.ListPayments(c.Request().Context(), loanID)
	if err != nil {
		return writeUsecaseErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loan_id": loanID, "payments": dtos})
}

func (h *LoanHandler) ListEvents(c echo.Context) error {
	loanID := c.Param("loan_id")
	dtos, err := h.uc.ListEvents(c.Request().Context(), loanID)
	if err != nil {
		return writeUsecaseErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loan_id": loanID, "events": dtos})
}

type markDefaultReq struct {
	LenderID string `json:"lender_id" validate:"required,hex32"`
}

func (h *LoanHandler) MarkDefault(c echo.Context) error {
	var req markDefaultReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.MarkDefaulted(c.Request().Context(), c.Param("loan_id"), req.LenderID)
	if err != nil {
		return writeUsecaseErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type disputeReq struct {
	CallerID string `json:"caller_id" validate:"required,hex32"`
}

func (h *LoanHandler) Dispute(c echo.Context) error {
	var req disputeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Dispute(c.Request().Context(), c.Param("loan_id"), req.CallerID)
	if err != nil {
		return writeUsecaseErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
