package http

import (
	"net/http"

	domainConsent "lendpact-backend/internal/domain/consent"
	"lendpact-backend/internal/usecase/consent"

	"github.com/labstack/echo/v4"
)

type ConsentHandler struct{ uc *consent.Usecase }

func NewConsentHandler(uc *consent.Usecase) *ConsentHandler { return &ConsentHandler{uc: uc} }

type consentReq struct {
	CallerID string `json:"caller_id" validate:"required,hex32"`
}

// bindConsentReq handles the shared bind+validate step for all consent
// endpoints that identify the caller in the body.
func bindConsentReq(c echo.Context) (*consentReq, error) {
	var req consentReq
	if err := c.Bind(&req); err != nil {
		return nil, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return nil, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return &req, nil
}

func (h *ConsentHandler) request(c echo.Context, kind domainConsent.Kind) error {
	req, err := bindConsentReq(c)
	if req == nil {
		return err
	}
	dto, err := h.uc.Request(c.Request().Context(), consent.RequestInput{
		LoanID:   c.Param("loan_id"),
		CallerID: req.CallerID,
		Kind:     kind,
	})
	if err != nil {
		return writeUsecaseErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ConsentHandler) give(c echo.Context, kind domainConsent.Kind) error {
	req, err := bindConsentReq(c)
	if req == nil {
		return err
	}
	dto, err := h.uc.Give(c.Request().Context(), consent.GiveInput{
		LoanID:   c.Param("loan_id"),
		CallerID: req.CallerID,
		Kind:     kind,
	})
	if err != nil {
		return writeUsecaseErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ConsentHandler) RequestResolution(c echo.Context) error {
	return h.request(c, domainConsent.KindResolution)
}

func (h *ConsentHandler) GiveResolutionConsent(c echo.Context) error {
	return h.give(c, domainConsent.KindResolution)
}

func (h *ConsentHandler) RequestTermination(c echo.Context) error {
	return h.request(c, domainConsent.KindTermination)
}

func (h *ConsentHandler) GiveTerminationConsent(c echo.Context) error {
	return h.give(c, domainConsent.KindTermination)
}

func (h *ConsentHandler) WithdrawConsent(c echo.Context) error {
	req, err := bindConsentReq(c)
	if req == nil {
		return err
	}
	dto, err := h.uc.Withdraw(c.Request().Context(), consent.WithdrawInput{
		LoanID:   c.Param("loan_id"),
		CallerID: req.CallerID,
	})
	if err != nil {
		return writeUsecaseErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// CheckExpiration needs no caller identity, anyone may poke an expired
// window.
func (h *ConsentHandler) CheckExpiration(c echo.Context) error {
	dto, err := h.uc.CheckExpiration(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeUsecaseErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
