package http

import (
	"net/http"
	"strconv"

	"lendpact-backend/internal/usecase/registry"

	"github.com/labstack/echo/v4"
)

type RegistryHandler struct{ uc *registry.Usecase }

func NewRegistryHandler(uc *registry.Usecase) *RegistryHandler { return &RegistryHandler{uc: uc} }

func (h *RegistryHandler) Stats(c echo.Context) error {
	dto, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return writeUsecaseErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RegistryHandler) CommunityLoans(c echo.Context) error {
	tag := c.QueryParam("community")
	if tag == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing community query param"})
	}
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit query param"})
		}
		limit = n
	}
	dtos, err := h.uc.ListByCommunity(c.Request().Context(), tag, limit)
	if err != nil {
		return writeUsecaseErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"community": tag, "loans": dtos})
}
