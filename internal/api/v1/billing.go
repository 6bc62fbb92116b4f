package v1

import (
	"net/http"

	"github.com/Flexibelstudio/gym-screen-sub002/internal/api/dto"
	ierr "github.com/Flexibelstudio/gym-screen-sub002/internal/errors"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/logger"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/service"
	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	billingService service.BillingService
	logger         *logger.Logger
}

func NewBillingHandler(billingService service.BillingService, logger *logger.Logger) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		logger:         logger,
	}
}

// @Summary Get the invoice preview for an organization
// @Description Computes the invoice for the organization's next unbilled period
// @Tags Billing
// @Produce json
// @Param id path string true "Organization ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /organizations/{id}/invoice [get]
func (h *BillingHandler) GetInvoicePreview(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("organization ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.billingService.GetInvoicePreview(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Mark an organization as billed
// @Description Finalizes the invoice for the given period and advances the billing ledger
// @Tags Billing
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param request body dto.MarkBilledRequest true "Mark billed request"
// @Success 200 {object} dto.OrganizationBillingResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /organizations/{id}/billing [post]
func (h *BillingHandler) MarkBilled(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("organization ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	var req dto.MarkBilledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.billingService.MarkBilled(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Undo the last billing action
// @Description Rolls the organization's billing ledger back one period
// @Tags Billing
// @Produce json
// @Param id path string true "Organization ID"
// @Success 200 {object} dto.OrganizationBillingResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /organizations/{id}/billing [delete]
func (h *BillingHandler) UndoBilling(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("organization ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.billingService.UndoBilling(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
