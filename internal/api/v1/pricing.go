package v1

import (
	"net/http"

	"github.com/Flexibelstudio/gym-screen-sub002/internal/api/dto"
	ierr "github.com/Flexibelstudio/gym-screen-sub002/internal/errors"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/logger"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/service"
	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	pricingService service.PricingService
	logger         *logger.Logger
}

func NewPricingHandler(pricingService service.PricingService, logger *logger.Logger) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
		logger:         logger,
	}
}

// @Summary Get the current pricing table
// @Description Returns the pricing applied to newly computed invoices
// @Tags Pricing
// @Produce json
// @Success 200 {object} dto.PricingResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /pricing [get]
func (h *PricingHandler) GetPricing(c *gin.Context) {
	p, err := h.pricingService.GetPricing(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPricingResponse(p))
}

// @Summary Update the pricing table
// @Description Replaces the pricing applied to newly computed invoices
// @Tags Pricing
// @Accept json
// @Produce json
// @Param request body dto.UpdatePricingRequest true "Pricing update request"
// @Success 200 {object} dto.PricingResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /pricing [put]
func (h *PricingHandler) UpdatePricing(c *gin.Context) {
	var req dto.UpdatePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.pricingService.UpdatePricing(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
