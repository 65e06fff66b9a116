package handler

import (
	"errors"
	"net/http"

	"ticket-registry/internal/model"
	"ticket-registry/internal/service"
	apperrors "ticket-registry/pkg/app_errors"
	"ticket-registry/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegistryHandler 註冊表層級的讀取與獨立檢查
type RegistryHandler struct {
	query service.QueryService
	price service.PriceService
}

func NewRegistryHandler(query service.QueryService, price service.PriceService) *RegistryHandler {
	return &RegistryHandler{query: query, price: price}
}

func (h *RegistryHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1", CallerIdentity())
	{
		router.GET("registry/count", h.GetCount)
		router.GET("registry/admin", h.GetAdmin)
		router.GET("registry/admin/:identity", h.CheckAdmin)
		router.POST("price/validate", h.ValidatePrice)
	}
}

func (h *RegistryHandler) GetCount(c *gin.Context) {
	count, err := h.query.TotalIssued(c)
	if err != nil {
		logger.WithComponent("handler").Error("get total issued failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_issued": count})
}

func (h *RegistryHandler) GetAdmin(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"admin_id": h.query.AdminID()})
}

func (h *RegistryHandler) CheckAdmin(c *gin.Context) {
	var uri model.AdminCheckUri
	if err := BindUri(c, &uri); err != nil {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"identity": uri.Identity,
		"is_admin": h.query.IsAdmin(uri.Identity),
	})
}

func (h *RegistryHandler) ValidatePrice(c *gin.Context) {
	var req model.ValidatePriceRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	if err := h.price.ValidatePrice(req.Amount); err != nil {
		if errors.Is(err, apperrors.ErrPriceTooLow) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price below minimum"})
			return
		}
		logger.WithComponent("handler").Error("validate price failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true})
}
