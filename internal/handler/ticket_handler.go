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

type TicketHandler struct {
	issuance     service.IssuanceService
	transfer     service.TransferService
	cancellation service.CancellationService
	query        service.QueryService
}

func NewTicketHandler(
	issuance service.IssuanceService,
	transfer service.TransferService,
	cancellation service.CancellationService,
	query service.QueryService,
) *TicketHandler {
	return &TicketHandler{
		issuance:     issuance,
		transfer:     transfer,
		cancellation: cancellation,
		query:        query,
	}
}

func (h *TicketHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1", CallerIdentity())
	{
		router.POST("tickets", h.Issue)
		router.POST("tickets/batch", h.BatchIssue)
		router.POST("tickets/:id/transfer", h.Transfer)
		router.POST("tickets/:id/cancel", h.Cancel)
		router.POST("tickets/:id/restore", h.Restore)
		router.GET("tickets/:id", h.GetTicket)
		router.GET("tickets/:id/exists", h.Exists)
		router.GET("tickets/:id/owner", h.GetOwner)
		router.GET("tickets/:id/status", h.GetStatus)
		router.GET("tickets/:id/metadata", h.GetBatchMetadata)
	}
}

func (h *TicketHandler) Issue(c *gin.Context) {
	var req model.IssueTicketRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	id, err := h.issuance.Issue(c, GetCaller(c), req.Info)
	if err != nil {
		h.handleError(c, err, "Issue")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ticket_id": id})
}

func (h *TicketHandler) BatchIssue(c *gin.Context) {
	var req model.BatchIssueRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.issuance.BatchIssue(c, GetCaller(c), req.Infos)
	if err != nil {
		h.handleError(c, err, "BatchIssue")
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *TicketHandler) Transfer(c *gin.Context) {
	id, ok := h.parseTicketID(c)
	if !ok {
		return
	}

	var req model.TransferRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	err := h.transfer.Transfer(c, GetCaller(c), id, req.From, req.To)
	if err != nil {
		h.handleError(c, err, "Transfer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ticket_id": id, "owner": req.To})
}

func (h *TicketHandler) Cancel(c *gin.Context) {
	id, ok := h.parseTicketID(c)
	if !ok {
		return
	}

	err := h.cancellation.Cancel(c, GetCaller(c), id)
	if err != nil {
		h.handleError(c, err, "Cancel")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ticket_id": id, "cancelled": true})
}

func (h *TicketHandler) Restore(c *gin.Context) {
	id, ok := h.parseTicketID(c)
	if !ok {
		return
	}

	err := h.cancellation.Restore(c, GetCaller(c), id)
	if err != nil {
		h.handleError(c, err, "Restore")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ticket_id": id, "cancelled": false})
}

func (h *TicketHandler) GetTicket(c *gin.Context) {
	id, ok := h.parseTicketID(c)
	if !ok {
		return
	}

	ticket, err := h.query.GetTicket(c, id)
	if err != nil {
		h.handleError(c, err, "GetTicket")
		return
	}

	c.JSON(http.StatusOK, model.NewTicketResponse(ticket))
}

// Exists 存在性檢查：查不到回 exists=false，不是 404
func (h *TicketHandler) Exists(c *gin.Context) {
	id, ok := h.parseTicketID(c)
	if !ok {
		return
	}

	exists, err := h.query.Exists(c, id)
	if err != nil {
		h.handleError(c, err, "Exists")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ticket_id": id, "exists": exists})
}

func (h *TicketHandler) GetOwner(c *gin.Context) {
	id, ok := h.parseTicketID(c)
	if !ok {
		return
	}

	owner, err := h.query.GetOwner(c, id)
	if err != nil {
		h.handleError(c, err, "GetOwner")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ticket_id": id, "owner": owner})
}

func (h *TicketHandler) GetStatus(c *gin.Context) {
	id, ok := h.parseTicketID(c)
	if !ok {
		return
	}

	cancelled, err := h.query.IsCancelled(c, id)
	if err != nil {
		h.handleError(c, err, "GetStatus")
		return
	}

	transferable, err := h.query.IsTransferable(c, id)
	if err != nil {
		h.handleError(c, err, "GetStatus")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ticket_id":    id,
		"cancelled":    cancelled,
		"transferable": transferable,
	})
}

func (h *TicketHandler) GetBatchMetadata(c *gin.Context) {
	id, ok := h.parseTicketID(c)
	if !ok {
		return
	}

	note, err := h.query.GetBatchMetadata(c, id)
	if err != nil {
		h.handleError(c, err, "GetBatchMetadata")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ticket_id": id, "metadata": note})
}

func (h *TicketHandler) parseTicketID(c *gin.Context) (uint64, bool) {
	var uri model.TicketIDUri
	if err := BindUri(c, &uri); err != nil {
		return 0, false
	}
	return uri.ID, true
}

func (h *TicketHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrNotAdmin):
		log.Warn("Caller is not admin")
		c.JSON(http.StatusForbidden, gin.H{"error": "Caller is not the administrator"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		log.Warn("Unauthorized")
		c.JSON(http.StatusForbidden, gin.H{"error": "Caller is not authorized for this ticket"})
	case errors.Is(err, apperrors.ErrTicketNotFound):
		log.Warn("Ticket not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
	case errors.Is(err, apperrors.ErrInvalidInfo):
		log.Warn("Invalid ticket info")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ticket info is empty or too long"})
	case errors.Is(err, apperrors.ErrBatchTooLarge):
		log.Warn("Batch too large")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Batch exceeds maximum size"})
	case errors.Is(err, apperrors.ErrAlreadyCancelled):
		log.Warn("Ticket already cancelled")
		c.JSON(http.StatusConflict, gin.H{"error": "Ticket already cancelled"})
	case errors.Is(err, apperrors.ErrCancelFailed):
		log.Warn("Ticket is not cancelled")
		c.JSON(http.StatusConflict, gin.H{"error": "Ticket is not cancelled"})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
