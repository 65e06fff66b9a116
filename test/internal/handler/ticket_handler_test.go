package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ticket-registry/internal/handler"
	"ticket-registry/internal/model"
	"ticket-registry/test/internal/mocks/services"

	apperrors "ticket-registry/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupTicketTestRouter(
	issuance *services.IssuanceServiceMock,
	transfer *services.TransferServiceMock,
	cancellation *services.CancellationServiceMock,
	query *services.QueryServiceMock,
) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	ticketHandler := handler.NewTicketHandler(issuance, transfer, cancellation, query)
	ticketHandler.RegisterRoutes(router)

	return router
}

func setupMocks() (*services.IssuanceServiceMock, *services.TransferServiceMock, *services.CancellationServiceMock, *services.QueryServiceMock) {
	return services.NewIssuanceServiceMock(),
		services.NewTransferServiceMock(),
		services.NewCancellationServiceMock(),
		services.NewQueryServiceMock()
}

func TestIssueTicket(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		issuance, transfer, cancellation, query := setupMocks()
		router := setupTicketTestRouter(issuance, transfer, cancellation, query)

		issuance.On("Issue", mock.Anything, "admin", "VIP-1").Return(uint64(1), nil)

		req := createJSONHTTPRequest("POST", "/api/v1/tickets", "admin", model.IssueTicketRequest{Info: "VIP-1"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]uint64
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, uint64(1), resp["ticket_id"])
		issuance.AssertExpectations(t)
	})

	t.Run("Failed - ErrNotAdmin", func(t *testing.T) {
		issuance, transfer, cancellation, query := setupMocks()
		router := setupTicketTestRouter(issuance, transfer, cancellation, query)

		issuance.On("Issue", mock.Anything, "mallory", "X").Return(uint64(0), apperrors.ErrNotAdmin)

		req := createJSONHTTPRequest("POST", "/api/v1/tickets", "mallory", model.IssueTicketRequest{Info: "X"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Failed - ErrInvalidInfo", func(t *testing.T) {
		issuance, transfer, cancellation, query := setupMocks()
		router := setupTicketTestRouter(issuance, transfer, cancellation, query)

		issuance.On("Issue", mock.Anything, "admin", mock.Anything).Return(uint64(0), apperrors.ErrInvalidInfo)

		req := createJSONHTTPRequest("POST", "/api/v1/tickets", "admin", model.IssueTicketRequest{Info: "x"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Failed - missing caller identity", func(t *testing.T) {
		issuance, transfer, cancellation, query := setupMocks()
		router := setupTicketTestRouter(issuance, transfer, cancellation, query)

		req := createJSONHTTPRequest("POST", "/api/v1/tickets", "", model.IssueTicketRequest{Info: "VIP-1"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		issuance.AssertNotCalled(t, "Issue")
	})

	t.Run("Failed - BindingError", func(t *testing.T) {
		issuance, transfer, cancellation, query := setupMocks()
		router := setupTicketTestRouter(issuance, transfer, cancellation, query)

		req := createJSONHTTPRequest("POST", "/api/v1/tickets", "admin", InvalidJSON)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		issuance.AssertNotCalled(t, "Issue")
	})
}

func TestBatchIssueTickets(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		issuance, transfer, cancellation, query := setupMocks()
		router := setupTicketTestRouter(issuance, transfer, cancellation, query)

		result := &model.BatchIssueResult{TicketIDs: []uint64{1, 2, 3}}
		issuance.On("BatchIssue", mock.Anything, "admin", []string{"a", "b", "c"}).Return(result, nil)

		req := createJSONHTTPRequest("POST", "/api/v1/tickets/batch", "admin", model.BatchIssueRequest{Infos: []string{"a", "b", "c"}})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp model.BatchIssueResult
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []uint64{1, 2, 3}, resp.TicketIDs)
		issuance.AssertExpectations(t)
	})

	t.Run("Failed - ErrBatchTooLarge", func(t *testing.T) {
		issuance, transfer, cancellation, query := setupMocks()
		router := setupTicketTestRouter(issuance, transfer, cancellation, query)

		issuance.On("BatchIssue", mock.Anything, "admin", mock.Anything).Return(nil, apperrors.ErrBatchTooLarge)

		req := createJSONHTTPRequest("POST", "/api/v1/tickets/batch", "admin", model.BatchIssueRequest{Infos: []string{"a"}})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Failed - ErrInvalidInfo", func(t *testing.T) {
		issuance, transfer, cancellation, query := setupMocks()
		router := setupTicketTestRouter(issuance, transfer, cancellation, query)

		issuance.On("BatchIssue", mock.Anything, "admin", mock.Anything).Return(nil, apperrors.ErrInvalidInfo)

		req := createJSONHTTPRequest("POST", "/api/v1/tickets/batch", "admin", model.BatchIssueRequest{Infos: []string{"a", ""}})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTransferTicket(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		issuance, transfer, cancellation, query := setupMocks()
		router := setupTicketTestRouter(issuance, transfer, cancellation, query)

		transfer.On("Transfer", mock.Anything, "bob", uint64(1), "admin", "bob").Return(nil)

		req := createJSONHTTPRequest("POST", "/api/v1/tickets/1/transfer", "bob", model.TransferRequest{From: "admin", To: "bob"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		transfer.AssertExpectations(t)
	})

	t.Run("Failed - ErrUnauthorized", func(t *testing.T) {
		issuance, transfer, cancellation, query := setupMocks()
		router := setupTicketTestRouter(issuance, transfer, cancellation, query)

		transfer.On("Transfer", mock.Anything, "admin", uint64(1), "admin", "bob").Return(apperrors.ErrUnauthorized)

		req := createJSONHTTPRequest("POST", "/api/v1/tickets/1/transfer", "admin", model.TransferRequest{From: "admin", To: "bob"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Failed - ErrTicketNotFound", func(t *testing.T) {
		issuance, transfer, cancellation, query := setupMocks()
		router := setupTicketTestRouter(issuance, transfer, cancellation, query)

		transfer.On("Transfer", mock.Anything, "bob", uint64(99), "admin", "bob").Return(apperrors.ErrTicketNotFound)

		req := createJSONHTTPRequest("POST", "/api/v1/tickets/99/transfer", "bob", model.TransferRequest{From: "admin", To: "bob"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Failed - ErrAlreadyCancelled", func(t *testing.T) {
		issuance, transfer, cancellation, query := setupMocks()
		router := setupTicketTestRouter(issuance, transfer, cancellation, query)

		transfer.On("Transfer", mock.Anything, "bob", uint64(1), "admin", "bob").Return(apperrors.ErrAlreadyCancelled)

		req := createJSONHTTPRequest("POST", "/api/v1/tickets/1/transfer", "bob", model.TransferRequest{From: "admin", To: "bob"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Failed - invalid ticket id", func(t *testing.T) {
		issuance, transfer, cancellation, query := setupMocks()
		router := setupTicketTestRouter(issuance, transfer, cancellation, query)

		req := createJSONHTTPRequest("POST", "/api/v1/tickets/abc/transfer", "bob", model.TransferRequest{From: "admin", To: "bob"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		transfer.AssertNotCalled(t, "Transfer")
	})

	t.Run("Failed - ticket id zero", func(t *testing.T) {
		issuance, transfer, cancellation, query := setupMocks()
		router := setupTicketTestRouter(issuance, transfer, cancellation, query)

		req := createJSONHTTPRequest("POST", "/api/v1/tickets/0/transfer", "bob", model.TransferRequest{From: "admin", To: "bob"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		transfer.AssertNotCalled(t, "Transfer")
	})
}

func TestCancelTicket(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		issuance, transfer, cancellation, query := setupMocks()
		router := setupTicketTestRouter(issuance, transfer, cancellation, query)

		cancellation.On("Cancel", mock.Anything, "bob", uint64(1)).Return(nil)

		req := createHTTPRequest("POST", "/api/v1/tickets/1/cancel", "bob")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		cancellation.AssertExpectations(t)
	})

	t.Run("Failed - ErrAlreadyCancelled", func(t *testing.T) {
		issuance, transfer, cancellation, query := setupMocks()
		router := setupTicketTestRouter(issuance, transfer, cancellation, query)

		cancellation.On("Cancel", mock.Anything, "bob", uint64(1)).Return(apperrors.ErrAlreadyCancelled)

		req := createHTTPRequest("POST", "/api/v1/tickets/1/cancel", "bob")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestRestoreTicket(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		issuance, transfer, cancellation, query := setupMocks()
		router := setupTicketTestRouter(issuance, transfer, cancellation, query)

		cancellation.On("Restore", mock.Anything, "admin", uint64(1)).Return(nil)

		req := createHTTPRequest("POST", "/api/v1/tickets/1/restore", "admin")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failed - ErrNotAdmin", func(t *testing.T) {
		issuance, transfer, cancellation, query := setupMocks()
		router := setupTicketTestRouter(issuance, transfer, cancellation, query)

		cancellation.On("Restore", mock.Anything, "bob", uint64(1)).Return(apperrors.ErrNotAdmin)

		req := createHTTPRequest("POST", "/api/v1/tickets/1/restore", "bob")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Failed - ErrCancelFailed", func(t *testing.T) {
		issuance, transfer, cancellation, query := setupMocks()
		router := setupTicketTestRouter(issuance, transfer, cancellation, query)

		cancellation.On("Restore", mock.Anything, "admin", uint64(1)).Return(apperrors.ErrCancelFailed)

		req := createHTTPRequest("POST", "/api/v1/tickets/1/restore", "admin")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestGetTicket(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		issuance, transfer, cancellation, query := setupMocks()
		router := setupTicketTestRouter(issuance, transfer, cancellation, query)

		owner := "bob"
		query.On("GetTicket", mock.Anything, uint64(1)).Return(&model.Ticket{
			ID:    1,
			Info:  "VIP-1",
			Owner: &owner,
		}, nil)

		req := createHTTPRequest("GET", "/api/v1/tickets/1", "anyone")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp model.TicketResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, uint64(1), resp.ID)
		assert.Equal(t, "VIP-1", resp.Info)
		assert.True(t, resp.Transferable)
	})

	t.Run("Failed - ErrTicketNotFound", func(t *testing.T) {
		issuance, transfer, cancellation, query := setupMocks()
		router := setupTicketTestRouter(issuance, transfer, cancellation, query)

		query.On("GetTicket", mock.Anything, uint64(99)).Return(nil, apperrors.ErrTicketNotFound)

		req := createHTTPRequest("GET", "/api/v1/tickets/99", "anyone")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetOwner(t *testing.T) {
	t.Run("Success - no owner of record", func(t *testing.T) {
		issuance, transfer, cancellation, query := setupMocks()
		router := setupTicketTestRouter(issuance, transfer, cancellation, query)

		query.On("GetOwner", mock.Anything, uint64(1)).Return(nil, nil)

		req := createHTTPRequest("GET", "/api/v1/tickets/1/owner", "anyone")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Nil(t, resp["owner"])
	})
}

func TestTicketExists(t *testing.T) {
	t.Run("Success - issued ticket", func(t *testing.T) {
		issuance, transfer, cancellation, query := setupMocks()
		router := setupTicketTestRouter(issuance, transfer, cancellation, query)

		query.On("Exists", mock.Anything, uint64(1)).Return(true, nil)

		req := createHTTPRequest("GET", "/api/v1/tickets/1/exists", "anyone")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["exists"])
	})

	t.Run("Success - unknown ticket is 200 with exists=false", func(t *testing.T) {
		issuance, transfer, cancellation, query := setupMocks()
		router := setupTicketTestRouter(issuance, transfer, cancellation, query)

		query.On("Exists", mock.Anything, uint64(99)).Return(false, nil)

		req := createHTTPRequest("GET", "/api/v1/tickets/99/exists", "anyone")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["exists"])
	})
}

func TestGetStatus(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		issuance, transfer, cancellation, query := setupMocks()
		router := setupTicketTestRouter(issuance, transfer, cancellation, query)

		query.On("IsCancelled", mock.Anything, uint64(1)).Return(true, nil)
		query.On("IsTransferable", mock.Anything, uint64(1)).Return(false, nil)

		req := createHTTPRequest("GET", "/api/v1/tickets/1/status", "anyone")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["cancelled"])
		assert.Equal(t, false, resp["transferable"])
	})
}
