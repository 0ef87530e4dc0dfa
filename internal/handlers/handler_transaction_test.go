package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fffx/bonsaiERP/internal/apperrors"
	"github.com/fffx/bonsaiERP/internal/core/domain"
	portssvc "github.com/fffx/bonsaiERP/internal/core/ports/services"
	"github.com/fffx/bonsaiERP/internal/dto"
	"github.com/fffx/bonsaiERP/internal/handlers"
	"github.com/fffx/bonsaiERP/internal/middleware"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, op domain.Operator, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, op, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, op domain.Operator, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, op, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}
func (m *MockTransactionService) ListPayPlans(ctx context.Context, op domain.Operator, transactionID string) ([]domain.PayPlan, error) {
	args := m.Called(ctx, op, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayPlan), args.Error(1)
}
func (m *MockTransactionService) CreateTransaction(ctx context.Context, op domain.Operator, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, op, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) UpdateTransaction(ctx context.Context, op domain.Operator, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, op, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ApproveTransaction(ctx context.Context, op domain.Operator, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, op, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ApproveCredit(ctx context.Context, op domain.Operator, transactionID string, req dto.ApproveCreditRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, op, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) SplitPayPlans(ctx context.Context, op domain.Operator, transactionID string, req dto.SplitPayPlanRequest) ([]domain.PayPlan, error) {
	args := m.Called(ctx, op, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayPlan), args.Error(1)
}
func (m *MockTransactionService) RecordDelivery(ctx context.Context, op domain.Operator, transactionID string, req dto.RecordDeliveryRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, op, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock HistoryService ---
type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) ListHistoriesByTransaction(ctx context.Context, op domain.Operator, transactionID string) ([]domain.TransactionHistory, error) {
	args := m.Called(ctx, op, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionHistory), args.Error(1)
}

var _ portssvc.HistorySvcFacade = (*MockHistoryService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router                 *gin.Engine
	mockTransactionService *MockTransactionService
	mockHistoryService     *MockHistoryService
	organisationID         string
	userID                 string
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.organisationID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.mockTransactionService = new(MockTransactionService)
	suite.mockHistoryService = new(MockHistoryService)

	handlers.RegisterRoutes(suite.router, &portssvc.ServiceContainer{
		Transaction: suite.mockTransactionService,
		History:     suite.mockHistoryService,
	})
}

// doJSON issues a request with the operator headers every v1 route requires.
func (suite *TransactionHandlerTestSuite) doJSON(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			suite.FailNow("Failed to encode request body", err.Error())
		}
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderOrganisationID, suite.organisationID)
	req.Header.Set(middleware.HeaderUserID, suite.userID)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	created := &domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          domain.Income,
		CurrencyID:    "USD",
		ExchangeRate:  decimal.NewFromInt(1),
		ContactID:     "contact-1",
		RefNumber:     "I-0601-ABCD1234",
		Date:          time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Total:         decimal.NewFromInt(100),
		Balance:       decimal.NewFromInt(100),
		State:         domain.StateDraft,
		Operation:     domain.OperationIn,
	}

	suite.mockTransactionService.On("CreateTransaction",
		mock.Anything,
		domain.Operator{OrganisationID: suite.organisationID, UserID: suite.userID},
		mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
			return req.Type == domain.Income && len(req.LineItems) == 1
		}),
	).Return(created, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/transactions", gin.H{
		"type":       "INCOME",
		"currencyID": "USD",
		"contactID":  "contact-1",
		"date":       "2026-06-01T00:00:00Z",
		"lineItems": []gin.H{
			{"itemID": "item-1", "price": "10", "quantity": "10"},
		},
	})

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.TransactionID, resp.TransactionID)
	suite.Equal(domain.StateDraft, resp.State)
	suite.mockTransactionService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_MissingOperatorHeaders() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTransactionService.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_ValidationErrorsReturn422() {
	suite.mockTransactionService.On("CreateTransaction", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.NewFieldError("currency_id", "unknown currency")).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/transactions", gin.H{
		"type":       "INCOME",
		"currencyID": "XXX",
		"contactID":  "contact-1",
		"date":       "2026-06-01T00:00:00Z",
		"lineItems": []gin.H{
			{"itemID": "item-1", "price": "10", "quantity": "10"},
		},
	})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("unknown currency", resp.Errors["currency_id"])
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	transactionID := uuid.NewString()
	suite.mockTransactionService.On("GetTransactionByID", mock.Anything, mock.Anything, transactionID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/transactions/"+transactionID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestApproveTransaction_BlocksNonDraft() {
	transactionID := uuid.NewString()
	suite.mockTransactionService.On("ApproveTransaction", mock.Anything, mock.Anything, transactionID).
		Return(nil, apperrors.NewBaseError("only draft documents can be approved")).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/transactions/"+transactionID+"/approve", nil)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp.Errors[apperrors.BaseField], "draft")
}

func (suite *TransactionHandlerTestSuite) TestApproveCredit_Success() {
	transactionID := uuid.NewString()
	approved := &domain.Transaction{
		TransactionID: transactionID,
		Type:          domain.Income,
		CurrencyID:    "USD",
		ExchangeRate:  decimal.NewFromInt(1),
		ContactID:     "contact-1",
		RefNumber:     "I-0601-ABCD1234",
		CreditRef:     "CR-2026-044",
		Date:          time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Total:         decimal.NewFromInt(100),
		Balance:       decimal.NewFromInt(100),
		State:         domain.StateApproved,
		Operation:     domain.OperationIn,
	}

	suite.mockTransactionService.On("ApproveCredit", mock.Anything, mock.Anything, transactionID,
		dto.ApproveCreditRequest{CreditRef: "CR-2026-044"},
	).Return(approved, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/transactions/"+transactionID+"/approve-credit", gin.H{
		"creditRef": "CR-2026-044",
	})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("CR-2026-044", resp.CreditRef)
	suite.Equal(domain.StateApproved, resp.State)
	suite.mockTransactionService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestApproveCredit_RequiresReference() {
	transactionID := uuid.NewString()

	w := suite.doJSON(http.MethodPost, "/api/v1/transactions/"+transactionID+"/approve-credit", gin.H{})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTransactionService.AssertNotCalled(suite.T(), "ApproveCredit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestListHistories_Success() {
	transactionID := uuid.NewString()
	histories := []domain.TransactionHistory{
		{
			HistoryID:     uuid.NewString(),
			TransactionID: transactionID,
			UserID:        suite.userID,
			Data:          json.RawMessage(`{"total":"100"}`),
			CreatedAt:     time.Now(),
		},
	}
	suite.mockHistoryService.On("ListHistoriesByTransaction", mock.Anything, mock.Anything, transactionID).
		Return(histories, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/transactions/"+transactionID+"/histories", nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp []dto.HistoryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal(histories[0].HistoryID, resp[0].HistoryID)
	suite.mockHistoryService.AssertExpectations(suite.T())
}

func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
