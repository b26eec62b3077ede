package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/savings_ledger_app/internal/apperrors"
	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/savings_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/savings_ledger_app/internal/dto"
	"github.com/SscSPs/savings_ledger_app/internal/handlers"
	"github.com/SscSPs/savings_ledger_app/internal/platform/config"
	"github.com/SscSPs/savings_ledger_app/internal/utils"
)

const (
	testJWTSecret = "handler-test-secret"
	testAdminKey  = "admin-test-key"
	ownerID       = int64(7)
)

type HandlersTestSuite struct {
	suite.Suite
	router     *gin.Engine
	ledger     *MockLedgerService
	interest   *MockInterestService
	clients    *MockClientService
	catalog    *MockCatalogService
	statistics *MockStatisticsService
	token      string
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.ledger = new(MockLedgerService)
	suite.interest = new(MockInterestService)
	suite.clients = new(MockClientService)
	suite.catalog = new(MockCatalogService)
	suite.statistics = new(MockStatisticsService)

	cfg := &config.Config{
		IsProduction:      true,
		JWTSecret:         testJWTSecret,
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "savings-ledger-test",
		AdminAPIKey:       testAdminKey,
		LoginRateLimit:    "100-M",
	}
	container := &portssvc.ServiceContainer{
		Catalog:    suite.catalog,
		Client:     suite.clients,
		Ledger:     suite.ledger,
		Interest:   suite.interest,
		Statistics: suite.statistics,
	}
	suite.router = gin.New()
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, cfg, container))

	token, err := utils.GenerateJWT(ownerID, testJWTSecret, time.Hour, "savings-ledger-test", time.Now())
	suite.Require().NoError(err)
	suite.token = token
}

func (suite *HandlersTestSuite) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			suite.Require().NoError(json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) asClient(method, path string, body any) *httptest.ResponseRecorder {
	return suite.do(method, path, body, map[string]string{"Authorization": "Bearer " + suite.token})
}

func (suite *HandlersTestSuite) asAdmin(method, path string, body any) *httptest.ResponseRecorder {
	return suite.do(method, path, body, map[string]string{"x-api-key": testAdminKey, "x-admin-id": "ops-1"})
}

func account(id, clientID int64) *domain.Account {
	return &domain.Account{
		AccountID:     id,
		ClientID:      clientID,
		AccountNumber: fmt.Sprintf("EPA%d", id),
		Balance:       decimal.RequireFromString("1000.00"),
		OpenedOn:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:        domain.AccountActive,
	}
}

func entry(accountID int64, kind domain.OperationKind, amount string) *domain.Transaction {
	return &domain.Transaction{
		TransactionID: 1,
		AccountID:     accountID,
		Kind:          kind,
		Amount:        decimal.RequireFromString(amount),
		Reference:     "OPE1",
		OccurredAt:    time.Now(),
	}
}

func (suite *HandlersTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestLogin() {
	client := &domain.Client{ClientID: ownerID, Email: "c@example.com", DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)}
	suite.clients.On("Authenticate", mock.Anything, "c@example.com", "good-password").Return(client, nil)
	suite.clients.On("Authenticate", mock.Anything, "c@example.com", "bad-password").
		Return(nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized))

	w := suite.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Email: "c@example.com", Password: "good-password"}, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	claims, err := utils.ParseAndValidateJWT(resp.Token, testJWTSecret)
	suite.Require().NoError(err)
	suite.Equal("7", claims.Subject)
	suite.Equal(int64(3600), resp.ExpiresIn)

	w = suite.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Email: "c@example.com", Password: "bad-password"}, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestRegister_Duplicate() {
	suite.clients.On("RegisterClient", mock.Anything, mock.AnythingOfType("dto.RegisterClientRequest")).
		Return(nil, fmt.Errorf("%w: a client with email c@example.com already exists", apperrors.ErrDuplicate))

	w := suite.do(http.MethodPost, "/api/v1/auth/register", dto.RegisterClientRequest{
		LastName: "Martin", FirstName: "Claire", DateOfBirth: "1990-04-12",
		NationalID: "AB1", Email: "c@example.com", Password: "long-enough",
	}, nil)
	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "already exists")
}

func (suite *HandlersTestSuite) TestListAccountTypes_Public() {
	suite.catalog.On("ListAccountTypes", mock.Anything, true).Return([]domain.AccountType{{AccountTypeID: 1, Code: "LIVRET_A"}}, nil)
	w := suite.do(http.MethodGet, "/api/v1/account-types", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "LIVRET_A")
}

func (suite *HandlersTestSuite) TestProtectedRoutesRequireToken() {
	w := suite.do(http.MethodGet, "/api/v1/accounts/1", nil, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestOpenAccount() {
	acc := account(10, ownerID)
	suite.ledger.On("OpenAccount", mock.Anything, mock.MatchedBy(func(req dto.OpenAccountRequest) bool {
		return req.ClientID == ownerID && req.InitialDeposit.Equal(decimal.RequireFromString("1000"))
	}), (*string)(nil)).Return(acc, entry(10, domain.OperationDeposit, "1000.00"), nil)

	w := suite.asClient(http.MethodPost, "/api/v1/accounts", `{"clientID":7,"accountTypeID":1,"initialDeposit":"1000"}`)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.OpenAccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("1000.00", resp.Account.Balance)
	suite.Require().NotNil(resp.InitialDeposit)
	suite.Equal("1000.00", resp.InitialDeposit.Amount)
}

func (suite *HandlersTestSuite) TestOpenAccount_ZeroDeposit() {
	acc := account(12, ownerID)
	acc.Balance = decimal.Zero
	suite.ledger.On("OpenAccount", mock.Anything, mock.MatchedBy(func(req dto.OpenAccountRequest) bool {
		return req.InitialDeposit.IsZero()
	}), (*string)(nil)).Return(acc, nil, nil)

	w := suite.asClient(http.MethodPost, "/api/v1/accounts", `{"clientID":7,"accountTypeID":1,"initialDeposit":"0"}`)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.NotContains(w.Body.String(), "initialDeposit")

	w = suite.asClient(http.MethodPost, "/api/v1/accounts", `{"clientID":7,"accountTypeID":1,"initialDeposit":"-1"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestOpenAccount_Rejections() {
	suite.ledger.On("OpenAccount", mock.Anything, mock.Anything, (*string)(nil)).
		Return(nil, nil, fmt.Errorf("%w: initial deposit 5.00 is below the minimum of 10.00 for LIVRET_A", apperrors.ErrPolicyViolation))

	testCases := []struct {
		name string
		body string
		code int
	}{
		{"for another client", `{"clientID":8,"accountTypeID":1,"initialDeposit":"100"}`, http.StatusForbidden},
		{"zero deposit", `{"clientID":7,"accountTypeID":1,"initialDeposit":"0"}`, http.StatusBadRequest},
		{"negative deposit", `{"clientID":7,"accountTypeID":1,"initialDeposit":"-5"}`, http.StatusBadRequest},
		{"missing account type", `{"clientID":7,"initialDeposit":"100"}`, http.StatusBadRequest},
		{"below minimum", `{"clientID":7,"accountTypeID":1,"initialDeposit":"5"}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			w := suite.asClient(http.MethodPost, "/api/v1/accounts", tc.body)
			suite.Equal(tc.code, w.Code, w.Body.String())
		})
	}
}

func (suite *HandlersTestSuite) TestAccountOwnership() {
	suite.ledger.On("GetAccountByID", mock.Anything, int64(20)).Return(account(20, 99), nil)
	suite.ledger.On("GetAccountByID", mock.Anything, int64(404)).Return(nil, fmt.Errorf("%w: account 404", apperrors.ErrNotFound))

	suite.Equal(http.StatusForbidden, suite.asClient(http.MethodGet, "/api/v1/accounts/20", nil).Code)
	suite.Equal(http.StatusForbidden, suite.asClient(http.MethodPost, "/api/v1/accounts/20/deposit", `{"amount":"5"}`).Code)
	suite.Equal(http.StatusNotFound, suite.asClient(http.MethodGet, "/api/v1/accounts/404", nil).Code)
	suite.Equal(http.StatusBadRequest, suite.asClient(http.MethodGet, "/api/v1/accounts/abc", nil).Code)
	suite.ledger.AssertNotCalled(suite.T(), "Deposit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestDepositAndWithdraw() {
	suite.ledger.On("GetAccountByID", mock.Anything, int64(10)).Return(account(10, ownerID), nil)
	suite.ledger.On("Deposit", mock.Anything, int64(10), mock.Anything, (*string)(nil)).
		Return(entry(10, domain.OperationDeposit, "50.00"), nil)
	suite.ledger.On("Withdraw", mock.Anything, int64(10), mock.MatchedBy(func(req dto.OperationRequest) bool {
		return req.Amount.Equal(decimal.RequireFromString("600"))
	}), (*string)(nil)).Return(nil, fmt.Errorf("%w: withdrawal of 600.00 exceeds the limit of 500.00 (50.00%% of the balance)", apperrors.ErrPolicyViolation))
	suite.ledger.On("Withdraw", mock.Anything, int64(10), mock.Anything, (*string)(nil)).
		Return(nil, fmt.Errorf("%w: account 10 is BLOCKED", apperrors.ErrInvalidState))

	w := suite.asClient(http.MethodPost, "/api/v1/accounts/10/deposit", `{"amount":"50","description":"Birthday"}`)
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.asClient(http.MethodPost, "/api/v1/accounts/10/withdraw", `{"amount":"600"}`)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Contains(w.Body.String(), "exceeds the limit")

	w = suite.asClient(http.MethodPost, "/api/v1/accounts/10/withdraw", `{"amount":"10"}`)
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.asClient(http.MethodPost, "/api/v1/accounts/10/deposit", `{"amount":"abc"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestListTransactions() {
	next := "next-page"
	suite.ledger.On("GetAccountByID", mock.Anything, int64(10)).Return(account(10, ownerID), nil)
	suite.ledger.On("ListTransactions", mock.Anything, int64(10), 2, (*string)(nil)).
		Return([]domain.Transaction{*entry(10, domain.OperationDeposit, "1.00"), *entry(10, domain.OperationWithdrawal, "2.00")}, &next, nil)

	w := suite.asClient(http.MethodGet, "/api/v1/accounts/10/transactions?limit=2", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 2)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next-page", *resp.NextToken)

	w = suite.asClient(http.MethodGet, "/api/v1/accounts/10/transactions?limit=500", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestInterestHistory() {
	suite.ledger.On("GetAccountByID", mock.Anything, int64(10)).Return(account(10, ownerID), nil)
	suite.ledger.On("GetAccountByID", mock.Anything, int64(11)).Return(account(11, ownerID+1), nil)
	suite.interest.On("ListInterestPeriods", mock.Anything, int64(10)).Return([]domain.InterestPeriod{}, nil)
	suite.interest.On("NextCapitalizationDate", mock.Anything, int64(10)).Return(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), nil)

	w := suite.asClient(http.MethodGet, "/api/v1/accounts/10/interest", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"nextCapitalizationDate":"2025-04-01"`)

	suite.Equal(http.StatusForbidden, suite.asClient(http.MethodGet, "/api/v1/accounts/11/interest", nil).Code)
}

func (suite *HandlersTestSuite) TestClientsCannotCreditInterest() {
	suite.ledger.On("GetAccountByID", mock.Anything, int64(10)).Return(account(10, ownerID), nil).Maybe()
	body := dto.CalculateInterestRequest{PeriodStart: "1900-01-01", PeriodEnd: "2025-12-31"}

	w := suite.asClient(http.MethodPost, "/api/v1/accounts/10/interest/calculate", body)
	suite.Equal(http.StatusNotFound, w.Code)
	w = suite.asClient(http.MethodPost, "/api/v1/accounts/10/interest/capitalize", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	// a client token is not an admin key
	w = suite.do(http.MethodPost, "/api/v1/admin/accounts/10/interest/calculate", body,
		map[string]string{"Authorization": "Bearer " + suite.token})
	suite.Equal(http.StatusUnauthorized, w.Code)
	w = suite.do(http.MethodPost, "/api/v1/admin/accounts/10/interest/capitalize", nil,
		map[string]string{"Authorization": "Bearer " + suite.token})
	suite.Equal(http.StatusUnauthorized, w.Code)

	suite.interest.AssertNotCalled(suite.T(), "CalculatePeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.interest.AssertNotCalled(suite.T(), "CapitalizePending", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestAdminInterestRoutes() {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	suite.interest.On("CalculatePeriod", mock.Anything, int64(10), start, end).Return(&domain.InterestPeriod{
		InterestPeriodID: 1, AccountID: 10, PeriodStart: start, PeriodEnd: end, DayCount: 365,
		NetInterest: decimal.RequireFromString("30.00"), Status: domain.InterestCalculated,
	}, nil)
	suite.interest.On("CapitalizePending", mock.Anything, int64(10)).Return(nil, nil)

	w := suite.asAdmin(http.MethodPost, "/api/v1/admin/accounts/10/interest/calculate", dto.CalculateInterestRequest{PeriodStart: "2025-01-01", PeriodEnd: "2025-12-31"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.Contains(w.Body.String(), `"netInterest":"30.00"`)

	w = suite.asAdmin(http.MethodPost, "/api/v1/admin/accounts/10/interest/calculate", `{"periodStart":"01/01/2025","periodEnd":"2025-12-31"}`)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.asAdmin(http.MethodPost, "/api/v1/admin/accounts/10/interest/capitalize", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"capitalized":false}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestClientRoutes() {
	suite.clients.On("GetClientByID", mock.Anything, ownerID).Return(&domain.Client{ClientID: ownerID, Email: "c@example.com"}, nil)
	suite.ledger.On("ListAccountsByClient", mock.Anything, ownerID).Return([]domain.Account{*account(10, ownerID)}, nil)

	suite.Equal(http.StatusOK, suite.asClient(http.MethodGet, "/api/v1/clients/7", nil).Code)
	suite.Equal(http.StatusForbidden, suite.asClient(http.MethodGet, "/api/v1/clients/8", nil).Code)

	w := suite.asClient(http.MethodGet, "/api/v1/clients/7/accounts", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "EPA10")
}

func (suite *HandlersTestSuite) TestAdminRoutes() {
	w := suite.do(http.MethodGet, "/api/v1/admin/statistics", nil, map[string]string{"x-api-key": "wrong"})
	suite.Equal(http.StatusUnauthorized, w.Code)

	suite.statistics.On("GetStatistics", mock.Anything).Return(&domain.Statistics{
		ClientCount: 1, AccountCount: 2,
		TotalBalance:   decimal.RequireFromString("250.25"),
		AverageBalance: decimal.RequireFromString("125.12"),
	}, nil)
	w = suite.asAdmin(http.MethodGet, "/api/v1/admin/statistics", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"averageBalance":"125.12"`)

	suite.ledger.On("Deposit", mock.Anything, int64(30), mock.Anything, mock.MatchedBy(func(admin *string) bool {
		return admin != nil && *admin == "ops-1"
	})).Return(entry(30, domain.OperationDeposit, "20.00"), nil)
	w = suite.asAdmin(http.MethodPost, "/api/v1/admin/accounts/30/deposit", `{"amount":"20"}`)
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	suite.interest.On("SweepAllAccounts", mock.Anything).Return(&domain.SweepReport{
		RunID: "run-1", Examined: 1, Capitalized: 1,
		Results: []domain.SweepResult{{AccountID: 30, Outcome: domain.SweepCapitalized, Interest: decimal.RequireFromString("2.63")}},
	}, nil)
	w = suite.asAdmin(http.MethodPost, "/api/v1/admin/interest/sweep", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"interest":"2.63"`)

	suite.ledger.On("ListAccounts", mock.Anything, 20, 0).Return([]domain.Account{}, nil)
	suite.Equal(http.StatusOK, suite.asAdmin(http.MethodGet, "/api/v1/admin/accounts", nil).Code)

	suite.clients.On("ListClients", mock.Anything, 5, 10).Return(nil, fmt.Errorf("connection reset"))
	w = suite.asAdmin(http.MethodGet, "/api/v1/admin/clients?limit=5&offset=10", nil)
	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "connection reset")
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
