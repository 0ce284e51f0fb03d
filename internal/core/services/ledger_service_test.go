package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gemura/gemura-backend/internal/apperrors"
	"github.com/gemura/gemura-backend/internal/core/domain"
	"github.com/gemura/gemura-backend/internal/core/services"
	"github.com/gemura/gemura-backend/internal/dto"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	service        *services.LedgerService
	userID         string

	cashAccount    domain.ChartOfAccount
	revenueAccount domain.ChartOfAccount
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo)
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.ChartOfAccount{
		ChartAccountID: uuid.NewString(),
		Code:           "1000",
		Name:           "Cash",
		AccountType:    domain.LedgerAsset,
		IsActive:       true,
	}
	suite.revenueAccount = domain.ChartOfAccount{
		ChartAccountID: uuid.NewString(),
		Code:           "4000",
		Name:           "Milk Revenue",
		AccountType:    domain.LedgerRevenue,
		IsActive:       true,
	}
}

func (suite *LedgerServiceTestSuite) balancedRequest(amount decimal.Decimal) dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		TransactionDate: time.Now().UTC(),
		Description:     "Milk settlement",
		Entries: []dto.CreateJournalEntryLine{
			{ChartAccountID: suite.cashAccount.ChartAccountID, DebitAmount: &amount},
			{ChartAccountID: suite.revenueAccount.ChartAccountID, CreditAmount: &amount},
		},
	}
}

func (suite *LedgerServiceTestSuite) accountsMap() map[string]domain.ChartOfAccount {
	return map[string]domain.ChartOfAccount{
		suite.cashAccount.ChartAccountID:    suite.cashAccount,
		suite.revenueAccount.ChartAccountID: suite.revenueAccount,
	}
}

func (suite *LedgerServiceTestSuite) TestCreateJournalEntry_Success() {
	ctx := context.Background()
	amount := decimal.NewFromInt(5000)
	req := suite.balancedRequest(amount)

	suite.mockLedgerRepo.On("FindChartAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsMap(), nil).Once()
	suite.mockLedgerRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.AccountingTransaction")).Return(nil).Once()

	txn, err := suite.service.CreateJournalEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.True(txn.TotalAmount.Equal(amount))
	suite.Len(txn.Entries, 2)
	suite.Equal(domain.EntryDebit, txn.Entries[0].Side)
	suite.Equal(domain.EntryCredit, txn.Entries[1].Side)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateJournalEntry_ImbalanceRejected() {
	ctx := context.Background()
	debit := decimal.NewFromInt(5000)
	credit := decimal.NewFromInt(4000)
	req := dto.CreateJournalEntryRequest{
		TransactionDate: time.Now().UTC(),
		Description:     "Broken entry",
		Entries: []dto.CreateJournalEntryLine{
			{ChartAccountID: suite.cashAccount.ChartAccountID, DebitAmount: &debit},
			{ChartAccountID: suite.revenueAccount.ChartAccountID, CreditAmount: &credit},
		},
	}

	suite.mockLedgerRepo.On("FindChartAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsMap(), nil).Once()

	_, err := suite.service.CreateJournalEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateJournalEntry_WithinToleranceAccepted() {
	ctx := context.Background()
	debit := decimal.RequireFromString("100.00")
	credit := decimal.RequireFromString("99.99")
	req := dto.CreateJournalEntryRequest{
		TransactionDate: time.Now().UTC(),
		Description:     "Rounding drift",
		Entries: []dto.CreateJournalEntryLine{
			{ChartAccountID: suite.cashAccount.ChartAccountID, DebitAmount: &debit},
			{ChartAccountID: suite.revenueAccount.ChartAccountID, CreditAmount: &credit},
		},
	}

	suite.mockLedgerRepo.On("FindChartAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsMap(), nil).Once()
	suite.mockLedgerRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.AccountingTransaction")).Return(nil).Once()

	_, err := suite.service.CreateJournalEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
}

func (suite *LedgerServiceTestSuite) TestCreateJournalEntry_BothSidesOnOneLineRejected() {
	ctx := context.Background()
	amount := decimal.NewFromInt(100)
	req := dto.CreateJournalEntryRequest{
		TransactionDate: time.Now().UTC(),
		Description:     "Ambiguous line",
		Entries: []dto.CreateJournalEntryLine{
			{ChartAccountID: suite.cashAccount.ChartAccountID, DebitAmount: &amount, CreditAmount: &amount},
			{ChartAccountID: suite.revenueAccount.ChartAccountID, CreditAmount: &amount},
		},
	}

	_, err := suite.service.CreateJournalEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "FindChartAccountsByIDs", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateJournalEntry_InactiveChartAccountRejected() {
	ctx := context.Background()
	amount := decimal.NewFromInt(100)
	req := suite.balancedRequest(amount)

	inactive := suite.revenueAccount
	inactive.IsActive = false
	accounts := map[string]domain.ChartOfAccount{
		suite.cashAccount.ChartAccountID: suite.cashAccount,
		inactive.ChartAccountID:          inactive,
	}

	suite.mockLedgerRepo.On("FindChartAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accounts, nil).Once()

	_, err := suite.service.CreateJournalEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateChartAccount_DuplicateCodeConflicts() {
	ctx := context.Background()
	req := dto.CreateChartAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.LedgerAsset}

	suite.mockLedgerRepo.On("FindChartAccountByCode", ctx, "1000").Return(&suite.cashAccount, nil).Once()

	_, err := suite.service.CreateChartAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LedgerServiceTestSuite) TestUpdateChartAccount_DeactivateWithChildrenRefused() {
	ctx := context.Background()
	inactive := false

	suite.mockLedgerRepo.On("FindChartAccountByID", ctx, suite.cashAccount.ChartAccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockLedgerRepo.On("CountActiveChildren", ctx, suite.cashAccount.ChartAccountID).Return(2, nil).Once()

	_, err := suite.service.UpdateChartAccount(ctx, suite.cashAccount.ChartAccountID, dto.UpdateChartAccountRequest{IsActive: &inactive}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "UpdateChartAccount", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestUpdateJournalEntryHeader_DescriptionOnly() {
	ctx := context.Background()
	txn := &domain.AccountingTransaction{
		TransactionID: uuid.NewString(),
		Description:   "before",
		TotalAmount:   decimal.NewFromInt(100),
	}
	desc := "after"

	suite.mockLedgerRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockLedgerRepo.On("UpdateTransactionHeader", ctx, mock.AnythingOfType("domain.AccountingTransaction")).Return(nil).Once()

	updated, err := suite.service.UpdateJournalEntryHeader(ctx, txn.TransactionID, &desc, nil, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("after", updated.Description)
	suite.True(updated.TotalAmount.Equal(decimal.NewFromInt(100)))
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
