package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gemura/gemura-backend/internal/apperrors"
	"github.com/gemura/gemura-backend/internal/core/domain"
	"github.com/gemura/gemura-backend/internal/core/services"
	"github.com/gemura/gemura-backend/internal/dto"
)

type WalletServiceTestSuite struct {
	suite.Suite
	mockWalletRepo *MockWalletRepository
	service        *services.WalletService
	accountID      string
	userID         string
}

func (suite *WalletServiceTestSuite) SetupTest() {
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.service = services.NewWalletService(suite.mockWalletRepo)
	suite.accountID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *WalletServiceTestSuite) TestCreateWallet_FirstWalletBecomesDefault() {
	ctx := context.Background()
	req := dto.CreateWalletRequest{Type: domain.WalletTypeCurrent}

	suite.mockWalletRepo.On("CountWalletsByAccount", ctx, suite.accountID).Return(0, nil).Once()
	suite.mockWalletRepo.On("WalletCodeExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
	suite.mockWalletRepo.On("SaveWallet", ctx, mock.AnythingOfType("domain.Wallet")).Return(nil).Once()

	wallet, err := suite.service.CreateWallet(ctx, suite.accountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(wallet.IsDefault)
	suite.True(wallet.Balance.IsZero())
	suite.Equal("RWF", wallet.Currency)
	suite.Equal(domain.WalletActive, wallet.Status)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "ClearDefaultWallet", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestCreateWallet_NewDefaultClearsPrior() {
	ctx := context.Background()
	req := dto.CreateWalletRequest{Type: domain.WalletTypeSavings, IsDefault: true, Currency: "USD"}

	suite.mockWalletRepo.On("CountWalletsByAccount", ctx, suite.accountID).Return(3, nil).Once()
	suite.mockWalletRepo.On("WalletCodeExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
	suite.mockWalletRepo.On("ClearDefaultWallet", ctx, suite.accountID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockWalletRepo.On("SaveWallet", ctx, mock.AnythingOfType("domain.Wallet")).Return(nil).Once()

	wallet, err := suite.service.CreateWallet(ctx, suite.accountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(wallet.IsDefault)
	suite.Equal("USD", wallet.Currency)
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestCreateWallet_CapEnforced() {
	ctx := context.Background()

	suite.mockWalletRepo.On("CountWalletsByAccount", ctx, suite.accountID).Return(domain.MaxWalletsPerAccount, nil).Once()

	_, err := suite.service.CreateWallet(ctx, suite.accountID, dto.CreateWalletRequest{Type: domain.WalletTypeCurrent}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "SaveWallet", mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestCreateWallet_CodeRetryExhaustion() {
	ctx := context.Background()

	suite.mockWalletRepo.On("CountWalletsByAccount", ctx, suite.accountID).Return(1, nil).Once()
	suite.mockWalletRepo.On("WalletCodeExists", ctx, mock.AnythingOfType("string")).Return(true, nil).Times(5)

	_, err := suite.service.CreateWallet(ctx, suite.accountID, dto.CreateWalletRequest{Type: domain.WalletTypeCurrent}, suite.userID)

	suite.Require().Error(err)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(500, appErr.Code)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "SaveWallet", mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestListWallets_EmptyAccountGetsEmptyList() {
	ctx := context.Background()

	suite.mockWalletRepo.On("ListWalletsByAccount", ctx, suite.accountID).Return([]domain.Wallet(nil), nil).Once()

	wallets, err := suite.service.ListWallets(ctx, suite.accountID)

	suite.Require().NoError(err)
	suite.NotNil(wallets)
	suite.Len(wallets, 0)
}

func (suite *WalletServiceTestSuite) TestGetWallet_OtherAccountsWalletHidden() {
	ctx := context.Background()
	wallet := &domain.Wallet{WalletID: uuid.NewString(), AccountID: uuid.NewString()}

	suite.mockWalletRepo.On("FindWalletByID", ctx, wallet.WalletID).Return(wallet, nil).Once()

	_, err := suite.service.GetWallet(ctx, suite.accountID, wallet.WalletID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *WalletServiceTestSuite) TestDeposit_NonPositiveAmountRejected() {
	ctx := context.Background()

	_, err := suite.service.Deposit(ctx, suite.accountID, uuid.NewString(), decimal.Zero, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *WalletServiceTestSuite) TestWithdraw_InsufficientBalance() {
	ctx := context.Background()
	wallet := &domain.Wallet{WalletID: uuid.NewString(), AccountID: suite.accountID, Balance: decimal.NewFromInt(50)}
	amount := decimal.NewFromInt(100)

	suite.mockWalletRepo.On("FindWalletByID", ctx, wallet.WalletID).Return(wallet, nil).Once()
	suite.mockWalletRepo.On("AdjustBalance", ctx, wallet.WalletID, amount.Neg(), suite.userID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrValidation).Once()

	_, err := suite.service.Withdraw(ctx, suite.accountID, wallet.WalletID, amount, suite.userID)

	suite.Require().Error(err)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal("Insufficient balance", appErr.Message)
}

func (suite *WalletServiceTestSuite) TestWithdraw_DebitsByNegativeDelta() {
	ctx := context.Background()
	wallet := &domain.Wallet{WalletID: uuid.NewString(), AccountID: suite.accountID, Balance: decimal.NewFromInt(500)}
	amount := decimal.NewFromInt(200)
	after := &domain.Wallet{WalletID: wallet.WalletID, AccountID: suite.accountID, Balance: decimal.NewFromInt(300)}

	suite.mockWalletRepo.On("FindWalletByID", ctx, wallet.WalletID).Return(wallet, nil).Once()
	suite.mockWalletRepo.On("AdjustBalance", ctx, wallet.WalletID, amount.Neg(), suite.userID, mock.AnythingOfType("time.Time")).Return(after, nil).Once()

	result, err := suite.service.Withdraw(ctx, suite.accountID, wallet.WalletID, amount, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.Balance.Equal(decimal.NewFromInt(300)))
}

func (suite *WalletServiceTestSuite) TestSetDefault_AlreadyDefaultIsNoOp() {
	ctx := context.Background()
	wallet := &domain.Wallet{WalletID: uuid.NewString(), AccountID: suite.accountID, IsDefault: true}

	suite.mockWalletRepo.On("FindWalletByID", ctx, wallet.WalletID).Return(wallet, nil).Once()

	result, err := suite.service.SetDefault(ctx, suite.accountID, wallet.WalletID, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.IsDefault)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "ClearDefaultWallet", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestSetDefault_ClearsThenSets() {
	ctx := context.Background()
	wallet := &domain.Wallet{WalletID: uuid.NewString(), AccountID: suite.accountID}

	suite.mockWalletRepo.On("FindWalletByID", ctx, wallet.WalletID).Return(wallet, nil).Once()
	suite.mockWalletRepo.On("ClearDefaultWallet", ctx, suite.accountID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockWalletRepo.On("SetDefaultWallet", ctx, wallet.WalletID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.SetDefault(ctx, suite.accountID, wallet.WalletID, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.IsDefault)
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func TestWalletServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}
