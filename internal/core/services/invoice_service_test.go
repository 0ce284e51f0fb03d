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

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockInvoiceRepo *MockInvoiceRepository
	service         *services.InvoiceService
	supplier        *domain.Account
	userID          string
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.service = services.NewInvoiceService(suite.mockAccountRepo, suite.mockInvoiceRepo)
	suite.supplier = &domain.Account{
		AccountID: uuid.NewString(),
		Code:      "SUP-001",
		Status:    domain.AccountActive,
	}
	suite.userID = uuid.NewString()
}

func (suite *InvoiceServiceTestSuite) validRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		InvoiceNumber:       "INV-2026-001",
		SupplierAccountCode: suite.supplier.Code,
		IssueDate:           time.Now().UTC(),
		DueDate:             time.Now().UTC().AddDate(0, 1, 0),
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "Milk delivery", Quantity: decimal.NewFromInt(100), UnitPrice: decimal.NewFromInt(400)},
			{Description: "Transport", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(5000)},
		},
	}
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_HeaderTotalIsItemSum() {
	ctx := context.Background()
	req := suite.validRequest()

	suite.mockInvoiceRepo.On("FindInvoiceByNumber", ctx, req.InvoiceNumber).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.supplier.Code).Return(suite.supplier, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	inv, err := suite.service.CreateInvoice(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(inv.TotalAmount.Equal(decimal.NewFromInt(45000)))
	suite.Equal(domain.InvoiceDraft, inv.Status)
	suite.Len(inv.Items, 2)
	suite.True(inv.Items[0].Total.Equal(decimal.NewFromInt(40000)))
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_TaxAddedToTotal() {
	ctx := context.Background()
	req := suite.validRequest()
	tax := decimal.NewFromInt(1800)
	req.TaxAmount = &tax

	suite.mockInvoiceRepo.On("FindInvoiceByNumber", ctx, req.InvoiceNumber).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.supplier.Code).Return(suite.supplier, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	inv, err := suite.service.CreateInvoice(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(inv.TotalAmount.Equal(decimal.NewFromInt(46800)))
	suite.True(inv.TaxAmount.Equal(tax))
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_DuplicateNumberConflicts() {
	ctx := context.Background()
	req := suite.validRequest()
	existing := &domain.Invoice{InvoiceID: uuid.NewString(), InvoiceNumber: req.InvoiceNumber}

	suite.mockInvoiceRepo.On("FindInvoiceByNumber", ctx, req.InvoiceNumber).Return(existing, nil).Once()

	_, err := suite.service.CreateInvoice(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_InactiveSupplierNotFound() {
	ctx := context.Background()
	req := suite.validRequest()
	suite.supplier.Status = domain.AccountInactive

	suite.mockInvoiceRepo.On("FindInvoiceByNumber", ctx, req.InvoiceNumber).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.supplier.Code).Return(suite.supplier, nil).Once()

	_, err := suite.service.CreateInvoice(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NonPositiveQuantityRejected() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Items[1].Quantity = decimal.Zero

	suite.mockInvoiceRepo.On("FindInvoiceByNumber", ctx, req.InvoiceNumber).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.supplier.Code).Return(suite.supplier, nil).Once()

	_, err := suite.service.CreateInvoice(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestChangeStatus_DraftToSent() {
	ctx := context.Background()
	inv := &domain.Invoice{InvoiceID: uuid.NewString(), Status: domain.InvoiceDraft}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, inv.InvoiceID).Return(inv, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", ctx, inv.InvoiceID, domain.InvoiceSent, suite.userID).Return(nil).Once()

	updated, err := suite.service.ChangeStatus(ctx, inv.InvoiceID, domain.InvoiceSent, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceSent, updated.Status)
}

func (suite *InvoiceServiceTestSuite) TestChangeStatus_SameStatusIsNoOp() {
	ctx := context.Background()
	inv := &domain.Invoice{InvoiceID: uuid.NewString(), Status: domain.InvoiceSent}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, inv.InvoiceID).Return(inv, nil).Once()

	updated, err := suite.service.ChangeStatus(ctx, inv.InvoiceID, domain.InvoiceSent, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceSent, updated.Status)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestChangeStatus_PaidIsTerminal() {
	ctx := context.Background()
	inv := &domain.Invoice{InvoiceID: uuid.NewString(), Status: domain.InvoicePaid}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, inv.InvoiceID).Return(inv, nil).Once()

	_, err := suite.service.ChangeStatus(ctx, inv.InvoiceID, domain.InvoiceOverdue, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestChangeStatus_CancelledIsTerminal() {
	ctx := context.Background()
	inv := &domain.Invoice{InvoiceID: uuid.NewString(), Status: domain.InvoiceCancelled}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, inv.InvoiceID).Return(inv, nil).Once()

	_, err := suite.service.ChangeStatus(ctx, inv.InvoiceID, domain.InvoiceSent, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
