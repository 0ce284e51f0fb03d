package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gemura/gemura-backend/internal/apperrors"
	"github.com/gemura/gemura-backend/internal/core/domain"
	"github.com/gemura/gemura-backend/internal/core/services"
	"github.com/gemura/gemura-backend/internal/dto"
	"github.com/gemura/gemura-backend/internal/metrics"
)

type PayrollServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockSaleRepo    *MockSaleRepository
	mockFeeRepo     *MockFeeRepository
	mockPayrollRepo *MockPayrollRepository
	service         *services.PayrollService

	customerAccount *domain.Account
	supplierAccount *domain.Account
	userID          string
	period          dto.GeneratePayrollRequest
}

func (suite *PayrollServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockSaleRepo = new(MockSaleRepository)
	suite.mockFeeRepo = new(MockFeeRepository)
	suite.mockPayrollRepo = new(MockPayrollRepository)
	suite.service = services.NewPayrollService(suite.mockAccountRepo, suite.mockSaleRepo, suite.mockFeeRepo, suite.mockPayrollRepo)

	suite.userID = uuid.NewString()
	suite.customerAccount = &domain.Account{
		AccountID: uuid.NewString(),
		Code:      "GA-COOP",
		Status:    domain.AccountActive,
	}
	suite.supplierAccount = &domain.Account{
		AccountID: uuid.NewString(),
		Code:      "GA-FARM",
		Name:      "Farm One",
		Status:    domain.AccountActive,
	}
	suite.period = dto.GeneratePayrollRequest{
		SupplierAccountCodes: []string{suite.supplierAccount.Code},
		DateFrom:             time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DateTo:               time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *PayrollServiceTestSuite) TestGeneratePayroll_NetIsGrossMinusDeductionsAndFees() {
	ctx := context.Background()
	gross := decimal.NewFromInt(100000)
	recorded := decimal.NewFromInt(5000)
	rules := []domain.SupplierFeeRule{
		{
			RuleID:          uuid.NewString(),
			CalculationType: domain.FeePercentage,
			Amount:          decimal.NewFromInt(2), // 2% of 100000 = 2000
		},
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.supplierAccount.Code).Return(suite.supplierAccount, nil).Once()
	suite.mockSaleRepo.On("SumAcceptedSales", ctx, suite.supplierAccount.AccountID, suite.customerAccount.AccountID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(gross, 31, nil).Once()
	suite.mockFeeRepo.On("SumDeductions", ctx, suite.supplierAccount.AccountID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(recorded, nil).Once()
	suite.mockFeeRepo.On("ListActiveFeeRules", ctx, suite.supplierAccount.AccountID, mock.AnythingOfType("time.Time")).Return(rules, nil).Once()
	suite.mockPayrollRepo.On("SavePayslip", ctx, mock.AnythingOfType("domain.Payslip")).Return(nil).Once()

	result, err := suite.service.GeneratePayroll(ctx, suite.customerAccount, suite.period, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, result.SuppliersProcessed)
	suite.Equal(0, result.SuppliersSkipped)
	suite.Require().Len(result.Payslips, 1)

	p := result.Payslips[0]
	suite.True(p.GrossAmount.Equal(gross))
	suite.True(p.DeductionAmount.Equal(decimal.NewFromInt(7000)))
	suite.True(p.NetAmount.Equal(decimal.NewFromInt(93000)))
	suite.Equal(31, p.MilkSalesCount)
	suite.Equal(domain.PayslipGenerated, p.Status)
	suite.True(result.TotalAmount.Equal(p.NetAmount))
}

func (suite *PayrollServiceTestSuite) TestGeneratePayroll_FailingSupplierIsIsolated() {
	ctx := context.Background()
	badCode := "GA-GONE"
	req := suite.period
	req.SupplierAccountCodes = []string{badCode, suite.supplierAccount.Code}

	gross := decimal.NewFromInt(40000)

	suite.mockAccountRepo.On("FindAccountByCode", ctx, badCode).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.supplierAccount.Code).Return(suite.supplierAccount, nil).Once()
	suite.mockSaleRepo.On("SumAcceptedSales", ctx, suite.supplierAccount.AccountID, suite.customerAccount.AccountID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(gross, 10, nil).Once()
	suite.mockFeeRepo.On("SumDeductions", ctx, suite.supplierAccount.AccountID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(decimal.Zero, nil).Once()
	suite.mockFeeRepo.On("ListActiveFeeRules", ctx, suite.supplierAccount.AccountID, mock.AnythingOfType("time.Time")).Return([]domain.SupplierFeeRule{}, nil).Once()
	suite.mockPayrollRepo.On("SavePayslip", ctx, mock.AnythingOfType("domain.Payslip")).Return(nil).Once()

	result, err := suite.service.GeneratePayroll(ctx, suite.customerAccount, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, result.SuppliersProcessed)
	suite.Equal(1, result.SuppliersSkipped)
	suite.Require().Len(result.Skipped, 1)
	suite.Equal(badCode, result.Skipped[0].SupplierCode)
	suite.Equal("Supplier account not found", result.Skipped[0].Reason)
}

func (suite *PayrollServiceTestSuite) TestGeneratePayroll_BatchOutcomeIsCounted() {
	ctx := context.Background()
	successBefore := testutil.ToFloat64(metrics.PayrollBatchesTotal.WithLabelValues("success"))
	partialBefore := testutil.ToFloat64(metrics.PayrollBatchesTotal.WithLabelValues("partial"))

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.supplierAccount.Code).Return(suite.supplierAccount, nil).Once()
	suite.mockSaleRepo.On("SumAcceptedSales", ctx, suite.supplierAccount.AccountID, suite.customerAccount.AccountID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(decimal.NewFromInt(1000), 1, nil).Once()
	suite.mockFeeRepo.On("SumDeductions", ctx, suite.supplierAccount.AccountID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(decimal.Zero, nil).Once()
	suite.mockFeeRepo.On("ListActiveFeeRules", ctx, suite.supplierAccount.AccountID, mock.AnythingOfType("time.Time")).Return([]domain.SupplierFeeRule{}, nil).Once()
	suite.mockPayrollRepo.On("SavePayslip", ctx, mock.AnythingOfType("domain.Payslip")).Return(nil).Once()

	_, err := suite.service.GeneratePayroll(ctx, suite.customerAccount, suite.period, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(successBefore+1, testutil.ToFloat64(metrics.PayrollBatchesTotal.WithLabelValues("success")))

	// A batch with a skipped supplier counts as partial, not success.
	req := suite.period
	req.SupplierAccountCodes = []string{"GA-GONE"}
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "GA-GONE").Return(nil, apperrors.ErrNotFound).Once()

	_, err = suite.service.GeneratePayroll(ctx, suite.customerAccount, req, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(partialBefore+1, testutil.ToFloat64(metrics.PayrollBatchesTotal.WithLabelValues("partial")))
	suite.Equal(successBefore+1, testutil.ToFloat64(metrics.PayrollBatchesTotal.WithLabelValues("success")))
}

func (suite *PayrollServiceTestSuite) TestGeneratePayroll_InfraErrorsAreHidden() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.supplierAccount.Code).Return(suite.supplierAccount, nil).Once()
	suite.mockSaleRepo.On("SumAcceptedSales", ctx, suite.supplierAccount.AccountID, suite.customerAccount.AccountID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(decimal.Zero, 0, errors.New("connection reset by peer")).Once()

	result, err := suite.service.GeneratePayroll(ctx, suite.customerAccount, suite.period, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, result.SuppliersSkipped)
	suite.Require().Len(result.Skipped, 1)
	suite.Equal("Aggregation failed", result.Skipped[0].Reason)
}

func (suite *PayrollServiceTestSuite) TestGeneratePayroll_InvertedDatesRejected() {
	ctx := context.Background()
	req := suite.period
	req.DateFrom, req.DateTo = req.DateTo, req.DateFrom

	_, err := suite.service.GeneratePayroll(ctx, suite.customerAccount, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PayrollServiceTestSuite) TestRenderPayslipPDF_OtherCustomersPayslipHidden() {
	ctx := context.Background()
	p := &domain.Payslip{
		PayslipID:         uuid.NewString(),
		CustomerAccountID: uuid.NewString(),
	}

	suite.mockPayrollRepo.On("FindPayslipByID", ctx, p.PayslipID).Return(p, nil).Once()

	_, err := suite.service.RenderPayslipPDF(ctx, suite.customerAccount.AccountID, p.PayslipID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PayrollServiceTestSuite) TestRenderPayslipPDF_ProducesDocument() {
	ctx := context.Background()
	p := &domain.Payslip{
		PayslipID:         uuid.NewString(),
		CustomerAccountID: suite.customerAccount.AccountID,
		SupplierName:      "Farm One",
		PeriodFrom:        time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodTo:          time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		MilkSalesCount:    31,
		GrossAmount:       decimal.NewFromInt(100000),
		DeductionAmount:   decimal.NewFromInt(7000),
		NetAmount:         decimal.NewFromInt(93000),
		Status:            domain.PayslipGenerated,
	}

	suite.mockPayrollRepo.On("FindPayslipByID", ctx, p.PayslipID).Return(p, nil).Once()

	pdfBytes, err := suite.service.RenderPayslipPDF(ctx, suite.customerAccount.AccountID, p.PayslipID)

	suite.Require().NoError(err)
	suite.NotEmpty(pdfBytes)
	suite.Equal("%PDF", string(pdfBytes[:4]))
}

func TestPayrollServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PayrollServiceTestSuite))
}
