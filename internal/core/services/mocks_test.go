package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/gemura/gemura-backend/internal/core/domain"
	portsrepo "github.com/gemura/gemura-backend/internal/core/ports/repositories"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByContact(ctx context.Context, phone, email, nationalID string) (*domain.User, error) {
	args := m.Called(ctx, phone, email, nationalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateDefaultAccount(ctx context.Context, userID string, accountID string, updatedBy string) error {
	args := m.Called(ctx, userID, accountID, updatedBy)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveUserAccount(ctx context.Context, link domain.UserAccount) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockAccountRepository) FindUserAccount(ctx context.Context, userID, accountID string) (*domain.UserAccount, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserAccount), args.Error(1)
}

func (m *MockAccountRepository) ListUserAccounts(ctx context.Context, userID string) ([]domain.UserAccountWithAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserAccountWithAccount), args.Error(1)
}

// --- Mock RelationshipRepository ---

type MockRelationshipRepository struct {
	mock.Mock
}

var _ portsrepo.RelationshipRepositoryFacade = (*MockRelationshipRepository)(nil)

func (m *MockRelationshipRepository) SaveRelationship(ctx context.Context, rel domain.SupplierCustomer) error {
	args := m.Called(ctx, rel)
	return args.Error(0)
}

func (m *MockRelationshipRepository) FindRelationship(ctx context.Context, supplierAccountID, customerAccountID string) (*domain.SupplierCustomer, error) {
	args := m.Called(ctx, supplierAccountID, customerAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupplierCustomer), args.Error(1)
}

func (m *MockRelationshipRepository) FindRelationshipByID(ctx context.Context, relationshipID string) (*domain.SupplierCustomer, error) {
	args := m.Called(ctx, relationshipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupplierCustomer), args.Error(1)
}

func (m *MockRelationshipRepository) UpdateRelationship(ctx context.Context, rel domain.SupplierCustomer) error {
	args := m.Called(ctx, rel)
	return args.Error(0)
}

func (m *MockRelationshipRepository) ListSuppliersForCustomer(ctx context.Context, customerAccountID string) ([]domain.SupplierCustomer, error) {
	args := m.Called(ctx, customerAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SupplierCustomer), args.Error(1)
}

func (m *MockRelationshipRepository) ListCustomersForSupplier(ctx context.Context, supplierAccountID string) ([]domain.SupplierCustomer, error) {
	args := m.Called(ctx, supplierAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SupplierCustomer), args.Error(1)
}

// --- Mock SupplierOnboardingRepository ---

type MockOnboardingRepository struct {
	mock.Mock
}

var _ portsrepo.SupplierOnboardingRepository = (*MockOnboardingRepository)(nil)

func (m *MockOnboardingRepository) OnboardSupplier(ctx context.Context, user domain.User, account domain.Account, link domain.UserAccount, wallet domain.Wallet) error {
	args := m.Called(ctx, user, account, link, wallet)
	return args.Error(0)
}

// --- Mock SaleRepository ---

type MockSaleRepository struct {
	mock.Mock
}

var _ portsrepo.SaleRepositoryFacade = (*MockSaleRepository)(nil)

func (m *MockSaleRepository) SaveSale(ctx context.Context, sale domain.MilkSale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.MilkSale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MilkSale), args.Error(1)
}

func (m *MockSaleRepository) UpdateSale(ctx context.Context, sale domain.MilkSale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) ListSales(ctx context.Context, accountID string, asSupplier bool, filter domain.SaleFilter) ([]domain.MilkSale, error) {
	args := m.Called(ctx, accountID, asSupplier, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MilkSale), args.Error(1)
}

func (m *MockSaleRepository) SumAcceptedSales(ctx context.Context, supplierAccountID, customerAccountID string, from, to time.Time) (decimal.Decimal, int, error) {
	args := m.Called(ctx, supplierAccountID, customerAccountID, from, to)
	return args.Get(0).(decimal.Decimal), args.Int(1), args.Error(2)
}

// --- Mock WalletRepository ---

type MockWalletRepository struct {
	mock.Mock
}

var _ portsrepo.WalletRepositoryFacade = (*MockWalletRepository)(nil)

func (m *MockWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ListWalletsByAccount(ctx context.Context, accountID string) ([]domain.Wallet, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) CountWalletsByAccount(ctx context.Context, accountID string) (int, error) {
	args := m.Called(ctx, accountID)
	return args.Int(0), args.Error(1)
}

func (m *MockWalletRepository) WalletCodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockWalletRepository) ClearDefaultWallet(ctx context.Context, accountID string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, accountID, updatedBy, now)
	return args.Error(0)
}

func (m *MockWalletRepository) SetDefaultWallet(ctx context.Context, walletID string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, walletID, updatedBy, now)
	return args.Error(0)
}

func (m *MockWalletRepository) AdjustBalance(ctx context.Context, walletID string, delta decimal.Decimal, updatedBy string, now time.Time) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID, delta, updatedBy, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) SaveChartAccount(ctx context.Context, acc domain.ChartOfAccount) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindChartAccountByID(ctx context.Context, chartAccountID string) (*domain.ChartOfAccount, error) {
	args := m.Called(ctx, chartAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartOfAccount), args.Error(1)
}

func (m *MockLedgerRepository) FindChartAccountByCode(ctx context.Context, code string) (*domain.ChartOfAccount, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartOfAccount), args.Error(1)
}

func (m *MockLedgerRepository) FindChartAccountsByIDs(ctx context.Context, ids []string) (map[string]domain.ChartOfAccount, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.ChartOfAccount), args.Error(1)
}

func (m *MockLedgerRepository) ListChartAccounts(ctx context.Context, includeInactive bool) ([]domain.ChartOfAccount, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChartOfAccount), args.Error(1)
}

func (m *MockLedgerRepository) UpdateChartAccount(ctx context.Context, acc domain.ChartOfAccount) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func (m *MockLedgerRepository) CountActiveChildren(ctx context.Context, chartAccountID string) (int, error) {
	args := m.Called(ctx, chartAccountID)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerRepository) SaveTransaction(ctx context.Context, txn domain.AccountingTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.AccountingTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingTransaction), args.Error(1)
}

func (m *MockLedgerRepository) ListTransactions(ctx context.Context, limit, offset int) ([]domain.AccountingTransaction, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingTransaction), args.Error(1)
}

func (m *MockLedgerRepository) UpdateTransactionHeader(ctx context.Context, txn domain.AccountingTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

// --- Mock InvoiceRepository ---

type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, inv domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesBySupplier(ctx context.Context, supplierAccountID string, limit, offset int) ([]domain.Invoice, error) {
	args := m.Called(ctx, supplierAccountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, updatedBy string) error {
	args := m.Called(ctx, invoiceID, status, updatedBy)
	return args.Error(0)
}

// --- Mock FeeRepository ---

type MockFeeRepository struct {
	mock.Mock
}

var _ portsrepo.FeeRepositoryFacade = (*MockFeeRepository)(nil)

func (m *MockFeeRepository) SaveFeeType(ctx context.Context, ft domain.FeeType) error {
	args := m.Called(ctx, ft)
	return args.Error(0)
}

func (m *MockFeeRepository) FindFeeTypeByID(ctx context.Context, feeTypeID string) (*domain.FeeType, error) {
	args := m.Called(ctx, feeTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeType), args.Error(1)
}

func (m *MockFeeRepository) FindFeeTypeByCode(ctx context.Context, code string) (*domain.FeeType, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeType), args.Error(1)
}

func (m *MockFeeRepository) ListFeeTypes(ctx context.Context) ([]domain.FeeType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeeType), args.Error(1)
}

func (m *MockFeeRepository) SaveFeeRule(ctx context.Context, rule domain.SupplierFeeRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockFeeRepository) ListActiveFeeRules(ctx context.Context, supplierAccountID string, at time.Time) ([]domain.SupplierFeeRule, error) {
	args := m.Called(ctx, supplierAccountID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SupplierFeeRule), args.Error(1)
}

func (m *MockFeeRepository) ListFeeRulesBySupplier(ctx context.Context, supplierAccountID string) ([]domain.SupplierFeeRule, error) {
	args := m.Called(ctx, supplierAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SupplierFeeRule), args.Error(1)
}

func (m *MockFeeRepository) SaveDeduction(ctx context.Context, d domain.SupplierDeduction) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockFeeRepository) ListDeductionsBySupplier(ctx context.Context, supplierAccountID string, limit, offset int) ([]domain.SupplierDeduction, error) {
	args := m.Called(ctx, supplierAccountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SupplierDeduction), args.Error(1)
}

func (m *MockFeeRepository) SumDeductions(ctx context.Context, supplierAccountID string, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, supplierAccountID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock PayrollRepository ---

type MockPayrollRepository struct {
	mock.Mock
}

var _ portsrepo.PayrollRepositoryFacade = (*MockPayrollRepository)(nil)

func (m *MockPayrollRepository) SavePayslip(ctx context.Context, p domain.Payslip) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPayrollRepository) FindPayslipByID(ctx context.Context, payslipID string) (*domain.Payslip, error) {
	args := m.Called(ctx, payslipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payslip), args.Error(1)
}

func (m *MockPayrollRepository) ListPayslips(ctx context.Context, customerAccountID string, from, to *time.Time, limit, offset int) ([]domain.Payslip, error) {
	args := m.Called(ctx, customerAccountID, from, to, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payslip), args.Error(1)
}

// --- Mock NotificationRepository ---

type MockNotificationRepository struct {
	mock.Mock
}

var _ portsrepo.NotificationRepositoryFacade = (*MockNotificationRepository)(nil)

func (m *MockNotificationRepository) SaveNotification(ctx context.Context, n domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) FindNotificationByID(ctx context.Context, notificationID string) (*domain.Notification, error) {
	args := m.Called(ctx, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, notificationID string, readAt time.Time) error {
	args := m.Called(ctx, notificationID, readAt)
	return args.Error(0)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
