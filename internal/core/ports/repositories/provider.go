package repositories

// RepositoryProvider bundles every repository implementation behind one
// injection point for the service layer.
type RepositoryProvider struct {
	UserRepo         UserRepositoryFacade
	AccountRepo      AccountRepositoryFacade
	RelationshipRepo RelationshipRepositoryFacade
	OnboardingRepo   SupplierOnboardingRepository
	SaleRepo         SaleRepositoryFacade
	WalletRepo       WalletRepositoryFacade
	LedgerRepo       LedgerRepositoryFacade
	InvoiceRepo      InvoiceRepositoryFacade
	FeeRepo          FeeRepositoryFacade
	PayrollRepo      PayrollRepositoryFacade
	NotificationRepo NotificationRepositoryFacade
}
