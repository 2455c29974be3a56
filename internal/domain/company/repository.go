package company

import "context"

// CompanyRepository defines the interface for company data access
type CompanyRepository interface {
	Create(ctx context.Context, c Company) (Company, error)
	GetByID(ctx context.Context, id string) (Company, error)
}
