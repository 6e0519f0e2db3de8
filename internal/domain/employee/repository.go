package employee

import "context"

// EmployeeRepository is the read-only query surface consumed from the
// employee directory collaborator.
type EmployeeRepository interface {
	// ListByTenantID returns pay profiles for the tenant's employees,
	// active only unless includeInactive is set.
	ListByTenantID(ctx context.Context, tenantID string, includeInactive bool) ([]PayProfile, error)

	GetByID(ctx context.Context, id, tenantID string) (PayProfile, error)
}
