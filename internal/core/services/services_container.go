package services

import (
	"time"

	portsrepo "github.com/SscSPs/household_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/household_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, ledgerOptions ...LedgerServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The ledger service comes first since the others read through it
	container.Ledger = NewLedgerService(repos.ProfileRepo, repos.AuditRepo, ledgerOptions...)
	container.Insights = NewInsightsService(container.Ledger)

	// Sync operations fail with an internal error when no store is configured
	container.SheetsSync = NewSheetsSyncService(container.Ledger, repos.SnapshotStore, time.Now)

	return container
}
