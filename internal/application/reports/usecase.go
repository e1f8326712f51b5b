package reports

import (
	"context"

	"github.com/invetex/cortes-api/internal/domain"
	"github.com/invetex/cortes-api/internal/domain/repository"
)

// ReportUseCase reportes agregados de solo lectura.
type ReportUseCase struct {
	reportRepo repository.StockReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(reportRepo repository.StockReportRepository) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo}
}

// StockSummary agregados de stock de la empresa: snapshots activos, existencia
// total y reservas abiertas por órdenes de corte.
func (uc *ReportUseCase) StockSummary(ctx context.Context, companyID string) (*repository.StockSummary, error) {
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.reportRepo.StockSummary(ctx, companyID)
}
