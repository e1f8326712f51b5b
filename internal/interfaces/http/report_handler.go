package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invetex/cortes-api/internal/application/dto"
	"github.com/invetex/cortes-api/internal/application/reports"
)

// ReportHandler reportes agregados (protegido).
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// StockSummary godoc
// @Summary      Resumen de stock de la empresa
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockSummaryDTO
// @Router       /api/reports/stock-summary [get]
func (h *ReportHandler) StockSummary(c *fiber.Ctx) error {
	s, err := h.uc.StockSummary(c.Context(), GetCompanyID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockSummaryDTO{
		ActiveProductStocks:    s.ActiveProductStocks,
		ActiveSubproductStocks: s.ActiveSubproductStocks,
		TotalOnHand:            s.TotalOnHand,
		OpenReservations:       s.OpenReservations,
		EventsLast30Days:       s.EventsLast30Days,
	})
}
