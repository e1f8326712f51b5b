package dto

import "github.com/shopspring/decimal"

// CuttingOrderItemRequest ítem solicitado en una orden de corte.
type CuttingOrderItemRequest struct {
	SubproductID string          `json:"subproduct_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// CreateCuttingOrderRequest body para POST /api/cutting-orders.
type CreateCuttingOrderRequest struct {
	Customer string                    `json:"customer,omitempty"`
	Items    []CuttingOrderItemRequest `json:"items"`
}

// ChangeOrderStatusRequest body para PATCH /api/cutting-orders/:id/status.
type ChangeOrderStatusRequest struct {
	Status string `json:"status"` // in_process | completed | cancelled
}

// CuttingOrderItemDTO ítem de orden en respuestas.
type CuttingOrderItemDTO struct {
	ID              string          `json:"id"`
	SubproductID    string          `json:"subproduct_id"`
	CuttingQuantity decimal.Decimal `json:"cutting_quantity"`
}

// CuttingOrderDTO orden de corte en respuestas.
type CuttingOrderDTO struct {
	ID             string                `json:"id"`
	Customer       string                `json:"customer,omitempty"`
	WorkflowStatus string                `json:"workflow_status"`
	Items          []CuttingOrderItemDTO `json:"items"`
}
