package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invetex/cortes-api/internal/application/cuts"
	"github.com/invetex/cortes-api/internal/application/expenses"
	"github.com/invetex/cortes-api/internal/application/stocks"
	"github.com/invetex/cortes-api/internal/domain/repository"
)

// Ensure TxRunner implements the application tx ports.
var _ stocks.TxRunner = (*TxRunner)(nil)
var _ cuts.CutTxRunner = (*TxRunner)(nil)
var _ expenses.ExpenseTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos del motor de stock y hace Commit o
// Rollback según el resultado de fn.
func (r *TxRunner) Run(ctx context.Context, fn func(
	eventRepo repository.StockEventRepository,
	snapshotRepo repository.StockSnapshotRepository,
	productRepo repository.ProductRepository,
	subproductRepo repository.SubproductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewStockEventRepository(tx),
		NewStockSnapshotRepository(tx),
		NewProductRepository(tx),
		NewSubproductRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCut inicia una transacción con repos de órdenes de corte y de stock
// (para completar una orden: cambio de estado + eventos CUT_OUT juntos).
func (r *TxRunner) RunCut(ctx context.Context, fn func(
	orderRepo repository.CuttingOrderRepository,
	eventRepo repository.StockEventRepository,
	snapshotRepo repository.StockSnapshotRepository,
	productRepo repository.ProductRepository,
	subproductRepo repository.SubproductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewCuttingOrderRepository(tx),
		NewStockEventRepository(tx),
		NewStockSnapshotRepository(tx),
		NewProductRepository(tx),
		NewSubproductRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunExpense inicia una transacción con repos de gastos y pagos (imputaciones).
func (r *TxRunner) RunExpense(ctx context.Context, fn func(
	expenseRepo repository.ExpenseRepository,
	paymentRepo repository.PaymentRepository,
	allocationRepo repository.PaymentAllocationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewExpenseRepository(tx),
		NewPaymentRepository(tx),
		NewPaymentAllocationRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
