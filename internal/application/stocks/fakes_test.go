package stocks_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invetex/cortes-api/internal/application/stocks"
	"github.com/invetex/cortes-api/internal/domain"
	"github.com/invetex/cortes-api/internal/domain/entity"
	"github.com/invetex/cortes-api/internal/domain/repository"
)

// memStore almacén en memoria compartido por los repos fake. El mutex emula la
// serialización que en producción dan las transacciones y el FOR UPDATE.
type memStore struct {
	mu          sync.Mutex
	seq         int
	snapshots   map[string]*entity.StockSnapshot
	events      []*entity.StockEvent
	products    map[string]*entity.Product
	subproducts map[string]*entity.Subproduct

	// Conteo de escrituras del flag activo, para verificar idempotencia.
	activeWrites int
}

func newMemStore() *memStore {
	return &memStore{
		snapshots:   make(map[string]*entity.StockSnapshot),
		products:    make(map[string]*entity.Product),
		subproducts: make(map[string]*entity.Subproduct),
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memStore) addProduct(id string) *entity.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := &entity.Product{ID: id, CompanyID: "co-1", Name: id, Audit: entity.NewAudit("seed", time.Now())}
	m.products[id] = p
	return p
}

func (m *memStore) addSubproduct(id, productID string) *entity.Subproduct {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &entity.Subproduct{ID: id, ProductID: productID, Name: id, Audit: entity.NewAudit("seed", time.Now())}
	m.subproducts[id] = s
	return s
}

// fakeSnapshotRepo implementa StockSnapshotRepository con índice único sobre la
// entidad rastreada: el segundo Create para la misma entidad activa devuelve
// ErrSnapshotExists, igual que la traducción del 23505 en PostgreSQL.
type fakeSnapshotRepo struct{ s *memStore }

func (r *fakeSnapshotRepo) Create(snap *entity.StockSnapshot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.snapshots {
		if !existing.Audit.Active {
			continue
		}
		if snap.ProductID != nil && existing.ProductID != nil && *snap.ProductID == *existing.ProductID {
			return domain.ErrSnapshotExists
		}
		if snap.SubproductID != nil && existing.SubproductID != nil && *snap.SubproductID == *existing.SubproductID {
			return domain.ErrSnapshotExists
		}
	}
	if snap.ID == "" {
		snap.ID = r.s.nextID("snap")
	}
	cp := *snap
	r.s.snapshots[snap.ID] = &cp
	return nil
}

func (r *fakeSnapshotRepo) GetByID(id string) (*entity.StockSnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap, ok := r.s.snapshots[id]
	if !ok {
		return nil, nil
	}
	cp := *snap
	return &cp, nil
}

func (r *fakeSnapshotRepo) GetByProduct(productID string) (*entity.StockSnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, snap := range r.s.snapshots {
		if snap.Audit.Active && snap.ProductID != nil && *snap.ProductID == productID {
			cp := *snap
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSnapshotRepo) GetBySubproduct(subproductID string) (*entity.StockSnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, snap := range r.s.snapshots {
		if snap.Audit.Active && snap.SubproductID != nil && *snap.SubproductID == subproductID {
			cp := *snap
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSnapshotRepo) GetForUpdate(id string) (*entity.StockSnapshot, error) {
	return r.GetByID(id)
}

func (r *fakeSnapshotRepo) Update(snap *entity.StockSnapshot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.snapshots[snap.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *snap
	r.s.snapshots[snap.ID] = &cp
	return nil
}

type fakeEventRepo struct{ s *memStore }

func (r *fakeEventRepo) Create(e *entity.StockEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e.ID == "" {
		e.ID = r.s.nextID("ev")
	}
	cp := *e
	r.s.events = append(r.s.events, &cp)
	return nil
}

func (r *fakeEventRepo) GetByID(id string) (*entity.StockEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.events {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeEventRepo) ListByProductStock(productStockID string, limit, offset int) ([]*entity.StockEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockEvent
	for _, e := range r.s.events {
		if e.ProductStockID != nil && *e.ProductStockID == productStockID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListBySubproductStock(subproductStockID string, limit, offset int) ([]*entity.StockEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockEvent
	for _, e := range r.s.events {
		if e.SubproductStockID != nil && *e.SubproductStockID == subproductStockID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == "" {
		p.ID = r.s.nextID("prod")
	}
	r.s.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) List(companyID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Search(ctx context.Context, companyID, normalizedQuery string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) UpdateActive(id string, active bool, actor string, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Audit.Active = active
	p.Audit.Touch(actor, now)
	r.s.activeWrites++
	return nil
}

type fakeSubproductRepo struct{ s *memStore }

func (r *fakeSubproductRepo) Create(sp *entity.Subproduct) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sp.ID == "" {
		sp.ID = r.s.nextID("sub")
	}
	r.s.subproducts[sp.ID] = sp
	return nil
}

func (r *fakeSubproductRepo) GetByID(id string) (*entity.Subproduct, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.subproducts[id]
	if !ok {
		return nil, nil
	}
	cp := *sp
	return &cp, nil
}

func (r *fakeSubproductRepo) ListByProduct(productID string) ([]*entity.Subproduct, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Subproduct
	for _, sp := range r.s.subproducts {
		if sp.ProductID == productID {
			cp := *sp
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSubproductRepo) ExistsByProduct(productID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sp := range r.s.subproducts {
		if sp.ProductID == productID && sp.Audit.Active {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSubproductRepo) UpdateActive(id string, active bool, actor string, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.subproducts[id]
	if !ok {
		return domain.ErrNotFound
	}
	sp.Audit.Active = active
	sp.Audit.Touch(actor, now)
	r.s.activeWrites++
	return nil
}

// fakeTxRunner pasa los repos fake al callback; no hay rollback real, pero las
// validaciones de los casos de uso ocurren antes de cualquier escritura.
type fakeTxRunner struct{ s *memStore }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	eventRepo repository.StockEventRepository,
	snapshotRepo repository.StockSnapshotRepository,
	productRepo repository.ProductRepository,
	subproductRepo repository.SubproductRepository,
) error) error {
	return fn(&fakeEventRepo{r.s}, &fakeSnapshotRepo{r.s}, &fakeProductRepo{r.s}, &fakeSubproductRepo{r.s})
}

// fakeNotifier registra las notificaciones post-commit.
type fakeNotifier struct {
	mu    sync.Mutex
	calls []notifierCall
}

type notifierCall struct {
	snapshotID string
	eventType  string
	quantity   decimal.Decimal
}

func (n *fakeNotifier) StockChanged(_ context.Context, snapshotID, eventType string, newQuantity decimal.Decimal) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifierCall{snapshotID: snapshotID, eventType: eventType, quantity: newQuantity})
}

// harness arma los casos de uso de stock sobre un memStore nuevo.
type harness struct {
	store        *memStore
	snapshotRepo *fakeSnapshotRepo
	eventRepo    *fakeEventRepo
	notifier     *fakeNotifier
	snapshots    *stocks.SnapshotUseCase
	appends      *stocks.AppendEventUseCase
}

func newHarness() *harness {
	s := newMemStore()
	snapshotRepo := &fakeSnapshotRepo{s}
	eventRepo := &fakeEventRepo{s}
	productRepo := &fakeProductRepo{s}
	subproductRepo := &fakeSubproductRepo{s}
	runner := &fakeTxRunner{s}
	notifier := &fakeNotifier{}
	return &harness{
		store:        s,
		snapshotRepo: snapshotRepo,
		eventRepo:    eventRepo,
		notifier:     notifier,
		snapshots:    stocks.NewSnapshotUseCase(runner, snapshotRepo, productRepo, subproductRepo),
		appends:      stocks.NewAppendEventUseCase(runner, snapshotRepo, eventRepo, notifier),
	}
}
