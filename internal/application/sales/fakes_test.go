package sales_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sanalas/distripos-api/internal/domain"
	"github.com/sanalas/distripos-api/internal/domain/entity"
	"github.com/sanalas/distripos-api/internal/domain/repository"
)

// memStore estado en memoria compartido por los fakes de ventas: catálogo,
// niveles, ledger de inventario, ventas, fiados y caja.
type memStore struct {
	products      map[string]*entity.Product
	presentations map[string]*entity.Presentation
	warehouses    map[string]*entity.Warehouse
	levels        map[string]*entity.StockLevel
	movements     []*entity.InventoryMovement
	notifications []*entity.Notification

	sales      map[string]*entity.Sale
	saleItems  []*entity.SaleItem
	orders     map[string]*entity.Order
	orderItems []*entity.OrderItem

	sessions map[string]*entity.CashSession // por id
	cashMovs []*entity.CashMovement
}

func newMemStore() *memStore {
	return &memStore{
		products:      map[string]*entity.Product{},
		presentations: map[string]*entity.Presentation{},
		warehouses:    map[string]*entity.Warehouse{},
		levels:        map[string]*entity.StockLevel{},
		sales:         map[string]*entity.Sale{},
		orders:        map[string]*entity.Order{},
		sessions:      map[string]*entity.CashSession{},
	}
}

func levelKey(productID, warehouseID string) string { return productID + "|" + warehouseID }

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.products {
		cp := *v
		c.products[k] = &cp
	}
	for k, v := range s.presentations {
		cp := *v
		c.presentations[k] = &cp
	}
	for k, v := range s.warehouses {
		cp := *v
		c.warehouses[k] = &cp
	}
	for k, v := range s.levels {
		cp := *v
		c.levels[k] = &cp
	}
	for k, v := range s.sales {
		cp := *v
		c.sales[k] = &cp
	}
	for k, v := range s.orders {
		cp := *v
		c.orders[k] = &cp
	}
	for k, v := range s.sessions {
		cp := *v
		c.sessions[k] = &cp
	}
	c.movements = append([]*entity.InventoryMovement(nil), s.movements...)
	c.notifications = append([]*entity.Notification(nil), s.notifications...)
	c.saleItems = append([]*entity.SaleItem(nil), s.saleItems...)
	c.orderItems = append([]*entity.OrderItem(nil), s.orderItems...)
	c.cashMovs = append([]*entity.CashMovement(nil), s.cashMovs...)
	return c
}

func (s *memStore) restore(snap *memStore) { *s = *snap }

// ── Catálogo y niveles ───────────────────────────────────────────────────────

type fakeProductRepo struct{ s *memStore }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Cost = cost
	return nil
}

func (r *fakeProductRepo) AdjustBaseStock(productID string, delta int64) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.BaseStock += delta
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) Deactivate(id string) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Active = false
	return nil
}

func (r *fakeProductRepo) CreatePresentation(p *entity.Presentation) error {
	cp := *p
	r.s.presentations[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetPresentation(id string) (*entity.Presentation, error) {
	if p, ok := r.s.presentations[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) ListPresentations(productID string) ([]*entity.Presentation, error) {
	return nil, nil
}

type fakeWarehouseRepo struct{ s *memStore }

var _ repository.WarehouseRepository = (*fakeWarehouseRepo)(nil)

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	cp := *w
	r.s.warehouses[w.ID] = &cp
	return nil
}

func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if w, ok := r.s.warehouses[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeWarehouseRepo) List() ([]*entity.Warehouse, error) { return nil, nil }

type fakeStockRepo struct{ s *memStore }

var _ repository.StockLevelRepository = (*fakeStockRepo)(nil)

func (r *fakeStockRepo) Get(productID, warehouseID string) (*entity.StockLevel, error) {
	if lv, ok := r.s.levels[levelKey(productID, warehouseID)]; ok {
		cp := *lv
		return &cp, nil
	}
	return &entity.StockLevel{ProductID: productID, WarehouseID: warehouseID}, nil
}

func (r *fakeStockRepo) GetForUpdate(productID, warehouseID string) (*entity.StockLevel, error) {
	return r.Get(productID, warehouseID)
}

func (r *fakeStockRepo) Upsert(level *entity.StockLevel) error {
	cp := *level
	r.s.levels[levelKey(level.ProductID, level.WarehouseID)] = &cp
	return nil
}

func (r *fakeStockRepo) SetMinStock(productID, warehouseID string, minStock int64) error {
	lv, _ := r.Get(productID, warehouseID)
	lv.MinStock = minStock
	return r.Upsert(lv)
}

func (r *fakeStockRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockLevel, error) {
	return nil, nil
}

type fakeMovementRepo struct{ s *memStore }

var _ repository.InventoryMovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(m *entity.InventoryMovement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	return nil, domain.ErrNotFound
}

func (r *fakeMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}

func (r *fakeMovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}

func (r *fakeMovementRepo) ListByReference(referenceID string) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.ReferenceID == referenceID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct{ s *memStore }

var _ repository.NotificationRepository = (*fakeNotificationRepo)(nil)

func (r *fakeNotificationRepo) Create(n *entity.Notification) error {
	cp := *n
	r.s.notifications = append(r.s.notifications, &cp)
	return nil
}

func (r *fakeNotificationRepo) List(limit, offset int) ([]*entity.Notification, error) {
	return nil, nil
}

// ── Ventas y fiados ──────────────────────────────────────────────────────────

type fakeSaleRepo struct{ s *memStore }

var _ repository.SaleRepository = (*fakeSaleRepo)(nil)

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	cp := *sale
	r.s.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) CreateItem(item *entity.SaleItem) error {
	cp := *item
	r.s.saleItems = append(r.s.saleItems, &cp)
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	if sale, ok := r.s.sales[id]; ok {
		cp := *sale
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeSaleRepo) ListItems(saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, it := range r.s.saleItems {
		if it.SaleID == saleID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) Delete(id string) error {
	delete(r.s.sales, id)
	var kept []*entity.SaleItem
	for _, it := range r.s.saleItems {
		if it.SaleID != id {
			kept = append(kept, it)
		}
	}
	r.s.saleItems = kept
	return nil
}

func (r *fakeSaleRepo) TotalsInWindow(warehouseID string, from, to time.Time) (*repository.SaleWindowTotals, error) {
	totals := &repository.SaleWindowTotals{
		TotalSales:    decimal.Zero,
		TotalCash:     decimal.Zero,
		TotalTransfer: decimal.Zero,
	}
	for _, sale := range r.s.sales {
		if sale.WarehouseID != warehouseID || sale.Status == entity.SaleStatusCancelled {
			continue
		}
		if sale.CreatedAt.Before(from) || sale.CreatedAt.After(to) {
			continue
		}
		totals.TotalSales = totals.TotalSales.Add(sale.Total)
		totals.SalesCount++
		switch sale.PaymentMethod {
		case "", entity.PaymentMethodCash:
			totals.TotalCash = totals.TotalCash.Add(sale.Total)
		case entity.PaymentMethodTransfer:
			totals.TotalTransfer = totals.TotalTransfer.Add(sale.Total)
		}
	}
	return totals, nil
}

type fakeOrderRepo struct{ s *memStore }

var _ repository.OrderRepository = (*fakeOrderRepo)(nil)

func (r *fakeOrderRepo) Create(order *entity.Order) error {
	cp := *order
	r.s.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) CreateItem(item *entity.OrderItem) error {
	cp := *item
	r.s.orderItems = append(r.s.orderItems, &cp)
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	if order, ok := r.s.orders[id]; ok {
		cp := *order
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeOrderRepo) GetForUpdate(id string) (*entity.Order, error) { return r.GetByID(id) }

func (r *fakeOrderRepo) ListItems(orderID string) ([]*entity.OrderItem, error) {
	var out []*entity.OrderItem
	for _, it := range r.s.orderItems {
		if it.OrderID == orderID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Update(order *entity.Order) error {
	if _, ok := r.s.orders[order.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *order
	r.s.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) Delete(id string) error {
	delete(r.s.orders, id)
	var kept []*entity.OrderItem
	for _, it := range r.s.orderItems {
		if it.OrderID != id {
			kept = append(kept, it)
		}
	}
	r.s.orderItems = kept
	return nil
}

func (r *fakeOrderRepo) TotalPendingCreatedIn(warehouseID string, from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, o := range r.s.orders {
		if o.WarehouseID == warehouseID && o.Status == entity.OrderStatusPending &&
			!o.CreatedAt.Before(from) && !o.CreatedAt.After(to) {
			sum = sum.Add(o.Total)
		}
	}
	return sum, nil
}

func (r *fakeOrderRepo) TotalPaidIn(warehouseID string, from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, o := range r.s.orders {
		if o.WarehouseID == warehouseID && o.Status == entity.OrderStatusPaid && o.PaidAt != nil &&
			!o.PaidAt.Before(from) && !o.PaidAt.After(to) {
			sum = sum.Add(o.Total)
		}
	}
	return sum, nil
}

// ── Caja ─────────────────────────────────────────────────────────────────────

type fakeSessionRepo struct{ s *memStore }

var _ repository.CashSessionRepository = (*fakeSessionRepo)(nil)

func (r *fakeSessionRepo) Create(session *entity.CashSession) error {
	for _, existing := range r.s.sessions {
		if existing.WarehouseID == session.WarehouseID && existing.IsOpen() {
			return domain.ErrSessionAlreadyOpen
		}
	}
	cp := *session
	r.s.sessions[session.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) GetByID(id string) (*entity.CashSession, error) {
	if sess, ok := r.s.sessions[id]; ok {
		cp := *sess
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeSessionRepo) GetOpen(warehouseID string) (*entity.CashSession, error) {
	for _, sess := range r.s.sessions {
		if sess.WarehouseID == warehouseID && sess.IsOpen() {
			cp := *sess
			return &cp, nil
		}
	}
	return nil, domain.ErrNoOpenSession
}

func (r *fakeSessionRepo) GetOpenForUpdate(warehouseID string) (*entity.CashSession, error) {
	return r.GetOpen(warehouseID)
}

func (r *fakeSessionRepo) Close(session *entity.CashSession) error {
	existing, ok := r.s.sessions[session.ID]
	if !ok || !existing.IsOpen() {
		return domain.ErrConflict
	}
	cp := *session
	r.s.sessions[session.ID] = &cp
	return nil
}

type fakeCashMovementRepo struct{ s *memStore }

var _ repository.CashMovementRepository = (*fakeCashMovementRepo)(nil)

func (r *fakeCashMovementRepo) Create(m *entity.CashMovement) error {
	cp := *m
	r.s.cashMovs = append(r.s.cashMovs, &cp)
	return nil
}

func (r *fakeCashMovementRepo) ListBySession(sessionID string) ([]*entity.CashMovement, error) {
	var out []*entity.CashMovement
	for _, m := range r.s.cashMovs {
		if m.SessionID == sessionID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCashMovementRepo) DeleteByReference(referenceType, referenceID string) error {
	var kept []*entity.CashMovement
	for _, m := range r.s.cashMovs {
		if !(m.ReferenceType == referenceType && m.ReferenceID == referenceID) {
			kept = append(kept, m)
		}
	}
	r.s.cashMovs = kept
	return nil
}

// ── TxRunners fake (snapshot-rollback) ───────────────────────────────────────

type fakeTxRunner struct{ s *memStore }

func (t *fakeTxRunner) RunSale(ctx context.Context, fn func(
	stockRepo repository.StockLevelRepository,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	notifRepo repository.NotificationRepository,
	saleRepo repository.SaleRepository,
	orderRepo repository.OrderRepository,
	sessionRepo repository.CashSessionRepository,
	cashMovRepo repository.CashMovementRepository,
) error) error {
	snap := t.s.clone()
	err := fn(
		&fakeStockRepo{t.s}, &fakeMovementRepo{t.s}, &fakeProductRepo{t.s}, &fakeNotificationRepo{t.s},
		&fakeSaleRepo{t.s}, &fakeOrderRepo{t.s}, &fakeSessionRepo{t.s}, &fakeCashMovementRepo{t.s},
	)
	if err != nil {
		t.s.restore(snap)
	}
	return err
}

// Run implementa ledger.TxRunner sobre el mismo estado, para construir el
// StockLedger que el caso de uso de ventas compone.
func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockLevelRepository,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	notifRepo repository.NotificationRepository,
) error) error {
	snap := t.s.clone()
	err := fn(&fakeStockRepo{t.s}, &fakeMovementRepo{t.s}, &fakeProductRepo{t.s}, &fakeNotificationRepo{t.s})
	if err != nil {
		t.s.restore(snap)
	}
	return err
}
