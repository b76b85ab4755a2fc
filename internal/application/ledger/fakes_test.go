package ledger_test

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sanalas/distripos-api/internal/domain"
	"github.com/sanalas/distripos-api/internal/domain/entity"
	"github.com/sanalas/distripos-api/internal/domain/repository"
)

// memStore es el estado en memoria compartido por los repositorios fake.
// Los niveles se indexan por producto|bodega.
type memStore struct {
	products      map[string]*entity.Product
	presentations map[string]*entity.Presentation
	levels        map[string]*entity.StockLevel
	movements     []*entity.InventoryMovement
	notifications []*entity.Notification

	// failNotifications fuerza el fallo del insert de notificaciones para probar
	// que el movimiento no se revierte por ello.
	failNotifications bool
}

func newMemStore() *memStore {
	return &memStore{
		products:      map[string]*entity.Product{},
		presentations: map[string]*entity.Presentation{},
		levels:        map[string]*entity.StockLevel{},
	}
}

func levelKey(productID, warehouseID string) string { return productID + "|" + warehouseID }

func (s *memStore) clone() *memStore {
	c := newMemStore()
	c.failNotifications = s.failNotifications
	for k, v := range s.products {
		cp := *v
		c.products[k] = &cp
	}
	for k, v := range s.presentations {
		cp := *v
		c.presentations[k] = &cp
	}
	for k, v := range s.levels {
		cp := *v
		c.levels[k] = &cp
	}
	c.movements = append([]*entity.InventoryMovement(nil), s.movements...)
	c.notifications = append([]*entity.Notification(nil), s.notifications...)
	return c
}

func (s *memStore) restore(snap *memStore) {
	s.products = snap.products
	s.presentations = snap.presentations
	s.levels = snap.levels
	s.movements = snap.movements
	s.notifications = snap.notifications
}

// ── Fakes de repositorios ────────────────────────────────────────────────────

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
	var out []*entity.StockLevel
	for _, lv := range r.s.levels {
		if lv.WarehouseID == warehouseID {
			cp := *lv
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeMovementRepo struct{ s *memStore }

var _ repository.InventoryMovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(m *entity.InventoryMovement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.WarehouseID == warehouseID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
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
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
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

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

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
	var out []*entity.Presentation
	for _, p := range r.s.presentations {
		if p.ProductID == productID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct{ s *memStore }

var _ repository.NotificationRepository = (*fakeNotificationRepo)(nil)

func (r *fakeNotificationRepo) Create(n *entity.Notification) error {
	if r.s.failNotifications {
		return errors.New("notifications table unavailable")
	}
	cp := *n
	r.s.notifications = append(r.s.notifications, &cp)
	return nil
}

func (r *fakeNotificationRepo) List(limit, offset int) ([]*entity.Notification, error) {
	return append([]*entity.Notification(nil), r.s.notifications...), nil
}

// fakeTxRunner simula la transacción con snapshot-rollback: si fn falla, el
// estado vuelve al snapshot previo, igual que un ROLLBACK real.
type fakeTxRunner struct{ s *memStore }

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
