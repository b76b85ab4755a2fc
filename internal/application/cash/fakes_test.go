package cash_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sanalas/distripos-api/internal/domain"
	"github.com/sanalas/distripos-api/internal/domain/entity"
	"github.com/sanalas/distripos-api/internal/domain/repository"
)

// memStore estado en memoria para los fakes del subsistema de caja. Los
// agregados de los colaboradores financieros (gastos, compras, préstamos) se
// configuran como montos fijos: la conciliación solo consume sus totales.
type memStore struct {
	sessions map[string]*entity.CashSession
	cashMovs []*entity.CashMovement
	sales    []*entity.Sale
	orders   []*entity.Order
	users    map[string]*entity.User

	expensesCash  decimal.Decimal
	purchasesCash decimal.Decimal
	loansCash     decimal.Decimal
}

func newMemStore() *memStore {
	return &memStore{
		sessions:      map[string]*entity.CashSession{},
		users:         map[string]*entity.User{},
		expensesCash:  decimal.Zero,
		purchasesCash: decimal.Zero,
		loansCash:     decimal.Zero,
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	c.expensesCash = s.expensesCash
	c.purchasesCash = s.purchasesCash
	c.loansCash = s.loansCash
	for k, v := range s.sessions {
		cp := *v
		c.sessions[k] = &cp
	}
	for k, v := range s.users {
		cp := *v
		c.users[k] = &cp
	}
	c.cashMovs = append([]*entity.CashMovement(nil), s.cashMovs...)
	c.sales = append([]*entity.Sale(nil), s.sales...)
	c.orders = append([]*entity.Order(nil), s.orders...)
	return c
}

func (s *memStore) restore(snap *memStore) { *s = *snap }

// ── Sesiones y movimientos ───────────────────────────────────────────────────

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

// ── Fuentes de agregados (ventas, fiados, finanzas) ──────────────────────────

type fakeSaleRepo struct{ s *memStore }

var _ repository.SaleRepository = (*fakeSaleRepo)(nil)

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	cp := *sale
	r.s.sales = append(r.s.sales, &cp)
	return nil
}

func (r *fakeSaleRepo) CreateItem(item *entity.SaleItem) error { return nil }

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) { return nil, domain.ErrNotFound }

func (r *fakeSaleRepo) ListItems(saleID string) ([]*entity.SaleItem, error) { return nil, nil }

func (r *fakeSaleRepo) Delete(id string) error { return nil }

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
	r.s.orders = append(r.s.orders, &cp)
	return nil
}

func (r *fakeOrderRepo) CreateItem(item *entity.OrderItem) error { return nil }

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) { return nil, domain.ErrNotFound }

func (r *fakeOrderRepo) GetForUpdate(id string) (*entity.Order, error) { return nil, domain.ErrNotFound }

func (r *fakeOrderRepo) ListItems(orderID string) ([]*entity.OrderItem, error) { return nil, nil }

func (r *fakeOrderRepo) Update(order *entity.Order) error { return nil }

func (r *fakeOrderRepo) Delete(id string) error { return nil }

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

type fakeFinanceRepo struct{ s *memStore }

var _ repository.FinanceRepository = (*fakeFinanceRepo)(nil)

func (r *fakeFinanceRepo) TotalExpensesCash(warehouseID string, from, to time.Time) (decimal.Decimal, error) {
	return r.s.expensesCash, nil
}

func (r *fakeFinanceRepo) TotalPurchasesCash(warehouseID string, from, to time.Time) (decimal.Decimal, error) {
	return r.s.purchasesCash, nil
}

func (r *fakeFinanceRepo) TotalLoansCash(warehouseID string, from, to time.Time) (decimal.Decimal, error) {
	return r.s.loansCash, nil
}

type fakeUserRepo struct{ s *memStore }

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) Create(user *entity.User) error {
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// fakeTxRunner simula la transacción con snapshot-rollback.
type fakeTxRunner struct{ s *memStore }

func (t *fakeTxRunner) RunCash(ctx context.Context, fn func(
	sessionRepo repository.CashSessionRepository,
	cashMovRepo repository.CashMovementRepository,
	saleRepo repository.SaleRepository,
	orderRepo repository.OrderRepository,
	financeRepo repository.FinanceRepository,
) error) error {
	snap := t.s.clone()
	err := fn(&fakeSessionRepo{t.s}, &fakeCashMovementRepo{t.s}, &fakeSaleRepo{t.s}, &fakeOrderRepo{t.s}, &fakeFinanceRepo{t.s})
	if err != nil {
		t.s.restore(snap)
	}
	return err
}
