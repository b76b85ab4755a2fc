package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sanalas/distripos-api/internal/domain"
	"github.com/sanalas/distripos-api/internal/domain/entity"
	"github.com/sanalas/distripos-api/internal/domain/repository"
)

var _ repository.CashSessionRepository = (*CashSessionRepo)(nil)

// CashSessionRepo implementación de CashSessionRepository sobre PostgreSQL.
// El invariante "una sesión abierta por bodega" lo sostiene el índice único
// parcial: CREATE UNIQUE INDEX ... ON cash_sessions (warehouse_id) WHERE closed_at IS NULL.
type CashSessionRepo struct {
	q Querier
}

// NewCashSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashSessionRepository(q Querier) *CashSessionRepo {
	return &CashSessionRepo{q: q}
}

const sessionColumns = `id, warehouse_id, opening_amount, opened_by, opened_at,
	COALESCE(closed_by, ''), closed_at, closing_amount, expected_cash, cash_difference,
	total_sales, total_cash, total_transfer, total_fiados, sales_count`

// Create inserta la sesión; el choque con el índice parcial (ya hay una abierta)
// se traduce a ErrSessionAlreadyOpen. El check-and-insert es atómico por diseño.
func (r *CashSessionRepo) Create(s *entity.CashSession) error {
	query := `
		INSERT INTO cash_sessions (id, warehouse_id, opening_amount, opened_by, opened_at,
			total_sales, total_cash, total_transfer, total_fiados, sales_count)
		VALUES ($1, $2, $3, $4, $5, 0, 0, 0, 0, 0)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.WarehouseID, s.OpeningAmount, s.OpenedBy, s.OpenedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSessionAlreadyOpen
		}
		return fmt.Errorf("create cash session: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión; ErrNotFound si no existe.
func (r *CashSessionRepo) GetByID(id string) (*entity.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE id = $1`
	s, err := r.scanOne(query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// GetOpen devuelve la sesión abierta de la bodega, o ErrNoOpenSession.
func (r *CashSessionRepo) GetOpen(warehouseID string) (*entity.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE warehouse_id = $1 AND closed_at IS NULL`
	s, err := r.scanOne(query, warehouseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoOpenSession
		}
		return nil, err
	}
	return s, nil
}

// GetOpenForUpdate bloquea la fila de la sesión abierta (para el cierre).
func (r *CashSessionRepo) GetOpenForUpdate(warehouseID string) (*entity.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE warehouse_id = $1 AND closed_at IS NULL FOR UPDATE`
	s, err := r.scanOne(query, warehouseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoOpenSession
		}
		return nil, err
	}
	return s, nil
}

func (r *CashSessionRepo) scanOne(query string, arg any) (*entity.CashSession, error) {
	var s entity.CashSession
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&s.ID, &s.WarehouseID, &s.OpeningAmount, &s.OpenedBy, &s.OpenedAt,
		&s.ClosedBy, &s.ClosedAt, &s.ClosingAmount, &s.ExpectedCash, &s.CashDifference,
		&s.TotalSales, &s.TotalCash, &s.TotalTransfer, &s.TotalFiados, &s.SalesCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get cash session: %w", err)
	}
	return &s, nil
}

// Close persiste los campos de cierre y estampa closed_at: la única escritura
// que hace terminal a la sesión.
func (r *CashSessionRepo) Close(s *entity.CashSession) error {
	query := `
		UPDATE cash_sessions
		SET closed_by = $2, closed_at = $3, closing_amount = $4, expected_cash = $5,
			cash_difference = $6, total_sales = $7, total_cash = $8, total_transfer = $9,
			total_fiados = $10, sales_count = $11
		WHERE id = $1 AND closed_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query,
		s.ID, s.ClosedBy, s.ClosedAt, s.ClosingAmount, s.ExpectedCash,
		s.CashDifference, s.TotalSales, s.TotalCash, s.TotalTransfer,
		s.TotalFiados, s.SalesCount)
	if err != nil {
		return fmt.Errorf("close cash session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict // ya estaba cerrada
	}
	return nil
}

var _ repository.CashMovementRepository = (*CashMovementRepo)(nil)

// CashMovementRepo implementación del ledger de movimientos de caja.
type CashMovementRepo struct {
	q Querier
}

// NewCashMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashMovementRepository(q Querier) *CashMovementRepo {
	return &CashMovementRepo{q: q}
}

// Create inserta un movimiento de caja.
func (r *CashMovementRepo) Create(m *entity.CashMovement) error {
	query := `
		INSERT INTO cash_movements (id, session_id, type, amount, concept,
			reference_type, reference_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.SessionID, m.Type, m.Amount, m.Concept,
		m.ReferenceType, m.ReferenceID, m.CreatedBy, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create cash movement: %w", err)
	}
	return nil
}

// ListBySession lista los movimientos de una sesión.
func (r *CashMovementRepo) ListBySession(sessionID string) ([]*entity.CashMovement, error) {
	query := `
		SELECT id, session_id, type, amount, concept,
			COALESCE(reference_type, ''), COALESCE(reference_id, ''), created_by, created_at
		FROM cash_movements WHERE session_id = $1
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list cash movements: %w", err)
	}
	defer rows.Close()

	var movements []*entity.CashMovement
	for rows.Next() {
		var m entity.CashMovement
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Type, &m.Amount, &m.Concept,
			&m.ReferenceType, &m.ReferenceID, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cash movement: %w", err)
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}

// DeleteByReference retira los asientos automáticos de una operación anulada.
func (r *CashMovementRepo) DeleteByReference(referenceType, referenceID string) error {
	query := `DELETE FROM cash_movements WHERE reference_type = $1 AND reference_id = $2`
	_, err := r.q.Exec(context.Background(), query, referenceType, referenceID)
	if err != nil {
		return fmt.Errorf("delete cash movements by reference: %w", err)
	}
	return nil
}
