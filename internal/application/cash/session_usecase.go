package cash

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/sanalas/distripos-api/internal/domain"
	"github.com/sanalas/distripos-api/internal/domain/entity"
	"github.com/sanalas/distripos-api/internal/domain/repository"
	"github.com/sanalas/distripos-api/pkg/logger"
)

// SessionUseCase ciclo de vida de la caja por bodega: apertura, movimientos
// manuales, previsualización de la conciliación y cierre.
type SessionUseCase struct {
	txRunner TxRunner
	userRepo repository.UserRepository
	log      *logger.Logger
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(txRunner TxRunner, userRepo repository.UserRepository, log *logger.Logger) *SessionUseCase {
	return &SessionUseCase{
		txRunner: txRunner,
		userRepo: userRepo,
		log:      log.Component("cash"),
	}
}

// Open abre una sesión de caja para la bodega. El check-and-insert es atómico:
// el índice único parcial garantiza a lo sumo una sesión abierta por bodega y un
// choque se reporta como ErrSessionAlreadyOpen.
func (uc *SessionUseCase) Open(ctx context.Context, warehouseID string, openingAmount decimal.Decimal, userID string) (*entity.CashSession, error) {
	if warehouseID == "" || openingAmount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	session := &entity.CashSession{
		ID:            uuid.New().String(),
		WarehouseID:   warehouseID,
		OpeningAmount: openingAmount,
		OpenedBy:      userID,
		OpenedAt:      time.Now(),
	}
	err := uc.txRunner.RunCash(ctx, func(
		sessionRepo repository.CashSessionRepository,
		_ repository.CashMovementRepository,
		_ repository.SaleRepository,
		_ repository.OrderRepository,
		_ repository.FinanceRepository,
	) error {
		return sessionRepo.Create(session)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("session_id", session.ID).
		Str("warehouse_id", warehouseID).
		Str("opening_amount", openingAmount.StringFixed(2)).
		Msg("sesión de caja abierta")
	return session, nil
}

// RegisterMovement registra un ingreso o egreso manual de efectivo contra la
// sesión abierta de la bodega.
func (uc *SessionUseCase) RegisterMovement(ctx context.Context, warehouseID, movType string, amount decimal.Decimal, concept, userID string) (*entity.CashMovement, error) {
	if movType != entity.CashMovementIN && movType != entity.CashMovementOUT {
		return nil, domain.ErrInvalidInput
	}
	if !amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var mov *entity.CashMovement
	err := uc.txRunner.RunCash(ctx, func(
		sessionRepo repository.CashSessionRepository,
		cashMovRepo repository.CashMovementRepository,
		_ repository.SaleRepository,
		_ repository.OrderRepository,
		_ repository.FinanceRepository,
	) error {
		session, err := sessionRepo.GetOpenForUpdate(warehouseID)
		if err != nil {
			return err
		}
		mov = &entity.CashMovement{
			ID:        uuid.New().String(),
			SessionID: session.ID,
			Type:      movType,
			Amount:    amount,
			Concept:   concept,
			CreatedBy: userID,
			CreatedAt: time.Now(),
		}
		return cashMovRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// PostOutflow asienta una salida automática de efectivo (gasto, compra, préstamo)
// contra la sesión abierta, con la referencia a la operación de origen.
func (uc *SessionUseCase) PostOutflow(ctx context.Context, warehouseID string, amount decimal.Decimal, concept, referenceType, referenceID, userID string) (*entity.CashMovement, error) {
	if !amount.GreaterThan(decimal.Zero) || referenceType == "" || referenceID == "" {
		return nil, domain.ErrInvalidInput
	}
	var mov *entity.CashMovement
	err := uc.txRunner.RunCash(ctx, func(
		sessionRepo repository.CashSessionRepository,
		cashMovRepo repository.CashMovementRepository,
		_ repository.SaleRepository,
		_ repository.OrderRepository,
		_ repository.FinanceRepository,
	) error {
		session, err := sessionRepo.GetOpenForUpdate(warehouseID)
		if err != nil {
			return err
		}
		mov = &entity.CashMovement{
			ID:            uuid.New().String(),
			SessionID:     session.ID,
			Type:          entity.CashMovementOUT,
			Amount:        amount,
			Concept:       concept,
			ReferenceType: referenceType,
			ReferenceID:   referenceID,
			CreatedBy:     userID,
			CreatedAt:     time.Now(),
		}
		return cashMovRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// Preview calcula la conciliación de la sesión abierta sin persistir nada, para
// mostrarla antes del cierre.
func (uc *SessionUseCase) Preview(ctx context.Context, warehouseID string) (*Summary, error) {
	var summary *Summary
	err := uc.txRunner.RunCash(ctx, func(
		sessionRepo repository.CashSessionRepository,
		_ repository.CashMovementRepository,
		saleRepo repository.SaleRepository,
		orderRepo repository.OrderRepository,
		financeRepo repository.FinanceRepository,
	) error {
		session, err := sessionRepo.GetOpen(warehouseID)
		if err != nil {
			return err
		}
		summary, err = summarize(session, time.Now(), saleRepo, orderRepo, financeRepo)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// CloseInput entrada para cerrar la sesión. Credentials es la contraseña del
// usuario que cierra: se re-verifica contra su hash antes de cualquier cálculo.
type CloseInput struct {
	WarehouseID   string
	ClosingAmount decimal.Decimal
	ActingUserID  string
	Credentials   string
}

// Close cierra la sesión abierta de la bodega: autoriza (credenciales y regla
// de quién cierra), concilia la ventana y persiste monto contado, esperado,
// diferencia y totales. Es la única escritura que hace terminal a la sesión.
func (uc *SessionUseCase) Close(ctx context.Context, in CloseInput) (*Summary, error) {
	if in.WarehouseID == "" || in.ClosingAmount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	// Autorización antes de cualquier aritmética de conciliación.
	user, err := uc.userRepo.GetByID(in.ActingUserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Credentials)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now()
	var summary *Summary
	err = uc.txRunner.RunCash(ctx, func(
		sessionRepo repository.CashSessionRepository,
		_ repository.CashMovementRepository,
		saleRepo repository.SaleRepository,
		orderRepo repository.OrderRepository,
		financeRepo repository.FinanceRepository,
	) error {
		session, err := sessionRepo.GetOpenForUpdate(in.WarehouseID)
		if err != nil {
			return err
		}
		// Solo quien abrió la sesión, o un rol elevado, puede cerrarla.
		if session.OpenedBy != user.ID && !user.IsAdmin() {
			return domain.ErrForbidden
		}

		summary, err = summarize(session, now, saleRepo, orderRepo, financeRepo)
		if err != nil {
			return err
		}
		summary.settle(in.ClosingAmount)

		session.ClosedBy = user.ID
		session.ClosedAt = &now
		session.ClosingAmount = summary.ClosingAmount
		session.ExpectedCash = &summary.ExpectedCash
		session.CashDifference = summary.CashDifference
		session.TotalSales = summary.TotalSales
		session.TotalCash = summary.TotalCash
		session.TotalTransfer = summary.TotalTransfer
		session.TotalFiados = summary.TotalFiados
		session.SalesCount = summary.SalesCount
		return sessionRepo.Close(session)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("session_id", summary.SessionID).
		Str("expected_cash", summary.ExpectedCash.StringFixed(2)).
		Str("cash_difference", summary.CashDifference.StringFixed(2)).
		Str("status", summary.Status).
		Msg("sesión de caja cerrada")
	return summary, nil
}
