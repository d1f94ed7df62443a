package escrow

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/prolist-cm/protect-api/internal/application/billing"
	"github.com/prolist-cm/protect-api/internal/application/dto"
	"github.com/prolist-cm/protect-api/internal/domain"
	"github.com/prolist-cm/protect-api/internal/domain/entity"
	"github.com/prolist-cm/protect-api/internal/domain/notify"
	"github.com/prolist-cm/protect-api/internal/domain/permission"
	"github.com/prolist-cm/protect-api/internal/domain/repository"
	"github.com/prolist-cm/protect-api/pkg/logger"
)

// InvoiceCounterName nombre de la secuencia del consecutivo de facturas.
const InvoiceCounterName = "invoice_seq"

// EscrowUseCase casos de uso del ciclo de vida de una transacción de escrow.
// Toda mutación de estado pasa por el guard de permisos y se persiste con
// escritura condicional dentro de una transacción de BD.
type EscrowUseCase struct {
	txRepo     repository.TransactionRepository
	userRepo   repository.UserRepository
	postRepo   repository.PostRepository
	runner     TxRunner
	payBaseURL string
	log        *logger.Logger
}

// NewEscrowUseCase construye el caso de uso.
func NewEscrowUseCase(
	txRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	runner TxRunner,
	payBaseURL string,
	log *logger.Logger,
) *EscrowUseCase {
	return &EscrowUseCase{
		txRepo:     txRepo,
		userRepo:   userRepo,
		postRepo:   postRepo,
		runner:     runner,
		payBaseURL: payBaseURL,
		log:        log,
	}
}

// CreatePaymentRequest abre una transacción en pending_setup contra un
// listing. buyer puede ser nil (comprador invitado: solo nombre y teléfono).
func (uc *EscrowUseCase) CreatePaymentRequest(ctx context.Context, buyer *entity.User, in dto.CreateTransactionRequest) (*entity.Transaction, error) {
	post, err := uc.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domain.ErrNotFound
	}
	seller, err := uc.userRepo.GetByID(ctx, post.SellerID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now()
	tx := &entity.Transaction{
		ID:               uuid.New().String(),
		PostID:           post.ID,
		ProductName:      post.Title,
		Description:      post.Description,
		Price:            post.Price,
		DeliveryFee:      in.DeliveryFee,
		SellerID:         seller.ID,
		SellerName:       seller.Name,
		SellerPhone:      seller.Phone,
		BuyerName:        in.BuyerName,
		BuyerPhone:       in.BuyerPhone,
		BuyerEmail:       in.BuyerEmail,
		BuyerCity:        in.BuyerCity,
		DeliveryLocation: in.DeliveryLocation,
		DeliveryArea:     in.DeliveryArea,
		Status:           entity.StatusPendingSetup,
		IsPreOrder:       post.IsPreOrder,
		ConfirmationCode: generateConfirmationCode(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if buyer != nil {
		tx.BuyerID = buyer.ID
		if tx.BuyerName == "" {
			tx.BuyerName = buyer.Name
		}
		if tx.BuyerPhone == "" {
			tx.BuyerPhone = buyer.Phone
		}
	}
	tx.PaymentLink = fmt.Sprintf("%s/%s", uc.payBaseURL, tx.ID)

	if err := uc.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}
	uc.log.Info().Str("tx_id", tx.ID).Str("post_id", post.ID).Msg("solicitud de pago creada")
	return tx, nil
}

// RequestPayment pasa la transacción de pending_setup a awaiting_payment
// cuando el seller termina el setup y comparte el link. Transición de sistema
// previa al escrow: no está en la tabla de roles, pero sí exige ser el seller.
func (uc *EscrowUseCase) RequestPayment(ctx context.Context, user *entity.User, txID string) (*entity.Transaction, error) {
	tx, err := uc.getTx(ctx, txID)
	if err != nil {
		return nil, err
	}
	if !permission.IsSeller(user, tx) {
		return nil, domain.ErrPermissionDenied
	}
	if tx.Status != entity.StatusPendingSetup {
		return nil, domain.ErrPermissionDenied
	}
	return uc.systemTransition(ctx, tx, entity.StatusAwaitingPayment, actingID(user), nil)
}

// ConfirmPayment registra el pago del buyer: el escrow queda en custodia.
// La pasarela de pago es externa; este es el hook que ejecuta su callback.
func (uc *EscrowUseCase) ConfirmPayment(ctx context.Context, txID, payerUserID string) (*entity.Transaction, error) {
	tx, err := uc.getTx(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx.Status != entity.StatusPendingSetup && tx.Status != entity.StatusAwaitingPayment {
		return nil, domain.ErrPermissionDenied
	}
	return uc.systemTransition(ctx, tx, entity.StatusEscrowHeld, payerUserID, func(t *entity.Transaction) {
		now := time.Now()
		t.EscrowHeldAt = &now
		if t.BuyerID == "" && payerUserID != "" {
			t.BuyerID = payerUserID
		}
	})
}

// Ship el seller despacha al hub adjuntando los datos de dropoff.
func (uc *EscrowUseCase) Ship(ctx context.Context, user *entity.User, txID string, in dto.ShipRequest) (*entity.Transaction, error) {
	return uc.guardedTransition(ctx, user, txID, entity.StatusInTransitToHub, func(t *entity.Transaction, _ repository.CounterRepository) error {
		t.Logistics = &entity.Logistics{
			DropoffCompany: in.DropoffCompany,
			DropoffCity:    in.DropoffCity,
			DropoffNote:    in.DropoffNote,
		}
		return nil
	})
}

// Receive el admin registra la llegada del item al hub.
func (uc *EscrowUseCase) Receive(ctx context.Context, user *entity.User, txID string) (*entity.Transaction, error) {
	return uc.guardedTransition(ctx, user, txID, entity.StatusAtProlistHub, nil)
}

// Assign el admin asigna el agente de último tramo y el item sale a entrega.
// Genera el OTP que el buyer entregará al agente en la puerta.
func (uc *EscrowUseCase) Assign(ctx context.Context, user *entity.User, txID, agentID string) (*entity.Transaction, error) {
	if agentID == "" {
		return nil, domain.ErrInvalidSelection
	}
	agentUser, err := uc.userRepo.GetByID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if agentUser == nil || !agentUser.HasRole(entity.RoleAgent) {
		return nil, domain.ErrAgentNotFound
	}
	return uc.guardedTransition(ctx, user, txID, entity.StatusOutForDelivery, func(t *entity.Transaction, _ repository.CounterRepository) error {
		t.AssignedAgentID = agentUser.ID
		t.AssignedAgentName = agentUser.Name
		t.DeliveryOTP = generateOTP()
		return nil
	})
}

// Deliver el agente asignado confirma la entrega física con el OTP del buyer.
func (uc *EscrowUseCase) Deliver(ctx context.Context, user *entity.User, txID, otp string) (*entity.Transaction, error) {
	return uc.guardedTransition(ctx, user, txID, entity.StatusDeliveredAwaiting, func(t *entity.Transaction, _ repository.CounterRepository) error {
		if t.DeliveryOTP == "" || otp != t.DeliveryOTP {
			return domain.ErrInvalidCode
		}
		return nil
	})
}

// Confirm el buyer confirma recepción con su código: el escrow se libera al
// seller, se emite la factura y la transacción queda completada.
func (uc *EscrowUseCase) Confirm(ctx context.Context, user *entity.User, txID, code string) (*entity.Transaction, error) {
	return uc.guardedTransition(ctx, user, txID, entity.StatusCompleted, func(t *entity.Transaction, counter repository.CounterRepository) error {
		if t.ConfirmationCode == "" || code != t.ConfirmationCode {
			return domain.ErrInvalidCode
		}
		now := time.Now()
		t.CompletedAt = &now
		if t.InvoiceNumber == "" {
			seq, err := counter.Next(ctx, InvoiceCounterName)
			if err != nil {
				return fmt.Errorf("consecutivo de factura: %w", err)
			}
			t.InvoiceNumber = billing.FormatInvoiceNumber(now.Year(), seq)
		}
		return nil
	})
}

// Refund override solo-admin: devuelve el escrow al buyer desde cualquier
// estado no terminal (resolución de disputa).
func (uc *EscrowUseCase) Refund(ctx context.Context, user *entity.User, txID string) (*entity.Transaction, error) {
	return uc.adminOverride(ctx, user, txID, entity.StatusRefunded)
}

// Cancel override solo-admin: anula la transacción desde cualquier estado no
// terminal.
func (uc *EscrowUseCase) Cancel(ctx context.Context, user *entity.User, txID string) (*entity.Transaction, error) {
	return uc.adminOverride(ctx, user, txID, entity.StatusCancelled)
}

// Get devuelve la transacción si el usuario puede verla.
func (uc *EscrowUseCase) Get(ctx context.Context, user *entity.User, txID string) (*entity.Transaction, error) {
	tx, err := uc.getTx(ctx, txID)
	if err != nil {
		return nil, err
	}
	if !permission.CanViewTransaction(user, tx) {
		return nil, domain.ErrForbidden
	}
	return tx, nil
}

// ListForUser lista las transacciones visibles según el rol primario:
// admin todas las del estado pedido, agent las asignadas, resto las propias
// como seller o buyer.
func (uc *EscrowUseCase) ListForUser(ctx context.Context, user *entity.User, page dto.PageRequest) ([]*entity.Transaction, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	page.DefaultPage()
	switch permission.PrimaryRole(user.Roles) {
	case entity.RoleAdmin:
		return uc.txRepo.ListByStatus(ctx, entity.StatusInTransitToHub, page.Limit, page.Offset)
	case entity.RoleAgent:
		return uc.txRepo.ListByAgent(ctx, user.ID, page.Limit, page.Offset)
	default:
		sold, err := uc.txRepo.ListBySeller(ctx, user.ID, page.Limit, page.Offset)
		if err != nil {
			return nil, err
		}
		bought, err := uc.txRepo.ListByBuyer(ctx, user.ID, user.Phone, page.Limit, page.Offset)
		if err != nil {
			return nil, err
		}
		return append(sold, bought...), nil
	}
}

// ListHubQueue lista para el admin las transacciones en un estado dado.
func (uc *EscrowUseCase) ListHubQueue(ctx context.Context, user *entity.User, status entity.Status, page dto.PageRequest) ([]*entity.Transaction, error) {
	if user == nil || !user.HasRole(entity.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	if !status.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	return uc.txRepo.ListByStatus(ctx, status, page.Limit, page.Offset)
}

// PendingBuyerAction devuelve la primera transacción del buyer esperando su
// confirmación, o nil.
func (uc *EscrowUseCase) PendingBuyerAction(ctx context.Context, user *entity.User) (*entity.Transaction, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	list, err := uc.txRepo.ListByBuyer(ctx, user.ID, user.Phone, 50, 0)
	if err != nil {
		return nil, err
	}
	for _, tx := range list {
		if tx.Status == entity.StatusDeliveredAwaiting {
			return tx, nil
		}
	}
	return nil, nil
}

// ── Internos ──────────────────────────────────────────────────────────────────

func (uc *EscrowUseCase) getTx(ctx context.Context, txID string) (*entity.Transaction, error) {
	tx, err := uc.txRepo.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrTransactionNotFound
	}
	return tx, nil
}

// guardedTransition ejecuta una transición gobernada por el guard. Dentro de
// la tx de BD se relee la transacción y se reevalúa el guard justo antes de
// escribir; la escritura de estado es condicional al estado leído, así que un
// cambio concurrente produce ErrStaleWrite en lugar de un lost update.
func (uc *EscrowUseCase) guardedTransition(
	ctx context.Context,
	user *entity.User,
	txID string,
	target entity.Status,
	mutate func(*entity.Transaction, repository.CounterRepository) error,
) (*entity.Transaction, error) {
	tx, err := uc.getTx(ctx, txID)
	if err != nil {
		return nil, err
	}
	if !permission.CanTransition(user, tx, target) {
		return nil, domain.ErrPermissionDenied
	}

	var updated *entity.Transaction
	err = uc.runner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		notifRepo repository.NotificationRepository,
		counterRepo repository.CounterRepository,
	) error {
		fresh, err := txRepo.GetByID(ctx, txID)
		if err != nil {
			return err
		}
		if fresh == nil {
			return domain.ErrTransactionNotFound
		}
		// Recomputar sobre la lectura fresca: sin ventana check/use.
		if !permission.CanTransition(user, fresh, target) {
			return domain.ErrPermissionDenied
		}
		if mutate != nil {
			if err := mutate(fresh, counterRepo); err != nil {
				return err
			}
		}
		expected := fresh.Status
		fresh.UpdatedAt = time.Now()
		if err := txRepo.Update(ctx, fresh); err != nil {
			return err
		}
		if err := txRepo.UpdateStatus(ctx, fresh.ID, expected, target); err != nil {
			return err
		}
		fresh.Status = target
		if err := DispatchStatusChange(ctx, notifRepo, fresh, target, actingID(user)); err != nil {
			return err
		}
		updated = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("tx_id", updated.ID).
		Str("status", string(target)).
		Str("actor", actingID(user)).
		Msg("transacción actualizada")
	return updated, nil
}

// systemTransition aplica una transición no gobernada por la tabla de roles
// (pasos pre-escrow disparados por el sistema o la pasarela de pago). La
// escritura sigue siendo condicional al estado leído.
func (uc *EscrowUseCase) systemTransition(
	ctx context.Context,
	tx *entity.Transaction,
	target entity.Status,
	actingUserID string,
	mutate func(*entity.Transaction),
) (*entity.Transaction, error) {
	var updated *entity.Transaction
	err := uc.runner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		notifRepo repository.NotificationRepository,
		_ repository.CounterRepository,
	) error {
		fresh, err := txRepo.GetByID(ctx, tx.ID)
		if err != nil {
			return err
		}
		if fresh == nil {
			return domain.ErrTransactionNotFound
		}
		if fresh.Status.IsTerminal() {
			return domain.ErrStaleWrite
		}
		if mutate != nil {
			mutate(fresh)
		}
		expected := fresh.Status
		fresh.UpdatedAt = time.Now()
		if err := txRepo.Update(ctx, fresh); err != nil {
			return err
		}
		if err := txRepo.UpdateStatus(ctx, fresh.ID, expected, target); err != nil {
			return err
		}
		fresh.Status = target
		if err := DispatchStatusChange(ctx, notifRepo, fresh, target, actingUserID); err != nil {
			return err
		}
		updated = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("tx_id", updated.ID).
		Str("status", string(target)).
		Msg("transición de sistema aplicada")
	return updated, nil
}

// adminOverride mueve la transacción a un terminal lateral. Solo admin y solo
// desde estados no terminales.
func (uc *EscrowUseCase) adminOverride(ctx context.Context, user *entity.User, txID string, target entity.Status) (*entity.Transaction, error) {
	if user == nil || !user.HasRole(entity.RoleAdmin) {
		return nil, domain.ErrPermissionDenied
	}
	tx, err := uc.getTx(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx.Status.IsTerminal() {
		return nil, domain.ErrPermissionDenied
	}
	return uc.systemTransition(ctx, tx, target, user.ID, nil)
}

// DispatchStatusChange persiste el fan-out calculado para el cambio de
// estado. El repo aplica dedup (60 s) y tope por usuario.
func DispatchStatusChange(
	ctx context.Context,
	notifRepo repository.NotificationRepository,
	tx *entity.Transaction,
	newStatus entity.Status,
	actingUserID string,
) error {
	for _, sn := range notify.ForStatusChange(tx, newStatus, actingUserID) {
		n := &entity.Notification{
			ID:            uuid.New().String(),
			UserID:        sn.UserID,
			TransactionID: tx.ID,
			Type:          sn.Type,
			Message:       sn.Message,
			CreatedAt:     time.Now(),
		}
		if _, err := notifRepo.Save(ctx, n); err != nil {
			return fmt.Errorf("guardar notificación: %w", err)
		}
	}
	return nil
}

func actingID(u *entity.User) string {
	if u == nil {
		return ""
	}
	return u.ID
}

const confirmationAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generateConfirmationCode código corto que el buyer presenta al confirmar.
func generateConfirmationCode() string {
	b := make([]byte, 6)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(confirmationAlphabet))))
		if err != nil {
			// crypto/rand solo falla si el sistema está roto
			panic(err)
		}
		b[i] = confirmationAlphabet[n.Int64()]
	}
	return string(b)
}

// generateOTP seis dígitos para el handoff agente→buyer.
func generateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}
