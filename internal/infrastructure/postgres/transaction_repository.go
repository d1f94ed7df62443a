package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/prolist-cm/protect-api/internal/domain"
	"github.com/prolist-cm/protect-api/internal/domain/entity"
	"github.com/prolist-cm/protect-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del puerto TransactionRepository sobre PostgreSQL (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const txColumns = `
	id, post_id, product_name, description, price, delivery_fee,
	seller_id, seller_name, seller_phone,
	buyer_id, buyer_name, buyer_phone, buyer_email, buyer_city,
	delivery_location, delivery_area,
	dropoff_company, dropoff_city, dropoff_note,
	assigned_agent_id, assigned_agent_name,
	status, is_pre_order, expected_arrival, pre_order_note,
	payment_link, confirmation_code, delivery_otp, invoice_number,
	escrow_held_at, completed_at, created_at, updated_at`

// Create persiste una nueva transacción.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (` + txColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		        $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33)`
	dc, dcity, dnote := logisticsColumns(t.Logistics)
	_, err := r.q.Exec(ctx, query,
		t.ID, t.PostID, t.ProductName, t.Description, t.Price, t.DeliveryFee,
		t.SellerID, t.SellerName, t.SellerPhone,
		t.BuyerID, t.BuyerName, t.BuyerPhone, t.BuyerEmail, t.BuyerCity,
		t.DeliveryLocation, t.DeliveryArea,
		dc, dcity, dnote,
		t.AssignedAgentID, t.AssignedAgentName,
		string(t.Status), t.IsPreOrder, t.ExpectedArrival, t.PreOrderNote,
		t.PaymentLink, t.ConfirmationCode, t.DeliveryOTP, t.InvoiceNumber,
		t.EscrowHeldAt, t.CompletedAt, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por id, o nil si no existe.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	row := r.q.QueryRow(ctx, `SELECT `+txColumns+` FROM transactions WHERE id = $1`, id)
	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// Update persiste los campos mutables. El estado no se toca aquí: eso es
// exclusivo de UpdateStatus para que la escritura sea condicional.
func (r *TransactionRepo) Update(ctx context.Context, t *entity.Transaction) error {
	query := `
		UPDATE transactions SET
			buyer_id = $2, buyer_name = $3, buyer_phone = $4, buyer_email = $5, buyer_city = $6,
			delivery_location = $7, delivery_area = $8,
			dropoff_company = $9, dropoff_city = $10, dropoff_note = $11,
			assigned_agent_id = $12, assigned_agent_name = $13,
			payment_link = $14, confirmation_code = $15, delivery_otp = $16, invoice_number = $17,
			escrow_held_at = $18, completed_at = $19, updated_at = $20
		WHERE id = $1`
	dc, dcity, dnote := logisticsColumns(t.Logistics)
	cmd, err := r.q.Exec(ctx, query,
		t.ID,
		t.BuyerID, t.BuyerName, t.BuyerPhone, t.BuyerEmail, t.BuyerCity,
		t.DeliveryLocation, t.DeliveryArea,
		dc, dcity, dnote,
		t.AssignedAgentID, t.AssignedAgentName,
		t.PaymentLink, t.ConfirmationCode, t.DeliveryOTP, t.InvoiceNumber,
		t.EscrowHeldAt, t.CompletedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// UpdateStatus escritura condicional del estado. Cero filas afectadas con la
// transacción existente significa que otro actor ganó la carrera.
func (r *TransactionRepo) UpdateStatus(ctx context.Context, id string, expected, next entity.Status) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE transactions SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		id, string(expected), string(next),
	)
	if err != nil {
		return fmt.Errorf("update transaction status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM transactions WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("check transaction: %w", err)
		}
		if !exists {
			return domain.ErrTransactionNotFound
		}
		return domain.ErrStaleWrite
	}
	return nil
}

// ListBySeller lista por seller con paginación.
func (r *TransactionRepo) ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Transaction, error) {
	return r.list(ctx,
		`SELECT `+txColumns+` FROM transactions WHERE seller_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		sellerID, limit, offset)
}

// ListByBuyer lista por buyer, con fallback por teléfono para invitados.
func (r *TransactionRepo) ListByBuyer(ctx context.Context, buyerID, buyerPhone string, limit, offset int) ([]*entity.Transaction, error) {
	return r.list(ctx,
		`SELECT `+txColumns+` FROM transactions
		 WHERE (buyer_id = $1 AND $1 <> '') OR (buyer_phone = $2 AND $2 <> '')
		 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		buyerID, buyerPhone, limit, offset)
}

// ListByAgent lista las asignadas a un agente.
func (r *TransactionRepo) ListByAgent(ctx context.Context, agentID string, limit, offset int) ([]*entity.Transaction, error) {
	return r.list(ctx,
		`SELECT `+txColumns+` FROM transactions WHERE assigned_agent_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		agentID, limit, offset)
}

// ListByStatus lista por estado.
func (r *TransactionRepo) ListByStatus(ctx context.Context, status entity.Status, limit, offset int) ([]*entity.Transaction, error) {
	return r.list(ctx,
		`SELECT `+txColumns+` FROM transactions WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		string(status), limit, offset)
}

func (r *TransactionRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func logisticsColumns(l *entity.Logistics) (company, city, note *string) {
	if l == nil {
		return nil, nil, nil
	}
	return &l.DropoffCompany, &l.DropoffCity, &l.DropoffNote
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	var status string
	var dc, dcity, dnote *string
	err := row.Scan(
		&t.ID, &t.PostID, &t.ProductName, &t.Description, &t.Price, &t.DeliveryFee,
		&t.SellerID, &t.SellerName, &t.SellerPhone,
		&t.BuyerID, &t.BuyerName, &t.BuyerPhone, &t.BuyerEmail, &t.BuyerCity,
		&t.DeliveryLocation, &t.DeliveryArea,
		&dc, &dcity, &dnote,
		&t.AssignedAgentID, &t.AssignedAgentName,
		&status, &t.IsPreOrder, &t.ExpectedArrival, &t.PreOrderNote,
		&t.PaymentLink, &t.ConfirmationCode, &t.DeliveryOTP, &t.InvoiceNumber,
		&t.EscrowHeldAt, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Status = entity.Status(status)
	if dc != nil {
		t.Logistics = &entity.Logistics{DropoffCompany: *dc}
		if dcity != nil {
			t.Logistics.DropoffCity = *dcity
		}
		if dnote != nil {
			t.Logistics.DropoffNote = *dnote
		}
	}
	return &t, nil
}
