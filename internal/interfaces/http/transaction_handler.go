package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prolist-cm/protect-api/internal/application/dto"
	"github.com/prolist-cm/protect-api/internal/application/escrow"
	"github.com/prolist-cm/protect-api/internal/domain/entity"
	"github.com/prolist-cm/protect-api/internal/domain/permission"
)

// TransactionHandler maneja el ciclo de vida de las transacciones de escrow.
type TransactionHandler struct {
	uc *escrow.EscrowUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *escrow.EscrowUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Create abre una solicitud de pago contra un listing. Acepta compradores
// invitados: la autenticación es opcional en esta ruta.
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	tx, err := h.uc.CreatePaymentRequest(c.Context(), GetCurrentUser(c), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransactionResponse(tx, GetCurrentUser(c)))
}

// Get devuelve una transacción si el usuario puede verla.
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	tx, err := h.uc.Get(c.Context(), user, c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(toTransactionResponse(tx, user))
}

// List lista las transacciones visibles para el usuario según su rol primario.
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	list, err := h.uc.ListForUser(c.Context(), user, pageFromQuery(c))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(toTransactionResponses(list, user))
}

// HubQueue lista para el admin las transacciones en un estado dado.
func (h *TransactionHandler) HubQueue(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	status := entity.Status(c.Query("status", string(entity.StatusInTransitToHub)))
	list, err := h.uc.ListHubQueue(c.Context(), user, status, pageFromQuery(c))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(toTransactionResponses(list, user))
}

// PendingAction devuelve la transacción del buyer esperando su confirmación.
func (h *TransactionHandler) PendingAction(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	tx, err := h.uc.PendingBuyerAction(c.Context(), user)
	if err != nil {
		return mapError(c, err)
	}
	if tx == nil {
		return c.JSON(fiber.Map{"pending": nil})
	}
	return c.JSON(fiber.Map{"pending": toTransactionResponse(tx, user)})
}

// Action devuelve la acción disponible del usuario sobre la transacción.
func (h *TransactionHandler) Action(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	tx, err := h.uc.Get(c.Context(), user, c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(toActionResponse(permission.AvailableAction(user, tx)))
}

// RequestPayment el seller termina el setup y comparte el link de pago.
func (h *TransactionHandler) RequestPayment(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	tx, err := h.uc.RequestPayment(c.Context(), user, c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(toTransactionResponse(tx, user))
}

// ConfirmPayment callback de la pasarela: el pago queda en custodia. Ruta con
// auth opcional, el buyer puede venir del link sin cuenta.
func (h *TransactionHandler) ConfirmPayment(c *fiber.Ctx) error {
	tx, err := h.uc.ConfirmPayment(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(toTransactionResponse(tx, GetCurrentUser(c)))
}

// Ship el seller despacha al hub con los datos de dropoff.
func (h *TransactionHandler) Ship(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	var in dto.ShipRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	tx, err := h.uc.Ship(c.Context(), user, c.Params("id"), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(toTransactionResponse(tx, user))
}

// Receive el admin registra la llegada al hub.
func (h *TransactionHandler) Receive(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	tx, err := h.uc.Receive(c.Context(), user, c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(toTransactionResponse(tx, user))
}

// Assign el admin asigna el agente de último tramo.
func (h *TransactionHandler) Assign(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	var in dto.AssignAgentRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	tx, err := h.uc.Assign(c.Context(), user, c.Params("id"), in.AgentID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(toTransactionResponse(tx, user))
}

// Deliver el agente confirma la entrega con el OTP del buyer.
func (h *TransactionHandler) Deliver(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	var in dto.DeliverRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	tx, err := h.uc.Deliver(c.Context(), user, c.Params("id"), in.OTP)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(toTransactionResponse(tx, user))
}

// Confirm el buyer confirma recepción y el escrow se libera.
func (h *TransactionHandler) Confirm(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	var in dto.ConfirmRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	tx, err := h.uc.Confirm(c.Context(), user, c.Params("id"), in.Code)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(toTransactionResponse(tx, user))
}

// Refund override de admin: devuelve el escrow al buyer.
func (h *TransactionHandler) Refund(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	tx, err := h.uc.Refund(c.Context(), user, c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(toTransactionResponse(tx, user))
}

// Cancel override de admin: anula la transacción.
func (h *TransactionHandler) Cancel(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	tx, err := h.uc.Cancel(c.Context(), user, c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(toTransactionResponse(tx, user))
}

// ── Mapeo a DTOs ──────────────────────────────────────────────────────────────

func toActionResponse(a *permission.Action) *dto.ActionResponse {
	if a == nil {
		return nil
	}
	return &dto.ActionResponse{
		Type:       string(a.Type),
		Label:      a.Label,
		WaitingFor: a.WaitingFor,
	}
}

func toTransactionResponse(tx *entity.Transaction, viewer *entity.User) *dto.TransactionResponse {
	out := &dto.TransactionResponse{
		ID:               tx.ID,
		PostID:           tx.PostID,
		ProductName:      tx.ProductName,
		Price:            tx.Price,
		DeliveryFee:      tx.DeliveryFee,
		Total:            tx.Total(),
		SellerID:         tx.SellerID,
		SellerName:       tx.SellerName,
		BuyerID:          tx.BuyerID,
		BuyerName:        tx.BuyerName,
		BuyerPhone:       tx.BuyerPhone,
		DeliveryLocation: tx.DeliveryLocation,
		DeliveryArea:     tx.DeliveryArea,
		AssignedAgentID:  tx.AssignedAgentID,
		Status:           string(tx.Status),
		StatusLabel:      tx.Status.Label(),
		IsPreOrder:       tx.IsPreOrder,
		PaymentLink:      tx.PaymentLink,
		InvoiceNumber:    tx.InvoiceNumber,
		EscrowHeldAt:     tx.EscrowHeldAt,
		CompletedAt:      tx.CompletedAt,
		CreatedAt:        tx.CreatedAt,
		UpdatedAt:        tx.UpdatedAt,
	}
	if tx.Logistics != nil {
		out.Logistics = &dto.LogisticsResponse{
			DropoffCompany: tx.Logistics.DropoffCompany,
			DropoffCity:    tx.Logistics.DropoffCity,
			DropoffNote:    tx.Logistics.DropoffNote,
		}
	}
	if viewer != nil {
		out.Action = toActionResponse(permission.AvailableAction(viewer, tx))
	}
	return out
}

func toTransactionResponses(list []*entity.Transaction, viewer *entity.User) []*dto.TransactionResponse {
	out := make([]*dto.TransactionResponse, 0, len(list))
	for _, tx := range list {
		out = append(out, toTransactionResponse(tx, viewer))
	}
	return out
}
