package permission

import "github.com/prolist-cm/protect-api/internal/domain/entity"

// ActionType es el tipo cerrado de acciones que la UI puede ofrecer sobre una
// transacción. Una sola acción por (usuario, transacción); ver AvailableAction.
type ActionType string

const (
	ActionSellerShip   ActionType = "seller_ship"
	ActionAdminReceive ActionType = "admin_receive"
	ActionAdminAssign  ActionType = "admin_assign"
	ActionAgentDeliver ActionType = "agent_deliver"
	ActionBuyerConfirm ActionType = "buyer_confirm"
	ActionWaiting      ActionType = "waiting"
)

// Action es la acción disponible para un usuario sobre una transacción.
// WaitingFor solo aplica cuando Type es ActionWaiting.
type Action struct {
	Type       ActionType
	Label      string
	WaitingFor string
}

func waiting(label, who string) *Action {
	return &Action{Type: ActionWaiting, Label: label, WaitingFor: who}
}

// AvailableAction deriva la única acción disponible para el usuario, o nil en
// estados terminales. Independiente de la tabla de transiciones, pero
// consistente con ella: toda acción no-waiting corresponde a una transición
// legal (los tests lo verifican de forma exhaustiva).
//
// Tabla de decisión (primera coincidencia gana):
func AvailableAction(user *entity.User, tx *entity.Transaction) *Action {
	if user == nil || tx == nil {
		return nil
	}

	switch tx.Status {
	case entity.StatusCompleted, entity.StatusRefunded, entity.StatusCancelled:
		return nil

	case entity.StatusPendingSetup, entity.StatusAwaitingPayment:
		return waiting("Awaiting Payment", "buyer")

	case entity.StatusEscrowHeld:
		if user.HasRole(entity.RoleSeller) && IsSeller(user, tx) {
			return &Action{Type: ActionSellerShip, Label: "Mark In Transit"}
		}
		return waiting("Waiting for seller to ship", "seller")

	case entity.StatusInTransitToHub:
		if user.HasRole(entity.RoleAdmin) {
			return &Action{Type: ActionAdminReceive, Label: "Mark Received at Hub"}
		}
		return waiting("In transit to hub", "admin")

	case entity.StatusAtProlistHub:
		if user.HasRole(entity.RoleAdmin) {
			return &Action{Type: ActionAdminAssign, Label: "Assign Delivery Agent"}
		}
		return waiting("At hub, awaiting assignment", "admin")

	case entity.StatusOutForDelivery:
		if user.HasRole(entity.RoleAgent) && IsAssignedAgent(user, tx) {
			return &Action{Type: ActionAgentDeliver, Label: "Confirm Delivery"}
		}
		return waiting("Out for delivery", "agent")

	case entity.StatusDeliveredAwaiting:
		if user.HasRole(entity.RoleBuyer) && BuyerIdentityOf(user).Matches(tx) {
			return &Action{Type: ActionBuyerConfirm, Label: "Confirm Received"}
		}
		return waiting("Awaiting buyer confirmation", "buyer")
	}

	return nil
}

// TargetStatus devuelve el estado destino que ejecuta cada acción mutadora.
// Para waiting no hay transición asociada.
func (a ActionType) TargetStatus() (entity.Status, bool) {
	switch a {
	case ActionSellerShip:
		return entity.StatusInTransitToHub, true
	case ActionAdminReceive:
		return entity.StatusAtProlistHub, true
	case ActionAdminAssign:
		return entity.StatusOutForDelivery, true
	case ActionAgentDeliver:
		return entity.StatusDeliveredAwaiting, true
	case ActionBuyerConfirm:
		return entity.StatusCompleted, true
	case ActionWaiting:
		return "", false
	}
	return "", false
}
