package permission

import "github.com/prolist-cm/protect-api/internal/domain/entity"

// BuyerIdentity identifica al comprador de una transacción: autenticado por
// UserID o invitado por teléfono. Centraliza el matching para que el fallback
// por teléfono no se repita inline en cada chequeo.
type BuyerIdentity struct {
	UserID string
	Phone  string
}

// BuyerIdentityOf construye la identidad de comprador de un usuario.
func BuyerIdentityOf(u *entity.User) BuyerIdentity {
	return BuyerIdentity{UserID: u.ID, Phone: u.Phone}
}

// Matches indica si esta identidad corresponde al buyer de la transacción.
// El match por teléfono cubre compradores que transaccionaron sin cuenta.
func (b BuyerIdentity) Matches(tx *entity.Transaction) bool {
	if b.UserID != "" && b.UserID == tx.BuyerID {
		return true
	}
	return b.Phone != "" && b.Phone == tx.BuyerPhone
}

// IsSeller indica si el usuario es el seller de la transacción.
func IsSeller(u *entity.User, tx *entity.Transaction) bool {
	return u != nil && u.ID != "" && u.ID == tx.SellerID
}

// IsAssignedAgent indica si el usuario es el agente asignado.
func IsAssignedAgent(u *entity.User, tx *entity.Transaction) bool {
	return u != nil && tx.AssignedAgentID != "" && tx.AssignedAgentID == u.ID
}

// CanTransition decide si user puede mover tx al estado target. Predicado
// puro: los callers deben reevaluarlo justo antes de persistir para no dejar
// ventana entre chequeo y escritura a través de límites asíncronos.
//
// Reglas, en orden:
//  1. Sin usuario no hay transición.
//  2. Algún rol del usuario debe tener (status actual → target) en la tabla.
//  3. Refinamiento por identidad según el rol que habilitó la transición:
//     despachar exige ser el seller; completar exige ser el buyer (id o
//     teléfono); un agent debe ser el asignado sea cual sea el target.
func CanTransition(user *entity.User, tx *entity.Transaction, target entity.Status) bool {
	if user == nil || tx == nil {
		return false
	}

	for _, role := range user.Roles {
		if !transitionAllowed(role, tx.Status, target) {
			continue
		}
		switch role {
		case entity.RoleSeller:
			if IsSeller(user, tx) {
				return true
			}
		case entity.RoleBuyer:
			if BuyerIdentityOf(user).Matches(tx) {
				return true
			}
		case entity.RoleAgent:
			if IsAssignedAgent(user, tx) {
				return true
			}
		case entity.RoleAdmin:
			return true
		}
	}
	return false
}

// CanViewTransaction decide si el usuario puede ver la transacción: admin
// todo, agent solo las asignadas, buyer/seller las propias.
func CanViewTransaction(user *entity.User, tx *entity.Transaction) bool {
	if user == nil || tx == nil {
		return false
	}
	if user.HasRole(entity.RoleAdmin) {
		return true
	}
	if user.HasRole(entity.RoleAgent) {
		return IsAssignedAgent(user, tx)
	}
	return IsSeller(user, tx) || BuyerIdentityOf(user).Matches(tx)
}

// CanCreateListing decide si el usuario puede publicar: admin y agent pasan
// sin verificación; el resto debe estar VERIFIED.
func CanCreateListing(user *entity.User) bool {
	if user == nil {
		return false
	}
	if user.HasRole(entity.RoleAdmin) || user.HasRole(entity.RoleAgent) {
		return true
	}
	return user.IsVerified()
}
