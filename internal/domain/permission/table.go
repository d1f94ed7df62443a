// Package permission centraliza el control de acceso sobre el ciclo de vida
// de una transacción: tabla de transiciones por rol, guard de autorización y
// resolución de la siguiente acción disponible por rol.
package permission

import "github.com/prolist-cm/protect-api/internal/domain/entity"

// roleTransitions define, por rol, las transiciones legales de estado.
// Toda combinación (rol, estado) ausente es el conjunto vacío.
var roleTransitions = map[entity.Role]map[entity.Status][]entity.Status{
	entity.RoleSeller: {
		// El seller solo puede despachar al hub una vez asegurado el pago.
		entity.StatusEscrowHeld: {entity.StatusInTransitToHub},
	},
	entity.RoleBuyer: {
		// El buyer solo puede confirmar recepción final.
		entity.StatusDeliveredAwaiting: {entity.StatusCompleted},
	},
	entity.RoleAdmin: {
		entity.StatusInTransitToHub: {entity.StatusAtProlistHub},
		entity.StatusAtProlistHub:   {entity.StatusOutForDelivery},
	},
	entity.RoleAgent: {
		entity.StatusOutForDelivery: {entity.StatusDeliveredAwaiting},
	},
}

// AllowedTargets devuelve los estados destino legales para un rol desde el
// estado actual. Lookup puro; la identidad se verifica aparte en el guard.
func AllowedTargets(role entity.Role, current entity.Status) []entity.Status {
	byStatus, ok := roleTransitions[role]
	if !ok {
		return nil
	}
	return byStatus[current]
}

// transitionAllowed indica si target está en la tabla para (role, current).
func transitionAllowed(role entity.Role, current, target entity.Status) bool {
	for _, s := range AllowedTargets(role, current) {
		if s == target {
			return true
		}
	}
	return false
}
