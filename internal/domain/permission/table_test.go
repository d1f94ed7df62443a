package permission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prolist-cm/protect-api/internal/domain/entity"
	"github.com/prolist-cm/protect-api/internal/domain/permission"
)

var allStatuses = []entity.Status{
	entity.StatusPendingSetup,
	entity.StatusAwaitingPayment,
	entity.StatusEscrowHeld,
	entity.StatusInTransitToHub,
	entity.StatusAtProlistHub,
	entity.StatusOutForDelivery,
	entity.StatusDeliveredAwaiting,
	entity.StatusCompleted,
	entity.StatusRefunded,
	entity.StatusCancelled,
}

var allRoles = []entity.Role{
	entity.RoleBuyer,
	entity.RoleSeller,
	entity.RoleAgent,
	entity.RoleAdmin,
}

// Entradas no vacías esperadas de la tabla; toda otra combinación (rol,
// estado) debe ser el conjunto vacío.
var expectedTable = map[entity.Role]map[entity.Status][]entity.Status{
	entity.RoleSeller: {
		entity.StatusEscrowHeld: {entity.StatusInTransitToHub},
	},
	entity.RoleBuyer: {
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

// La tabla debe contener exactamente las transiciones especificadas, ni una más.
func TestAllowedTargets_TablaExacta(t *testing.T) {
	for _, role := range allRoles {
		for _, status := range allStatuses {
			want := expectedTable[role][status]
			got := permission.AllowedTargets(role, status)
			assert.ElementsMatch(t, want, got,
				"rol %s desde %s: targets inesperados", role, status)
		}
	}
}

// Toda transición de la tabla avanza en el orden canónico; nunca regresa.
func TestAllowedTargets_SoloHaciaAdelante(t *testing.T) {
	for _, role := range allRoles {
		for _, status := range allStatuses {
			for _, target := range permission.AllowedTargets(role, status) {
				from, to := status.Index(), target.Index()
				assert.GreaterOrEqual(t, from, 0, "origen %s fuera del orden canónico", status)
				assert.Greater(t, to, from,
					"rol %s: %s -> %s no avanza en el orden canónico", role, status, target)
			}
		}
	}
}

// Los estados terminales no tienen transiciones salientes para ningún rol.
func TestAllowedTargets_TerminalesSinSalida(t *testing.T) {
	for _, role := range allRoles {
		for _, status := range []entity.Status{entity.StatusCompleted, entity.StatusRefunded, entity.StatusCancelled} {
			assert.Empty(t, permission.AllowedTargets(role, status),
				"rol %s no debe poder salir de %s", role, status)
		}
	}
}

func TestStatus_IndexYTerminales(t *testing.T) {
	assert.Equal(t, 0, entity.StatusPendingSetup.Index())
	assert.Equal(t, 7, entity.StatusCompleted.Index())
	assert.Equal(t, -1, entity.StatusRefunded.Index(), "refunded es salida lateral, no parte del orden")
	assert.Equal(t, -1, entity.StatusCancelled.Index())

	assert.True(t, entity.StatusCompleted.IsTerminal())
	assert.True(t, entity.StatusRefunded.IsTerminal())
	assert.True(t, entity.StatusCancelled.IsTerminal())
	assert.False(t, entity.StatusEscrowHeld.IsTerminal())
}
