package permission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prolist-cm/protect-api/internal/domain/entity"
	"github.com/prolist-cm/protect-api/internal/domain/permission"
)

func buyerSeller(id string) *entity.User {
	return &entity.User{ID: id, Roles: []entity.Role{entity.RoleBuyer, entity.RoleSeller}}
}

func admin(id string) *entity.User {
	return &entity.User{ID: id, Roles: []entity.Role{entity.RoleAdmin}}
}

func agent(id string) *entity.User {
	return &entity.User{ID: id, Roles: []entity.Role{entity.RoleAgent}}
}

func txInStatus(status entity.Status) *entity.Transaction {
	return &entity.Transaction{
		ID:       "tx-1",
		SellerID: "S1",
		BuyerID:  "B1",
		Status:   status,
	}
}

func TestCanTransition_SinUsuarioRechaza(t *testing.T) {
	tx := txInStatus(entity.StatusEscrowHeld)
	assert.False(t, permission.CanTransition(nil, tx, entity.StatusInTransitToHub))
}

// El admin puede recibir en hub, pero no saltar a completed.
func TestCanTransition_AdminSoloTransicionesDeTabla(t *testing.T) {
	tx := txInStatus(entity.StatusInTransitToHub)
	u := admin("AD1")

	assert.True(t, permission.CanTransition(u, tx, entity.StatusAtProlistHub))
	assert.False(t, permission.CanTransition(u, tx, entity.StatusCompleted),
		"completed no es transición legal de admin desde in_transit_to_hub")
}

// Quien no es el seller nunca puede despachar, aunque su rol lo permita.
func TestCanTransition_DespachoExigeSerSeller(t *testing.T) {
	tx := txInStatus(entity.StatusEscrowHeld)

	assert.True(t, permission.CanTransition(buyerSeller("S1"), tx, entity.StatusInTransitToHub))
	assert.False(t, permission.CanTransition(buyerSeller("B1"), tx, entity.StatusInTransitToHub),
		"el buyer no debe poder despachar el item del seller")
	assert.False(t, permission.CanTransition(buyerSeller("X9"), tx, entity.StatusInTransitToHub))
}

func TestCanTransition_ConfirmacionExigeSerBuyer(t *testing.T) {
	tx := txInStatus(entity.StatusDeliveredAwaiting)

	assert.True(t, permission.CanTransition(buyerSeller("B1"), tx, entity.StatusCompleted))
	assert.False(t, permission.CanTransition(buyerSeller("S1"), tx, entity.StatusCompleted),
		"el seller no puede confirmar en nombre del buyer")
}

// Fallback por teléfono: buyers invitados sin cuenta confirman por su número.
func TestCanTransition_BuyerInvitadoPorTelefono(t *testing.T) {
	tx := txInStatus(entity.StatusDeliveredAwaiting)
	tx.BuyerID = ""
	tx.BuyerPhone = "+237670000001"

	guest := &entity.User{
		ID:    "G1",
		Phone: "+237670000001",
		Roles: []entity.Role{entity.RoleBuyer},
	}
	other := &entity.User{
		ID:    "G2",
		Phone: "+237670000002",
		Roles: []entity.Role{entity.RoleBuyer},
	}

	assert.True(t, permission.CanTransition(guest, tx, entity.StatusCompleted))
	assert.False(t, permission.CanTransition(other, tx, entity.StatusCompleted))
}

// Un agente no asignado nunca recibe true, para ningún target.
func TestCanTransition_AgenteDebeEstarAsignado(t *testing.T) {
	tx := txInStatus(entity.StatusOutForDelivery)
	tx.AssignedAgentID = "A1"

	assert.True(t, permission.CanTransition(agent("A1"), tx, entity.StatusDeliveredAwaiting))
	assert.False(t, permission.CanTransition(agent("A2"), tx, entity.StatusDeliveredAwaiting))

	for _, status := range allStatuses {
		txAny := txInStatus(status)
		txAny.AssignedAgentID = "A1"
		for _, target := range allStatuses {
			assert.False(t, permission.CanTransition(agent("A2"), txAny, target),
				"agente no asignado: %s -> %s debe rechazarse", status, target)
		}
	}
}

// Sin agente asignado aún (at_prolist_hub), ningún agente puede actuar.
func TestCanTransition_SinAgenteAsignado(t *testing.T) {
	tx := txInStatus(entity.StatusOutForDelivery)
	tx.AssignedAgentID = ""
	assert.False(t, permission.CanTransition(agent("A1"), tx, entity.StatusDeliveredAwaiting))
}

func TestCanViewTransaction(t *testing.T) {
	tx := txInStatus(entity.StatusEscrowHeld)
	tx.AssignedAgentID = "A1"

	assert.True(t, permission.CanViewTransaction(admin("AD1"), tx), "admin ve todo")
	assert.True(t, permission.CanViewTransaction(agent("A1"), tx))
	assert.False(t, permission.CanViewTransaction(agent("A2"), tx), "agente solo ve las asignadas")
	assert.True(t, permission.CanViewTransaction(buyerSeller("S1"), tx))
	assert.True(t, permission.CanViewTransaction(buyerSeller("B1"), tx))
	assert.False(t, permission.CanViewTransaction(buyerSeller("X9"), tx))
	assert.False(t, permission.CanViewTransaction(nil, tx))
}

func TestCanCreateListing(t *testing.T) {
	verified := buyerSeller("S1")
	verified.VerificationStatus = entity.VerificationVerified
	pending := buyerSeller("S2")
	pending.VerificationStatus = entity.VerificationPending

	assert.True(t, permission.CanCreateListing(verified))
	assert.False(t, permission.CanCreateListing(pending), "seller sin verificar no publica")
	assert.True(t, permission.CanCreateListing(admin("AD1")), "admin no requiere verificación")
	assert.True(t, permission.CanCreateListing(agent("A1")))
	assert.False(t, permission.CanCreateListing(nil))
}
