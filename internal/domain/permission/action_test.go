package permission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prolist-cm/protect-api/internal/domain/entity"
	"github.com/prolist-cm/protect-api/internal/domain/permission"
)

// En escrow_held el seller ve "despachar" y cualquier
// otro buyer/seller queda esperando al seller.
func TestAvailableAction_EscrowHeld(t *testing.T) {
	tx := txInStatus(entity.StatusEscrowHeld)

	got := permission.AvailableAction(buyerSeller("S1"), tx)
	require.NotNil(t, got)
	assert.Equal(t, permission.ActionSellerShip, got.Type)

	got = permission.AvailableAction(buyerSeller("B1"), tx)
	require.NotNil(t, got)
	assert.Equal(t, permission.ActionWaiting, got.Type)
	assert.Equal(t, "seller", got.WaitingFor)
}

func TestAvailableAction_PrePago(t *testing.T) {
	for _, status := range []entity.Status{entity.StatusPendingSetup, entity.StatusAwaitingPayment} {
		got := permission.AvailableAction(buyerSeller("S1"), txInStatus(status))
		require.NotNil(t, got, "estado %s", status)
		assert.Equal(t, permission.ActionWaiting, got.Type)
		assert.Equal(t, "buyer", got.WaitingFor, "pre-pago espera al buyer")
	}
}

func TestAvailableAction_FlujoAdmin(t *testing.T) {
	tx := txInStatus(entity.StatusInTransitToHub)
	got := permission.AvailableAction(admin("AD1"), tx)
	require.NotNil(t, got)
	assert.Equal(t, permission.ActionAdminReceive, got.Type)

	got = permission.AvailableAction(buyerSeller("S1"), tx)
	require.NotNil(t, got)
	assert.Equal(t, permission.ActionWaiting, got.Type)
	assert.Equal(t, "admin", got.WaitingFor)

	tx = txInStatus(entity.StatusAtProlistHub)
	got = permission.AvailableAction(admin("AD1"), tx)
	require.NotNil(t, got)
	assert.Equal(t, permission.ActionAdminAssign, got.Type)
}

func TestAvailableAction_AgenteAsignado(t *testing.T) {
	tx := txInStatus(entity.StatusOutForDelivery)
	tx.AssignedAgentID = "A1"

	got := permission.AvailableAction(agent("A1"), tx)
	require.NotNil(t, got)
	assert.Equal(t, permission.ActionAgentDeliver, got.Type)

	got = permission.AvailableAction(agent("A2"), tx)
	require.NotNil(t, got)
	assert.Equal(t, permission.ActionWaiting, got.Type, "agente no asignado solo espera")
	assert.Equal(t, "agent", got.WaitingFor)
}

func TestAvailableAction_ConfirmacionBuyer(t *testing.T) {
	tx := txInStatus(entity.StatusDeliveredAwaiting)

	got := permission.AvailableAction(buyerSeller("B1"), tx)
	require.NotNil(t, got)
	assert.Equal(t, permission.ActionBuyerConfirm, got.Type)

	got = permission.AvailableAction(buyerSeller("S1"), tx)
	require.NotNil(t, got)
	assert.Equal(t, permission.ActionWaiting, got.Type)
	assert.Equal(t, "buyer", got.WaitingFor)
}

// En estados terminales nadie tiene acción, sea quien sea.
func TestAvailableAction_TerminalesSinAccion(t *testing.T) {
	users := []*entity.User{
		buyerSeller("B1"),
		buyerSeller("S1"),
		admin("AD1"),
		agent("A1"),
	}
	for _, status := range []entity.Status{entity.StatusCompleted, entity.StatusRefunded, entity.StatusCancelled} {
		tx := txInStatus(status)
		tx.AssignedAgentID = "A1"
		for _, u := range users {
			assert.Nil(t, permission.AvailableAction(u, tx),
				"estado %s: usuario %s no debe tener acción", status, u.ID)
		}
	}
}

func TestAvailableAction_SinUsuario(t *testing.T) {
	assert.Nil(t, permission.AvailableAction(nil, txInStatus(entity.StatusEscrowHeld)))
}

// El resolver y la tabla deben ser consistentes. Para cada (usuario,
// estado), si el resolver ofrece una acción mutadora, su transición asociada
// debe existir en la tabla y pasar el guard; y nunca hay más de una acción.
func TestAvailableAction_ConsistenteConTabla(t *testing.T) {
	users := []*entity.User{
		buyerSeller("S1"),
		buyerSeller("B1"),
		admin("AD1"),
		agent("A1"),
		agent("A2"),
	}
	for _, status := range allStatuses {
		tx := txInStatus(status)
		tx.AssignedAgentID = "A1"
		for _, u := range users {
			action := permission.AvailableAction(u, tx)
			if action == nil || action.Type == permission.ActionWaiting {
				continue
			}
			target, ok := action.Type.TargetStatus()
			require.True(t, ok, "acción %s sin estado destino", action.Type)
			assert.True(t, permission.CanTransition(u, tx, target),
				"resolver ofrece %s a %s en %s pero el guard la rechaza",
				action.Type, u.ID, status)
		}
	}
}

// Flujo completo: encadenando solo transiciones aprobadas por el
// guard, el índice de estado nunca decrece.
func TestGuard_ProgresionHaciaAdelante(t *testing.T) {
	tx := txInStatus(entity.StatusEscrowHeld)
	tx.AssignedAgentID = "A1"

	steps := []struct {
		user   *entity.User
		target entity.Status
	}{
		{buyerSeller("S1"), entity.StatusInTransitToHub},
		{admin("AD1"), entity.StatusAtProlistHub},
		{admin("AD1"), entity.StatusOutForDelivery},
		{agent("A1"), entity.StatusDeliveredAwaiting},
		{buyerSeller("B1"), entity.StatusCompleted},
	}

	last := tx.Status.Index()
	for _, step := range steps {
		require.True(t, permission.CanTransition(step.user, tx, step.target),
			"paso %s -> %s debió aprobarse", tx.Status, step.target)
		tx.Status = step.target
		idx := tx.Status.Index()
		assert.Greater(t, idx, last, "la progresión nunca regresa")
		last = idx
	}
	assert.Equal(t, entity.StatusCompleted, tx.Status)
}
