package memory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prolist-cm/protect-api/internal/domain"
	"github.com/prolist-cm/protect-api/internal/domain/entity"
	"github.com/prolist-cm/protect-api/internal/infrastructure/memory"
)

func TestTransactionRepo_UpdateStatusCondicional(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewTransactionRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Transaction{ID: "tx-1", Status: entity.StatusEscrowHeld}))

	// Dos actores leyeron escrow_held; solo el primero escribe.
	require.NoError(t, repo.UpdateStatus(ctx, "tx-1", entity.StatusEscrowHeld, entity.StatusInTransitToHub))
	err := repo.UpdateStatus(ctx, "tx-1", entity.StatusEscrowHeld, entity.StatusCancelled)
	assert.ErrorIs(t, err, domain.ErrStaleWrite)

	got, err := repo.GetByID(ctx, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInTransitToHub, got.Status, "el perdedor no pisa la escritura ganadora")
}

func TestTransactionRepo_UpdateNoTocaElEstado(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewTransactionRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Transaction{ID: "tx-1", Status: entity.StatusEscrowHeld}))

	stale, err := repo.GetByID(ctx, "tx-1")
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(ctx, "tx-1", entity.StatusEscrowHeld, entity.StatusInTransitToHub))

	stale.BuyerName = "Boris"
	stale.Status = entity.StatusEscrowHeld // copia vieja
	require.NoError(t, repo.Update(ctx, stale))

	got, err := repo.GetByID(ctx, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInTransitToHub, got.Status)
	assert.Equal(t, "Boris", got.BuyerName)
}

func TestTransactionRepo_ListByBuyerConFallbackDeTelefono(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewTransactionRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Transaction{ID: "tx-1", BuyerID: "B1", CreatedAt: time.Now()}))
	require.NoError(t, repo.Create(ctx, &entity.Transaction{ID: "tx-2", BuyerPhone: "+237670000001", CreatedAt: time.Now()}))

	list, err := repo.ListByBuyer(ctx, "B1", "+237670000001", 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2, "cuenta + compras como invitado con su número")

	list, err = repo.ListByBuyer(ctx, "", "+237670000001", 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestNotificationRepo_DedupDentroDeVentana(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewNotificationRepository(store)
	ctx := context.Background()
	now := time.Now()

	first, err := repo.Save(ctx, &entity.Notification{ID: "n1", UserID: "U1", Message: "hola", CreatedAt: now})
	require.NoError(t, err)

	// Mismo (user, message) dentro de la ventana: vuelve el existente.
	dup, err := repo.Save(ctx, &entity.Notification{ID: "n2", UserID: "U1", Message: "hola", CreatedAt: now.Add(30 * time.Second)})
	require.NoError(t, err)
	assert.Equal(t, first.ID, dup.ID)

	// Fuera de la ventana sí se inserta de nuevo.
	again, err := repo.Save(ctx, &entity.Notification{ID: "n3", UserID: "U1", Message: "hola", CreatedAt: now.Add(2 * time.Minute)})
	require.NoError(t, err)
	assert.Equal(t, "n3", again.ID)

	// Otro usuario u otro mensaje no deduplican.
	other, err := repo.Save(ctx, &entity.Notification{ID: "n4", UserID: "U2", Message: "hola", CreatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, "n4", other.ID)
}

func TestNotificationRepo_TopePorUsuarioFIFO(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewNotificationRepository(store)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i := 0; i < entity.MaxNotificationsPerUser+3; i++ {
		_, err := repo.Save(ctx, &entity.Notification{
			ID:        fmt.Sprintf("n%02d", i),
			UserID:    "U1",
			Message:   fmt.Sprintf("aviso %02d", i),
			CreatedAt: base.Add(time.Duration(i) * 5 * time.Minute),
		})
		require.NoError(t, err)
	}
	// Los avisos de otro usuario no cuentan para el tope de U1.
	_, err := repo.Save(ctx, &entity.Notification{ID: "x1", UserID: "U2", Message: "otro", CreatedAt: time.Now()})
	require.NoError(t, err)

	list, err := repo.ListByUser(ctx, "U1", 50, 0)
	require.NoError(t, err)
	require.Len(t, list, entity.MaxNotificationsPerUser)
	assert.Equal(t, "aviso 12", list[0].Message, "más reciente primero")
	assert.Equal(t, "aviso 03", list[len(list)-1].Message, "los más viejos fueron expulsados")

	otherList, err := repo.ListByUser(ctx, "U2", 50, 0)
	require.NoError(t, err)
	assert.Len(t, otherList, 1)
}

func TestNotificationRepo_Lectura(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewNotificationRepository(store)
	ctx := context.Background()
	now := time.Now()

	for i, msg := range []string{"a", "b", "c"} {
		_, err := repo.Save(ctx, &entity.Notification{ID: fmt.Sprintf("n%d", i), UserID: "U1", Message: msg, CreatedAt: now})
		require.NoError(t, err)
	}

	count, err := repo.UnreadCount(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, repo.MarkAsRead(ctx, "U1", []string{"n0"}))
	count, err = repo.UnreadCount(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, repo.MarkAllAsRead(ctx, "U1"))
	count, err = repo.UnreadCount(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestNotificationRepo_LecturaPorTipo(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewNotificationRepository(store)
	ctx := context.Background()
	now := time.Now()

	_, err := repo.Save(ctx, &entity.Notification{ID: "n1", UserID: "U1", Type: entity.NotificationSeller, Message: "a", CreatedAt: now})
	require.NoError(t, err)
	_, err = repo.Save(ctx, &entity.Notification{ID: "n2", UserID: "U1", Type: entity.NotificationBuyer, Message: "b", CreatedAt: now})
	require.NoError(t, err)

	require.NoError(t, repo.MarkAsReadByType(ctx, "U1", entity.NotificationSeller))

	count, err := repo.UnreadCount(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "solo el tipo pedido queda leído")
}

func TestCounterRepo_NextEsMonotono(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewCounterRepository(store)
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		n, err := repo.Next(ctx, "invoice_seq")
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
	n, err := repo.Next(ctx, "otra_seq")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "cada secuencia es independiente")
}

func TestUserRepo_TelefonoUnico(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewUserRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.User{ID: "U1", Phone: "+237670000001"}))
	err := repo.Create(ctx, &entity.User{ID: "U2", Phone: "+237670000001"})
	assert.ErrorIs(t, err, domain.ErrPhoneAlreadyExists)

	got, err := repo.GetByPhone(ctx, "+237670000001")
	require.NoError(t, err)
	assert.Equal(t, "U1", got.ID)
}
