package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prolist-cm/protect-api/internal/application/auth"
	"github.com/prolist-cm/protect-api/internal/application/billing"
	"github.com/prolist-cm/protect-api/internal/application/escrow"
	"github.com/prolist-cm/protect-api/internal/application/listing"
	"github.com/prolist-cm/protect-api/internal/application/notification"
	"github.com/prolist-cm/protect-api/internal/domain/entity"
	"github.com/prolist-cm/protect-api/internal/infrastructure/memory"
	"github.com/prolist-cm/protect-api/internal/infrastructure/pdf"
	apphttp "github.com/prolist-cm/protect-api/internal/interfaces/http"
	"github.com/prolist-cm/protect-api/pkg/logger"
)

// buildAPI arma la app completa sobre el backend en memoria, como lo hace main.
func buildAPI(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	txRepo := memory.NewTransactionRepository(store)
	userRepo := memory.NewUserRepository(store)
	postRepo := memory.NewPostRepository(store)
	notifRepo := memory.NewNotificationRepository(store)
	runner := memory.NewTxRunner(store)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	listingUC := listing.NewListingUseCase(postRepo)
	escrowUC := escrow.NewEscrowUseCase(txRepo, userRepo, postRepo, runner, "https://pay.prolist.cm/t", logger.Nop())
	notifUC := notification.NewNotificationUseCase(notifRepo)
	receiptUC := billing.NewReceiptUseCase(txRepo, pdf.NewMarotoReceiptGenerator())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         authUC,
		ListingUC:      listingUC,
		EscrowUC:       escrowUC,
		NotificationUC: notifUC,
		ReceiptUC:      receiptUC,
		JWTSecret:      testJWTSecret,
	})
	return app, store
}

func postJSON(t *testing.T, app *fiber.App, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// Flujo de punta a punta por HTTP: registro, login, venta como invitado y
// despacho del seller.
func TestRouter_FlujoRegistroVentaYDespacho(t *testing.T) {
	app, store := buildAPI(t)

	// Registro y login del seller.
	resp := postJSON(t, app, "/api/auth/register", "", map[string]any{
		"phone": "+237670000010", "name": "Aicha", "pin": "2468",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	seller := decode(t, resp)
	sellerID := seller["id"].(string)

	resp = postJSON(t, app, "/api/auth/login", "", map[string]any{
		"phone": "+237670000010", "pin": "2468",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode(t, resp)
	sellerToken := "Bearer " + login["token"].(string)

	// PIN incorrecto no entra.
	resp = postJSON(t, app, "/api/auth/login", "", map[string]any{
		"phone": "+237670000010", "pin": "0000",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// GET /me con el token.
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", sellerToken)
	meResp, err := app.Test(req, -1)
	require.NoError(t, err)
	me := decode(t, meResp)
	assert.Equal(t, sellerID, me["id"])
	assert.Equal(t, "seller", me["primary_role"])

	// Listing sembrado directo (publicar exige verificación, fuera de este flujo).
	now := time.Now()
	require.NoError(t, memory.NewPostRepository(store).Create(context.Background(), &entity.Post{
		ID: "P1", SellerID: sellerID, Title: "Samsung A15",
		Price: decimal.NewFromInt(85000), CreatedAt: now, UpdatedAt: now,
	}))

	// Compra como invitado: sin token, solo nombre y teléfono.
	resp = postJSON(t, app, "/api/transactions", "", map[string]any{
		"post_id": "P1", "buyer_name": "Boris", "buyer_phone": "+237699000000",
		"delivery_location": "Akwa",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	tx := decode(t, resp)
	txID := tx["id"].(string)
	assert.Equal(t, "pending_setup", tx["status"])
	assert.NotEmpty(t, tx["payment_link"])

	// El seller solicita el pago y el invitado paga (sin token).
	resp = postJSON(t, app, "/api/transactions/"+txID+"/request-payment", sellerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "awaiting_payment", decode(t, resp)["status"])

	resp = postJSON(t, app, "/api/transactions/"+txID+"/confirm-payment", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "escrow_held", decode(t, resp)["status"])

	// Despacho al hub.
	resp = postJSON(t, app, "/api/transactions/"+txID+"/ship", sellerToken, map[string]any{
		"dropoff_company": "Touristique Express", "dropoff_city": "Douala",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "in_transit_to_hub", decode(t, resp)["status"])

	// Segundo despacho: el estado ya avanzó, 403 con el mensaje estándar.
	resp = postJSON(t, app, "/api/transactions/"+txID+"/ship", sellerToken, map[string]any{
		"dropoff_company": "Touristique Express", "dropoff_city": "Douala",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	errBody := decode(t, resp)
	assert.Equal(t, "PERMISSION_DENIED", errBody["code"])
	assert.Equal(t, "Action not allowed — waiting for the previous step to be completed.", errBody["message"])
}

func TestRouter_RutasProtegidasSinToken(t *testing.T) {
	app, _ := buildAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_ValidacionDeCuerpo(t *testing.T) {
	app, _ := buildAPI(t)

	// Teléfono fuera de formato e164.
	resp := postJSON(t, app, "/api/auth/register", "", map[string]any{
		"phone": "670000010", "name": "Aicha", "pin": "2468",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
