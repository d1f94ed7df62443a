package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prolist-cm/protect-api/internal/application/auth"
	"github.com/prolist-cm/protect-api/internal/application/billing"
	"github.com/prolist-cm/protect-api/internal/application/escrow"
	"github.com/prolist-cm/protect-api/internal/application/listing"
	"github.com/prolist-cm/protect-api/internal/application/notification"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ListingUC      *listing.ListingUseCase
	EscrowUC       *escrow.EscrowUseCase
	NotificationUC *notification.NotificationUseCase
	ReceiptUC      *billing.ReceiptUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	postHandler := NewPostHandler(deps.ListingUC)
	txHandler := NewTransactionHandler(deps.EscrowUC)
	notifHandler := NewNotificationHandler(deps.NotificationUC)
	receiptHandler := NewReceiptHandler(deps.ReceiptUC)

	loadUser := UserLoader(deps.AuthUC)

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Listings públicos
	api.Get("/posts", postHandler.List)
	api.Get("/posts/:id", postHandler.GetByID)

	// Compra como invitado: auth opcional (con token la transacción queda
	// ligada a la cuenta; sin él, al teléfono del buyer).
	guest := api.Group("/", OptionalAuth(deps.JWTSecret), loadUser)
	guest.Post("/transactions", txHandler.Create)
	guest.Post("/transactions/:id/confirm-payment", txHandler.ConfirmPayment)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), loadUser)

	me := protected.Group("/me")
	me.Get("/", authHandler.Me)
	me.Post("/verification", authHandler.SubmitVerification)
	me.Get("/pending-action", txHandler.PendingAction)

	users := protected.Group("/users")
	users.Post("/:id/verification/review", authHandler.ReviewVerification)
	users.Get("/agents", authHandler.ListAgents)

	posts := protected.Group("/posts")
	posts.Post("/", postHandler.Create)
	posts.Get("/mine/list", postHandler.ListMine)

	txs := protected.Group("/transactions")
	txs.Get("/", txHandler.List)
	txs.Get("/hub-queue", txHandler.HubQueue)
	txs.Get("/:id", txHandler.Get)
	txs.Get("/:id/action", txHandler.Action)
	txs.Post("/:id/request-payment", txHandler.RequestPayment)
	txs.Post("/:id/ship", txHandler.Ship)
	txs.Post("/:id/receive", txHandler.Receive)
	txs.Post("/:id/assign", txHandler.Assign)
	txs.Post("/:id/deliver", txHandler.Deliver)
	txs.Post("/:id/confirm", txHandler.Confirm)
	txs.Post("/:id/refund", txHandler.Refund)
	txs.Post("/:id/cancel", txHandler.Cancel)
	txs.Get("/:id/receipt", receiptHandler.Get)
	txs.Get("/:id/receipt.pdf", receiptHandler.GetPDF)

	notifs := protected.Group("/notifications")
	notifs.Get("/", notifHandler.List)
	notifs.Get("/unread-count", notifHandler.UnreadCount)
	notifs.Post("/read", notifHandler.MarkRead)
	notifs.Post("/read-by-type", notifHandler.MarkReadByType)
	notifs.Post("/read-all", notifHandler.MarkAllRead)
}
