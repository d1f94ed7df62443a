package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prolist-cm/protect-api/internal/application/dto"
	"github.com/prolist-cm/protect-api/internal/application/listing"
	"github.com/prolist-cm/protect-api/internal/domain/entity"
)

// PostHandler maneja las peticiones HTTP para listings.
type PostHandler struct {
	uc *listing.ListingUseCase
}

// NewPostHandler construye el handler.
func NewPostHandler(uc *listing.ListingUseCase) *PostHandler {
	return &PostHandler{uc: uc}
}

// Create publica un listing (solo sellers verificados).
func (h *PostHandler) Create(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	var in dto.CreatePostRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	post, err := h.uc.Create(c.Context(), user, in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPostResponse(post))
}

// GetByID devuelve un listing público.
func (h *PostHandler) GetByID(c *fiber.Ctx) error {
	post, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(toPostResponse(post))
}

// List lista listings públicos.
func (h *PostHandler) List(c *fiber.Ctx) error {
	posts, err := h.uc.List(c.Context(), pageFromQuery(c))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(toPostResponses(posts))
}

// ListMine lista los listings del seller autenticado.
func (h *PostHandler) ListMine(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	posts, err := h.uc.ListBySeller(c.Context(), user.ID, pageFromQuery(c))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(toPostResponses(posts))
}

func toPostResponse(p *entity.Post) *dto.PostResponse {
	return &dto.PostResponse{
		ID:          p.ID,
		SellerID:    p.SellerID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		City:        p.City,
		IsPreOrder:  p.IsPreOrder,
		CreatedAt:   p.CreatedAt,
	}
}

func toPostResponses(posts []*entity.Post) []*dto.PostResponse {
	out := make([]*dto.PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}
