// Package listing casos de uso de publicación de listings.
package listing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/prolist-cm/protect-api/internal/application/dto"
	"github.com/prolist-cm/protect-api/internal/domain"
	"github.com/prolist-cm/protect-api/internal/domain/entity"
	"github.com/prolist-cm/protect-api/internal/domain/permission"
	"github.com/prolist-cm/protect-api/internal/domain/repository"
)

// ListingUseCase publicación y consulta de listings.
type ListingUseCase struct {
	postRepo repository.PostRepository
}

// NewListingUseCase construye el caso de uso.
func NewListingUseCase(postRepo repository.PostRepository) *ListingUseCase {
	return &ListingUseCase{postRepo: postRepo}
}

// Create publica un listing. Solo sellers VERIFIED (admin y agent pasan sin
// verificación).
func (uc *ListingUseCase) Create(ctx context.Context, user *entity.User, in dto.CreatePostRequest) (*entity.Post, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !permission.CanCreateListing(user) {
		return nil, domain.ErrSellerNotVerified
	}
	if in.Price.IsNegative() || in.Price.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	post := &entity.Post{
		ID:          uuid.New().String(),
		SellerID:    user.ID,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		City:        in.City,
		IsPreOrder:  in.IsPreOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetByID devuelve un listing.
func (uc *ListingUseCase) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domain.ErrNotFound
	}
	return post, nil
}

// List lista listings públicos con paginación.
func (uc *ListingUseCase) List(ctx context.Context, page dto.PageRequest) ([]*entity.Post, error) {
	page.DefaultPage()
	return uc.postRepo.List(ctx, page.Limit, page.Offset)
}

// ListBySeller lista los listings de un seller.
func (uc *ListingUseCase) ListBySeller(ctx context.Context, sellerID string, page dto.PageRequest) ([]*entity.Post, error) {
	page.DefaultPage()
	return uc.postRepo.ListBySeller(ctx, sellerID, page.Limit, page.Offset)
}
