package memory

import (
	"context"
	"sort"

	"github.com/prolist-cm/protect-api/internal/domain/entity"
	"github.com/prolist-cm/protect-api/internal/domain/repository"
)

var _ repository.PostRepository = (*PostRepo)(nil)

// PostRepo implementación en memoria del puerto PostRepository.
type PostRepo struct {
	store *Store
}

// NewPostRepository construye el adaptador.
func NewPostRepository(store *Store) *PostRepo {
	return &PostRepo{store: store}
}

// Create persiste un listing.
func (r *PostRepo) Create(_ context.Context, post *entity.Post) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.posts[post.ID] = clonePost(post)
	return nil
}

// GetByID obtiene un listing por id, o nil si no existe.
func (r *PostRepo) GetByID(_ context.Context, id string) (*entity.Post, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return clonePost(r.store.posts[id]), nil
}

// ListBySeller lista los listings de un seller, más recientes primero.
func (r *PostRepo) ListBySeller(_ context.Context, sellerID string, limit, offset int) ([]*entity.Post, error) {
	return r.list(func(p *entity.Post) bool { return p.SellerID == sellerID }, limit, offset)
}

// List lista todos los listings, más recientes primero.
func (r *PostRepo) List(_ context.Context, limit, offset int) ([]*entity.Post, error) {
	return r.list(func(*entity.Post) bool { return true }, limit, offset)
}

func (r *PostRepo) list(match func(*entity.Post) bool, limit, offset int) ([]*entity.Post, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var all []*entity.Post
	for _, p := range r.store.posts {
		if match(p) {
			all = append(all, clonePost(p))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}
