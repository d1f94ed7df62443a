package memory

import (
	"context"
	"sort"

	"github.com/prolist-cm/protect-api/internal/domain"
	"github.com/prolist-cm/protect-api/internal/domain/entity"
	"github.com/prolist-cm/protect-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria del puerto UserRepository.
type UserRepo struct {
	store *Store
}

// NewUserRepository construye el adaptador.
func NewUserRepository(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

// Create persiste un usuario. El teléfono es único.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Phone == user.Phone {
			return domain.ErrPhoneAlreadyExists
		}
	}
	r.store.users[user.ID] = cloneUser(user)
	return nil
}

// GetByID obtiene un usuario por id, o nil si no existe.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return cloneUser(r.store.users[id]), nil
}

// GetByPhone obtiene un usuario por teléfono, o nil si no existe.
func (r *UserRepo) GetByPhone(_ context.Context, phone string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, u := range r.store.users {
		if u.Phone == phone {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

// Update persiste los campos mutables.
func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.store.users[user.ID] = cloneUser(user)
	return nil
}

// ListByRole lista usuarios con un rol dado, ordenados por nombre.
func (r *UserRepo) ListByRole(_ context.Context, role entity.Role, limit, offset int) ([]*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var all []*entity.User
	for _, u := range r.store.users {
		if u.HasRole(role) {
			all = append(all, cloneUser(u))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}
