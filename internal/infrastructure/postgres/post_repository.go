package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/prolist-cm/protect-api/internal/domain/entity"
	"github.com/prolist-cm/protect-api/internal/domain/repository"
)

var _ repository.PostRepository = (*PostRepo)(nil)

// PostRepo implementación del puerto PostRepository sobre PostgreSQL (usable con pool o tx).
type PostRepo struct {
	q Querier
}

// NewPostRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPostRepository(q Querier) *PostRepo {
	return &PostRepo{q: q}
}

const postColumns = `
	id, seller_id, title, description, price, category, city, is_pre_order, created_at, updated_at`

// Create persiste un listing.
func (r *PostRepo) Create(ctx context.Context, p *entity.Post) error {
	query := `
		INSERT INTO posts (` + postColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.SellerID, p.Title, p.Description, p.Price, p.Category, p.City, p.IsPreOrder, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// GetByID obtiene un listing por id, o nil si no existe.
func (r *PostRepo) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var p entity.Post
	err := r.q.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id).Scan(
		&p.ID, &p.SellerID, &p.Title, &p.Description, &p.Price, &p.Category, &p.City, &p.IsPreOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &p, nil
}

// ListBySeller lista los listings de un seller con paginación.
func (r *PostRepo) ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Post, error) {
	return r.list(ctx,
		`SELECT `+postColumns+` FROM posts WHERE seller_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		sellerID, limit, offset)
}

// List lista todos los listings con paginación.
func (r *PostRepo) List(ctx context.Context, limit, offset int) ([]*entity.Post, error) {
	return r.list(ctx,
		`SELECT `+postColumns+` FROM posts ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
}

func (r *PostRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Post, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Post
	for rows.Next() {
		var p entity.Post
		if err := rows.Scan(&p.ID, &p.SellerID, &p.Title, &p.Description, &p.Price, &p.Category, &p.City, &p.IsPreOrder, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
