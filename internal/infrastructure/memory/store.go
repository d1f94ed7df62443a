// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria protegidas por mutex. Es el backend de desarrollo y de tests: mismo
// contrato que el adaptador PostgreSQL, sin base de datos.
package memory

import (
	"sync"

	"github.com/prolist-cm/protect-api/internal/domain/entity"
)

// Store agrupa el estado compartido de todos los repositorios en memoria.
// Los repos clonan al leer y al escribir: nada de aliasing con el caller.
type Store struct {
	mu            sync.RWMutex
	transactions  map[string]*entity.Transaction
	users         map[string]*entity.User
	posts         map[string]*entity.Post
	notifications []*entity.Notification // más reciente primero
	counters      map[string]int64
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{
		transactions: make(map[string]*entity.Transaction),
		users:        make(map[string]*entity.User),
		posts:        make(map[string]*entity.Post),
		counters:     make(map[string]int64),
	}
}

func cloneTx(t *entity.Transaction) *entity.Transaction {
	if t == nil {
		return nil
	}
	c := *t
	if t.Logistics != nil {
		l := *t.Logistics
		c.Logistics = &l
	}
	if t.EscrowHeldAt != nil {
		at := *t.EscrowHeldAt
		c.EscrowHeldAt = &at
	}
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	return &c
}

func cloneUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u
	c.Roles = append([]entity.Role(nil), u.Roles...)
	return &c
}

func clonePost(p *entity.Post) *entity.Post {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func cloneNotif(n *entity.Notification) *entity.Notification {
	if n == nil {
		return nil
	}
	c := *n
	return &c
}
