package permission

import "github.com/prolist-cm/protect-api/internal/domain/entity"

// rolePriority orden total para derivar el rol primario de un set multi-rol.
var rolePriority = []entity.Role{
	entity.RoleAdmin,
	entity.RoleAgent,
	entity.RoleSeller,
	entity.RoleBuyer,
}

// PrimaryRole deriva el rol usado para decisiones de presentación cuando el
// usuario tiene varios, con prioridad admin > agent > seller > buyer.
// Un set vacío se trata como buyer.
func PrimaryRole(roles []entity.Role) entity.Role {
	for _, p := range rolePriority {
		for _, r := range roles {
			if r == p {
				return p
			}
		}
	}
	return entity.RoleBuyer
}
