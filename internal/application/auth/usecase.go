// Package auth registro, acceso y verificación de identidad. La mecánica de
// identidad pesada (OAuth, sesiones) queda fuera; aquí vive lo mínimo que el
// núcleo necesita leer: roles y estado de verificación.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/prolist-cm/protect-api/internal/application/dto"
	"github.com/prolist-cm/protect-api/internal/domain"
	"github.com/prolist-cm/protect-api/internal/domain/entity"
	"github.com/prolist-cm/protect-api/internal/domain/permission"
	"github.com/prolist-cm/protect-api/internal/domain/repository"
	"github.com/prolist-cm/protect-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación y verificación.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario buyer/seller: hashea el PIN con bcrypt y persiste.
// Devuelve ErrPhoneAlreadyExists si el teléfono ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.GetByPhone(ctx, in.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrPhoneAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:      uuid.New().String(),
		Phone:   in.Phone,
		Email:   in.Email,
		Name:    in.Name,
		City:    in.City,
		PinHash: string(hash),
		// Todo usuario nuevo puede comprar y vender; vender exige verificarse.
		Roles:              []entity.Role{entity.RoleBuyer, entity.RoleSeller},
		VerificationStatus: entity.VerificationUnverified,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica teléfono/PIN, genera JWT con el set de roles y retorna
// token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByPhone(ctx, in.Phone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PinHash), []byte(in.Pin)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Phone, rolesToStrings(user.Roles), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *ToUserResponse(user)}, nil
}

// GetUser carga un usuario por id.
func (uc *AuthUseCase) GetUser(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// SubmitVerification pasa al usuario a PENDING para revisión del admin.
func (uc *AuthUseCase) SubmitVerification(ctx context.Context, user *entity.User) error {
	if user == nil {
		return domain.ErrUnauthorized
	}
	if user.VerificationStatus == entity.VerificationVerified {
		return nil
	}
	user.VerificationStatus = entity.VerificationPending
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(ctx, user)
}

// ReviewVerification decisión del admin sobre una verificación PENDING.
func (uc *AuthUseCase) ReviewVerification(ctx context.Context, reviewer *entity.User, userID string, in dto.ReviewVerificationRequest) (*dto.UserResponse, error) {
	if reviewer == nil || !reviewer.HasRole(entity.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Approve {
		user.VerificationStatus = entity.VerificationVerified
	} else {
		user.VerificationStatus = entity.VerificationRejected
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// ListAgents lista los agentes disponibles (para el paso de asignación).
func (uc *AuthUseCase) ListAgents(ctx context.Context, user *entity.User, page dto.PageRequest) ([]*dto.UserResponse, error) {
	if user == nil || !user.HasRole(entity.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	agents, err := uc.userRepo.ListByRole(ctx, entity.RoleAgent, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(agents))
	for _, a := range agents {
		out = append(out, ToUserResponse(a))
	}
	return out, nil
}

// ToUserResponse mapea la entidad a su representación pública.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:                 u.ID,
		Phone:              u.Phone,
		Email:              u.Email,
		Name:               u.Name,
		City:               u.City,
		Roles:              rolesToStrings(u.Roles),
		PrimaryRole:        string(permission.PrimaryRole(u.Roles)),
		VerificationStatus: u.VerificationStatus,
		CreatedAt:          u.CreatedAt,
	}
}

func rolesToStrings(roles []entity.Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}
	return out
}
