// seed crea o actualiza un usuario operativo (admin o agente) directamente en
// la base de datos. Los admins no se registran por la API pública.
//
// Uso: go run ./cmd/seed -phone +237670000001 -name "Ops Douala" -pin 2468 -role admin
// Si el teléfono ya existe, solo agrega el rol pedido (el PIN no se toca).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/prolist-cm/protect-api/internal/domain/entity"
	"github.com/prolist-cm/protect-api/internal/infrastructure/postgres"
	"github.com/prolist-cm/protect-api/pkg/config"
)

func main() {
	phone := flag.String("phone", "", "teléfono en formato e164 (+237...)")
	name := flag.String("name", "", "nombre del usuario")
	pin := flag.String("pin", "", "PIN de acceso (solo para usuarios nuevos)")
	city := flag.String("city", "Douala", "ciudad")
	role := flag.String("role", "admin", "rol a otorgar: admin o agent")
	flag.Parse()

	if *phone == "" || *name == "" {
		flag.Usage()
		os.Exit(2)
	}
	r := entity.Role(*role)
	if r != entity.RoleAdmin && r != entity.RoleAgent {
		fmt.Fprintf(os.Stderr, "rol desconocido: %s\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conectar a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)

	existing, err := userRepo.GetByPhone(ctx, *phone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Buscar usuario: %v\n", err)
		os.Exit(1)
	}

	if existing != nil {
		if existing.HasRole(r) {
			fmt.Printf("%s ya tiene el rol %s\n", existing.Name, r)
			return
		}
		existing.Roles = append(existing.Roles, r)
		existing.UpdatedAt = time.Now()
		if err := userRepo.Update(ctx, existing); err != nil {
			fmt.Fprintf(os.Stderr, "Actualizar usuario: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Rol %s otorgado a %s (%s)\n", r, existing.Name, existing.ID)
		return
	}

	if *pin == "" {
		fmt.Fprintln(os.Stderr, "El usuario no existe: -pin es obligatorio para crearlo")
		os.Exit(2)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(*pin), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hashear PIN: %v\n", err)
		os.Exit(1)
	}

	now := time.Now()
	user := &entity.User{
		ID:      uuid.New().String(),
		Phone:   *phone,
		Name:    *name,
		City:    *city,
		PinHash: string(hash),
		// El personal operativo entra verificado: no pasa por la revisión.
		Roles:              []entity.Role{entity.RoleBuyer, r},
		VerificationStatus: entity.VerificationVerified,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		fmt.Fprintf(os.Stderr, "Crear usuario: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Usuario %s creado con rol %s (%s)\n", user.Name, r, user.ID)
}
