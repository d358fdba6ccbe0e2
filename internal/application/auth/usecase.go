package auth

import (
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Account credenciales de una cuenta sembrada desde configuración.
// Password viene en claro del entorno y se hashea una sola vez en SeedUsers.
type Account struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// AuthUseCase login contra las cuentas sembradas. Operación pequeña,
// mono-inquilino: no hay colección persistida de usuarios ni registro abierto.
type AuthUseCase struct {
	users  map[string]*entity.User // por email
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso con las cuentas ya sembradas.
func NewAuthUseCase(users []*entity.User, jwtCfg JWTConfig) *AuthUseCase {
	byEmail := make(map[string]*entity.User, len(users))
	for _, u := range users {
		byEmail[u.Email] = u
	}
	return &AuthUseCase{users: byEmail, jwtCfg: jwtCfg}
}

// SeedUsers hashea con bcrypt las cuentas de configuración. Cuentas sin
// email o sin password se descartan.
func SeedUsers(accounts []Account) ([]*entity.User, error) {
	users := make([]*entity.User, 0, len(accounts))
	for _, acc := range accounts {
		if acc.Email == "" || acc.Password == "" {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		name := acc.Name
		if name == "" {
			name = acc.Email
		}
		role := acc.Role
		if role == "" {
			role = entity.RoleOperador
		}
		users = append(users, &entity.User{
			Email:        acc.Email,
			PasswordHash: string(hash),
			Name:         name,
			Role:         role,
		})
	}
	return users, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, ok := uc.users[in.Email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
	}, nil
}
