package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lunitaval/ventas-api/internal/application/dto"
	"github.com/lunitaval/ventas-api/internal/domain"
	"github.com/lunitaval/ventas-api/internal/domain/entity"
	"github.com/lunitaval/ventas-api/internal/domain/repository"
	"github.com/lunitaval/ventas-api/pkg/jwt"
)

// JWTConfig parámetros de emisión de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase autenticación de usuarios del back-office.
type UseCase struct {
	users repository.UserRepository
	cfg   JWTConfig
}

// NewUseCase construye el caso de uso.
func NewUseCase(users repository.UserRepository, cfg JWTConfig) *UseCase {
	return &UseCase{users: users, cfg: cfg}
}

// Register crea un usuario con la contraseña hasheada con bcrypt.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	username := strings.TrimSpace(strings.ToLower(in.Username))
	if username == "" || len(in.Password) < 8 {
		return nil, domain.Validationf("username es obligatorio y password debe tener al menos 8 caracteres")
	}
	existing, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.issueToken(user)
}

// Login verifica credenciales y emite un JWT.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	username := strings.TrimSpace(strings.ToLower(in.Username))
	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issueToken(user)
}

func (uc *UseCase) issueToken(user *entity.User) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.cfg.Secret, user.ID, user.Username, uc.cfg.Issuer, uc.cfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, UserID: user.ID, Username: user.Username}, nil
}
