package auth

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/invetex/cortes-api/internal/domain"
	"github.com/invetex/cortes-api/internal/domain/entity"
	"github.com/invetex/cortes-api/internal/domain/repository"
	"github.com/invetex/cortes-api/pkg/config"
	"github.com/invetex/cortes-api/pkg/jwt"
)

// AuthUseCase registro y autenticación de usuarios. Las contraseñas se
// almacenan con bcrypt; el login emite un JWT con user, empresa y rol.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	jwtCfg      config.JWTConfig
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, jwtCfg config.JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, jwtCfg: jwtCfg}
}

// RegisterInput entrada para registrar un usuario.
type RegisterInput struct {
	CompanyID string
	Email     string
	Name      string
	Password  string
	Role      string
}

// Register crea un usuario con la contraseña hasheada. La empresa debe existir
// y el email no puede estar en uso dentro de la empresa.
func (uc *AuthUseCase) Register(in RegisterInput) (*entity.User, error) {
	if in.CompanyID == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Role {
	case entity.RoleAdmin, entity.RoleBodeguero, entity.RoleComprador:
	default:
		return nil, domain.ErrInvalidInput
	}

	company, err := uc.companyRepo.GetByID(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	existing, err := uc.userRepo.GetByEmailAndCompany(in.Email, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		CompanyID:    in.CompanyID,
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login valida credenciales y devuelve el token firmado junto con el usuario.
func (uc *AuthUseCase) Login(companyID, email, password string) (string, *entity.User, error) {
	if companyID == "" || email == "" || password == "" {
		return "", nil, domain.ErrInvalidInput
	}
	u, err := uc.userRepo.GetByEmailAndCompany(email, companyID)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.CompanyID, u.Role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}
