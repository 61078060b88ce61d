package service

import (
	"errors"

	"sivitb/config"
	"sivitb/internal/auth"
	"sivitb/internal/domain"
	"sivitb/internal/models"
	"sivitb/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExiste           = errors.New("el email ya está registrado")
	ErrCredencialesInvalidas = errors.New("email o contraseña inválidos")
	ErrUsuarioInactivo       = errors.New("el usuario está inactivo")
	ErrRolInvalido           = errors.New("rol inválido")
)

type AuthService struct {
	cfg         *config.Config
	usuarioRepo *repository.UsuarioRepository
}

func NewAuthService(cfg *config.Config, usuarioRepo *repository.UsuarioRepository) *AuthService {
	return &AuthService{cfg: cfg, usuarioRepo: usuarioRepo}
}

func (s *AuthService) Register(nombre, email, password, rol string, establecimientoID *uint) (*models.Usuario, error) {
	switch rol {
	case domain.RoleAdmin, domain.RoleMedico, domain.RoleEnfermero:
	default:
		return nil, ErrRolInvalido
	}
	_, err := s.usuarioRepo.GetByEmail(email)
	if err == nil {
		return nil, ErrEmailExiste
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &models.Usuario{
		Nombre:            nombre,
		Email:             email,
		PasswordHash:      string(hash),
		Rol:               rol,
		EstablecimientoID: establecimientoID,
		Activo:            true,
	}
	if err := s.usuarioRepo.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Login(email, password string) (*models.Usuario, string, string, error) {
	u, err := s.usuarioRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrCredencialesInvalidas
		}
		return nil, "", "", err
	}
	if !u.Activo {
		return nil, "", "", ErrUsuarioInactivo
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrCredencialesInvalidas
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Rol, u.EstablecimientoID)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	id, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return "", err
	}
	u, err := s.usuarioRepo.GetByID(id)
	if err != nil || !u.Activo {
		return "", auth.ErrInvalidToken
	}
	return auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Rol, u.EstablecimientoID)
}

// ChangePassword updates the user's password after verifying the current one.
func (s *AuthService) ChangePassword(usuarioID uint, actual, nueva string) error {
	u, err := s.usuarioRepo.GetByID(usuarioID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(actual)); err != nil {
		return ErrCredencialesInvalidas
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(nueva), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.usuarioRepo.Update(u)
}
