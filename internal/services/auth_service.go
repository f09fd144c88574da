package services

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"humorpedia/internal/apperr"
	"humorpedia/internal/models"
	"humorpedia/internal/repository"
)

const tokenTTL = 7 * 24 * time.Hour

// Claims is the JWT payload: subject is the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	users  *repository.UserRepository
	secret []byte
}

func NewAuthService(users *repository.UserRepository, secret string) *AuthService {
	return &AuthService{users: users, secret: []byte(secret)}
}

// TokenTTL is the lifetime of issued tokens, exposed for the login
// response's expires_in field.
func (s *AuthService) TokenTTL() time.Duration {
	return tokenTTL
}

// Register creates a user account with the lowest role.
func (s *AuthService) Register(username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperr.BadRequest("имя пользователя и пароль обязательны")
	}
	if len(password) < 8 {
		return nil, apperr.BadRequest("пароль должен быть не короче 8 символов")
	}
	if _, err := s.users.FindByUsername(username); err == nil {
		return nil, apperr.Conflict("имя пользователя занято")
	}
	if email != "" {
		if _, err := s.users.FindByEmail(email); err == nil {
			return nil, apperr.Conflict("email уже зарегистрирован")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Active:       true,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a signed token. The same error is
// returned for a wrong password and an unknown user.
func (s *AuthService) Login(username, password string) (string, *models.User, error) {
	user, err := s.users.FindByUsername(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, apperr.Unauthorized("неверное имя пользователя или пароль")
	}
	if err != nil {
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperr.Unauthorized("неверное имя пользователя или пароль")
	}
	if !user.Active || user.Banned {
		return "", nil, apperr.Forbidden("учётная запись заблокирована")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	if err := s.users.UpdateFields(user.ID, map[string]interface{}{"last_login_at": now}); err == nil {
		user.LastLoginAt = &now
	}
	return token, user, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken validates a bearer token and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperr.Unauthorized("недействительный токен")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperr.Unauthorized("недействительный токен")
	}
	return claims, nil
}

// CurrentUser resolves token claims to a live user record.
func (s *AuthService) CurrentUser(claims *Claims) (*models.User, error) {
	user, err := s.users.FindByID(claims.Subject)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unauthorized("пользователь не найден")
	}
	if err != nil {
		return nil, err
	}
	if !user.Active || user.Banned {
		return nil, apperr.Forbidden("учётная запись заблокирована")
	}
	return user, nil
}
