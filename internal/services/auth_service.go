package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkoster/tally/internal/models"
	"github.com/mkoster/tally/internal/store"
)

const tokenTTL = 7 * 24 * time.Hour

var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token verification failures. The API reports them all the same
	// way; they stay distinct here so logs and tests can tell a clock
	// problem from a tampered credential.
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("token signature mismatch")
)

// Claims is the identity a verified token carries.
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService registers and authenticates users and issues the bearer
// tokens habit mutations require.
type AuthService struct {
	store  store.Store
	secret []byte
	now    func() time.Time
}

func NewAuthService(documents store.Store, secret []byte) *AuthService {
	return &AuthService{store: documents, secret: secret, now: time.Now}
}

// Register creates a user and returns it with a signed token. Email
// uniqueness is case-sensitive equality against stored addresses.
func (service *AuthService) Register(email string, password string) (models.User, string, error) {
	document, err := service.store.Load()
	if err != nil {
		return models.User{}, "", err
	}

	for _, user := range document.Users {
		if user.Email == email {
			return models.User{}, "", ErrEmailTaken
		}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(passwordHash),
		CreatedAt:    service.now(),
	}
	document.Users = append(document.Users, user)
	if err := service.store.Save(document); err != nil {
		return models.User{}, "", err
	}

	token, err := service.IssueToken(user)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
// Unknown email and wrong password are indistinguishable to the caller.
func (service *AuthService) Login(email string, password string) (models.User, string, error) {
	document, err := service.store.Load()
	if err != nil {
		return models.User{}, "", err
	}

	for _, user := range document.Users {
		if user.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return models.User{}, "", ErrInvalidCredentials
		}
		token, err := service.IssueToken(user)
		if err != nil {
			return models.User{}, "", err
		}
		return user, token, nil
	}
	return models.User{}, "", ErrInvalidCredentials
}

func (service *AuthService) IssueToken(user models.User) (string, error) {
	now := service.now()
	claims := Claims{
		ID:    user.ID,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(service.secret)
}

// VerifyToken validates signature and expiry and yields the embedded
// identity.
func (service *AuthService) VerifyToken(rawToken string) (Claims, error) {
	claims := Claims{}
	token, err := jwt.ParseWithClaims(rawToken, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return service.secret, nil
	}, jwt.WithTimeFunc(service.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrTokenSignature
		default:
			return Claims{}, ErrTokenMalformed
		}
	}
	if !token.Valid || claims.ID == "" {
		return Claims{}, ErrTokenMalformed
	}
	return claims, nil
}
