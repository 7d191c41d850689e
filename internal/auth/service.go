package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Nageshwar17/Ganesh-Mandapam-Org/apperr"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/config"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/middleware"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/utils"
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Service interface {
	Register(in RegisterRequest) error
	Login(in LoginRequest) (*TokenPair, *User, error)
	LoginWithFirebase(ctx context.Context, idToken string) (*TokenPair, *User, error)
	Refresh(refreshToken string) (string, error)
	GetUserByID(userID uint) (User, error)

	// IdentityByID makes the service usable as middleware.UserLoader.
	IdentityByID(userID uint) (middleware.Identity, error)
}

type service struct {
	repo          Repository
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(r Repository, cfg *config.Config) Service {
	return &service{
		repo:          r,
		accessSecret:  cfg.JWTAccessSecret,
		refreshSecret: cfg.JWTRefreshSecret,
		accessTTL:     time.Duration(cfg.JWTAccessTTLHours) * time.Hour,
		refreshTTL:    time.Duration(cfg.JWTRefreshTTLHours) * time.Hour,
	}
}

// =============================
// Register / Login (email + password)
// =============================

func (s *service) Register(in RegisterRequest) error {
	if _, err := s.repo.FindByEmail(in.Email); err == nil {
		return apperr.Validation("an account with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.FromDB(err, "")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &User{
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         middleware.RoleMember,
	}

	if err := s.repo.Create(user); err != nil {
		return apperr.FromDB(err, "")
	}
	return nil
}

func (s *service) Login(in LoginRequest) (*TokenPair, *User, error) {
	user, err := s.repo.FindByEmail(in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("couldn't find your account")
		}
		return nil, nil, apperr.FromDB(err, "")
	}

	if user.PasswordHash == "" {
		return nil, nil, apperr.Validation("this account signs in with Google")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, nil, apperr.Forbidden("invalid credentials")
	}

	pair, err := s.tokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// =============================
// Firebase sign-in
// =============================

// LoginWithFirebase verifies a Firebase ID token, upserts the matching user
// and mints the usual token pair.
func (s *service) LoginWithFirebase(ctx context.Context, idToken string) (*TokenPair, *User, error) {
	identity, err := utils.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, nil, apperr.Forbidden("invalid Firebase token")
	}
	if identity.Email == "" {
		return nil, nil, apperr.Validation("Firebase token carries no email")
	}

	user, err := s.repo.FindByFirebaseUID(identity.UID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// First sign-in: link by email if the account exists, else create it.
		user, err = s.repo.FindByEmail(identity.Email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = &User{
				FullName:    identity.Name,
				Email:       identity.Email,
				FirebaseUID: &identity.UID,
				PhotoURL:    identity.PhotoURL,
				Role:        middleware.RoleMember,
			}
			if err := s.repo.Create(user); err != nil {
				return nil, nil, apperr.FromDB(err, "")
			}
		} else if err != nil {
			return nil, nil, apperr.FromDB(err, "")
		} else {
			user.FirebaseUID = &identity.UID
			if user.PhotoURL == "" {
				user.PhotoURL = identity.PhotoURL
			}
			if err := s.repo.Update(user); err != nil {
				return nil, nil, apperr.FromDB(err, "")
			}
		}
	} else if err != nil {
		return nil, nil, apperr.FromDB(err, "")
	}

	pair, err := s.tokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// =============================
// Tokens
// =============================

func (s *service) tokenPair(user *User) (*TokenPair, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *service) generateAccessToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(s.accessTTL).Unix(),
	}
	if user.MandapamID != nil {
		claims["mandapam_id"] = *user.MandapamID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.accessSecret))
}

func (s *service) generateRefreshToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.refreshTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.refreshSecret))
}

func (s *service) Refresh(refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.refreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", apperr.Forbidden("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["user_id"] == nil {
		return "", apperr.Forbidden("invalid token claims")
	}

	user, err := s.repo.FindByID(uint(claims["user_id"].(float64)))
	if err != nil {
		return "", apperr.FromDB(err, "user not found")
	}

	return s.generateAccessToken(&user)
}

// =============================
// Lookups
// =============================

func (s *service) GetUserByID(userID uint) (User, error) {
	return s.repo.FindByID(userID)
}

func (s *service) IdentityByID(userID uint) (middleware.Identity, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return middleware.Identity{}, err
	}
	return middleware.Identity{
		UserID:     user.ID,
		Email:      user.Email,
		FullName:   user.FullName,
		PhotoURL:   user.PhotoURL,
		Role:       user.Role,
		MandapamID: user.MandapamID,
	}, nil
}
