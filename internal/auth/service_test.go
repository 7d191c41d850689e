package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Nageshwar17/Ganesh-Mandapam-Org/apperr"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/config"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/middleware"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	cfg := &config.Config{
		JWTAccessSecret:    "test-access-secret",
		JWTRefreshSecret:   "test-refresh-secret",
		JWTAccessTTLHours:  1,
		JWTRefreshTTLHours: 24,
	}
	return NewService(NewRepository(db), cfg)
}

func register(t *testing.T, svc Service) {
	t.Helper()
	err := svc.Register(RegisterRequest{
		FullName: "Nagesh Patil",
		Email:    "nagesh@example.com",
		Password: "ganpati123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	register(t, svc)

	err := svc.Register(RegisterRequest{FullName: "Other", Email: "nagesh@example.com", Password: "secret12"})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error on duplicate email, got %v", err)
	}
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc := newTestService(t)
	register(t, svc)

	pair, user, err := svc.Login(LoginRequest{Email: "nagesh@example.com", Password: "ganpati123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if user.Role != middleware.RoleMember {
		t.Errorf("new user role = %q, want member", user.Role)
	}

	// The access token carries the user ID the middleware loads by.
	token, err := jwt.Parse(pair.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-access-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("access token should verify: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if uint(claims["user_id"].(float64)) != user.ID {
		t.Errorf("user_id claim = %v, want %d", claims["user_id"], user.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)
	register(t, svc)

	_, _, err := svc.Login(LoginRequest{Email: "nagesh@example.com", Password: "wrong"})
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden for wrong password, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(t)
	_, _, err := svc.Login(LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRefreshMintsNewAccessToken(t *testing.T) {
	svc := newTestService(t)
	register(t, svc)

	pair, _, err := svc.Login(LoginRequest{Email: "nagesh@example.com", Password: "ganpati123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	access, err := svc.Refresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if access == "" {
		t.Error("expected a fresh access token")
	}

	// An access token is signed with the other secret and must be refused.
	if _, err := svc.Refresh(pair.AccessToken); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("refresh with access token: expected forbidden, got %v", err)
	}
	if _, err := svc.Refresh("not-a-token"); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("garbage token: expected forbidden, got %v", err)
	}
}

func TestIdentityByID(t *testing.T) {
	svc := newTestService(t)
	register(t, svc)

	_, user, err := svc.Login(LoginRequest{Email: "nagesh@example.com", Password: "ganpati123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	identity, err := svc.IdentityByID(user.ID)
	if err != nil {
		t.Fatalf("IdentityByID: %v", err)
	}
	if identity.Email != "nagesh@example.com" || identity.Role != middleware.RoleMember {
		t.Errorf("identity = %+v", identity)
	}
	if identity.IsAdmin(1) {
		t.Error("plain member must not pass the admin check")
	}
}
