package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pashagolub/pgxmock/v3"
	"golang.org/x/crypto/bcrypt"
)

var pgErr = errors.New("db error")

var userColumns = []string{"id", "email", "display_name", "password_hash", "created_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestRegisterAndLogin(t *testing.T) {
	mock := newMock(t)
	createdAt := time.Now().Add(-time.Minute)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), "shooter@example.com", "Shooter One", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := NewService("test-secret", mock)
	user, tokens, err := svc.Register(context.Background(), RegisterRequest{
		Email:       " Shooter@Example.com ",
		DisplayName: "Shooter One",
		Password:    "password123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" || tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatalf("expected user and tokens")
	}
	if user.Email != "shooter@example.com" {
		t.Fatalf("email not normalised: %q", user.Email)
	}

	mock.ExpectQuery(`SELECT id, email, display_name, password_hash, created_at`).
		WithArgs("shooter@example.com").
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(user.ID, user.Email, user.DisplayName, user.PasswordHash, createdAt))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), user.ID, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	_, loginTokens, err := svc.Login(context.Background(), LoginRequest{Email: "shooter@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loginTokens.AccessToken == "" || loginTokens.TokenType != "Bearer" {
		t.Fatalf("unexpected login tokens: %+v", loginTokens)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestValidateRefreshToken(t *testing.T) {
	mock := newMock(t)

	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), "user-1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := NewService("test-secret", mock)
	tokens, err := svc.GenerateTokens(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("generate tokens: %v", err)
	}

	mock.ExpectQuery(`SELECT user_id, expires_at`).
		WithArgs(tokens.RefreshToken).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "expires_at"}).AddRow("user-1", time.Now().Add(5*time.Minute)))

	userID, err := svc.ValidateRefreshToken(context.Background(), tokens.RefreshToken)
	if err != nil {
		t.Fatalf("validate refresh: %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("unexpected user_id: %s", userID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	svc := NewService("test-secret", newMock(t))
	_, _, err := svc.Register(context.Background(), RegisterRequest{Email: "", Password: "p"})
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestLoginInvalidPassword(t *testing.T) {
	mock := newMock(t)
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)

	mock.ExpectQuery(`SELECT id, email, display_name, password_hash, created_at`).
		WithArgs("shooter@example.com").
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow("user-1", "shooter@example.com", "", string(hash), time.Now()))

	svc := NewService("test-secret", mock)
	_, _, err := svc.Login(context.Background(), LoginRequest{Email: "shooter@example.com", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGenerateTokensSaveRefreshError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), "user-1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(pgErr)

	svc := NewService("test-secret", mock)
	if _, err := svc.GenerateTokens(context.Background(), "user-1"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestGenerateTokensAccessSignError(t *testing.T) {
	oldSign := signTokenFn
	signTokenFn = func(_ *Service, _ string, _ time.Duration) (string, error) {
		return "", pgErr
	}
	defer func() { signTokenFn = oldSign }()

	svc := NewService("test-secret", nil)
	if _, err := svc.GenerateTokens(context.Background(), "user-1"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestGenerateTokensRefreshSignError(t *testing.T) {
	oldSign := signTokenFn
	call := 0
	signTokenFn = func(_ *Service, _ string, _ time.Duration) (string, error) {
		call++
		if call == 2 {
			return "", pgErr
		}
		return "token", nil
	}
	defer func() { signTokenFn = oldSign }()

	svc := NewService("test-secret", nil)
	if _, err := svc.GenerateTokens(context.Background(), "user-1"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRegisterHashError(t *testing.T) {
	oldHash := hashPasswordFn
	hashPasswordFn = func(_ []byte, _ int) ([]byte, error) {
		return nil, pgErr
	}
	defer func() { hashPasswordFn = oldHash }()

	svc := NewService("test-secret", nil)
	_, _, err := svc.Register(context.Background(), RegisterRequest{Email: "shooter@example.com", Password: "pass"})
	if !errors.Is(err, pgErr) {
		t.Fatalf("expected hash error, got %v", err)
	}
}

func TestParseTokenInvalid(t *testing.T) {
	oldParse := parseWithClaimsFn
	parseWithClaimsFn = func(_ string, _ jwt.Claims, _ jwt.Keyfunc, _ ...jwt.ParserOption) (*jwt.Token, error) {
		return &jwt.Token{Valid: false, Claims: &Claims{}}, nil
	}
	defer func() { parseWithClaimsFn = oldParse }()

	svc := NewService("test-secret", nil)
	if _, err := svc.parseToken("token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateAccessToken(t *testing.T) {
	svc := NewService("test-secret", nil)
	if _, err := svc.ValidateAccessToken("invalid-token"); err == nil {
		t.Fatalf("expected error")
	}

	token, err := svc.signToken("user-9", accessTokenTTL)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	userID, err := svc.ValidateAccessToken(token)
	if err != nil || userID != "user-9" {
		t.Fatalf("validate: %q %v", userID, err)
	}

	other := NewService("other-secret", nil)
	if _, err := other.ValidateAccessToken(token); err == nil {
		t.Fatalf("expected signature mismatch")
	}
}

func TestRegisterDBError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), "shooter@example.com", "", pgxmock.AnyArg()).
		WillReturnError(pgErr)

	svc := NewService("test-secret", mock)
	_, _, err := svc.Register(context.Background(), RegisterRequest{Email: "shooter@example.com", Password: "pass"})
	if err == nil {
		t.Fatalf("expected db error")
	}
}

func TestLoginQueryError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT id, email, display_name, password_hash, created_at`).
		WithArgs("shooter@example.com").
		WillReturnError(pgErr)

	svc := NewService("test-secret", mock)
	_, _, err := svc.Login(context.Background(), LoginRequest{Email: "shooter@example.com", Password: "pass"})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestRegisterGenerateTokensError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), "shooter@example.com", "", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(pgErr)

	svc := NewService("test-secret", mock)
	_, _, err := svc.Register(context.Background(), RegisterRequest{Email: "shooter@example.com", Password: "pass"})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoginGenerateTokensError(t *testing.T) {
	mock := newMock(t)
	hash, _ := bcrypt.GenerateFromPassword([]byte("pass"), bcrypt.MinCost)

	mock.ExpectQuery(`SELECT id, email, display_name, password_hash, created_at`).
		WithArgs("shooter@example.com").
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow("user-1", "shooter@example.com", "", string(hash), time.Now()))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), "user-1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(pgErr)

	svc := NewService("test-secret", mock)
	_, _, err := svc.Login(context.Background(), LoginRequest{Email: "shooter@example.com", Password: "pass"})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestValidateRefreshTokenExpired(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), "user-2", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := NewService("test-secret", mock)
	tokens, err := svc.GenerateTokens(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("generate tokens: %v", err)
	}

	mock.ExpectQuery(`SELECT user_id, expires_at`).
		WithArgs(tokens.RefreshToken).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "expires_at"}).AddRow("user-2", time.Now().Add(-time.Minute)))

	if _, err := svc.ValidateRefreshToken(context.Background(), tokens.RefreshToken); err == nil {
		t.Fatalf("expected expired token error")
	}
}

func TestValidateRefreshTokenLookupError(t *testing.T) {
	mock := newMock(t)
	svc := NewService("test-secret", mock)

	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), "user-3", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	tokens, err := svc.GenerateTokens(context.Background(), "user-3")
	if err != nil {
		t.Fatalf("generate tokens: %v", err)
	}

	mock.ExpectQuery(`SELECT user_id, expires_at`).
		WithArgs(tokens.RefreshToken).
		WillReturnError(pgErr)

	if _, err := svc.ValidateRefreshToken(context.Background(), tokens.RefreshToken); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRevokeRefreshToken(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`UPDATE refresh_tokens SET revoked_at`).
		WithArgs("tok").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	svc := NewService("test-secret", mock)
	if err := svc.RevokeRefreshToken(context.Background(), "tok"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
