package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"go-rentify/internal/model"
	"go-rentify/pkg/apierror"
)

var (
	namePattern  = regexp.MustCompile(`^[a-zA-Z0-9_@]+(?: [a-zA-Z0-9_@]+)*$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

const maxNameLength = 10

type AuthService struct {
	users      UserStore
	tokens     TokenStore
	issuer     *TokenIssuer
	bcryptCost int
}

func NewAuthService(users UserStore, tokens TokenStore, issuer *TokenIssuer) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		issuer:     issuer,
		bcryptCost: 12,
	}
}

func (s *AuthService) Login(ctx context.Context, email string, password string) (model.LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, model.NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, model.ErrUserNotFound) {
			slog.Error("login user lookup failed", "error", err)
		}
		return model.LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.LoginResult{}, model.ErrInvalidCredentials
	}

	issued, err := s.issuer.Issue(ctx, user.ID, user.Role)
	if err != nil {
		return model.LoginResult{}, err
	}

	slog.Info("user logged in", "user_id", user.ID, "token_id", issued.TokenID, "expires_at", issued.ExpiresAt)
	return model.LoginResult{Token: issued.Credential, User: user.Public()}, nil
}

// Logout revokes the caller's current session. Revoking an already revoked
// session succeeds.
func (s *AuthService) Logout(ctx context.Context, principal model.Principal) error {
	return s.Revoke(ctx, model.RevokeTarget{TokenID: principal.TokenID, UserID: principal.UserID})
}

func (s *AuthService) Revoke(ctx context.Context, target model.RevokeTarget) error {
	var err error
	switch {
	case target.TokenID != "":
		err = s.tokens.DeleteByTokenID(ctx, target.TokenID)
	case target.UserID != "":
		err = s.tokens.DeleteByUser(ctx, target.UserID)
	default:
		return apierror.BadRequest("token id or user id is required", "")
	}
	if err != nil {
		slog.Error("revoke session failed", "token_id", target.TokenID, "user_id", target.UserID, "error", err)
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.PublicUser, error) {
	email := model.NormalizeEmail(req.Email)
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	phone := strings.TrimSpace(req.PhoneNumber)

	if !emailPattern.MatchString(email) {
		return model.PublicUser{}, apierror.BadRequest("a valid email is required", "email")
	}
	if err := validateName("firstName", firstName); err != nil {
		return model.PublicUser{}, err
	}
	if err := validateName("lastName", lastName); err != nil {
		return model.PublicUser{}, err
	}
	if !validPassword(req.Password) {
		return model.PublicUser{}, apierror.BadRequest("password must be at least 8 characters and contain a letter, a digit and a symbol", "password")
	}
	if !phonePattern.MatchString(phone) {
		return model.PublicUser{}, apierror.BadRequest("phone number must be 10 digits", "phoneNumber")
	}
	role, ok := model.ParseRole(req.UserType)
	if !ok {
		return model.PublicUser{}, apierror.BadRequest("userType must be BUYER or SELLER", "userType")
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		slog.Error("register email lookup failed", "error", err)
		return model.PublicUser{}, err
	}
	if exists {
		return model.PublicUser{}, apierror.Conflict(email+" is already registered, please login", "email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PhoneNumber:  phone,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if !errors.Is(err, model.ErrUserAlreadyExists) {
			slog.Error("create user failed", "error", err)
		}
		return model.PublicUser{}, err
	}

	slog.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user.Public(), nil
}

func (s *AuthService) Me(ctx context.Context, principal model.Principal) (model.PublicUser, error) {
	user, err := s.users.FindByID(ctx, principal.UserID)
	if err != nil {
		return model.PublicUser{}, err
	}
	return user.Public(), nil
}

func validateName(field string, value string) error {
	if value == "" {
		return apierror.BadRequest(field+" is required", field)
	}
	if utf8.RuneCountInString(value) > maxNameLength || !namePattern.MatchString(value) {
		return apierror.BadRequest(field+" must be at most 10 characters without special characters or repeated spaces", field)
	}
	return nil
}

func validPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var letter, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		case r > ' ' && r <= '~':
			symbol = true
		}
	}
	return letter && digit && symbol
}
