package app

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shelterlink/api/internal/clock"
	"github.com/shelterlink/api/internal/domain"
)

type StaffRepository interface {
	GetStaff(ctx context.Context, id string) (domain.Staff, error)
	GetStaffByEmail(ctx context.Context, email string) (domain.Staff, error)
}

// Mailer delivers the magic link; the service does not care how.
type Mailer interface {
	SendMagicLink(ctx context.Context, email, link string) error
}

const (
	magicLinkTTL   = time.Hour
	accessTokenTTL = 24 * time.Hour
)

type AuthService struct {
	staff        StaffRepository
	mailer       Mailer
	clock        clock.Clock
	linkSecret   []byte
	accessSecret []byte
	linkBaseURL  string
}

func NewAuthService(staff StaffRepository, mailer Mailer, clk clock.Clock, linkSecret, accessSecret []byte, linkBaseURL string) *AuthService {
	return &AuthService{
		staff:        staff,
		mailer:       mailer,
		clock:        clk,
		linkSecret:   linkSecret,
		accessSecret: accessSecret,
		linkBaseURL:  linkBaseURL,
	}
}

// RequestMagicLink signs a short-lived login token for a known staff email
// and hands the resulting link to the mailer.
func (s *AuthService) RequestMagicLink(ctx context.Context, email string) error {
	if email == "" {
		return domain.ErrEmailRequired
	}
	staff, err := s.staff.GetStaffByEmail(ctx, email)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   staff.ID,
		"email": staff.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(magicLinkTTL).Unix(),
	})
	signed, err := token.SignedString(s.linkSecret)
	if err != nil {
		return fmt.Errorf("sign magic link token: %w", err)
	}

	link := fmt.Sprintf("%s?token=%s", s.linkBaseURL, signed)
	return s.mailer.SendMagicLink(ctx, staff.Email, link)
}

// VerifyMagicLink validates a link token, re-checks the staff row and issues
// a 24 hour access token carrying role claims.
func (s *AuthService) VerifyMagicLink(ctx context.Context, token string) (string, domain.Staff, error) {
	claims, err := s.parseClaims(token, s.linkSecret)
	if err != nil {
		return "", domain.Staff{}, domain.ErrInvalidToken
	}

	staffID, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if staffID == "" || email == "" {
		return "", domain.Staff{}, domain.ErrInvalidToken
	}

	staff, err := s.staff.GetStaff(ctx, staffID)
	if err != nil || staff.Email != email {
		return "", domain.Staff{}, domain.ErrInvalidToken
	}

	now := s.clock.Now()
	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   staff.ID,
		"email": staff.Email,
		"role":  string(staff.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(accessTokenTTL).Unix(),
	})
	signed, err := access.SignedString(s.accessSecret)
	if err != nil {
		return "", domain.Staff{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, staff, nil
}

// Identity is the verified caller attached to mutating requests.
type Identity struct {
	StaffID string
	Email   string
	Role    domain.Role
}

// VerifyAccessToken checks a bearer token and returns the caller identity.
func (s *AuthService) VerifyAccessToken(token string) (Identity, error) {
	claims, err := s.parseClaims(token, s.accessSecret)
	if err != nil {
		return Identity{}, domain.ErrInvalidToken
	}

	staffID, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if staffID == "" || role == "" {
		return Identity{}, domain.ErrInvalidToken
	}
	return Identity{
		StaffID: staffID,
		Email:   email,
		Role:    domain.Role(role),
	}, nil
}

func (s *AuthService) parseClaims(token string, secret []byte) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(s.clock.Now), jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
