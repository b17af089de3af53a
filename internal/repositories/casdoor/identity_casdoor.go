package casdoor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/Gopikasanthosh455/placement-app/internal/cache"
	"github.com/Gopikasanthosh455/placement-app/internal/models"
	"github.com/Gopikasanthosh455/placement-app/internal/repositories"
)

// CasdoorConfig holds the configuration for Casdoor connection
type CasdoorConfig struct {
	Endpoint         string
	ClientID         string
	ClientSecret     string
	Certificate      string
	OrganizationName string
	ApplicationName  string
}

// casdoorClient is the subset of the SDK client used here
type casdoorClient interface {
	AddUser(user *casdoorsdk.User) (bool, error)
	GetUserByUserId(userId string) (*casdoorsdk.User, error)
	GetUserByEmail(email string) (*casdoorsdk.User, error)
	SetPassword(owner, name, oldPassword, newPassword string) (bool, error)
	ParseJwtToken(token string) (*casdoorsdk.Claims, error)
}

// passwordGrant exchanges credentials for a token
type passwordGrant func(ctx context.Context, username, password string) (*oauth2.Token, error)

type IdentityCasdoor struct {
	client   casdoorClient
	grant    passwordGrant
	denylist *cache.TokenDenylist
	config   CasdoorConfig
}

func NewIdentityCasdoor(config CasdoorConfig, denylist *cache.TokenDenylist) repositories.IdentityProvider {
	client := casdoorsdk.NewClient(
		config.Endpoint,
		config.ClientID,
		config.ClientSecret,
		config.Certificate,
		config.OrganizationName,
		config.ApplicationName,
	)

	endpoint := strings.TrimRight(config.Endpoint, "/")
	oauthConfig := &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:   endpoint + "/login/oauth/authorize",
			TokenURL:  endpoint + "/api/login/oauth/access_token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
		Scopes: []string{"read"},
	}

	return &IdentityCasdoor{
		client:   client,
		grant:    oauthConfig.PasswordCredentialsToken,
		denylist: denylist,
		config:   config,
	}
}

// SignIn uses the OAuth password grant; Casdoor resolves the username by email
func (c *IdentityCasdoor) SignIn(ctx context.Context, email, password string) (*repositories.AuthToken, error) {
	token, err := c.grant(ctx, email, password)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, fmt.Errorf("%w: invalid credentials", repositories.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("%w: sign in: %v", repositories.ErrProvider, err)
	}

	var expiresIn int64
	if !token.Expiry.IsZero() {
		expiresIn = int64(time.Until(token.Expiry).Seconds())
	}

	return &repositories.AuthToken{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresIn:   expiresIn,
	}, nil
}

// CreateAccount registers the account. The role is kept in the user's tag so
// tokens carry it; the users table stays the source of truth.
func (c *IdentityCasdoor) CreateAccount(ctx context.Context, email, password string, role models.UserRole) (*repositories.Identity, error) {
	existing, err := c.client.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup %s: %v", repositories.ErrProvider, email, err)
	}
	if existing != nil && existing.Id != "" {
		return nil, fmt.Errorf("account %s: %w", email, repositories.ErrDuplicate)
	}

	id := uuid.NewString()
	user := &casdoorsdk.User{
		Owner:             c.config.OrganizationName,
		Name:              strings.ReplaceAll(id, "-", ""),
		Id:                id,
		CreatedTime:       time.Now().UTC().Format(time.RFC3339),
		Type:              "normal-user",
		Password:          password,
		DisplayName:       email,
		Email:             email,
		Tag:               string(role),
		SignupApplication: c.config.ApplicationName,
	}

	ok, err := c.client.AddUser(user)
	if err != nil {
		return nil, fmt.Errorf("%w: create account: %v", repositories.ErrProvider, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: create account rejected for %s", repositories.ErrProvider, email)
	}

	return &repositories.Identity{ID: id, Email: email, Role: role}, nil
}

// SignOut revokes the token until it expires. Tokens that no longer parse are
// already unusable and are ignored.
func (c *IdentityCasdoor) SignOut(ctx context.Context, token string) error {
	claims, err := c.client.ParseJwtToken(token)
	if err != nil {
		return nil
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if err := c.denylist.Revoke(ctx, token, expiresAt); err != nil {
		if errors.Is(err, cache.ErrCacheNotAvailable) {
			return fmt.Errorf("%w: sign out needs redis", repositories.ErrProvider)
		}
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (c *IdentityCasdoor) CurrentUser(ctx context.Context, token string) (*models.Session, error) {
	revoked, err := c.denylist.IsRevoked(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to check token: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: token revoked", repositories.ErrUnauthenticated)
	}

	claims, err := c.client.ParseJwtToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repositories.ErrUnauthenticated, err)
	}
	if claims.Id == "" {
		return nil, fmt.Errorf("%w: token has no user id", repositories.ErrUnauthenticated)
	}

	session := &models.Session{
		UserID: claims.Id,
		Email:  claims.Email,
		Token:  token,
	}
	// the tag may be missing for accounts created outside the portal; the
	// caller resolves the role from the users table in that case
	if role, err := models.ParseRole(claims.Tag); err == nil {
		session.Role = role
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}

func (c *IdentityCasdoor) ChangePassword(ctx context.Context, session *models.Session, newPassword string) error {
	user, err := c.client.GetUserByUserId(session.UserID)
	if err != nil {
		return fmt.Errorf("%w: lookup user: %v", repositories.ErrProvider, err)
	}
	if user == nil {
		return fmt.Errorf("account %s: %w", session.UserID, repositories.ErrNotFound)
	}

	ok, err := c.client.SetPassword(user.Owner, user.Name, "", newPassword)
	if err != nil {
		return fmt.Errorf("%w: set password: %v", repositories.ErrProvider, err)
	}
	if !ok {
		return fmt.Errorf("%w: set password rejected", repositories.ErrProvider)
	}
	return nil
}
