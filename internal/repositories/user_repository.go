package repositories

import (
	"context"

	"github.com/Gopikasanthosh455/placement-app/internal/models"
)

// UserRepository is the profile store for user rows
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByIDs returns the users found, in the order of ids. Unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error

	ExistsByEmail(ctx context.Context, email string) (bool, error)
	HasRole(ctx context.Context, id string, role models.UserRole) (bool, error)
}

// Identity is what the identity provider knows about an account
type Identity struct {
	ID    string
	Email string
	Role  models.UserRole
}

// AuthToken is issued by a successful sign-in
type AuthToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// IdentityProvider is the external account service. The id it returns is
// used as models.User.ID.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*AuthToken, error)
	CreateAccount(ctx context.Context, email, password string, role models.UserRole) (*Identity, error)
	SignOut(ctx context.Context, token string) error
	// CurrentUser resolves a bearer token into a session, or ErrUnauthenticated
	CurrentUser(ctx context.Context, token string) (*models.Session, error)
	ChangePassword(ctx context.Context, session *models.Session, newPassword string) error
}
