package remote

import (
	"context"

	"github.com/dmitrijs2005/userconsole/internal/models"
)

// Client is the upstream user service.
type Client interface {
	// Login exchanges credentials for an opaque token.
	Login(ctx context.Context, email, password string) (string, error)
	// ListUsers returns one page (1-based) of the collection together with
	// the total page count.
	ListUsers(ctx context.Context, page int) (*models.UserList, error)
	// UpdateUser sends a partial update and returns the upstream echo.
	UpdateUser(ctx context.Context, id int, patch models.UserPatch) (*models.User, error)
	// DeleteUser removes a user upstream.
	DeleteUser(ctx context.Context, id int) error
}
