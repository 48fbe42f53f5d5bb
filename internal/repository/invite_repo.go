package repository

import (
	"context"

	"tripinvite/portal/internal/model"
)

// InviteRepository reads and writes the invites table. Updates are partial
// and last-write-wins; there is no version check.
type InviteRepository interface {
	Create(ctx context.Context, invite *model.Invite) error
	GetByToken(ctx context.Context, token string) (*model.Invite, error)
	Update(ctx context.Context, token string, fields map[string]interface{}) error
	List(ctx context.Context) ([]model.Invite, error)
}
