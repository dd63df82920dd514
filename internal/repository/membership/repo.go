// Package membership answers entitlement questions against the collaboration
// product's membership tables. It is consulted at delivery time, never
// cached at subscribe time, because entitlement can change while a
// connection is open.
package membership

import (
	"context"
	"fmt"

	"github.com/wb-go/wbf/dbpg"
)

// Repository reads channel and workspace membership.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new membership repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// IsEntitled reports whether the member currently has access to the channel.
// A member with no membership record is simply not entitled, not an error.
func (r *Repository) IsEntitled(ctx context.Context, memberID, channelID int64) (bool, error) {
	query := `
		SELECT EXISTS (
		    SELECT 1
		    FROM channel_members
		    WHERE member_id = $1 AND channel_id = $2 AND deleted_at IS NULL
		);
    `

	var entitled bool
	err := r.db.QueryRowContext(ctx, query, memberID, channelID).Scan(&entitled)
	if err != nil {
		return false, fmt.Errorf("failed to check channel membership: %w", err)
	}

	return entitled, nil
}

// IsWorkspaceMember reports whether the member belongs to the workspace.
// Used to refuse subscriptions for workspaces the caller is not part of.
func (r *Repository) IsWorkspaceMember(ctx context.Context, memberID, workspaceID int64) (bool, error) {
	query := `
		SELECT EXISTS (
		    SELECT 1
		    FROM workspace_members
		    WHERE member_id = $1 AND workspace_id = $2 AND deleted_at IS NULL
		);
    `

	var member bool
	err := r.db.QueryRowContext(ctx, query, memberID, workspaceID).Scan(&member)
	if err != nil {
		return false, fmt.Errorf("failed to check workspace membership: %w", err)
	}

	return member, nil
}
