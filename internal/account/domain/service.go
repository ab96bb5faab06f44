// Package domain contains the account administration contract: privileged,
// manager-only operations against another user's account.
package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	identitydomain "github.com/fieldscope/fieldscope/internal/identity/domain"
)

type Service interface {
	// DeleteAccount removes the target user and every record they own,
	// identity last. The whole cascade runs in one transaction.
	DeleteAccount(ctx context.Context, callerID snowflake.ID, targetUserID string) error

	// UpdateEmail changes the target user's login email. Manager-only;
	// unlike DeleteAccount it permits targeting the caller themselves.
	UpdateEmail(ctx context.Context, callerID snowflake.ID, targetUserID, newEmail string) (*identitydomain.User, error)
}
