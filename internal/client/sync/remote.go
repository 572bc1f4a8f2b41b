package sync

import (
	"context"
	"errors"

	"github.com/iudanet/lifetracker/internal/models"
)

// ErrRecordNotFound возвращается RemoteChannel.Read, если у пользователя
// ещё нет удалённой записи
var ErrRecordNotFound = errors.New("remote record not found")

// ErrUnauthorized возвращается RemoteChannel, когда сервер отверг access token
var ErrUnauthorized = errors.New("access token rejected")

// RenewFunc returns an access token to use instead of rejected. When the
// token was already replaced it returns the current one without a new
// server round trip.
type RenewFunc func(ctx context.Context, rejected string) (string, error)

// Session identifies the signed-in user the engine syncs for.
type Session struct {
	// Renew is nil when the session cannot be refreshed
	Renew       RenewFunc
	UserID      string
	AccessToken string
}

//go:generate moq -out remote_mock.go . RemoteChannel Subscription

// RemoteChannel is the per-user remote document: point read, merge write
// and change notifications.
type RemoteChannel interface {
	// Read returns the user's record or ErrRecordNotFound
	Read(ctx context.Context, session Session) (*models.Record, error)

	// Write merges rec into the user's record. Top-level state keys not
	// present in rec are preserved
	Write(ctx context.Context, session Session, rec models.Record) error

	// Subscribe calls onChange with the latest record after every remote
	// change, including the subscriber's own writes. A nil record means
	// the document does not exist
	Subscribe(ctx context.Context, session Session, onChange func(*models.Record)) (Subscription, error)
}

// Subscription is a live change stream that can be cancelled.
type Subscription interface {
	Close() error
}
