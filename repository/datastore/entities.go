package datastore

import (
	"context"
	"errors"
	"time"

	gds "cloud.google.com/go/datastore"
)

const (
	KindTask = "Task"
	KindUser = "User"
)

// Client is the subset of *datastore.Client used by the repositories.
type Client interface {
	GetAll(ctx context.Context, q *gds.Query, dst interface{}) ([]*gds.Key, error)
	Get(ctx context.Context, key *gds.Key, dst interface{}) error
}

type taskEntity struct {
	UserID      string    `datastore:"userId"`
	Title       string    `datastore:"title"`
	Description string    `datastore:"description,noindex"`
	DueDate     time.Time `datastore:"dueDate"`
	CreatedAt   time.Time `datastore:"createdAt"`
}

type userEntity struct {
	Email string `datastore:"email"`
}

// ignoreFieldMismatch drops errors caused by properties the structs do not map.
// Documents written by other clients routinely carry extra fields.
func ignoreFieldMismatch(err error) error {
	var mismatch *gds.ErrFieldMismatch
	if errors.As(err, &mismatch) {
		return nil
	}
	var multi gds.MultiError
	if errors.As(err, &multi) {
		for _, e := range multi {
			if e != nil && ignoreFieldMismatch(e) != nil {
				return err
			}
		}
		return nil
	}
	return err
}
