package service

import (
	"context"

	"userregistry/internal/models"
	"userregistry/internal/store"
)

// Store is the persistence surface the service needs. *store.Users satisfies
// it; tests substitute a fake.
type Store interface {
	Create(ctx context.Context, in models.CreateUser) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByMobile(ctx context.Context, mobile string) (*models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// Users holds the business rules above the record store: duplicate detection
// before writes and partial-update semantics. Payloads reaching this layer
// are already field-valid.
type Users struct {
	store Store
}

func NewUsers(s Store) *Users {
	return &Users{store: s}
}

// Register creates a record after checking that neither the email nor the
// mobile number is already taken. The pre-check yields a named conflict; the
// unique indexes remain the correctness backstop for concurrent registers.
func (u *Users) Register(ctx context.Context, in models.CreateUser) (*models.User, error) {
	existing, err := u.store.FindByEmail(ctx, in.EmailAddress)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &store.DuplicateError{Field: store.FieldEmail}
	}

	existing, err = u.store.FindByMobile(ctx, in.MobileNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &store.DuplicateError{Field: store.FieldMobile}
	}

	return u.store.Create(ctx, in)
}

func (u *Users) List(ctx context.Context) (models.UserList, error) {
	users, err := u.store.ListAll(ctx)
	if err != nil {
		return models.UserList{}, err
	}

	total, err := u.store.Count(ctx)
	if err != nil {
		return models.UserList{}, err
	}

	return models.UserList{
		Users:   users,
		Total:   total,
		Showing: len(users),
	}, nil
}

// GetByID returns nil without error when no record matches.
func (u *Users) GetByID(ctx context.Context, id string) (*models.User, error) {
	return u.store.FindByID(ctx, id)
}

// Update re-checks uniqueness for whichever of email and mobile the patch
// carries, ignoring the record's own current values.
func (u *Users) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	if patch.EmailAddress != nil {
		existing, err := u.store.FindByEmail(ctx, *patch.EmailAddress)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID.Hex() != id {
			return nil, &store.DuplicateError{Field: store.FieldEmail}
		}
	}

	if patch.MobileNumber != nil {
		existing, err := u.store.FindByMobile(ctx, *patch.MobileNumber)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID.Hex() != id {
			return nil, &store.DuplicateError{Field: store.FieldMobile}
		}
	}

	return u.store.Update(ctx, id, patch)
}

func (u *Users) Delete(ctx context.Context, id string) (bool, error) {
	return u.store.Delete(ctx, id)
}
