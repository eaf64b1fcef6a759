package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"userregistry/internal/models"
	"userregistry/internal/store"
)

// fakeStore keeps records in memory and mirrors the store's nil-for-absent
// contract.
type fakeStore struct {
	users   []models.User
	failAll bool
}

var errStoreDown = errors.New("store down")

func (f *fakeStore) Create(_ context.Context, in models.CreateUser) (*models.User, error) {
	if f.failAll {
		return nil, errStoreDown
	}
	now := time.Now()
	user := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     in.FullName,
		MobileNumber: in.MobileNumber,
		EmailAddress: in.EmailAddress,
		DateOfBirth:  in.DateOfBirth,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		City:         in.City,
		PinCode:      in.PinCode,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.users = append(f.users, user)
	return &user, nil
}

func (f *fakeStore) FindByID(_ context.Context, id string) (*models.User, error) {
	if f.failAll {
		return nil, errStoreDown
	}
	for i := range f.users {
		if f.users[i].ID.Hex() == id {
			return &f.users[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if f.failAll {
		return nil, errStoreDown
	}
	for i := range f.users {
		if f.users[i].EmailAddress == email {
			return &f.users[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindByMobile(_ context.Context, mobile string) (*models.User, error) {
	if f.failAll {
		return nil, errStoreDown
	}
	for i := range f.users {
		if f.users[i].MobileNumber == mobile {
			return &f.users[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListAll(_ context.Context) ([]models.User, error) {
	if f.failAll {
		return nil, errStoreDown
	}
	out := make([]models.User, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, id string, patch models.UserPatch) (*models.User, error) {
	if f.failAll {
		return nil, errStoreDown
	}
	for i := range f.users {
		if f.users[i].ID.Hex() != id {
			continue
		}
		u := &f.users[i]
		if patch.FullName != nil {
			u.FullName = *patch.FullName
		}
		if patch.MobileNumber != nil {
			u.MobileNumber = *patch.MobileNumber
		}
		if patch.EmailAddress != nil {
			u.EmailAddress = *patch.EmailAddress
		}
		if patch.DateOfBirth != nil {
			u.DateOfBirth = *patch.DateOfBirth
		}
		if patch.AddressLine1 != nil {
			u.AddressLine1 = *patch.AddressLine1
		}
		if patch.AddressLine2 != nil {
			u.AddressLine2 = *patch.AddressLine2
		}
		if patch.City != nil {
			u.City = *patch.City
		}
		if patch.PinCode != nil {
			u.PinCode = *patch.PinCode
		}
		u.UpdatedAt = time.Now()
		return u, nil
	}
	return nil, nil
}

func (f *fakeStore) Delete(_ context.Context, id string) (bool, error) {
	if f.failAll {
		return false, errStoreDown
	}
	for i := range f.users {
		if f.users[i].ID.Hex() == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) Count(_ context.Context) (int64, error) {
	if f.failAll {
		return 0, errStoreDown
	}
	return int64(len(f.users)), nil
}

func janePayload() models.CreateUser {
	return models.CreateUser{
		FullName:     "Jane Doe",
		MobileNumber: "9876543210",
		EmailAddress: "jane@example.com",
		DateOfBirth:  "15/06/1990",
		AddressLine1: "221B Baker Street",
		City:         "London",
		PinCode:      "560001",
	}
}

func TestRegisterAssignsIDAndTimestamps(t *testing.T) {
	svc := NewUsers(&fakeStore{})

	user, err := svc.Register(context.Background(), janePayload())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID.IsZero() {
		t.Fatal("expected a generated id")
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := NewUsers(&fakeStore{})
	if _, err := svc.Register(context.Background(), janePayload()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	second := janePayload()
	second.MobileNumber = "9999999999"

	_, err := svc.Register(context.Background(), second)
	var dup *store.DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateError, got %v", err)
	}
	if dup.Field != store.FieldEmail {
		t.Fatalf("expected email conflict, got %q", dup.Field)
	}
}

func TestRegisterRejectsDuplicateMobile(t *testing.T) {
	svc := NewUsers(&fakeStore{})
	if _, err := svc.Register(context.Background(), janePayload()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	second := janePayload()
	second.EmailAddress = "other@example.com"

	_, err := svc.Register(context.Background(), second)
	var dup *store.DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateError, got %v", err)
	}
	if dup.Field != store.FieldMobile {
		t.Fatalf("expected mobile conflict, got %q", dup.Field)
	}
}

func TestRegisterPropagatesStoreFailure(t *testing.T) {
	svc := NewUsers(&fakeStore{failAll: true})

	_, err := svc.Register(context.Background(), janePayload())
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store failure to propagate, got %v", err)
	}
}

func TestListReportsTotalAndShowing(t *testing.T) {
	fs := &fakeStore{}
	svc := NewUsers(fs)

	first := janePayload()
	second := janePayload()
	second.EmailAddress = "john@example.com"
	second.MobileNumber = "9999999999"

	for _, payload := range []models.CreateUser{first, second} {
		if _, err := svc.Register(context.Background(), payload); err != nil {
			t.Fatalf("register failed: %v", err)
		}
	}

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if list.Total != 2 || list.Showing != 2 || len(list.Users) != 2 {
		t.Fatalf("expected total=2 showing=2, got %+v", list)
	}
}

func TestGetByIDAbsentIsNotAnError(t *testing.T) {
	svc := NewUsers(&fakeStore{})

	user, err := svc.GetByID(context.Background(), primitive.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil for absent id, got %+v", user)
	}
}

func TestUpdateAllowsKeepingOwnEmail(t *testing.T) {
	fs := &fakeStore{}
	svc := NewUsers(fs)

	created, err := svc.Register(context.Background(), janePayload())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	email := created.EmailAddress
	city := "Paris"
	updated, err := svc.Update(context.Background(), created.ID.Hex(), models.UserPatch{
		EmailAddress: &email,
		City:         &city,
	})
	if err != nil {
		t.Fatalf("expected own email to be allowed, got %v", err)
	}
	if updated.City != "Paris" {
		t.Fatalf("expected city updated, got %q", updated.City)
	}
}

func TestUpdateRejectsEmailHeldByAnotherRecord(t *testing.T) {
	fs := &fakeStore{}
	svc := NewUsers(fs)

	first, err := svc.Register(context.Background(), janePayload())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	secondPayload := janePayload()
	secondPayload.EmailAddress = "john@example.com"
	secondPayload.MobileNumber = "9999999999"
	second, err := svc.Register(context.Background(), secondPayload)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	taken := first.EmailAddress
	_, err = svc.Update(context.Background(), second.ID.Hex(), models.UserPatch{EmailAddress: &taken})
	var dup *store.DuplicateError
	if !errors.As(err, &dup) || dup.Field != store.FieldEmail {
		t.Fatalf("expected email DuplicateError, got %v", err)
	}
}

func TestUpdatePartialPatchLeavesOtherFields(t *testing.T) {
	fs := &fakeStore{}
	svc := NewUsers(fs)

	created, err := svc.Register(context.Background(), janePayload())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	before := *created

	city := "Paris"
	updated, err := svc.Update(context.Background(), created.ID.Hex(), models.UserPatch{City: &city})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.City != "Paris" {
		t.Fatalf("expected city changed, got %q", updated.City)
	}
	if updated.FullName != before.FullName ||
		updated.EmailAddress != before.EmailAddress ||
		updated.MobileNumber != before.MobileNumber ||
		updated.DateOfBirth != before.DateOfBirth ||
		updated.AddressLine1 != before.AddressLine1 ||
		updated.PinCode != before.PinCode {
		t.Fatalf("expected untouched fields preserved, got %+v", updated)
	}
	if !updated.UpdatedAt.After(before.UpdatedAt) && !updated.UpdatedAt.Equal(before.UpdatedAt) {
		t.Fatal("expected updatedAt refreshed")
	}
}

func TestUpdateAbsentIDReturnsNil(t *testing.T) {
	svc := NewUsers(&fakeStore{})

	name := "John Smith"
	user, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), models.UserPatch{FullName: &name})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil for absent id, got %+v", user)
	}
}

func TestDeleteReportsWhetherRecordExisted(t *testing.T) {
	fs := &fakeStore{}
	svc := NewUsers(fs)

	created, err := svc.Register(context.Background(), janePayload())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	deleted, err := svc.Delete(context.Background(), created.ID.Hex())
	if err != nil || !deleted {
		t.Fatalf("expected delete to succeed, got deleted=%v err=%v", deleted, err)
	}

	deleted, err = svc.Delete(context.Background(), created.ID.Hex())
	if err != nil {
		t.Fatalf("expected no error for missing id, got %v", err)
	}
	if deleted {
		t.Fatal("expected deleted=false for missing id")
	}
}
