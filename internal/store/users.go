package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"userregistry/internal/database"
	"userregistry/internal/models"
)

const usersCollection = "users"

// Users persists registration records in the users collection. Uniqueness of
// emailAddress and mobileNumber is enforced atomically by the collection's
// unique indexes; duplicate-key failures surface as *DuplicateError.
type Users struct {
	connector *database.Connector
}

func NewUsers(connector *database.Connector) *Users {
	return &Users{connector: connector}
}

func (s *Users) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := s.connector.DB(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return db.Collection(usersCollection), nil
}

func (s *Users) Create(ctx context.Context, in models.CreateUser) (*models.User, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := models.User{
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

	res, err := coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &DuplicateError{Field: duplicateField(err)}
		}
		log.Println("[STORE] [ERROR] insert user failed:", err)
		return nil, err
	}

	user.ID = res.InsertedID.(primitive.ObjectID)
	return &user, nil
}

func (s *Users) FindByID(ctx context.Context, id string) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, nil
	}
	return s.findOne(ctx, bson.M{"_id": objectID})
}

func (s *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"emailAddress": email})
}

func (s *Users) FindByMobile(ctx context.Context, mobile string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"mobileNumber": mobile})
}

func (s *Users) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = coll.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		log.Println("[STORE] [ERROR] find user failed:", err)
		return nil, err
	}
	return &user, nil
}

// ListAll returns every record, newest-created first.
func (s *Users) ListAll(ctx context.Context) ([]models.User, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		log.Println("[STORE] [ERROR] list users failed:", err)
		return nil, err
	}

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		log.Println("[STORE] [ERROR] decode users failed:", err)
		return nil, err
	}
	return users, nil
}

// Update applies the supplied patch fields and refreshes updatedAt. The _id
// is never part of the update document. Returns nil without error when no
// record matches id.
func (s *Users) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, nil
	}

	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": patchDocument(patch, time.Now())},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &DuplicateError{Field: duplicateField(err)}
		}
		log.Println("[STORE] [ERROR] update user failed:", err)
		return nil, err
	}
	return &user, nil
}

func (s *Users) Delete(ctx context.Context, id string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return false, nil
	}

	coll, err := s.collection(ctx)
	if err != nil {
		return false, err
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		log.Println("[STORE] [ERROR] delete user failed:", err)
		return false, err
	}
	return res.DeletedCount == 1, nil
}

func (s *Users) Count(ctx context.Context) (int64, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return 0, err
	}

	count, err := coll.EstimatedDocumentCount(ctx)
	if err != nil {
		log.Println("[STORE] [ERROR] count users failed:", err)
		return 0, err
	}
	return count, nil
}

// patchDocument builds the $set document from the present patch fields.
func patchDocument(patch models.UserPatch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}

	if patch.FullName != nil {
		set["fullName"] = *patch.FullName
	}
	if patch.MobileNumber != nil {
		set["mobileNumber"] = *patch.MobileNumber
	}
	if patch.EmailAddress != nil {
		set["emailAddress"] = *patch.EmailAddress
	}
	if patch.DateOfBirth != nil {
		set["dateOfBirth"] = *patch.DateOfBirth
	}
	if patch.AddressLine1 != nil {
		set["addressLine1"] = *patch.AddressLine1
	}
	if patch.AddressLine2 != nil {
		set["addressLine2"] = *patch.AddressLine2
	}
	if patch.City != nil {
		set["city"] = *patch.City
	}
	if patch.PinCode != nil {
		set["pinCode"] = *patch.PinCode
	}
	return set
}

// duplicateField recovers which unique index a duplicate-key error violated
// from the index name Mongo embeds in the message.
func duplicateField(err error) string {
	var write mongo.WriteException
	if errors.As(err, &write) {
		for _, we := range write.WriteErrors {
			if field := fieldFromIndexMessage(we.Message); field != "" {
				return field
			}
		}
	}

	var cmd mongo.CommandError
	if errors.As(err, &cmd) {
		if field := fieldFromIndexMessage(cmd.Message); field != "" {
			return field
		}
	}

	return fieldFromIndexMessage(err.Error())
}

func fieldFromIndexMessage(message string) string {
	switch {
	case strings.Contains(message, "emailAddress"):
		return FieldEmail
	case strings.Contains(message, "mobileNumber"):
		return FieldMobile
	}
	return ""
}
