package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureUserIndexes creates the unique indexes backing the email and mobile
// constraints, plus the fullName lookup index. The unique indexes are what
// enforces uniqueness under concurrent writes.
func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	userIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "emailAddress", Value: 1}},
			Options: options.Index().
				SetName("emailAddress_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "mobileNumber", Value: 1}},
			Options: options.Index().
				SetName("mobileNumber_unique").
				SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "fullName", Value: 1}},
			Options: options.Index().SetName("fullName_index"),
		},
	}

	log.Println("EnsureUserIndexes: creating user indexes")
	_, err := indexes.CreateMany(ctx, userIndexes)
	if err != nil {
		log.Println("EnsureUserIndexes: index error:", err)
		return err
	}
	log.Println("EnsureUserIndexes: user indexes created")
	return nil
}
