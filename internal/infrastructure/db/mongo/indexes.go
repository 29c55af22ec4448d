package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Index names are matched against E11000 messages in duplicateKeyError.
const (
	indexUsername   = "uniq_username"
	indexEmail      = "uniq_email"
	indexPhone      = "uniq_phone"
	indexResetToken = "uniq_reset_token"
	indexResetTTL   = "ttl_reset_created_at"
)

// EnsureIndexes creates the unique account indexes and the reset token TTL
// index. It is idempotent and safe to run on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database, resetTokenTTL time.Duration) error {
	accounts := []mongo.IndexModel{
		uniqueIndex("username", indexUsername),
		uniqueIndex("email", indexEmail),
		uniqueIndex("phone", indexPhone),
	}
	if _, err := db.Collection(accountsCollection).Indexes().CreateMany(ctx, accounts); err != nil {
		return fmt.Errorf("create account indexes: %w", err)
	}

	tokens := []mongo.IndexModel{
		uniqueIndex("token", indexResetToken),
		{
			Keys: bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().
				SetName(indexResetTTL).
				SetExpireAfterSeconds(int32(resetTokenTTL / time.Second)),
		},
	}
	if _, err := db.Collection(resetTokensCollection).Indexes().CreateMany(ctx, tokens); err != nil {
		return fmt.Errorf("create reset token indexes: %w", err)
	}
	return nil
}

func uniqueIndex(field, name string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true).SetName(name),
	}
}
