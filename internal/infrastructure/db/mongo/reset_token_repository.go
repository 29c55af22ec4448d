package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/domain"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/ports"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/pkg/randtoken"
)

const (
	resetTokensCollection = "password_reset_tokens"
	resetTokenBytes       = 32
)

// ResetTokenRepository implements ports.ResetTokenRepository. Physical
// removal is left to the TTL index; every query also filters on created_at
// so a token is dead the moment its TTL elapses.
type ResetTokenRepository struct {
	coll *mongo.Collection
	ttl  time.Duration
}

func NewResetTokenRepository(db *mongo.Database, ttl time.Duration) *ResetTokenRepository {
	return &ResetTokenRepository{coll: db.Collection(resetTokensCollection), ttl: ttl}
}

var _ ports.ResetTokenRepository = (*ResetTokenRepository)(nil)

type mongoResetToken struct {
	Token     string    `bson:"token"`
	AccountID string    `bson:"account_id"`
	CreatedAt time.Time `bson:"created_at"`
}

func (r *ResetTokenRepository) Issue(ctx context.Context, accountID string) (*domain.ResetToken, error) {
	token, err := randtoken.Hex(resetTokenBytes)
	if err != nil {
		return nil, err
	}

	doc := mongoResetToken{Token: token, AccountID: accountID, CreatedAt: time.Now().UTC()}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert reset token: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ResetTokenRepository) FindByToken(ctx context.Context, token string) (*domain.ResetToken, error) {
	var doc mongoResetToken
	if err := r.coll.FindOne(ctx, r.liveFilter(token)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrResetTokenNotFound
		}
		return nil, fmt.Errorf("find reset token: %w", err)
	}
	return doc.toDomain(), nil
}

// Consume relies on DeleteOne being atomic per document: of two concurrent
// callers only one observes DeletedCount == 1.
func (r *ResetTokenRepository) Consume(ctx context.Context, token string) error {
	res, err := r.coll.DeleteOne(ctx, r.liveFilter(token))
	if err != nil {
		return fmt.Errorf("consume reset token: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrResetTokenNotFound
	}
	return nil
}

func (r *ResetTokenRepository) Restore(ctx context.Context, token *domain.ResetToken) error {
	doc := mongoResetToken{Token: token.Token, AccountID: token.AccountID, CreatedAt: token.CreatedAt.UTC()}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("restore reset token: %w", err)
	}
	return nil
}

func (r *ResetTokenRepository) liveFilter(token string) bson.M {
	return bson.M{
		"token":      token,
		"created_at": bson.M{"$gt": time.Now().UTC().Add(-r.ttl)},
	}
}

func (d mongoResetToken) toDomain() *domain.ResetToken {
	return &domain.ResetToken{Token: d.Token, AccountID: d.AccountID, CreatedAt: d.CreatedAt.UTC()}
}
