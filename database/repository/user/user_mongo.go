package userRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"clinicbook/database"
	"clinicbook/models"
)

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo(db *mongo.Database) UserRepository {
	return &MongoUserRepo{coll: db.Collection(database.UsersCollection)}
}

// newContext derives a context with the given timeout.
func newContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// Create inserts a new account document.
func (r *MongoUserRepo) Create(ctx context.Context, account *models.Account) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	account.CreatedAt = time.Now().UTC()

	if _, err := r.coll.InsertOne(ctx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetAll retrieves all accounts.
func (r *MongoUserRepo) GetAll(ctx context.Context) ([]models.Account, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve accounts: %w", err)
	}
	defer cursor.Close(ctx)

	accounts := []models.Account{}
	for cursor.Next(ctx) {
		var a models.Account
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode account: %w", err)
		}
		adoptObjectID(&a)
		accounts = append(accounts, a)
	}
	return accounts, cursor.Err()
}

// GetByEmail retrieves an account by email.
func (r *MongoUserRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetByID retrieves an account by its unique ID.
func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return r.findOne(ctx, database.IDFilter(id))
}

func (r *MongoUserRepo) findOne(ctx context.Context, filter bson.M) (*models.Account, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var account models.Account
	if err := r.coll.FindOne(ctx, filter).Decode(&account); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	adoptObjectID(&account)
	return &account, nil
}

// adoptObjectID drops the decoded _id; accounts without a string id are
// addressed by its hex form.
func adoptObjectID(a *models.Account) {
	if oid := database.TakeObjectID(a.Extra); a.ID == "" {
		a.ID = oid
	}
}

// SetRole updates the role of the account with the given ID.
func (r *MongoUserRepo) SetRole(ctx context.Context, id, role string) (int64, int64, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, database.IDFilter(id), bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to set role for account %s: %w", id, err)
	}
	return res.MatchedCount, res.ModifiedCount, nil
}
