package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/healthqr/health-record-system/internal/core/domain"
	"github.com/healthqr/health-record-system/internal/core/ports"
)

const usersCollection = "users"

// UserRepository implements ports.UserRepository on a MongoDB collection.
type UserRepository struct {
	coll *mongo.Collection
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Password  string             `bson:"password"`
	Role      string             `bson:"role"`
	Name      string             `bson:"name"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (mu *mongoUser) toDomain() (*domain.User, error) {
	role := domain.Role(mu.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("user %s: %w: %q", mu.ID.Hex(), domain.ErrInvalidRole, mu.Role)
	}
	return &domain.User{
		ID:           mu.ID.Hex(),
		Username:     mu.Username,
		PasswordHash: mu.Password,
		Role:         role,
		Name:         mu.Name,
		CreatedAt:    mu.CreatedAt.UTC(),
	}, nil
}

// Create inserts a new user. A duplicate username surfaces as
// domain.ErrUserExists through the unique index.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if !user.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		ID:        primitive.NewObjectID(),
		Username:  user.Username,
		Password:  user.PasswordHash,
		Role:      string(user.Role),
		Name:      user.Name,
		CreatedAt: user.CreatedAt.UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = doc.ID.Hex()
	return &created, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain()
}

// List returns all users ordered by creation time.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for i := range docs {
		u, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// EnsureIndexes creates the unique username index backing the uniqueness
// invariant.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("username_unique"),
		},
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("ensure user indexes: %w", err)
	}
	return nil
}
