package users

import (
	"context"
	"errors"
	"time"

	"github.com/crossingbook/crossingbook/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrDuplicateUsername is returned when the username is already taken.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrInvalidCredentials is returned on login failure. The message is
	// deliberately generic so usernames cannot be enumerated.
	ErrInvalidCredentials = errors.New("incorrect username and/or password")
)

// Repository defines persistence operations for users
type Repository interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// MongoRepository implements Repository using MongoDB
type MongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository creates a new repository for the given collection
func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

// userDoc mirrors models.User with a native ObjectID so documents round-trip
// through the driver.
type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Password  string             `bson:"password"`
	Role      string             `bson:"role"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *userDoc) toModel() *models.User {
	return &models.User{
		ID:        d.ID.Hex(),
		Username:  d.Username,
		Password:  d.Password,
		Role:      d.Role,
		CreatedAt: d.CreatedAt,
	}
}

// Create inserts the user. The unique index on username is the backstop for
// concurrent registrations; a duplicate-key failure maps to ErrDuplicateUsername.
func (r *MongoRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	doc := userDoc{
		Username:  u.Username,
		Password:  u.Password,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
	res, err := r.col.InsertOne(ctx, &doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid.Hex()
	}
	return u, nil
}

func (r *MongoRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var d userDoc
	if err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return d.toModel(), nil
}
