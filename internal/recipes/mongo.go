package recipes

import (
	"context"

	"github.com/crossingbook/crossingbook/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRepository implements Repository backed by the recipes collection.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

type recipeDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	RecipeName      string             `bson:"recipe_name"`
	RecipeType      string             `bson:"recipe_type"`
	Usage           string             `bson:"usage"`
	MaterialsNeeded string             `bson:"materials_needed"`
	ImageURL        string             `bson:"image_url"`
	LimitedTime     string             `bson:"limited_time"`
	CreatedBy       string             `bson:"created_by"`
}

func toDoc(rec *models.Recipe) *recipeDoc {
	return &recipeDoc{
		RecipeName:      rec.RecipeName,
		RecipeType:      rec.RecipeType,
		Usage:           rec.Usage,
		MaterialsNeeded: rec.MaterialsNeeded,
		ImageURL:        rec.ImageURL,
		LimitedTime:     rec.LimitedTime,
		CreatedBy:       rec.CreatedBy,
	}
}

func (d *recipeDoc) toModel() *models.Recipe {
	return &models.Recipe{
		ID:              d.ID.Hex(),
		RecipeName:      d.RecipeName,
		RecipeType:      d.RecipeType,
		Usage:           d.Usage,
		MaterialsNeeded: d.MaterialsNeeded,
		ImageURL:        d.ImageURL,
		LimitedTime:     d.LimitedTime,
		CreatedBy:       d.CreatedBy,
	}
}

func (r *MongoRepository) Insert(ctx context.Context, rec *models.Recipe) (*models.Recipe, error) {
	res, err := r.col.InsertOne(ctx, toDoc(rec))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rec.ID = oid.Hex()
	}
	return rec, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var d recipeDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d.toModel(), nil
}

func (r *MongoRepository) GetByName(ctx context.Context, name string) (*models.Recipe, error) {
	var d recipeDoc
	if err := r.col.FindOne(ctx, bson.M{"recipe_name": name}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return d.toModel(), nil
}

func (r *MongoRepository) List(ctx context.Context) ([]*models.Recipe, error) {
	return r.find(ctx, bson.M{})
}

// Search runs a $text query over the indexed recipe fields. An empty query
// returns the full listing (pinned behavior, matching the search form left
// blank).
func (r *MongoRepository) Search(ctx context.Context, query string) ([]*models.Recipe, error) {
	if query == "" {
		return r.List(ctx)
	}
	return r.find(ctx, bson.M{"$text": bson.M{"$search": query}})
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M) ([]*models.Recipe, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*models.Recipe{}
	for cur.Next(ctx) {
		var d recipeDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toModel())
	}
	return out, cur.Err()
}

func (r *MongoRepository) Replace(ctx context.Context, id string, rec *models.Recipe) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	// full replace: omitted fields are gone afterwards
	_, err = r.col.ReplaceOne(ctx, bson.M{"_id": oid}, toDoc(rec))
	if mongo.IsDuplicateKeyError(err) {
		// the unique recipe_name index rejects renaming onto another recipe
		return ErrDuplicateName
	}
	return err
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	// deleting an id that matches nothing is a no-op
	_, err = r.col.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
