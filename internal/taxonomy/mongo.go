package taxonomy

import (
	"context"

	"github.com/crossingbook/crossingbook/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository implements Repository backed by the types collection.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

type typeDoc struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"recipe_type"`
}

func (d *typeDoc) toModel() *models.RecipeType {
	return &models.RecipeType{ID: d.ID.Hex(), Name: d.Name}
}

func (r *MongoRepository) Insert(ctx context.Context, t *models.RecipeType) (*models.RecipeType, error) {
	res, err := r.col.InsertOne(ctx, &typeDoc{Name: t.Name})
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid.Hex()
	}
	return t, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*models.RecipeType, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var d typeDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d.toModel(), nil
}

func (r *MongoRepository) List(ctx context.Context) ([]*models.RecipeType, error) {
	opts := options.Find().SetSort(bson.D{{Key: "recipe_type", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*models.RecipeType{}
	for cur.Next(ctx) {
		var d typeDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toModel())
	}
	return out, cur.Err()
}

func (r *MongoRepository) Replace(ctx context.Context, id string, t *models.RecipeType) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	_, err = r.col.ReplaceOne(ctx, bson.M{"_id": oid}, &typeDoc{Name: t.Name})
	return err
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	_, err = r.col.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
