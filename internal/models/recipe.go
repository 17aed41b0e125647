package models

// Limited-time flag values. The submitted form uses checkbox presence; the
// stored value is always normalized to one of these two strings.
const (
	LimitedTimeOn  = "on"
	LimitedTimeOff = "off"
)

// Recipe is a user-submitted DIY recipe. RecipeType and CreatedBy are
// denormalized string references (type name, username); no referential
// integrity is enforced across collections.
type Recipe struct {
	ID              string `bson:"_id,omitempty" json:"id"`
	RecipeName      string `bson:"recipe_name" json:"recipe_name"`
	RecipeType      string `bson:"recipe_type" json:"recipe_type"`
	Usage           string `bson:"usage" json:"usage"`
	MaterialsNeeded string `bson:"materials_needed" json:"materials_needed"`
	ImageURL        string `bson:"image_url" json:"image_url"`
	LimitedTime     string `bson:"limited_time" json:"limited_time"`
	CreatedBy       string `bson:"created_by" json:"created_by"`
}

// RecipeType is a flat taxonomy label referenced by name from Recipe.
type RecipeType struct {
	ID   string `bson:"_id,omitempty" json:"id"`
	Name string `bson:"recipe_type" json:"recipe_type"`
}
