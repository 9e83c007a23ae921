package mongodb

import (
	"context"
	"fmt"
	"time"

	"finanzas/api/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// GetCategoriesForUser returns the shared defaults plus the user's
// custom categories.
func GetCategoriesForUser(ctx context.Context, userID string) ([]models.Category, error) {
	filter := bson.M{"user_id": bson.M{"$in": []string{models.DefaultScope, userID}}}
	cursor, err := collection(CategoryCollection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error querying categories: %v", err)
	}

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("error decoding categories: %v", err)
	}
	return categories, nil
}

func CreateCategory(ctx context.Context, category *models.Category) error {
	_, err := collection(CategoryCollection).InsertOne(ctx, category)
	if err != nil {
		return fmt.Errorf("error creating category: %v", err)
	}
	return nil
}

// DeleteCategory removes a custom category. Defaults live in the
// shared scope and cannot be deleted through a user's request.
func DeleteCategory(ctx context.Context, userID, categoryID string) (bool, error) {
	result, err := collection(CategoryCollection).DeleteOne(ctx, bson.M{
		"_id":     categoryID,
		"user_id": userID,
	})
	if err != nil {
		return false, fmt.Errorf("error deleting category %s: %v", categoryID, err)
	}
	return result.DeletedCount > 0, nil
}

// AppendKeywords feeds learned words into the user-scoped copy of a
// category, creating the custom record on first learning event.
// $addToSet keeps the keyword list free of duplicates.
func AppendKeywords(ctx context.Context, userID, name, categoryType string, keywords []string) error {
	if len(keywords) == 0 {
		return nil
	}

	filter := bson.M{"user_id": userID, "name": name}
	update := bson.M{
		"$addToSet": bson.M{"keywords": bson.M{"$each": keywords}},
		"$setOnInsert": bson.M{
			"_id":        uuid.NewString(),
			"user_id":    userID,
			"name":       name,
			"type":       categoryType,
			"is_default": false,
			"created_at": time.Now(),
		},
	}
	_, err := collection(CategoryCollection).UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("error appending keywords to %s: %v", name, err)
	}
	return nil
}

// EnsureDefaultCategories seeds the shared DEFAULT scope. Idempotent:
// existing records are left untouched, keywords learned on top of them
// are never reset.
func EnsureDefaultCategories(ctx context.Context, defaults []models.Category) error {
	for _, cat := range defaults {
		filter := bson.M{"user_id": models.DefaultScope, "name": cat.Name}
		update := bson.M{
			"$setOnInsert": bson.M{
				"_id":         uuid.NewString(),
				"user_id":     models.DefaultScope,
				"name":        cat.Name,
				"type":        cat.Type,
				"icon":        cat.Icon,
				"description": cat.Description,
				"keywords":    cat.Keywords,
				"is_default":  true,
				"created_at":  time.Now(),
			},
		}
		_, err := collection(CategoryCollection).UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("error seeding category %s: %v", cat.Name, err)
		}
	}
	return nil
}
