package mongodb

import (
	"context"
	"fmt"

	"finanzas/api/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func CreateBudget(ctx context.Context, budget *models.Budget) error {
	_, err := collection(BudgetCollection).InsertOne(ctx, budget)
	if err != nil {
		return fmt.Errorf("error creating budget: %v", err)
	}
	return nil
}

// GetBudgetsByUserID returns the stored budget rows only; the derived
// spent/remaining fields are filled by the handler from the month's
// transactions.
func GetBudgetsByUserID(ctx context.Context, userID string) ([]models.Budget, error) {
	cursor, err := collection(BudgetCollection).Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("error querying budgets: %v", err)
	}

	budgets := []models.Budget{}
	if err := cursor.All(ctx, &budgets); err != nil {
		return nil, fmt.Errorf("error decoding budgets: %v", err)
	}
	return budgets, nil
}

func UpdateBudget(ctx context.Context, userID, budgetID string, amount float64, period string) (bool, error) {
	result, err := collection(BudgetCollection).UpdateOne(ctx,
		bson.M{"_id": budgetID, "user_id": userID},
		bson.M{"$set": bson.M{"amount": amount, "period": period}},
	)
	if err != nil {
		return false, fmt.Errorf("error updating budget %s: %v", budgetID, err)
	}
	return result.MatchedCount > 0, nil
}

func DeleteBudget(ctx context.Context, userID, budgetID string) (bool, error) {
	result, err := collection(BudgetCollection).DeleteOne(ctx, bson.M{
		"_id":     budgetID,
		"user_id": userID,
	})
	if err != nil {
		return false, fmt.Errorf("error deleting budget %s: %v", budgetID, err)
	}
	return result.DeletedCount > 0, nil
}
