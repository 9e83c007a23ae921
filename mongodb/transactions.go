package mongodb

import (
	"context"
	"fmt"

	"finanzas/api/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	_, err := collection(TransactionCollection).InsertOne(ctx, tx)
	if err != nil {
		return fmt.Errorf("error creating transaction: %v", err)
	}
	return nil
}

// InsertTransactionIfAbsent inserts a transaction with a caller-chosen
// id, reporting false when the id already exists. Bank syncs use the
// provider's transaction id here so re-syncing never duplicates rows.
func InsertTransactionIfAbsent(ctx context.Context, tx *models.Transaction) (bool, error) {
	_, err := collection(TransactionCollection).InsertOne(ctx, tx)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("error inserting transaction: %v", err)
	}
	return true, nil
}

// GetTransactionsByUserID returns the user's transactions, newest
// first.
func GetTransactionsByUserID(ctx context.Context, userID string) ([]models.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}})
	cursor, err := collection(TransactionCollection).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions: %v", err)
	}

	transactions := []models.Transaction{}
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, fmt.Errorf("error decoding transactions: %v", err)
	}
	return transactions, nil
}

// GetTransactionsByMonth narrows to one YYYY-MM period. Dates are
// YYYY-MM-DD strings, so a lexicographic range is exact.
func GetTransactionsByMonth(ctx context.Context, userID, month string) ([]models.Transaction, error) {
	filter := bson.M{
		"user_id": userID,
		"date": bson.M{
			"$gte": month + "-01",
			"$lte": month + "-31",
		},
	}
	cursor, err := collection(TransactionCollection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions for %s: %v", month, err)
	}

	transactions := []models.Transaction{}
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, fmt.Errorf("error decoding transactions: %v", err)
	}
	return transactions, nil
}

// DeleteTransaction removes one transaction; the user_id in the filter
// keeps one user from deleting another's record.
func DeleteTransaction(ctx context.Context, userID, transactionID string) (bool, error) {
	result, err := collection(TransactionCollection).DeleteOne(ctx, bson.M{
		"_id":     transactionID,
		"user_id": userID,
	})
	if err != nil {
		return false, fmt.Errorf("error deleting transaction %s: %v", transactionID, err)
	}
	return result.DeletedCount > 0, nil
}
