package mongodb

import (
	"context"
	"fmt"

	"finanzas/api/logger"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

var (
	TransactionCollection string = "transactions"
	CategoryCollection    string = "categories"
	BudgetCollection      string = "budgets"
	MongoDatabase         string = "finanzas"
	MongoClient           *mongo.Client
)

func InitMongoDB(mongoURI, database string) error {
	if mongoURI == "" {
		return fmt.Errorf("MONGO_URI not configured")
	}
	if database != "" {
		MongoDatabase = database
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(mongoURI).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(opts)
	if err != nil {
		logger.Get().Error("failed to connect to MongoDB",
			zap.Error(err))
		return fmt.Errorf("error connecting to MongoDB: %v", err)
	}

	MongoClient = client
	logger.Get().Info("successfully connected to MongoDB",
		zap.String("database", MongoDatabase))
	return nil
}

func collection(name string) *mongo.Collection {
	return MongoClient.Database(MongoDatabase).Collection(name)
}

func CloseMongoDB() {
	if MongoClient != nil {
		if err := MongoClient.Disconnect(context.TODO()); err != nil {
			logger.Get().Error("failed to disconnect from MongoDB",
				zap.Error(err))
			return
		}
		logger.Get().Info("successfully disconnected from MongoDB")
	}
}
