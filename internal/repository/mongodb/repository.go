package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/lfs-pipeline/internal/domain/models"
)

// MongoDBRepository mirrors labour force rows into a MongoDB collection keyed by date.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri, dbName, collName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: collName,
	}, nil
}

// UpsertLabourForce replaces or inserts one document per row in a single bulk write.
func (r *MongoDBRepository) UpsertLabourForce(ctx context.Context, rows []models.LabourForceRow) error {
	if len(rows) == 0 {
		return nil
	}

	collection := r.client.Database(r.dbName).Collection(r.collName)
	_, err := collection.BulkWrite(ctx, writeModels(rows), options.BulkWrite().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("failed to upsert labour force documents: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func writeModels(rows []models.LabourForceRow) []mongo.WriteModel {
	out := make([]mongo.WriteModel, 0, len(rows))
	for _, row := range rows {
		out = append(out, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "date", Value: row.Date}}).
			SetReplacement(row).
			SetUpsert(true))
	}
	return out
}
