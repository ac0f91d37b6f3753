package repo

import (
	"context"
	"errors"
	"time"

	dmn "github.com/EnspikondPlus/neophytic-rooms-purple-base/domain"
	"go.mongodb.org/mongo-driver/mongo"
)

// SolveRecordRepo handles the persistence of solve records.
type SolveRecordRepo struct {
	collection *mongo.Collection
}

// NewSolveRecordRepo creates a new SolveRecordRepo with the given MongoDB
// client, database name, and collection name.
func NewSolveRecordRepo(client *mongo.Client, dbName, collectionName string) *SolveRecordRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &SolveRecordRepo{
		collection: collection,
	}
}

// Save inserts a solve record.
// Returns an error if the insert fails or times out.
func (r *SolveRecordRepo) Save(record *dmn.SolveRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}
