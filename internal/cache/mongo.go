package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"heron-feed/internal/models"
	"heron-feed/internal/utils"
)

// Mongo is the MongoDB cache backend. Authors are upserted by id into a
// single collection.
type Mongo struct {
	client  *mongo.Client
	authors *mongo.Collection
}

type mongoAuthor struct {
	ID          string `bson:"_id"`
	DisplayName string `bson:"displayName"`
	Name        string `bson:"name"`
	AvatarSrc   string `bson:"avatarSrc,omitempty"`
}

// NewMongo connects to MongoDB and prepares the authors collection.
func NewMongo(uri string) (*Mongo, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	log.Println("Connected to MongoDB author cache")
	db := client.Database("heron_feed")
	return &Mongo{
		client:  client,
		authors: db.Collection("authors"),
	}, nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) Put(ctx context.Context, author *models.Author) error {
	doc := mongoAuthor{
		ID:          author.ID,
		DisplayName: author.DisplayName,
		Name:        author.Name,
		AvatarSrc:   author.AvatarSrc,
	}
	_, err := m.authors.UpdateOne(ctx,
		bson.M{"_id": author.ID},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return utils.NewAppError(utils.ErrCache, "failed to upsert author", err)
	}
	return nil
}

func (m *Mongo) Get(ctx context.Context, id string) (*models.Author, error) {
	var doc mongoAuthor
	err := m.authors.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrNotFound, "author not cached: "+id, nil)
	}
	if err != nil {
		return nil, utils.NewAppError(utils.ErrCache, "failed to fetch author", err)
	}
	return &models.Author{
		ID:          doc.ID,
		DisplayName: doc.DisplayName,
		Name:        doc.Name,
		AvatarSrc:   doc.AvatarSrc,
	}, nil
}
