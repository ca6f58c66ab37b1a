package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDB mirrors the in-memory store into durable collections. The mirror
// is best-effort: the actors log write failures and carry on, the in-memory
// store stays authoritative.
type MongoDB struct {
	Client        *mongo.Client
	Users         *mongo.Collection
	Communities   *mongo.Collection
	Posts         *mongo.Collection
	Comments      *mongo.Collection
	JoinRequests  *mongo.Collection
	Notifications *mongo.Collection
}

func NewMongoDB(uri string) (*MongoDB, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	// Ping the database to verify connection
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	log.Println("Successfully connected to MongoDB!")

	db := client.Database("campus_grove")
	return &MongoDB{
		Client:        client,
		Users:         db.Collection("users"),
		Communities:   db.Collection("communities"),
		Posts:         db.Collection("posts"),
		Comments:      db.Collection("comments"),
		JoinRequests:  db.Collection("join_requests"),
		Notifications: db.Collection("notifications"),
	}, nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
