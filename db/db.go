package db

import (
	"context"
	"log"
	"os"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	TripsCollection         *mongo.Collection
	ShoppingItemsCollection *mongo.Collection
	TripMembersCollection   *mongo.Collection
	GroupMembersCollection  *mongo.Collection
	Client                  *mongo.Client
)

// Initialize MongoDB connection
func init() {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	TripsCollection = Client.Database("tripcart").Collection("trips")
	ShoppingItemsCollection = Client.Database("tripcart").Collection("shopping_items")
	TripMembersCollection = Client.Database("tripcart").Collection("trip_members")
	GroupMembersCollection = Client.Database("tripcart").Collection("group_members")
}
