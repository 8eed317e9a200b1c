package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	userIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("user_createdAt_index"),
	}
	statusIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "orderStatus", Value: 1}},
		Options: options.Index().SetName("orderStatus_index"),
	}

	log.Println("EnsureOrderIndexes: creating order indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{userIndex, statusIndex})
	if err != nil {
		log.Println("EnsureOrderIndexes: index error:", err)
		return err
	}
	log.Println("EnsureOrderIndexes: order indexes created")
	return nil
}

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating email_unique index")
	_, err := indexes.CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureUserIndexes: email index error:", err)
		return err
	}
	log.Println("EnsureUserIndexes: email_unique index created")
	return nil
}

func EnsureProductIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("products").Indexes()

	sellerIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "createdBy", Value: 1}},
		Options: options.Index().SetName("createdBy_index"),
	}

	log.Println("EnsureProductIndexes: creating createdBy_index index")
	_, err := indexes.CreateOne(ctx, sellerIndex)
	if err != nil {
		log.Println("EnsureProductIndexes: createdBy index error:", err)
		return err
	}
	log.Println("EnsureProductIndexes: createdBy_index index created")
	return nil
}

func EnsureNotificationIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("notifications").Indexes()

	recipientIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "recipient", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("recipient_createdAt_index"),
	}

	log.Println("EnsureNotificationIndexes: creating recipient_createdAt_index index")
	_, err := indexes.CreateOne(ctx, recipientIndex)
	if err != nil {
		log.Println("EnsureNotificationIndexes: recipient index error:", err)
		return err
	}
	log.Println("EnsureNotificationIndexes: recipient_createdAt_index index created")
	return nil
}
