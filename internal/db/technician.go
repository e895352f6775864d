package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xnorik/xnorik-backend/internal/models"
)

// MongoTechnicianCollection implements TechnicianCollection for MongoDB
type MongoTechnicianCollection struct {
	Collection *mongo.Collection
}

// InsertTechnician inserts a new technician account into the database
func (c *MongoTechnicianCollection) InsertTechnician(ctx context.Context, tech models.Technician) error {
	tech.CreatedAt = time.Now()
	tech.UpdatedAt = time.Now()
	tech.IsActive = true

	_, err := c.Collection.InsertOne(ctx, tech)
	return err
}

// FindTechnicianByID finds a technician by their ID
func (c *MongoTechnicianCollection) FindTechnicianByID(ctx context.Context, id string) (*models.Technician, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var tech models.Technician
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&tech)
	if err != nil {
		return nil, err
	}

	return &tech, nil
}

// FindTechnicianByUsername finds a technician by their username
func (c *MongoTechnicianCollection) FindTechnicianByUsername(ctx context.Context, username string) (*models.Technician, error) {
	var tech models.Technician
	err := c.Collection.FindOne(ctx, bson.M{"username": username}).Decode(&tech)
	if err != nil {
		return nil, err
	}

	return &tech, nil
}

// FindTechnicianByEmail finds a technician by their email
func (c *MongoTechnicianCollection) FindTechnicianByEmail(ctx context.Context, email string) (*models.Technician, error) {
	var tech models.Technician
	err := c.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&tech)
	if err != nil {
		return nil, err
	}

	return &tech, nil
}

// UpdateLastLogin updates the last login time for a technician
func (c *MongoTechnicianCollection) UpdateLastLogin(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = c.Collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"last_login": now, "updated_at": now}},
	)
	return err
}
