// File: database/repository/catalog/mongo.go
package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"clinicbook/database"
	"clinicbook/models"
)

type mongoCatalogRepo struct {
	coll         *mongo.Collection
	bookingsColl string
}

// NewMongoCatalogRepo constructs a CatalogRepository over db.
func NewMongoCatalogRepo(db *mongo.Database) CatalogRepository {
	return &mongoCatalogRepo{
		coll:         db.Collection(database.TreatmentsCollection),
		bookingsColl: database.BookingsCollection,
	}
}

// EnsureIndexes creates the unique name index the bookings join relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := db.Collection(database.TreatmentsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_name"),
	})
	if err != nil {
		return fmt.Errorf("failed to create treatment indexes: %w", err)
	}
	return nil
}

func (r *mongoCatalogRepo) ListTreatments(ctx context.Context) ([]models.TreatmentOption, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetProjection(bson.M{"_id": 0})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch treatments: %w", err)
	}
	defer cursor.Close(ctx)

	treatments := []models.TreatmentOption{}
	if err := cursor.All(ctx, &treatments); err != nil {
		return nil, fmt.Errorf("error decoding treatments: %w", err)
	}
	return treatments, nil
}

func (r *mongoCatalogRepo) ListTreatmentNames(ctx context.Context) ([]models.TreatmentName, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetProjection(bson.M{"_id": 0, "id": 1, "name": 1})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch treatment names: %w", err)
	}
	defer cursor.Close(ctx)

	names := []models.TreatmentName{}
	if err := cursor.All(ctx, &names); err != nil {
		return nil, fmt.Errorf("error decoding treatment names: %w", err)
	}
	return names, nil
}

func (r *mongoCatalogRepo) GetByName(ctx context.Context, name string) (*models.TreatmentOption, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var option models.TreatmentOption
	err := r.coll.FindOne(ctx, bson.M{"name": name}, options.FindOne().SetProjection(bson.M{"_id": 0})).Decode(&option)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch treatment %q: %w", name, err)
	}
	return &option, nil
}

func (r *mongoCatalogRepo) Upsert(ctx context.Context, option models.TreatmentOption) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if option.Slots == nil {
		option.Slots = []string{}
	}
	update := bson.M{
		"$set":         bson.M{"price": option.Price, "slots": option.Slots},
		"$setOnInsert": bson.M{"id": uuid.New().String()},
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"name": option.Name}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert treatment %q: %w", option.Name, err)
	}
	return nil
}

// RemainingSlots joins each treatment with the bookings made for it on date
// and keeps the catalog slots nobody has claimed, in catalog order.
func (r *mongoCatalogRepo) RemainingSlots(ctx context.Context, date string) ([]models.Availability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, remainingSlotsPipeline(r.bookingsColl, date))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate remaining slots: %w", err)
	}
	defer cursor.Close(ctx)

	result := []models.Availability{}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("error decoding remaining slots: %w", err)
	}
	for i := range result {
		if result[i].RemainingSlots == nil {
			result[i].RemainingSlots = []string{}
		}
	}
	return result, nil
}

// $filter keeps the input order, unlike $setDifference.
func remainingSlotsPipeline(bookingsColl, date string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "name", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: bookingsColl},
			{Key: "localField", Value: "name"},
			{Key: "foreignField", Value: "treatment"},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{
					{Key: "$expr", Value: bson.D{{Key: "$eq", Value: bson.A{"$appointmentDate", date}}}},
				}}},
				bson.D{{Key: "$project", Value: bson.D{{Key: "_id", Value: 0}, {Key: "slot", Value: 1}}}},
			}},
			{Key: "as", Value: "booked"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "name", Value: 1},
			{Key: "price", Value: 1},
			{Key: "slots", Value: bson.D{{Key: "$filter", Value: bson.D{
				{Key: "input", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$slots", bson.A{}}}}},
				{Key: "as", Value: "slot"},
				{Key: "cond", Value: bson.D{{Key: "$not", Value: bson.A{
					bson.D{{Key: "$in", Value: bson.A{"$$slot", "$booked.slot"}}},
				}}}},
			}}}},
		}}},
	}
}
