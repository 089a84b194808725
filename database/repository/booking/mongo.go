// File: database/repository/booking/mongo.go
package bookingRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"clinicbook/database"
	"clinicbook/models"
)

const (
	clientDayIndex = "unique_client_day"
	slotClaimIndex = "unique_slot_claim"
)

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a BookingRepository over db.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	return &mongoBookingRepo{coll: db.Collection(database.BookingsCollection)}
}

// EnsureIndexes creates the booking indexes. The slot claim index is only
// created when enforceSlotClaim is set.
func EnsureIndexes(ctx context.Context, db *mongo.Database, enforceSlotClaim bool) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		database.UniqueIDIndex(),
		{
			Keys: bson.D{
				{Key: "treatment", Value: 1},
				{Key: "appointmentDate", Value: 1},
				{Key: "email", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName(clientDayIndex),
		},
		// Availability queries filter on date first.
		{
			Keys:    bson.D{{Key: "appointmentDate", Value: 1}, {Key: "treatment", Value: 1}},
			Options: options.Index().SetName("date_treatment_idx"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_idx"),
		},
	}
	if enforceSlotClaim {
		indexModels = append(indexModels, mongo.IndexModel{
			Keys: bson.D{
				{Key: "treatment", Value: 1},
				{Key: "appointmentDate", Value: 1},
				{Key: "slot", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName(slotClaimIndex),
		})
	}

	if _, err := db.Collection(database.BookingsCollection).Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}

func (r *mongoBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	b.CreatedAt = time.Now().UTC()

	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), slotClaimIndex) {
				return ErrSlotTaken
			}
			if strings.Contains(err.Error(), clientDayIndex) {
				return ErrDuplicateBooking
			}
		}
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := r.coll.FindOne(ctx, database.IDFilter(id)).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	adoptObjectID(&b)
	return &b, nil
}

func (r *mongoBookingRepo) FindByDate(ctx context.Context, date string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"appointmentDate": date})
}

func (r *mongoBookingRepo) FindByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"email": email})
}

func (r *mongoBookingRepo) FindForClientDay(ctx context.Context, treatment, date, email string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{
		"treatment":       treatment,
		"appointmentDate": date,
		"email":           email,
	})
}

func (r *mongoBookingRepo) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	for i := range bookings {
		adoptObjectID(&bookings[i])
	}
	return bookings, nil
}

// adoptObjectID drops the decoded _id; bookings without a string id are
// addressed by its hex form.
func adoptObjectID(b *models.Booking) {
	if oid := database.TakeObjectID(b.Extra); b.ID == "" {
		b.ID = oid
	}
}

func (r *mongoBookingRepo) MarkPaid(ctx context.Context, id, transactionID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"paid": true, "transactionId": transactionID}}
	res, err := r.coll.UpdateOne(ctx, database.IDFilter(id), update)
	if err != nil {
		return 0, fmt.Errorf("failed to mark booking %s paid: %w", id, err)
	}
	return res.MatchedCount, nil
}

func (r *mongoBookingRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return n, nil
}
