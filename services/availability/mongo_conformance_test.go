package availability

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicbook/database"
	bookingRepo "clinicbook/database/repository/booking"
	catalogRepo "clinicbook/database/repository/catalog"
	"clinicbook/models"
)

// TestStrategiesAgreeOnMongo runs the aggregation pipeline against a real
// server. Set CLINIC_TEST_MONGO_URI to enable it.
func TestStrategiesAgreeOnMongo(t *testing.T) {
	uri := os.Getenv("CLINIC_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("CLINIC_TEST_MONGO_URI not set")
	}
	ctx := context.Background()

	client, err := database.Connect(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	db := client.Database(fmt.Sprintf("clinicbook_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() { _ = db.Drop(context.Background()) })

	require.NoError(t, catalogRepo.EnsureIndexes(ctx, db))
	require.NoError(t, bookingRepo.EnsureIndexes(ctx, db, true))

	catalog := catalogRepo.NewMongoCatalogRepo(db)
	bookings := bookingRepo.NewMongoBookingRepo(db)

	for _, opt := range []models.TreatmentOption{
		{Name: "Whitening", Price: 120, Slots: []string{"13:00", "14:00"}},
		{Name: "Cleaning", Price: 50, Slots: []string{"09:00", "10:00", "11:00"}},
		{Name: "Braces", Price: 900, Slots: []string{}},
	} {
		require.NoError(t, catalog.Upsert(ctx, opt))
	}
	for _, b := range []models.Booking{
		{Treatment: "Cleaning", AppointmentDate: "May 5, 2025", Slot: "10:00", Email: "a@x.io"},
		{Treatment: "Cleaning", AppointmentDate: "May 5, 2025", Slot: "09:00", Email: "b@x.io"},
		{Treatment: "Whitening", AppointmentDate: "May 5, 2025", Slot: "14:00", Email: "a@x.io"},
		{Treatment: "Cleaning", AppointmentDate: "May 6, 2025", Slot: "11:00", Email: "a@x.io"},
	} {
		b := b
		require.NoError(t, bookings.Create(ctx, &b))
	}

	naive := &NaiveStrategy{Catalog: catalog, Bookings: bookings}
	aggregate := &AggregateStrategy{Catalog: catalog}

	for _, date := range []string{"May 5, 2025", "May 6, 2025", "someday"} {
		fromNaive, err := naive.Remaining(ctx, date)
		require.NoError(t, err)
		fromAggregate, err := aggregate.Remaining(ctx, date)
		require.NoError(t, err)
		assert.Equal(t, fromNaive, fromAggregate, date)
	}
}
