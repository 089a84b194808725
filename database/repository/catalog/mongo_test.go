package catalogRepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"clinicbook/models"
)

func TestRemainingSlotsPipeline(t *testing.T) {
	p := remainingSlotsPipeline("bookings", "May 5, 2025")
	require.Len(t, p, 3)
	assert.Equal(t, "$sort", p[0][0].Key)
	assert.Equal(t, "$lookup", p[1][0].Key)
	assert.Equal(t, "$project", p[2][0].Key)

	lookup := p[1][0].Value.(bson.D).Map()
	assert.Equal(t, "bookings", lookup["from"])
	assert.Equal(t, "name", lookup["localField"])
	assert.Equal(t, "treatment", lookup["foreignField"])
	assert.Equal(t, "booked", lookup["as"])
}

func TestMongoRemainingSlots(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes projection", func(mt *mtest.T) {
		repo := NewMongoCatalogRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "dentistDB.appointmentOptions", mtest.FirstBatch,
			bson.D{{Key: "name", Value: "Braces"}, {Key: "price", Value: 900.0}},
			bson.D{{Key: "name", Value: "Cleaning"}, {Key: "price", Value: 50.0}, {Key: "slots", Value: bson.A{"09:00", "11:00"}}},
		))

		got, err := repo.RemainingSlots(context.Background(), "May 5, 2025")
		require.NoError(mt, err)
		assert.Equal(mt, []models.Availability{
			{TreatmentName: "Braces", Price: 900, RemainingSlots: []string{}},
			{TreatmentName: "Cleaning", Price: 50, RemainingSlots: []string{"09:00", "11:00"}},
		}, got)
	})
}

func TestMongoGetByNameMissing(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("nil on miss", func(mt *mtest.T) {
		repo := NewMongoCatalogRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "dentistDB.appointmentOptions", mtest.FirstBatch))

		got, err := repo.GetByName(context.Background(), "Nothing")
		require.NoError(mt, err)
		assert.Nil(mt, got)
	})
}
