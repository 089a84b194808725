package paymentRepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"clinicbook/models"
)

func TestMongoRecord(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("first write inserts", func(mt *mtest.T) {
		repo := NewMongoPaymentRepo(mt.DB)
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "n", Value: 1},
			{Key: "nModified", Value: 0},
			{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: "oid"}}}},
		})

		p := &models.Payment{BookingID: "b1", TransactionID: "pi_1"}
		inserted, err := repo.Record(context.Background(), p)
		require.NoError(mt, err)
		assert.True(mt, inserted)
		assert.NotEmpty(mt, p.ID)
	})

	mt.Run("replay reports the stored entry", func(mt *mtest.T) {
		repo := NewMongoPaymentRepo(mt.DB)
		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 0}},
			mtest.CreateCursorResponse(0, "dentistDB.payments", mtest.FirstBatch, bson.D{
				{Key: "id", Value: "existing"},
				{Key: "bookingId", Value: "b1"},
				{Key: "transactionId", Value: "pi_1"},
			}),
		)

		p := &models.Payment{BookingID: "b1", TransactionID: "pi_1"}
		inserted, err := repo.Record(context.Background(), p)
		require.NoError(mt, err)
		assert.False(mt, inserted)
		assert.Equal(mt, "existing", p.ID)
	})
}

func TestMemoryRecordIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPaymentRepo()

	first := &models.Payment{BookingID: "b1", TransactionID: "pi_1"}
	inserted, err := repo.Record(ctx, first)
	require.NoError(t, err)
	assert.True(t, inserted)

	again := &models.Payment{BookingID: "b1", TransactionID: "pi_1"}
	inserted, err = repo.Record(ctx, again)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, first.ID, again.ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
