package providerRepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"clinicbook/models"
)

func TestMongoProviderRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create", func(mt *mtest.T) {
		repo := NewMongoProviderRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		p := &models.Provider{Name: "Dr. Who", Email: "who@x.io"}
		require.NoError(mt, repo.Create(context.Background(), p))
		assert.NotEmpty(mt, p.ID)
	})

	mt.Run("delete unknown", func(mt *mtest.T) {
		repo := NewMongoProviderRepo(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}})

		n, err := repo.Delete(context.Background(), "missing")
		require.NoError(mt, err)
		assert.EqualValues(mt, 0, n)
	})
}

func TestMemoryProviderRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProviderRepo()

	p := &models.Provider{Name: "Dr. Who", Email: "who@x.io", Extra: models.Extras{"room": "2"}}
	require.NoError(t, repo.Create(ctx, p))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "2", all[0].Extra["room"])

	n, err := repo.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = repo.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}
