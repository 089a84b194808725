package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIDFilter(t *testing.T) {
	assert.Equal(t, bson.M{"id": "3f0c-uuid"}, IDFilter("3f0c-uuid"))

	oid := primitive.NewObjectID()
	assert.Equal(t,
		bson.M{"$or": bson.A{bson.M{"id": oid.Hex()}, bson.M{"_id": oid}}},
		IDFilter(oid.Hex()))
}

func TestUniqueIDIndexSkipsDocumentsWithoutID(t *testing.T) {
	ix := UniqueIDIndex()

	require.NotNil(t, ix.Options.Unique)
	assert.True(t, *ix.Options.Unique)
	assert.Equal(t, bson.M{"id": bson.M{"$type": "string"}}, ix.Options.PartialFilterExpression)
}

func TestTakeObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	extra := map[string]interface{}{"_id": oid, "note": "hi"}

	assert.Equal(t, oid.Hex(), TakeObjectID(extra))
	assert.Equal(t, map[string]interface{}{"note": "hi"}, extra)

	assert.Empty(t, TakeObjectID(nil))
	assert.Empty(t, TakeObjectID(map[string]interface{}{"_id": "custom"}))
}
