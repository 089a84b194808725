package database

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IDFilter matches a document by its string id. Documents written before
// string ids were assigned only carry an ObjectID _id, so a 24-hex id also
// matches that.
func IDFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"$or": bson.A{bson.M{"id": id}, bson.M{"_id": oid}}}
	}
	return bson.M{"id": id}
}

// UniqueIDIndex enforces unique string ids while ignoring documents that
// have none.
func UniqueIDIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName("unique_id").
			SetPartialFilterExpression(bson.M{"id": bson.M{"$type": "string"}}),
	}
}

// TakeObjectID removes the _id an inline extras map picked up while
// decoding and returns its hex form, or "" if there was none.
func TakeObjectID(extra map[string]interface{}) string {
	raw, ok := extra["_id"]
	if !ok {
		return ""
	}
	delete(extra, "_id")
	if oid, ok := raw.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return ""
}
