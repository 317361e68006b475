package util

import "go.mongodb.org/mongo-driver/bson"

// GetSortBson maps a "field.direction" query value to a mongo sort document.
// Unknown values fall back to newest first.
func GetSortBson(sort string) bson.D {
	switch sort {
	case "created_at.asc":
		return bson.D{{Key: "created_at", Value: 1}}
	case "created_at.desc":
		return bson.D{{Key: "created_at", Value: -1}}
	case "total_amount.asc":
		return bson.D{{Key: "pricing.total_amount", Value: 1}}
	case "total_amount.desc":
		return bson.D{{Key: "pricing.total_amount", Value: -1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}}
	}
}
