package validators

import "go.mongodb.org/mongo-driver/bson"

// AssetValidator mirrors the asset model. The anyOf clause keeps the holder
// consistent with availability for writes that bypass the service.
var AssetValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"type",
			"is_available",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"type": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 50,
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 1000,
			},

			"is_available": bson.M{
				"bsonType": "bool",
			},

			"booked_by": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 128,
			},

			"booked_by_full_name": bson.M{
				"bsonType":  "string",
				"maxLength": 200,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},

		"anyOf": []bson.M{
			{
				"properties": bson.M{"is_available": bson.M{"enum": []bool{true}}},
				"not": bson.M{
					"anyOf": []bson.M{
						{"required": []string{"booked_by"}},
						{"required": []string{"booked_by_full_name"}},
					},
				},
			},
			{
				"properties": bson.M{"is_available": bson.M{"enum": []bool{false}}},
				"required":   []string{"booked_by"},
			},
		},
	},
}
