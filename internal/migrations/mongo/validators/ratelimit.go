package validators

import "go.mongodb.org/mongo-driver/bson"

var RateLimitValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"identifier",
			"type",
			"month",
			"year",
			"count",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"identifier": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"type": bson.M{
				"bsonType": "string",
				"enum": []string{
					"email",
					"ip",
				},
			},

			"month": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  366,
			},

			"year": bson.M{
				"bsonType": "int",
				"minimum":  2024,
			},

			"count": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},
		},
	},
}
