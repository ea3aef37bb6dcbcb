package validators

import "go.mongodb.org/mongo-driver/bson"

var MeetupValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"title",
			"creator_email",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"title": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 120,
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 2000,
			},

			"address": bson.M{
				"bsonType":  "string",
				"maxLength": 200,
			},

			"creator_email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},

			"use_time_ranges": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
