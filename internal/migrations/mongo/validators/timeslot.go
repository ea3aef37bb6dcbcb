package validators

import "go.mongodb.org/mongo-driver/bson"

var TimeSlotValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"meetup_id",
			"start_time",
			"end_time",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"meetup_id": bson.M{
				"bsonType": "string",
			},

			"start_time": bson.M{
				"bsonType": "date",
			},

			"end_time": bson.M{
				"bsonType": "date",
			},
		},
	},
}
