package searchservice

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// rowValues is the positional schema shared by both channels: title,
// description or content, modified timestamp, author username, author userId,
// deep link.
func rowValues(doc bson.M, bodyField, link string) ([]any, error) {
	title, ok := doc["title"].(string)
	if !ok {
		return nil, fmt.Errorf("missing title")
	}

	body, _ := doc[bodyField].(string)

	author, ok := doc["author"].(bson.M)
	if !ok {
		return nil, fmt.Errorf("missing author")
	}
	userID, ok := author["userId"].(string)
	if !ok {
		return nil, fmt.Errorf("missing author userId")
	}
	username, _ := author["username"].(string)

	return []any{title, body, doc["modified"], username, userID, link}, nil
}

func docID(doc bson.M, key string) (primitive.ObjectID, error) {
	id, ok := doc[key].(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("missing %s", key)
	}
	return id, nil
}

func toRow(values []any, columns []string) Row {
	row := make(Row, len(columns))
	for i, col := range columns {
		if i >= len(values) {
			break
		}
		row[col] = values[i]
	}
	return row
}
