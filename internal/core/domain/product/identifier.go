package product

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EncodeID renders a native identifier as the 24-char hex string used for
// cache keys and API payloads.
func EncodeID(id primitive.ObjectID) string {
	return id.Hex()
}

// DecodeID parses the string form back into a native identifier.
func DecodeID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
	}
	return id, nil
}

// NewID allocates a fresh native identifier.
func NewID() primitive.ObjectID {
	return primitive.NewObjectID()
}
