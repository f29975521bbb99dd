// internal/domain/models/feedback.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback is a message submitted through the site's feedback form.
// Reference is a short opaque code returned to the submitter so support
// can find the message later without exposing document IDs.
type Feedback struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Reference string             `bson:"reference" json:"reference"`
	UID       string             `bson:"uid,omitempty" json:"uid,omitempty"` // set when the caller was signed in
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Subject   string             `bson:"subject" json:"subject"`
	Body      string             `bson:"body" json:"body"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
