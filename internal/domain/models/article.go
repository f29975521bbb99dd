// internal/domain/models/article.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Article kinds.
const (
	ArticleNews = "news"
	ArticleLore = "lore"
)

// Article is a lore or news entry managed by site admins. Body is
// sanitized HTML (or plain text) stored as authored.
type Article struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Slug      string             `bson:"slug" json:"slug"`
	Title     string             `bson:"title" json:"title"`
	Body      string             `bson:"body" json:"body"`
	Kind      string             `bson:"kind" json:"kind"` // "news" | "lore"
	Published bool               `bson:"published" json:"published"`
	AuthorUID string             `bson:"author_uid" json:"author_uid"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
