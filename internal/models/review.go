package models

import "time"

type Review struct {
	BaseModel
	UserID    uint   `json:"userId" gorm:"not null;uniqueIndex:idx_reviews_user_product"`
	ProductID uint   `json:"productId" gorm:"not null;uniqueIndex:idx_reviews_user_product;index"`
	Rating    int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string `json:"comment" gorm:"type:text"`

	User *UserSummary `json:"User,omitempty" gorm:"foreignKey:UserID"`
}

// Favorite marks a product as liked by a user. The pair is the key.
type Favorite struct {
	UserID    uint      `json:"userId" gorm:"primaryKey;autoIncrement:false"`
	ProductID uint      `json:"productId" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `json:"createdAt"`
}
