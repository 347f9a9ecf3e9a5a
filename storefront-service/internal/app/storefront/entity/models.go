package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review - отзыв, встроенный в документ товара
// Отзывы append-only: редактирование и удаление отдельных отзывов не поддерживается
type Review struct {
	UserID    string    `json:"user_id" bson:"user_id"` // UUID пользователя из JWT
	Rating    int       `json:"rating" bson:"rating"`   // Оценка от 1 до 5
	Comment   string    `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Product - товар каталога вместе со встроенным списком отзывов
// и агрегатами рейтинга. Документ хранится в MongoDB целиком, поэтому
// запись отзыва вместе с пересчитанными агрегатами атомарна
type Product struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Description   string             `json:"description" bson:"description"`
	Price         float64            `json:"price" bson:"price"`
	Category      string             `json:"category" bson:"category"`
	SubCategory   string             `json:"sub_category" bson:"sub_category"`
	Images        []string           `json:"images" bson:"images"`
	Sizes         []string           `json:"sizes" bson:"sizes"`
	Bestseller    bool               `json:"bestseller" bson:"bestseller"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	Reviews       []Review           `json:"reviews" bson:"reviews"`
	NumReviews    int                `json:"num_reviews" bson:"num_reviews"`       // == len(Reviews)
	AverageRating float64            `json:"average_rating" bson:"average_rating"` // 0 при отсутствии отзывов
}

// Banner - промо-баннер витрины
type Banner struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ImageURL  string             `json:"image_url" bson:"image_url"`
	Title     string             `json:"title,omitempty" bson:"title,omitempty"`
	Link      string             `json:"link,omitempty" bson:"link,omitempty"`
	Order     int                `json:"order" bson:"order"` // Порядок показа, по возрастанию
	Active    bool               `json:"active" bson:"active"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// IssueNote - заметка администратора по обращению
type IssueNote struct {
	Note      string    `json:"note" bson:"note"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Issue - обращение в поддержку
type Issue struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID     string             `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	Email      string             `json:"email" bson:"email"`
	Subject    string             `json:"subject" bson:"subject"`
	Category   string             `json:"category" bson:"category"` // Delivery, Payment, Product, Account, Other
	OrderID    string             `json:"order_id,omitempty" bson:"order_id,omitempty"`
	Message    string             `json:"message" bson:"message"`
	Status     string             `json:"status" bson:"status"` // open, in_progress, resolved
	AdminNotes []IssueNote        `json:"admin_notes,omitempty" bson:"admin_notes,omitempty"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// Статусы обращений
const (
	IssueStatusOpen       = "open"
	IssueStatusInProgress = "in_progress"
	IssueStatusResolved   = "resolved"
)

// ProductEvent - событие каталога для топика product_events
type ProductEvent struct {
	EventType string    `json:"event_type"` // PRODUCT_CREATED, PRODUCT_UPDATED, PRODUCT_DELETED
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// ReviewEvent - событие о принятом отзыве
type ReviewEvent struct {
	EventType     string    `json:"event_type"` // REVIEW_ADDED
	ProductID     string    `json:"product_id"`
	UserID        string    `json:"user_id"`
	Rating        int       `json:"rating"`
	NumReviews    int       `json:"num_reviews"`
	AverageRating float64   `json:"average_rating"`
	Timestamp     time.Time `json:"timestamp"`
}
