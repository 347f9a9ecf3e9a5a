package entity

// CreateProductRequest - запрос на создание товара
// Изображения принимаются как готовые URL: загрузка бинарных файлов
// выполняется отдельным медиа-сервисом
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Category    string   `json:"category" validate:"required"`
	SubCategory string   `json:"sub_category" validate:"required"`
	Images      []string `json:"images" validate:"required,min=1,dive,url"`
	Sizes       []string `json:"sizes" validate:"required,min=1"`
	Bestseller  bool     `json:"bestseller"`
}

// UpdateProductRequest - частичное обновление товара
// Непустые поля заменяют текущие значения. Images заменяет слоты по индексу:
// пустая строка в слоте оставляет существующее изображение
type UpdateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"omitempty,gt=0"`
	Category    string   `json:"category"`
	SubCategory string   `json:"sub_category"`
	Images      []string `json:"images"`
	Sizes       []string `json:"sizes"`
	Bestseller  *bool    `json:"bestseller"`
}

// SubmitReviewRequest - запрос на добавление отзыва к товару
// Диапазон рейтинга проверяется в service layer, чтобы вернуть типизированную
// ошибку ErrInvalidRating
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" validate:"required"`
	Comment string `json:"comment" validate:"omitempty,max=1000"`
}

// CreateBannerRequest - запрос на создание баннера
type CreateBannerRequest struct {
	ImageURL string `json:"image_url" validate:"required,url"`
	Title    string `json:"title"`
	Link     string `json:"link" validate:"omitempty,url"`
	Order    int    `json:"order"`
	Active   *bool  `json:"active"`
}

// UpdateBannerRequest - частичное обновление баннера
type UpdateBannerRequest struct {
	ImageURL string `json:"image_url" validate:"omitempty,url"`
	Title    string `json:"title"`
	Link     string `json:"link" validate:"omitempty,url"`
	Order    *int   `json:"order"`
	Active   *bool  `json:"active"`
}

// CreateIssueRequest - обращение в поддержку (доступно без аутентификации)
type CreateIssueRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Subject  string `json:"subject" validate:"required"`
	Category string `json:"category" validate:"omitempty,oneof=Delivery Payment Product Account Other"`
	OrderID  string `json:"order_id"`
	Message  string `json:"message" validate:"required"`
}

// UpdateIssueRequest - смена статуса обращения и/или заметка администратора
type UpdateIssueRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=open in_progress resolved"`
	Note   string `json:"note"`
}

// IssueFilter - фильтры списка обращений для администратора
type IssueFilter struct {
	Status  string
	Email   string
	OrderID string
	Query   string // Поиск по subject/message/email
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ProductListResponse - ответ со списком товаров
type ProductListResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// ReviewListResponse - отзывы товара вместе с агрегатами
type ReviewListResponse struct {
	Reviews       []Review `json:"reviews"`
	NumReviews    int      `json:"num_reviews"`
	AverageRating float64  `json:"average_rating"`
}

// BannerListResponse - ответ со списком баннеров
type BannerListResponse struct {
	Banners []Banner `json:"banners"`
	Total   int      `json:"total"`
}

// IssueListResponse - ответ со списком обращений
type IssueListResponse struct {
	Issues []Issue `json:"issues"`
	Total  int     `json:"total"`
}
