package service

import "errors"

// Ошибки бизнес-логики для обработки в handlers.
// Все проверки выполняются до записи в хранилище: при любой из этих ошибок
// мутация не происходит и кеш остается валидным
var (
	ErrProductNotFound = errors.New("product not found")
	ErrBannerNotFound  = errors.New("banner not found")
	ErrIssueNotFound   = errors.New("issue not found")

	// Рейтинг вне диапазона [1,5]
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// Один отзыв на пару (товар, пользователь)
	ErrDuplicateReview = errors.New("user has already reviewed this product")
)
