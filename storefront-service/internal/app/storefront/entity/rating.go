package entity

import "math"

// RecomputeRating пересчитывает агрегаты рейтинга по полному списку отзывов.
// Чистая функция без побочных эффектов: вызывается при каждом изменении списка
// и её результат записывается в документ товара той же операцией записи.
//
// Средний рейтинг округляется до одного знака после запятой, при пустом
// списке оба агрегата равны нулю.
func RecomputeRating(reviews []Review) (numReviews int, averageRating float64) {
	numReviews = len(reviews)
	if numReviews == 0 {
		return 0, 0
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}

	averageRating = math.Round(float64(sum)/float64(numReviews)*10) / 10
	return numReviews, averageRating
}
