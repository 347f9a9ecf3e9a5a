package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
// Пример запроса PromQL: rate(http_requests_total{service="storefront"}[5m])
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
// Пример: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// MongoDB Метрики
// =============================================================================

// MongoOperationDuration - время выполнения операций с MongoDB
var MongoOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "mongo_operation_duration_seconds",
		Help:    "Duration of MongoDB operations in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "collection"},
)

// MongoErrors - счётчик ошибок MongoDB
var MongoErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "mongo_errors_total",
		Help: "Total number of MongoDB errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Redis Метрики (кеш каталога)
// =============================================================================

// RedisCacheHits - попадания в кеш
var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

// RedisCacheMisses - промахи кеша
var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

// RedisOperationDuration - время операций Redis
var RedisOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "redis_operation_duration_seconds",
		Help:    "Duration of Redis operations in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	},
	[]string{"service", "operation"}, // operation: get, set, del
)

// RedisErrors - ошибки Redis
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka Метрики
// =============================================================================

// KafkaMessagesProduced - отправленные сообщения
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

// KafkaProduceDuration - время отправки сообщения
var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

// KafkaErrors - ошибки Kafka
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)

// =============================================================================
// Business Метрики (специфичные для Velora)
// =============================================================================

// ReviewsSubmitted - принятые отзывы
var ReviewsSubmitted = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "reviews_submitted_total",
		Help: "Total number of product reviews accepted",
	},
)

// ReviewsRejected - отклонённые отзывы по причинам
var ReviewsRejected = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "reviews_rejected_total",
		Help: "Total number of product reviews rejected",
	},
	[]string{"reason"}, // not_found, duplicate, invalid_rating
)

// CatalogMutations - мутации каталога (каждая инвалидирует кеш)
var CatalogMutations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_mutations_total",
		Help: "Total number of catalog mutations",
	},
	[]string{"operation"}, // create, update, delete, review_append
)
