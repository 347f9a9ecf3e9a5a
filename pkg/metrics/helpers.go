package metrics

import (
	"time"
)

type RedisOperation string

const (
	RedisOpGet RedisOperation = "get"
	RedisOpSet RedisOperation = "set"
	RedisOpDel RedisOperation = "del"
)

// RedisTimer измеряет длительность одной операции Redis
type RedisTimer struct {
	service   string
	operation RedisOperation
	start     time.Time
}

func NewRedisTimer(service string, op RedisOperation) *RedisTimer {
	return &RedisTimer{
		service:   service,
		operation: op,
		start:     time.Now(),
	}
}

func (rt *RedisTimer) ObserveDuration() {
	duration := time.Since(rt.start).Seconds()
	RedisOperationDuration.WithLabelValues(rt.service, string(rt.operation)).Observe(duration)
}

func RecordCacheHit(service, keyPrefix string) {
	RedisCacheHits.WithLabelValues(service, keyPrefix).Inc()
}

func RecordCacheMiss(service, keyPrefix string) {
	RedisCacheMisses.WithLabelValues(service, keyPrefix).Inc()
}

func RecordRedisError(service string, op RedisOperation) {
	RedisErrors.WithLabelValues(service, string(op)).Inc()
}

type MongoOperation string

const (
	MongoOpFind    MongoOperation = "find"
	MongoOpInsert  MongoOperation = "insert"
	MongoOpReplace MongoOperation = "replace"
	MongoOpUpdate  MongoOperation = "update"
	MongoOpDelete  MongoOperation = "delete"
)

// MongoTimer измеряет длительность одной операции MongoDB
type MongoTimer struct {
	service    string
	operation  MongoOperation
	collection string
	start      time.Time
}

func NewMongoTimer(service string, op MongoOperation, collection string) *MongoTimer {
	return &MongoTimer{
		service:    service,
		operation:  op,
		collection: collection,
		start:      time.Now(),
	}
}

func (mt *MongoTimer) ObserveDuration() {
	duration := time.Since(mt.start).Seconds()
	MongoOperationDuration.WithLabelValues(mt.service, string(mt.operation), mt.collection).Observe(duration)
}

func RecordMongoError(service string, op MongoOperation) {
	MongoErrors.WithLabelValues(service, string(op)).Inc()
}

// KafkaProduceTimer измеряет отправку одного сообщения
type KafkaProduceTimer struct {
	service string
	topic   string
	start   time.Time
}

func NewKafkaProduceTimer(service, topic string) *KafkaProduceTimer {
	return &KafkaProduceTimer{
		service: service,
		topic:   topic,
		start:   time.Now(),
	}
}

func (kt *KafkaProduceTimer) Success() {
	KafkaMessagesProduced.WithLabelValues(kt.service, kt.topic).Inc()
	KafkaProduceDuration.WithLabelValues(kt.service, kt.topic).Observe(time.Since(kt.start).Seconds())
}

func (kt *KafkaProduceTimer) Error() {
	KafkaErrors.WithLabelValues(kt.service, kt.topic, "produce").Inc()
}
