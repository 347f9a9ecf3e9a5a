package util

import "sync"

// KeyedMutex - таблица мьютексов по строковому ключу.
// Сериализует протокол добавления отзыва для одного товара: два конкурентных
// read-modify-write одного документа при last-writer-wins перезаписи теряют
// один из отзывов, поэтому вся последовательность load-append-recompute-save
// выполняется под замком ключа товара. Замки разных товаров независимы
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[string]*keyLock),
	}
}

// Lock захватывает мьютекс ключа, создавая запись при необходимости
func (k *KeyedMutex) Lock(key string) {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
}

// Unlock освобождает мьютекс ключа и удаляет запись, когда ожидающих не осталось
func (k *KeyedMutex) Unlock(key string) {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		k.mu.Unlock()
		panic("keyed mutex: unlock of unlocked key " + key)
	}
	l.refs--
	if l.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	l.mu.Unlock()
}
