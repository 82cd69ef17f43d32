package ga

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"github.com/google/uuid"
)

var ErrInvalidSeed = errors.New("ga: некорректный seed")

// ParseSeed разбирает UUID запуска.
func ParseSeed(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w %q: %v", ErrInvalidSeed, s, err)
	}
	return id, nil
}

// resolveSeed возвращает явный seed из конфигурации либо новый UUID.
func resolveSeed(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.New(), nil
	}
	return ParseSeed(s)
}

// SeedFromInt строит детерминированный UUID из целого числа.
// Используется бенчмарком, где запуски нумеруются целыми сидами.
func SeedFromInt(v int64) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strconv.FormatInt(v, 10)))
}

// rngFromSeed инициализирует генератор младшими 64 битами UUID.
func rngFromSeed(id uuid.UUID) *rand.Rand {
	lsb := binary.BigEndian.Uint64(id[8:])
	return rand.New(rand.NewSource(int64(lsb & math.MaxInt64)))
}
