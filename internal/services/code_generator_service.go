package services

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/maarriet/costa-rica-tourism-system/internal/clock"
	"github.com/maarriet/costa-rica-tourism-system/internal/models"
)

// Code prefixes for the generated business identifiers
const (
	ReservationCodePrefix = "RES"
	PlaceCodePrefix       = "PLC"
)

// maxCodeAttempts bounds the regeneration loop on code collisions
const maxCodeAttempts = 20

// CodeExistsFunc reports whether a generated code is already taken.
type CodeExistsFunc func(code string) (bool, error)

// CodeGeneratorService produces unique human-readable codes of the form
// PREFIX + yyyyMMdd + 4 random digits (e.g. RES202608281234).
type CodeGeneratorService struct {
	clock clock.Clock

	mu  sync.Mutex
	rng *rand.Rand
}

// NewCodeGeneratorService creates a new CodeGeneratorService
func NewCodeGeneratorService(clk clock.Clock) *CodeGeneratorService {
	return &CodeGeneratorService{
		clock: clk,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate builds a single candidate code without checking uniqueness.
func (s *CodeGeneratorService) Generate(prefix string) string {
	s.mu.Lock()
	suffix := 1000 + s.rng.Intn(9000)
	s.mu.Unlock()

	return fmt.Sprintf("%s%s%04d", prefix, s.clock.Now().Format("20060102"), suffix)
}

// GenerateUnique generates codes until one passes the exists check,
// giving up after maxCodeAttempts collisions.
func (s *CodeGeneratorService) GenerateUnique(prefix string, exists CodeExistsFunc) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := s.Generate(prefix)

		taken, err := exists(code)
		if err != nil {
			return "", fmt.Errorf("failed to check code uniqueness: %w", err)
		}
		if !taken {
			return code, nil
		}
	}

	return "", models.ErrCodeGenerationExhausted
}
