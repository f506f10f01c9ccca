package services

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maarriet/costa-rica-tourism-system/internal/clock"
	"github.com/maarriet/costa-rica-tourism-system/internal/models"
)

func TestGenerateCodeFormat(t *testing.T) {
	clk := clock.NewFixed(time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))
	gen := NewCodeGeneratorService(clk)

	pattern := regexp.MustCompile(`^RES20260828[1-9]\d{3}$`)
	for i := 0; i < 50; i++ {
		code := gen.Generate(ReservationCodePrefix)
		assert.Regexp(t, pattern, code)
	}
}

func TestGenerateUnique(t *testing.T) {
	clk := clock.NewFixed(time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))
	gen := NewCodeGeneratorService(clk)

	t.Run("FirstTry", func(t *testing.T) {
		code, err := gen.GenerateUnique(PlaceCodePrefix, func(string) (bool, error) {
			return false, nil
		})
		require.NoError(t, err)
		assert.Contains(t, code, "PLC20260828")
	})

	t.Run("RetriesOnCollision", func(t *testing.T) {
		calls := 0
		code, err := gen.GenerateUnique(ReservationCodePrefix, func(string) (bool, error) {
			calls++
			return calls < 3, nil
		})
		require.NoError(t, err)
		assert.NotEmpty(t, code)
		assert.Equal(t, 3, calls)
	})

	t.Run("ExhaustsAfterMaxAttempts", func(t *testing.T) {
		calls := 0
		_, err := gen.GenerateUnique(ReservationCodePrefix, func(string) (bool, error) {
			calls++
			return true, nil
		})
		assert.ErrorIs(t, err, models.ErrCodeGenerationExhausted)
		assert.Equal(t, maxCodeAttempts, calls)
	})

	t.Run("PropagatesCheckError", func(t *testing.T) {
		boom := errors.New("db down")
		_, err := gen.GenerateUnique(ReservationCodePrefix, func(string) (bool, error) {
			return false, boom
		})
		assert.ErrorIs(t, err, boom)
	})
}
