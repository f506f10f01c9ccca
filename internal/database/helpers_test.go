package database

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/maarriet/costa-rica-tourism-system/internal/models"
)

// pqUniqueViolationForTest mimics the error the driver returns when a
// unique constraint fires.
var pqUniqueViolationForTest = pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pqUniqueViolationForTest))
	assert.False(t, isUniqueViolation(assert.AnError))
	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
}

func TestStatusStrings(t *testing.T) {
	out := statusStrings(models.AdmissionStatuses)
	assert.Equal(t, []string{"confirmed", "checked_in"}, out)
}
