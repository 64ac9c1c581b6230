package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "100%", FormatPercent(0, 0))
	assert.Equal(t, "50%", FormatPercent(1, 2))
	assert.Equal(t, "33%", FormatPercent(1, 3))
}

func TestCombine(t *testing.T) {
	assert.NoError(t, Combine(nil, nil))
	e1 := errors.New("one")
	err := Combine(nil, e1)
	assert.ErrorIs(t, err, e1)
}

func TestRecover(t *testing.T) {
	assert.NotPanics(t, func() {
		defer Recover("recovered in test")
		panic("boom")
	})
}
