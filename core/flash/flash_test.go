package flash_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webutils/core/flash"
)

func TestNew(t *testing.T) {
	t.Parallel()

	f, err := flash.New(flash.Warn, "careful")
	require.NoError(t, err)
	assert.Equal(t, "warn", f.Level.CSS())

	_, err = flash.New("DEBUG", "nope")
	assert.ErrorIs(t, err, flash.ErrInvalidLevel)
}

func TestHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, flash.Flash{Level: flash.Info, Message: "saved 3"}, flash.Infof("saved %d", 3))
	assert.Equal(t, flash.Error, flash.Errorf("x").Level)
	assert.Equal(t, flash.Warn, flash.Warnf("x").Level)

	errs := flash.Errors("a", "b")
	require.Len(t, errs, 2)
	assert.Equal(t, "error", errs[1].Level.CSS())
	assert.Equal(t, "b", errs[1].Message)
}
