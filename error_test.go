package bookgrab_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/bookgrab"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := bookgrab.Errorf(bookgrab.ETIMEOUT, "element %q not found", "ol")

	assert.Equal(t, bookgrab.ETIMEOUT, bookgrab.ErrorCode(err))
	assert.Equal(t, "element \"ol\" not found", bookgrab.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, bookgrab.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, bookgrab.ErrorMessage(nil))
}

func TestErrorCode_UnwrapsWrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("sampling: %w", bookgrab.Errorf(bookgrab.EUNAVAILABLE, "browser closed"))

	assert.Equal(t, bookgrab.EUNAVAILABLE, bookgrab.ErrorCode(err))
	assert.Equal(t, "browser closed", bookgrab.ErrorMessage(err))
}

func TestErrorCode_ForeignErrorIsInternal(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, bookgrab.EINTERNAL, bookgrab.ErrorCode(err))
	assert.Equal(t, "Internal error.", bookgrab.ErrorMessage(err))
}
