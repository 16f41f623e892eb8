package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	nf := NotFound("thing_missing", "thing not found")
	assert.Equal(t, http.StatusNotFound, nf.Code)
	assert.Equal(t, KindNotFound, nf.Kind)
	assert.Equal(t, Reason("thing_missing"), nf.Reason)
	assert.Equal(t, "thing not found", nf.Error())

	ir := InvalidRequest("bad_input", "input is bad")
	assert.Equal(t, http.StatusBadRequest, ir.Code)
	assert.Equal(t, KindInvalidRequest, ir.Kind)
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("row not found")
	err := Wrap(cause, http.StatusNotFound, KindNotFound, "thing_missing", "thing not found")

	assert.ErrorIs(t, err, cause)

	var appErr *AppError
	require.ErrorAs(t, error(err), &appErr)
	assert.Equal(t, Reason("thing_missing"), appErr.Reason)
}
