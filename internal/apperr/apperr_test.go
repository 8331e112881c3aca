package apperr

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindSurvivesWrapping(t *testing.T) {
	err := errors.Wrap(NotFound("map 7"), "load")
	err = errors.Wrapf(err, "edit %d", 7)

	assert.True(t, IsNotFound(err))
	assert.False(t, IsForbidden(err))
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
	assert.Equal(t, "map 7 not found", MessageOf(err))
}

func TestUntypedIsInternal(t *testing.T) {
	err := errors.New("boom")

	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
	assert.Equal(t, "boom", MessageOf(err))
	assert.False(t, IsNotFound(nil))
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "FORBIDDEN: forbidden", Forbidden("").Error())

	cause := errors.New("dial tcp: refused")
	err := Network(cause)
	assert.Equal(t, "NETWORK: request failed: dial tcp: refused", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{http.StatusNotFound, KindNotFound},
		{http.StatusForbidden, KindForbidden},
		{http.StatusUnauthorized, KindForbidden},
		{http.StatusConflict, KindConflict},
		{http.StatusBadRequest, KindValidation},
		{http.StatusUnprocessableEntity, KindValidation},
		{http.StatusInternalServerError, KindInternal},
		{http.StatusBadGateway, KindInternal},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, FromStatus(tt.status, "").Kind)
		})
	}
	assert.Equal(t, "Not Found", FromStatus(http.StatusNotFound, "").Message)
}

func TestKindStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, KindValidation.Status())
	assert.Equal(t, http.StatusConflict, KindConflict.Status())
	assert.Equal(t, http.StatusBadGateway, KindNetwork.Status())
}
