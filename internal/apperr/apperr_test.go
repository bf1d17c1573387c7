package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Unauthorized("missing session"), http.StatusUnauthorized},
		{Forbidden("admin role required"), http.StatusForbidden},
		{NotFound("product not found"), http.StatusNotFound},
		{Conflict("version conflict"), http.StatusConflict},
		{Validation("sku is required"), http.StatusBadRequest},
		{ServerMisconfigured("session secret missing"), http.StatusServiceUnavailable},
		{Upstream(errors.New("pq: connection refused")), http.StatusInternalServerError},
		{errors.New("some random error"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), "error %v", tc.err)
	}
}

func TestClientMessageHidesUpstreamDetail(t *testing.T) {
	err := Upstream(errors.New("pq: password authentication failed for user postgres"))
	assert.Equal(t, "internal error", ClientMessage(err))

	assert.Equal(t, "product not found", ClientMessage(NotFound("product not found")))
	assert.Equal(t, "internal error", ClientMessage(errors.New("bare error")))
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := Conflict("stale version")
	outer := fmt.Errorf("update product: %w", inner)

	assert.Equal(t, KindConflict, KindOf(outer))
	assert.Equal(t, http.StatusConflict, Status(outer))
	assert.Equal(t, "stale version", ClientMessage(outer))
}
