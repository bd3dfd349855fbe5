package rest

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/evergreen-ci/breakout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceValidate(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		s := &Service{}
		require.NoError(t, s.Validate())
		assert.Equal(t, defaultPort, s.Port)
		assert.Equal(t, defaultPrefix, s.Prefix)
		assert.NotNil(t, s.app)
	})
	t.Run("InvalidPort", func(t *testing.T) {
		s := &Service{Port: 70000}
		assert.Error(t, s.Validate())
	})
	t.Run("StartRequiresValidate", func(t *testing.T) {
		s := &Service{}
		assert.Error(t, s.Start(context.Background()))
	})
}

func TestStatusHandler(t *testing.T) {
	ctx := context.Background()
	rh := makeStatusHandler(time.Now().Add(-time.Minute)).Factory()

	req, err := http.NewRequest(http.MethodGet, "https://example.com/rest/v1/status", nil)
	require.NoError(t, err)
	require.NoError(t, rh.Parse(ctx, req))

	resp := rh.Run(ctx)
	require.Equal(t, http.StatusOK, resp.Status())

	status, ok := resp.Data().(StatusResponse)
	require.True(t, ok)
	assert.Equal(t, breakout.BuildRevision, status.Revision)
	assert.True(t, status.Uptime >= 60)
}
