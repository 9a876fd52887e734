package cmd

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Augustwise/fullstack-task-manager/internal/logging"
)

func newQuietEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	return e
}

func TestRunServer_ReturnsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	drained := false
	err = runServer(context.Background(), newQuietEcho(), ln.Addr().String(), time.Second, logging.Discard(),
		func(context.Context) { drained = true })

	assert.Error(t, err)
	assert.True(t, drained)
}

func TestRunServer_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	drained := false
	err := runServer(ctx, newQuietEcho(), "127.0.0.1:0", time.Second, logging.Discard(),
		func(context.Context) { drained = true })

	assert.NoError(t, err)
	assert.True(t, drained)
}
