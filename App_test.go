package main

import (
	"bytes"
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRunApp(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f, tmpFileErr := os.CreateTemp("", "db_*.db")
		assert.NoError(t, tmpFileErr)
		defer os.Remove(f.Name())

		config := &Config{
			DatabaseFilepath: f.Name(),
			ListenAddr:       "127.0.0.1:18080",
			WebhookWorkers:   1,
			WebhookQueueSize: 1,
			WebhookTimeout:   time.Second,
		}

		ctx, cancel := context.WithCancel(context.Background())
		appErr := make(chan error, 1)
		go func() {
			appErr <- RunApp(ctx, config, zap.NewNop())
		}()

		var err error
		var res *http.Response
		client := http.Client{
			Timeout: time.Second * 2,
		}
		for i := 0; i < 20; i++ {
			time.Sleep(50 * time.Millisecond)
			res, err = client.Get("http://" + config.ListenAddr + "/healthcheck")
			if err == nil {
				break
			}
		}

		if assert.NoError(t, err) {
			assert.Equal(t, http.StatusOK, res.StatusCode)
			body, _ := io.ReadAll(res.Body)
			_ = res.Body.Close()
			assert.Equal(t, "health", string(body))
		}

		cancel()

		select {
		case err = <-appErr:
			assert.NoError(t, err)
		case <-time.After(ShutdownTimeout):
			t.Fatal("app is not stopped")
		}
	})

	t.Run("fail", func(t *testing.T) {
		config := &Config{
			DatabaseFilepath: filepath.Join(t.TempDir(), "missing", "db.db"),
		}

		err := RunApp(context.Background(), config, zap.NewNop())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no such file or directory")
	})
}

func TestHandleExitError(t *testing.T) {
	t.Run("Handle exit error", func(t *testing.T) {
		var actualExitCode int
		var out bytes.Buffer

		testCases := map[error]int{
			errors.New("dummy error"): ExitCodeMainError,
			nil:                       0,
		}

		for err, expectedCode := range testCases {
			out.Reset()
			actualExitCode = HandleExitError(&out, err)

			assert.Equal(t, expectedCode, actualExitCode)
			if err == nil {
				assert.Empty(t, out.String(), "Error is not empty")
			} else {
				assert.Contains(t, out.String(), err.Error(), "error output hasn't error description")
			}
		}
	})
}
