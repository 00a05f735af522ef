package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_USER", "ship")
	t.Setenv("KAFKA_HOST", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("SMTP_PORT", "2525")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "shipflow", cfg.DBName)
	assert.Equal(t, 12*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 2525, cfg.SMTPPort)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers())
	assert.Empty(t, cfg.TestDBName)
}

func TestDSN(t *testing.T) {
	cfg := Config{
		DBUser:     "ship",
		DBPassword: "p@ss word",
		DBHost:     "db",
		DBPort:     "5432",
		DBSslMode:  "disable",
	}

	assert.Equal(t, "postgres://ship:p%40ss%20word@db:5432/shipflow_test?sslmode=disable", cfg.DSN("shipflow_test"))
}

func TestKafkaBrokersEmpty(t *testing.T) {
	assert.Empty(t, Config{}.KafkaBrokers())
}

type recordingJobs struct {
	started, stopped bool
}

func (j *recordingJobs) StartAll() error { j.started = true; return nil }
func (j *recordingJobs) StopAll()        { j.stopped = true }

func TestRunStopsOnCancel(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	ctx, cancel := context.WithCancel(t.Context())
	jobs := &recordingJobs{}

	done := make(chan error, 1)
	go func() { done <- run(ctx, e, "127.0.0.1:0", time.Second, jobs) }()

	require.Eventually(t, func() bool { return e.ListenerAddr() != nil }, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("run did not return after cancel")
	}
	assert.True(t, jobs.started)
	assert.True(t, jobs.stopped)
}
