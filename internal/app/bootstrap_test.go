package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/nsqio/go-nsq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobly/internal/app"
	"jobly/internal/config"
	"jobly/internal/events"
)

func TestPingWithRetry_Success(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()

	err = app.PingWithRetry(context.Background(), db, 1, time.Millisecond)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPingWithRetry_Retries(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("not ready"))
	mock.ExpectPing().WillReturnError(errors.New("not ready"))
	mock.ExpectPing()

	err = app.PingWithRetry(context.Background(), db, 5, time.Millisecond)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPingWithRetry_Fail(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	for i := 0; i < 3; i++ {
		mock.ExpectPing().WillReturnError(errors.New("permanent error"))
	}

	err = app.PingWithRetry(context.Background(), db, 3, time.Millisecond)
	assert.EqualError(t, err, "permanent error")
}

func TestPingWithRetry_ContextCanceled(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("not ready"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = app.PingWithRetry(ctx, db, 3, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBootstrap_Resilience_DBDown(t *testing.T) {
	cfg := &config.Config{
		DBHost:                     "localhost",
		DBPort:                     54322, // Random port likely closed
		DBUser:                     "test",
		DBPass:                     "test",
		DBName:                     "test",
		DBSSLMode:                  "disable",
		BootstrapRetryAttempts:     1,
		BootstrapRetryDelaySeconds: 0,
	}

	start := time.Now()
	deps, err := app.Bootstrap(context.Background(), cfg)
	duration := time.Since(start)

	assert.Error(t, err)
	assert.Nil(t, deps)
	assert.Contains(t, err.Error(), "failed to ping db")
	assert.Less(t, duration, 5*time.Second)
}

func TestDependencies_Publisher(t *testing.T) {
	deps := &app.Dependencies{}
	assert.Equal(t, events.Discard{}, deps.Publisher())

	producer, err := nsq.NewProducer("localhost:4150", nsq.NewConfig())
	require.NoError(t, err)
	deps.NSQProducer = producer
	assert.Same(t, producer, deps.Publisher())
	deps.Close()
}
