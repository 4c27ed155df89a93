package main

import (
	"io"
	"log/slog"
	"testing"

	"ordering/cmd"
	"ordering/internal/adapters/out/kafka"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_InvalidConfigurationReturnsError(t *testing.T) {
	t.Setenv("STORAGE", "sqlite")

	err := run()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestOpenDatabase_MemoryStorageHasNoDatabase(t *testing.T) {
	db, err := openDatabase(cmd.Config{Storage: cmd.StorageMemory}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, err)
	assert.Nil(t, db)
}

func TestNewPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("no brokers logs events", func(t *testing.T) {
		publisher, closePublisher, err := newPublisher(cmd.Config{}, logger)

		require.NoError(t, err)
		assert.IsType(t, &kafka.LogEventPublisher{}, publisher)
		closePublisher()
	})

	t.Run("blank broker list is an error", func(t *testing.T) {
		publisher, closePublisher, err := newPublisher(cmd.Config{KafkaBrokers: " , ", KafkaOrderEventsTopic: "orders"}, logger)

		require.ErrorIs(t, err, kafka.ErrNoBrokers)
		assert.Nil(t, publisher)
		assert.Nil(t, closePublisher)
	})
}
