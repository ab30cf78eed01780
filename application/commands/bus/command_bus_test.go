package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCommand struct {
	validateErr error
}

func (c testCommand) Validate() error { return c.validateErr }

type otherCommand struct{}

func (c otherCommand) Validate() error { return nil }

func TestCommandBusDispatch(t *testing.T) {
	b := NewCommandBus()

	var handled bool
	err := b.Register(testCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
		handled = true
		return nil
	}))
	require.NoError(t, err)

	require.NoError(t, b.Send(context.Background(), testCommand{}))
	assert.True(t, handled)
}

func TestCommandBusValidatesBeforeDispatch(t *testing.T) {
	b := NewCommandBus()

	var handled bool
	require.NoError(t, b.Register(testCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
		handled = true
		return nil
	})))

	validateErr := errors.New("missing field")
	err := b.Send(context.Background(), testCommand{validateErr: validateErr})
	assert.ErrorIs(t, err, validateErr)
	assert.False(t, handled)
}

func TestCommandBusDuplicateRegistration(t *testing.T) {
	b := NewCommandBus()
	handler := CommandHandlerFunc(func(ctx context.Context, cmd Command) error { return nil })

	require.NoError(t, b.Register(testCommand{}, handler))
	err := b.Register(testCommand{}, handler)
	assert.ErrorContains(t, err, "already registered")
}

func TestCommandBusUnregisteredCommand(t *testing.T) {
	b := NewCommandBus()

	err := b.Send(context.Background(), otherCommand{})
	assert.ErrorContains(t, err, "no handler registered")
}

type recordingLogger struct {
	infos  []string
	errors []string
}

func (l *recordingLogger) Info(msg string, keysAndValues ...interface{})  { l.infos = append(l.infos, msg) }
func (l *recordingLogger) Error(msg string, keysAndValues ...interface{}) { l.errors = append(l.errors, msg) }

func TestLoggingMiddleware(t *testing.T) {
	logger := &recordingLogger{}
	mw := LoggingMiddleware(logger)

	ok := mw(CommandHandlerFunc(func(ctx context.Context, cmd Command) error { return nil }))
	require.NoError(t, ok.Handle(context.Background(), testCommand{}))
	assert.Equal(t, []string{"command succeeded"}, logger.infos)

	failing := mw(CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
		return errors.New("boom")
	}))
	require.Error(t, failing.Handle(context.Background(), testCommand{}))
	assert.Equal(t, []string{"command failed"}, logger.errors)
}
