package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotSerializableError_UnwrapsToSentinel(t *testing.T) {
	err := &NotSerializableError{Value: 42}
	assert.ErrorIs(t, err, ErrNotSerializable)
	assert.Contains(t, err.Error(), "int")

	var target *NotSerializableError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, 42, target.Value)
}

func TestBigIntTooLargeError(t *testing.T) {
	err := &BigIntTooLargeError{Chunks: 256}
	assert.ErrorIs(t, err, ErrBigIntTooLarge)
	assert.Contains(t, err.Error(), "256")
}

func TestMalformedSequenceError(t *testing.T) {
	err := &MalformedSequenceError{Value: []int{1, 2, 3}}
	assert.ErrorIs(t, err, ErrMalformedSequence)
}

func TestIncompatibleCodecError(t *testing.T) {
	err := &IncompatibleCodecError{Name: "com.example.URL"}
	assert.ErrorIs(t, err, ErrIncompatibleCodec)
	assert.Contains(t, err.Error(), "com.example.URL")
}

func TestCorruptInputError(t *testing.T) {
	err := &CorruptInputError{Reason: "truncated varint", Offset: 17}
	assert.ErrorIs(t, err, ErrCorruptInput)
	assert.Contains(t, err.Error(), "17")
	assert.Contains(t, err.Error(), "truncated varint")
}
