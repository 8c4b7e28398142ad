package grpcutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorCode(t *testing.T) {
	err := status.New(codes.InvalidArgument, "").Err()

	assert.Equal(t, codes.InvalidArgument, ErrorCode(err))
	assert.Equal(t, codes.Unknown, ErrorCode(assert.AnError))
	assert.Equal(t, codes.OK, ErrorCode(nil))
}

func TestIsCanceled(t *testing.T) {
	assert.True(t, IsCanceled(status.New(codes.Canceled, "").Err()))
	assert.False(t, IsCanceled(assert.AnError))
}
