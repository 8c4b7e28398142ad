package noderpc

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestCodecRegistered(t *testing.T) {
	require.NotNil(t, encoding.GetCodec(CodecName))
}

func TestWireFieldNames(t *testing.T) {
	c := jsonCodec{}

	data, err := c.Marshal(&JoinRequest{
		Me: PeerInfo{ID: "node-a", Address: "127.0.0.1:50051"},
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"me":{"id":"node-a","address":"127.0.0.1:50051"}}`, string(data))

	data, err = c.Marshal(&BroadcastRequest{From: "node-a", Message: "hello"})
	require.NoError(t, err)
	require.JSONEq(t, `{"from":"node-a","message":"hello"}`, string(data))

	var resp BroadcastResponse
	require.NoError(t, c.Unmarshal([]byte(`{"delivered":3}`), &resp))
	require.Equal(t, 3, resp.Delivered)
}
