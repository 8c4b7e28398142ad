package node

import (
	"time"

	kitlog "github.com/go-kit/log"

	"github.com/meshworks/peerd/nodeclient"
)

// Config carries the settings needed to construct a Node.
type Config struct {
	// BindAddr is the host:port the RPC listener binds to.
	BindAddr string

	// PublicAddr is the address advertised to other nodes. Defaults to the
	// actual listener address, which also resolves ":0" bind addresses.
	PublicAddr string

	// Seeds are addresses of existing nodes to join at startup. Each join is
	// best-effort: an unreachable seed is logged and ignored.
	Seeds []string

	Dialer nodeclient.Dialer
	Logger kitlog.Logger

	// DialTimeout bounds the creation of a pooled connection.
	DialTimeout time.Duration

	// JoinTimeout bounds a single bootstrap join call.
	JoinTimeout time.Duration

	// PingTimeout bounds each fan-out ping. A peer that does not answer
	// within it is excluded from the delivered count.
	PingTimeout time.Duration
}

// DefaultConfig returns a Config with sane defaults. BindAddr, Dialer and
// Seeds still have to be provided by the caller.
func DefaultConfig() Config {
	return Config{
		Logger:      kitlog.NewNopLogger(),
		DialTimeout: 6 * time.Second,
		JoinTimeout: 10 * time.Second,
		PingTimeout: 2 * time.Second,
	}
}
