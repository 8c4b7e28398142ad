package main

import (
	"strings"
)

var opts struct {
	Node struct {
		BindAddr   string `long:"bind-addr" description:"address to bind the rpc listener" env:"BIND_ADDR" default:"127.0.0.1:50051"`
		PublicAddr string `long:"public-addr" description:"address advertised to other nodes (defaults to the bind address)" env:"PUBLIC_ADDR"`
	} `group:"node" namespace:"node" env-namespace:"NODE"`

	Cluster struct {
		Seeds       string `long:"seeds" description:"comma-separated list of nodes to join at startup" env:"SEEDS"`
		JoinTimeout int    `long:"join-timeout" description:"seed join timeout (ms)" env:"JOIN_TIMEOUT" default:"10000"`
		PingTimeout int    `long:"ping-timeout" description:"broadcast ping timeout (ms)" env:"PING_TIMEOUT" default:"2000"`
	} `group:"cluster" namespace:"cluster" env-namespace:"CLUSTER"`

	Gateway struct {
		BindAddr string `long:"bind-addr" description:"address to bind the http bridge (disabled when empty)" env:"BIND_ADDR"`
	} `group:"gateway" namespace:"gateway" env-namespace:"GATEWAY"`

	Config  string `long:"config" description:"path to a yaml config file" env:"CONFIG"`
	Verbose bool   `long:"verbose" description:"verbose mode" env:"VERBOSE"`
}

func parseAddrs(addrs string) []string {
	sl := strings.Split(addrs, ",")
	res := make([]string, 0, len(sl))

	for _, addr := range sl {
		trimmed := strings.TrimSpace(addr)
		if trimmed != "" {
			res = append(res, trimmed)
		}
	}

	return res
}
