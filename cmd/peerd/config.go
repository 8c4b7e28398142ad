package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// fileConfig is the optional yaml config file. Values present in the file
// override the corresponding flag defaults; flags set explicitly still win
// for everything except seeds, which are merged from both sources.
type fileConfig struct {
	Node struct {
		BindAddr   string `yaml:"bind_addr"`
		PublicAddr string `yaml:"public_addr"`
	} `yaml:"node"`

	Cluster struct {
		Seeds []string `yaml:"seeds"`
	} `yaml:"cluster"`

	Gateway struct {
		BindAddr string `yaml:"bind_addr"`
	} `yaml:"gateway"`
}

func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	conf := &fileConfig{}
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return conf, nil
}

// applyFileConfig merges the file values into the flag-provided opts.
func applyFileConfig(conf *fileConfig, seeds []string) []string {
	if conf.Node.BindAddr != "" {
		opts.Node.BindAddr = conf.Node.BindAddr
	}

	if conf.Node.PublicAddr != "" {
		opts.Node.PublicAddr = conf.Node.PublicAddr
	}

	if conf.Gateway.BindAddr != "" {
		opts.Gateway.BindAddr = conf.Gateway.BindAddr
	}

	return append(seeds, conf.Cluster.Seeds...)
}
