// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// Each struct type is parsed exactly once per process and cached, so any
// component can call Load for the configuration it needs without coordinating
// initialization order:
//
//	var cfg authenticator.Config
//	config.MustLoad(&cfg)
//
// Field mapping uses caarlos0/env tags (env, envDefault, required).
package config
