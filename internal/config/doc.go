// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional .env file. It provides
// type-safe access to application settings needed by different components
// while keeping configuration details separate from business logic.
//
// Upstream credentials are optional at load time: the server
// starts without them and the operations that need them fail individually.
package config
