// Package config resolves the darkroom client configuration.
//
// Configuration lives in ~/.config/darkroom/config.toml, optionally
// supplemented by a .env file in the working directory and DARKROOM_*
// environment variables. The crucial output is the API base URL, which
// is resolved exactly once per process: an explicit api_url wins,
// otherwise the environment name picks the local development server or
// the fixed production deployment.
package config
