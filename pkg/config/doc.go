// Package config loads typed configuration structs from environment variables
// using caarlos0/env tags, with optional .env file support via godotenv for
// local development. The .env file is read at most once per process.
package config
