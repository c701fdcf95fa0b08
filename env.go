// FILE: env.go
// Package main – Environment helpers for the trading bot.
//
// This file provides:
//   1) Small helpers to read environment variables with sane defaults
//      (strings, ints, floats, bools).
//   2) loadBotEnv(), which hydrates the process env from a local .env file
//      via godotenv without overriding anything already exported.
//
// Notes:
//   • The bot never requires `export $(cat .env ...)`.
//   • Broker credentials live in the broker sidecar's own env, not here.

package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// --------- Env helpers (used across files) ---------

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
func getEnvFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
func getEnvBool(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch v {
	case "1", "true", "y", "yes":
		return true
	case "0", "false", "n", "no":
		return false
	case "":
		return def
	default:
		return def
	}
}
func getEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// --------- .env loader (bot-only) ---------

// loadBotEnv hydrates the process env from BOT_ENV_FILE (default ".env").
// godotenv never overrides variables already in the environment, so exported
// values always win over file values.
func loadBotEnv() {
	path := getEnv("BOT_ENV_FILE", ".env")
	if err := godotenv.Load(path); err != nil {
		logrus.Infof("env: %s not found, relying on process env", path)
		return
	}
	logrus.Infof("env: loaded %s", path)
}
