package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	Gateway  *Gateway
	Payment  *Payment
	App      *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string
}

type Database struct {
	DSN string `env:"DATABASE_URI"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

type Gateway struct {
	HostString string `env:"PAYMENT_GATEWAY_ADDRESS"`
}

type Payment struct {
	// TimeoutMinutes is the fallback payment deadline when the gateway does
	// not declare one.
	TimeoutMinutes      int `env:"PAYMENT_TIMEOUT_MINUTES"`
	PollIntervalSeconds int `env:"PAYMENT_POLL_INTERVAL_SECONDS"`
	SyncWorkers         int `env:"PAYMENT_SYNC_WORKERS"`
}

func NewConfig() (*Config, error) {
	var db Database
	var http HTTP
	var gateway Gateway
	var payment Payment
	var app App

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&gateway.HostString, "g", "", "Payment gateway address")
	flag.IntVar(&payment.TimeoutMinutes, "t", 1440, "Payment timeout, minutes")
	flag.IntVar(&payment.PollIntervalSeconds, "p", 2, "Payment poll interval, seconds")
	flag.IntVar(&payment.SyncWorkers, "w", 5, "Background sync workers")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.Parse()

	err := env.Parse(&db)
	if err != nil {
		return nil, fmt.Errorf("error parsing env database config: %w", err)
	}
	err = env.Parse(&http)
	if err != nil {
		return nil, fmt.Errorf("error parsing http config: %w", err)
	}
	err = env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}
	err = env.Parse(&gateway)
	if err != nil {
		return nil, fmt.Errorf("error parsing gateway config: %w", err)
	}
	err = env.Parse(&payment)
	if err != nil {
		return nil, fmt.Errorf("error parsing payment config: %w", err)
	}

	config := Config{
		Database: &db,
		HTTP:     &http,
		Gateway:  &gateway,
		Payment:  &payment,
		App:      &app,
	}

	return &config, nil
}
