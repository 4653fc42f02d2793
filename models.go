package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

type R2Config struct {
	AccountID string `validate:"required"`
	Bucket    string `validate:"required"`
	AccessKey string `validate:"required"`
	SecretKey string `validate:"required"`
}

// Validate reports the first missing R2 setting.
func (c *R2Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// loadR2Config reads the R2 settings from the environment.
func loadR2Config() (*R2Config, error) {
	cfg := &R2Config{
		AccountID: os.Getenv("R2_ACCOUNT_ID"),
		Bucket:    os.Getenv("R2_BUCKET"),
		AccessKey: os.Getenv("R2_ACCESS_KEY"),
		SecretKey: os.Getenv("R2_SECRET_KEY"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid R2 configuration (set R2_ACCOUNT_ID, R2_BUCKET, R2_ACCESS_KEY, R2_SECRET_KEY): %w", err)
	}
	return cfg, nil
}

func (c *R2Config) endpoint() string {
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.AccountID)
}
