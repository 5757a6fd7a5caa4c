package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/thirupathireddy27/NFT-smart-contract/registry"
)

type config struct {
	DBPath    string           `env:"NFTREG_DB" envDefault:"nftreg.db"`
	Admin     registry.Address `env:"NFTREG_ADMIN" envDefault:"admin"`
	SupplyCap uint64           `env:"NFTREG_CAP" envDefault:"100"`
	BaseURI   string           `env:"NFTREG_BASE_URI" envDefault:"https://tokens.example/"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c config) registryConfig() registry.Config {
	return registry.Config{
		Admin:     c.Admin,
		SupplyCap: c.SupplyCap,
		BaseURI:   c.BaseURI,
	}
}
