package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Storage  StorageConfig   `yaml:"storage"`
	RabbitMQ *RabbitMQConfig `yaml:"rabbitmq"`
	Seed     SeedConfig      `yaml:"seed"`
}

// StorageConfig selects the blob backend holding the dataset snapshot.
type StorageConfig struct {
	Backend  string         `yaml:"backend"` // file | postgres | redis
	File     FileConfig     `yaml:"file"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
}

type FileConfig struct {
	Path string `yaml:"path"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RedisConfig struct {
	URL string `yaml:"url"`
	Key string `yaml:"key"`
}

type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// SeedConfig points at an optional bulk-load resource returning
// {"orders": {...}}, used only when the storage slot is empty.
type SeedConfig struct {
	URL string `yaml:"url"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Storage.Backend == "" {
		c.Storage.Backend = "file"
	}
	if c.Storage.File.Path == "" {
		c.Storage.File.Path = "orderdata.json"
	}
	if c.Storage.Redis.Key == "" {
		// Legacy slot name; existing datasets were saved under it.
		c.Storage.Redis.Key = "orderData"
	}
}
