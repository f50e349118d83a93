package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DBName   string `toml:"dbname"`
	SSLMode  string `toml:"sslmode"`
}

type ConfigParam struct {
	ServerPort   string   `toml:"server_port"`
	HandleCORS   bool     `toml:"handle_cors"`
	PackagesDir  string   `toml:"packages_dir"`
	ApiKeyLength int      `toml:"api_key_length"`
	DB           DBConfig `toml:"db"`
}

var cfg *ConfigParam

func Config() *ConfigParam {
	return cfg
}

func LoadConfig(filename string) error {
	if filename == "" {
		cfg = defaultConfig()
		return nil
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}
	var cp ConfigParam
	if _, err := toml.Decode(string(content), &cp); err != nil {
		return fmt.Errorf("error parsing config file: %v", err)
	}
	applyDefaults(&cp)
	cfg = &cp
	return nil
}

func defaultConfig() *ConfigParam {
	cp := &ConfigParam{}
	applyDefaults(cp)
	return cp
}

func applyDefaults(cp *ConfigParam) {
	if cp.ServerPort == "" {
		cp.ServerPort = "8190"
	}
	if cp.PackagesDir == "" {
		cp.PackagesDir = "packages"
	}
	if cp.ApiKeyLength == 0 {
		cp.ApiKeyLength = 48
	}
	if cp.DB.Host == "" {
		cp.DB.Host = "localhost"
	}
	if cp.DB.Port == 0 {
		cp.DB.Port = 5432
	}
	if cp.DB.User == "" {
		cp.DB.User = "pkgfeed_api"
	}
	if cp.DB.DBName == "" {
		cp.DB.DBName = "pkgfeed"
	}
	if cp.DB.SSLMode == "" {
		cp.DB.SSLMode = "disable"
	}
}

func init() {
	err := LoadConfig("")
	if err != nil {
		panic(err)
	}
}
