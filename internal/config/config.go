package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type SimulatorConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	MinDelay time.Duration `mapstructure:"min_delay"`
	MaxDelay time.Duration `mapstructure:"max_delay"`
}

type ToastConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type Config struct {
	DatabaseDSN  string          `mapstructure:"database_dsn"`
	ServerPort   string          `mapstructure:"server_port"`
	JWTSecret    string          `mapstructure:"jwt_secret"`
	SeedDemoData bool            `mapstructure:"seed_demo_data"`
	Simulator    SimulatorConfig `mapstructure:"simulator"`
	Toast        ToastConfig     `mapstructure:"toast"`
	Admin        AdminConfig     `mapstructure:"admin"`
	CORSOrigins  []string        `mapstructure:"cors_origins"`
}

// Load reads the configuration from a YAML file and returns a Config instance.
func Load() *Config {
	v := viper.New()

	// Look for config in the current directory and ./config
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.AddConfigPath("./config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		log.Fatalf("Error unmarshalling config: %v", err)
	}

	// Fallback defaults
	if config.ServerPort == "" {
		config.ServerPort = "8080"
	}
	if config.DatabaseDSN == "" {
		config.DatabaseDSN = ":memory:"
	}
	if config.JWTSecret == "" {
		log.Fatal("JWT secret must be set in the config file")
	}

	if config.Simulator.MinDelay == 0 {
		config.Simulator.MinDelay = 30 * time.Second
	}
	if config.Simulator.MaxDelay == 0 {
		config.Simulator.MaxDelay = 60 * time.Second
	}
	if config.Toast.TTL == 0 {
		config.Toast.TTL = 3 * time.Second
	}

	if config.Admin.Username == "" {
		config.Admin.Username = "admin"
	}
	if config.Admin.Name == "" {
		config.Admin.Name = "指挥中心管理员"
	}
	if config.Admin.Password == "" {
		log.Fatal("Admin password must be set in the config file")
	}

	if len(config.CORSOrigins) == 0 {
		config.CORSOrigins = []string{"http://localhost:3000"}
	}

	return &config
}
