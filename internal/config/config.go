package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime settings. Values come from config.yaml when
// present, overridden by environment variables (POS_ prefix).
type Config struct {
	Port           int
	DBDriver       string
	DBDSN          string
	TaxRate        float64
	SearchPageSize int
	SessionTimeout time.Duration
	StockDecrement bool
	LoyaltyAccrual bool
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("server.port", 3000)
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "file:pos?mode=memory&cache=shared")
	viper.SetDefault("sales.tax_rate", 0.0875)
	viper.SetDefault("search.page_size", 10)
	viper.SetDefault("session.timeout", "5m")
	viper.SetDefault("checkout.stock_decrement", false)
	viper.SetDefault("checkout.loyalty_accrual", false)

	viper.SetEnvPrefix("POS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file found, using defaults")
	}

	return &Config{
		Port:           viper.GetInt("server.port"),
		DBDriver:       viper.GetString("database.driver"),
		DBDSN:          viper.GetString("database.dsn"),
		TaxRate:        viper.GetFloat64("sales.tax_rate"),
		SearchPageSize: viper.GetInt("search.page_size"),
		SessionTimeout: viper.GetDuration("session.timeout"),
		StockDecrement: viper.GetBool("checkout.stock_decrement"),
		LoyaltyAccrual: viper.GetBool("checkout.loyalty_accrual"),
	}
}
