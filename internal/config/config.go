package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Host           string
	Port           int
	AllowOrigins   []string
	LogLevel       string
	MaxUploadMB    int
	LogFile        string
	OrderHeaderRow int    // строка заголовков в выгрузке заказов (1-based)
	CostHeaderRow  int    // строка заголовков в таблице себестоимости
	CostCollision  string // last | lowest
}

// Load reads the environment; a .env in the working directory is applied
// first without overriding variables that are already set.
func Load() Config {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "64"))
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return Config{
		Host:           getenv("HOST", "127.0.0.1"),
		Port:           port,
		AllowOrigins:   origins,
		LogLevel:       getenv("LOG_LEVEL", "info"),
		MaxUploadMB:    mb,
		LogFile:        getenv("LOG_FILE", "logs/profit-service.log"),
		OrderHeaderRow: atoiDefault(getenv("ORDER_HEADER_ROW", "2"), 2),
		CostHeaderRow:  atoiDefault(getenv("COST_HEADER_ROW", "1"), 1),
		CostCollision:  getenv("COST_COLLISION", "last"),
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}
