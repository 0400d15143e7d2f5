package config

import (
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/thetjan888/nft-music/internal/log"
	"go.uber.org/zap"
)

type Config struct {
	Env     string
	Network string
	Index   string
	Debug   bool
	LogPath string

	ApiPort string

	Market        MarketConfig
	ElasticSearch ElasticSearchConfig
	Aws           AwsConfig
	Webhook       WebhookConfig
}

type MarketConfig struct {
	Name       string
	Symbol     string
	BaseUri    string
	Address    string
	Operator   string
	Artist     string
	RoyaltyFee string
	Prices     []string
}

type AwsConfig struct {
	AccessKey string
	SecretKey string
	Region    string
	Queue     bool
}

type WebhookConfig struct {
	Url     string
	Timeout int
	Retries int
}

type ElasticSearchConfig struct {
	Enabled          bool
	Hosts            []string
	Sniff            bool
	HealthCheck      bool
	Debug            bool
	Username         string
	Password         string
	MappingDir       string
	BulkPersistCount int
	Refresh          string
}

func Init(service string) {
	err := godotenv.Load(".env")
	if err != nil {
		zap.L().With(zap.Error(err)).Warn("Unable to load .env")
	}

	initLogger(service)
}

func initLogger(service string) {
	cfg := Get()
	path := cfg.LogPath
	if path == "" {
		path = fmt.Sprintf("%s.log", service)
	}
	log.NewLogger(path, cfg.Debug)
}

func Get() *Config {
	return &Config{
		Env:     getString("ENV", ""),
		Network: getString("NETWORK", "local"),
		Index:   getString("INDEX_NAME", "nftmusic"),
		Debug:   getBool("DEBUG", false),
		LogPath: getString("LOG_PATH", ""),
		ApiPort: getString("API_PORT", "8080"),
		Market: MarketConfig{
			Name:       getString("MARKET_NAME", "DAppFi"),
			Symbol:     getString("MARKET_SYMBOL", "DAPP"),
			BaseUri:    getString("MARKET_BASE_URI", "https://bafybeidhjjbjonyqcahuzlpt7sznmh4xrlbspa3gstop5o47l6gsiaffee.ipfs.nftstorage.link/"),
			Address:    getString("MARKET_ADDRESS", "0x0000000000000000000000000000000000001010"),
			Operator:   getString("MARKET_OPERATOR", ""),
			Artist:     getString("MARKET_ARTIST", ""),
			RoyaltyFee: getString("MARKET_ROYALTY_FEE", "10000000000000000"),
			Prices:     getSlice("MARKET_PRICES", make([]string, 0), ","),
		},
		Aws: AwsConfig{
			AccessKey: getString("AWS_ACCESS_KEY_ID", ""),
			SecretKey: getString("AWS_SECRET_KEY_ID", ""),
			Region:    getString("AWS_REGION", ""),
			Queue:     getBool("AWS_QUEUE", false),
		},
		Webhook: WebhookConfig{
			Url:     getString("WEBHOOK_URL", ""),
			Timeout: getInt("WEBHOOK_TIMEOUT", 10),
			Retries: getInt("WEBHOOK_RETRIES", 3),
		},
		ElasticSearch: ElasticSearchConfig{
			Enabled:          getBool("ELASTIC_SEARCH_ENABLED", false),
			Hosts:            getSlice("ELASTIC_SEARCH_HOSTS", make([]string, 0), ","),
			Sniff:            getBool("ELASTIC_SEARCH_SNIFF", true),
			HealthCheck:      getBool("ELASTIC_SEARCH_HEALTH_CHECK", true),
			Debug:            getBool("ELASTIC_SEARCH_DEBUG", false),
			Username:         getString("ELASTIC_SEARCH_USERNAME", ""),
			Password:         getString("ELASTIC_SEARCH_PASSWORD", ""),
			MappingDir:       getString("ELASTIC_SEARCH_MAPPING_DIR", "./data/mappings"),
			BulkPersistCount: getInt("ELASTIC_SEARCH_BULK_PERSIST_COUNT", 300),
			Refresh:          getString("ELASTIC_SEARCH_REFRESH", "wait_for"),
		},
	}
}

func getString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

func getInt(key string, defaultValue int) int {
	valStr := getString(key, "")
	val, _, err := big.ParseFloat(valStr, 10, 0, big.ToNearestEven)
	if err != nil {
		return defaultValue
	}

	intVal, _ := val.Int64()
	return int(intVal)
}

func getBool(key string, defaultValue bool) bool {
	valStr := getString(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultValue
}

func getSlice(key string, defaultVal []string, sep string) []string {
	valStr := getString(key, "")
	if valStr == "" {
		return defaultVal
	}

	return strings.Split(valStr, sep)
}
