package global

import (
	"time"

	"PairChat/tools/ids"
	"PairChat/tools/security"

	"github.com/caarlos0/env/v11"
)

// AppConfig is the process configuration, parsed from environment variables.
type AppConfig struct {
	Addr      string        `env:"PAIRCHAT_ADDR" envDefault:":8080"`
	JWTSecret string        `env:"PAIRCHAT_JWT_SECRET" envDefault:"dev-secret-change-me"`
	TokenTTL  time.Duration `env:"PAIRCHAT_TOKEN_TTL" envDefault:"12h"`
	NodeID    int64         `env:"PAIRCHAT_NODE_ID" envDefault:"1"`

	// Store selects the durable backend: memory (default) or mongo.
	Store    string `env:"PAIRCHAT_STORE" envDefault:"memory"`
	MongoURI string `env:"PAIRCHAT_MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB  string `env:"PAIRCHAT_MONGO_DB" envDefault:"pairchat"`

	// RedisAddr empty => presence mirror disabled.
	RedisAddr     string `env:"PAIRCHAT_REDIS_ADDR"`
	RedisPassword string `env:"PAIRCHAT_REDIS_PASSWORD"`
	RedisDatabase int    `env:"PAIRCHAT_REDIS_DB" envDefault:"0"`
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigIds seeds the snowflake generator with this node's id.
func (c *AppConfig) ConfigIds() {
	ids.SetNodeID(c.NodeID)
}

func (c *AppConfig) JWTOptions() security.Options {
	opts := security.DefaultOptions([]byte(c.JWTSecret))
	opts.TTL = c.TokenTTL
	return opts
}
