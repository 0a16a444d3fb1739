package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Auth      AuthConfigs
	Redis     RedisConfigs
	Feed      FeedConfigs
	Blocks    BlocksConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
}

func (s *ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type RedisConfigs struct {
	Addr string
}

type BlocksConfigs struct {
	// DefaultGridSize is used for both axes when a game is created without
	// explicit dimensions.
	DefaultGridSize int
	MaxGridSize     int

	DefaultPricePerBlock float64
	DefaultPrizeTotal    float64

	// RandomizeAxes controls whether new games shuffle axis digit labels at
	// lock time. Identity mapping when disabled.
	RandomizeAxes bool

	GridCacheTTL time.Duration
}
