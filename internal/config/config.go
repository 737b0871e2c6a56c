package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultRedisAddr     = "localhost:6379"
	defaultSubjectPrefix = "table.rooms"
	defaultToWin         = 13
	defaultRoomTimeout   = 10
	defaultLogDir        = ".partnership-table"
)

// Config 服务配置
type Config struct {
	Redis RedisConfig `yaml:"redis"`
	NATS  NATSConfig  `yaml:"nats"`
	Game  GameConfig  `yaml:"game"`
	Log   LogConfig   `yaml:"log"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// NATSConfig 事件推送配置，URL 为空时不推送
type NATSConfig struct {
	URL           string `yaml:"url"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

// GameConfig 游戏配置
type GameConfig struct {
	ToWin       uint8 `yaml:"to_win"`       // 目标分数
	RoomTimeout int   `yaml:"room_timeout"` // 房间等待超时（分钟）
}

// LogConfig 日志配置，Dir 相对于用户主目录
type LogConfig struct {
	Dir string `yaml:"dir"`
}

// RoomTimeoutDuration 返回房间等待超时时长
func (c *GameConfig) RoomTimeoutDuration() time.Duration {
	return time.Duration(c.RoomTimeout) * time.Minute
}

// Load 加载配置文件，依次应用默认值和环境变量
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Redis.Addr == "" {
		c.Redis.Addr = defaultRedisAddr
	}
	if c.NATS.SubjectPrefix == "" {
		c.NATS.SubjectPrefix = defaultSubjectPrefix
	}
	if c.Game.ToWin == 0 {
		c.Game.ToWin = defaultToWin
	}
	if c.Game.RoomTimeout == 0 {
		c.Game.RoomTimeout = defaultRoomTimeout
	}
	if c.Log.Dir == "" {
		c.Log.Dir = defaultLogDir
	}
}

// applyEnv 环境变量覆盖配置文件
func (c *Config) applyEnv() {
	setString("REDIS_ADDR", &c.Redis.Addr)
	setString("REDIS_PASSWORD", &c.Redis.Password)
	setInt("REDIS_DB", &c.Redis.DB)
	setString("NATS_URL", &c.NATS.URL)
	setString("NATS_SUBJECT_PREFIX", &c.NATS.SubjectPrefix)
	setInt("GAME_ROOM_TIMEOUT", &c.Game.RoomTimeout)
	setString("LOG_DIR", &c.Log.Dir)

	if v, ok := os.LookupEnv("GAME_TO_WIN"); ok {
		if n, err := strconv.ParseUint(v, 10, 8); err == nil {
			c.Game.ToWin = uint8(n)
		}
	}
}

func setString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(key string, dst *int) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
