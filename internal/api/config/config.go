package config

// Config 配置主体
type Config struct {
	Server                ServerConfig        `mapstructure:"server"`
	DB                    DBConfig            `mapstructure:"database"`
	Redis                 RedisConfig         `mapstructure:"redis"`
	Mongo                 MongoConfig         `mapstructure:"mongo"`
	MinIO                 MinIOConfig         `mapstructure:"minio"`
	Elastic               ElasticConfig       `mapstructure:"elastic"`
	JWT                   JWTConfig           `mapstructure:"jwt"`
	Reaction              ReactionConfig      `mapstructure:"reaction"`
	ImageHost             ImageHostConfig     `mapstructure:"image_host"`
	Cron                  CronConfig          `mapstructure:"cron"`
	Log                   LogConfig           `mapstructure:"log"`
	Kafka                 KafkaConfig         `mapstructure:"kafka"`
	KafkaReactionConsumer KafkaConsumerConfig `mapstructure:"kafka_reaction_consumer"`
	KafkaRatingConsumer   KafkaConsumerConfig `mapstructure:"kafka_rating_consumer"`
	KafkaCommentConsumer  KafkaConsumerConfig `mapstructure:"kafka_comment_consumer"`
	KafkaPostConsumer     KafkaConsumerConfig `mapstructure:"kafka_post_consumer"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port        int      `mapstructure:"port"`
	Mode        string   `mapstructure:"mode"` // debug | release | test
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// DBConfig 数据库配置
type DBConfig struct {
	Driver       string `mapstructure:"driver"` // mysql | sqlite
	DSN          string `mapstructure:"dsn"`
	MaxIdle      int    `mapstructure:"max_idle"`
	MaxOpen      int    `mapstructure:"max_open"`
	MaxLifetime  int    `mapstructure:"max_lifetime"`
	QueryTimeout int    `mapstructure:"query_timeout"` // 单个事务的最长等待秒数
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	MainBucket       string `mapstructure:"main_bucket"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
}

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Address  string         `mapstructure:"address"`
	Username string         `mapstructure:"username"`
	Password string         `mapstructure:"password"`
	Indices  ElasticIndices `mapstructure:"indices"`
}

// ElasticIndices Elastic索引
type ElasticIndices struct {
	PostIndex string `mapstructure:"post_index"`
}

// JWTConfig 身份服务签发的 Token 校验参数
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// ReactionConfig 重复反应策略: reject | toggle
type ReactionConfig struct {
	MerchantRepeat string `mapstructure:"merchant_repeat"`
	PostRepeat     string `mapstructure:"post_repeat"`
}

// ImageHostConfig 图床配置
type ImageHostConfig struct {
	Provider  string          `mapstructure:"provider"` // freeimage | minio
	FreeImage FreeImageConfig `mapstructure:"freeimage"`
	ThumbSize int             `mapstructure:"thumb_size"`
}

type FreeImageConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	APIKey   string `mapstructure:"api_key"`
	Timeout  int    `mapstructure:"timeout"`
}

// CronConfig 定时任务表达式（秒级）
type CronConfig struct {
	ViewFlush    string `mapstructure:"view_flush"`
	CounterAudit string `mapstructure:"counter_audit"`
}

type LogConfig struct {
	Level         string `mapstructure:"level"`
	RemoteAddress string `mapstructure:"remote_address"`
	RemoteIndex   string `mapstructure:"remote_index"`
	RemoteToken   string `mapstructure:"remote_token"`
}

type KafkaConfig struct {
	Enable   bool           `mapstructure:"enable"`
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaConsumerConfig struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}
