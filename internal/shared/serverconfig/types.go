package serverconfig

type Config struct {
	MongoDB    MongoDBConfig    `yaml:"mongodb" mapstructure:"mongodb"`
	HTTPServer HTTPServerConfig `yaml:"httpserver" mapstructure:"httpserver"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Simulation SimulationConfig `yaml:"simulation" mapstructure:"simulation"`
	JWTSecret  string           `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

// SimulationConfig 是三条模拟主循环与城市租约锁的调参项，零值由 Normalize 填默认值。
type SimulationConfig struct {
	ProductionIntervalMS int `yaml:"production_interval_ms" mapstructure:"production_interval_ms"` // 资源产出 tick
	QueueSweepIntervalMS int `yaml:"queue_sweep_interval_ms" mapstructure:"queue_sweep_interval_ms"` // 队列扫描
	BattleSweepIntervalS int `yaml:"battle_sweep_interval_s" mapstructure:"battle_sweep_interval_s"` // 战斗扫描
	QueueBatchSize       int `yaml:"queue_batch_size" mapstructure:"queue_batch_size"` // 每扇区每轮处理城市上限

	LockLeaseS       int `yaml:"lock_lease_s" mapstructure:"lock_lease_s"`               // 城市锁租约时长
	LockRetries      int `yaml:"lock_retries" mapstructure:"lock_retries"`               // 获取锁重试次数
	LockRetryDelayMS int `yaml:"lock_retry_delay_ms" mapstructure:"lock_retry_delay_ms"` // 重试间隔
}

func (c *SimulationConfig) Normalize() {
	if c.ProductionIntervalMS <= 0 {
		c.ProductionIntervalMS = 1000
	}
	if c.QueueSweepIntervalMS <= 0 {
		c.QueueSweepIntervalMS = 250
	}
	if c.BattleSweepIntervalS <= 0 {
		c.BattleSweepIntervalS = 30
	}
	if c.QueueBatchSize <= 0 {
		c.QueueBatchSize = 100
	}
	if c.LockLeaseS <= 0 {
		c.LockLeaseS = 10
	}
	if c.LockRetries <= 0 {
		c.LockRetries = 5
	}
	if c.LockRetryDelayMS <= 0 {
		c.LockRetryDelayMS = 100
	}
}
