package config

type Config struct {
	Qualys QualysConfig `json:"qualys"  yaml:"qualys"`
	Cache  CacheConfig  `json:"cache"  yaml:"cache"`
	DB     DBConfig     `json:"db"  yaml:"db"`
	Logger LoggerConfig `json:"logger"  yaml:"logger"`
	Server ServerConfig `json:"server"  yaml:"server"`
}

type QualysConfig struct {
	Host     string `json:"host"  yaml:"host"`
	Username string `json:"username"  yaml:"username"`
	// Password may be stored as "enc:<base64>", see internal/encrypt.
	Password          string `json:"password"  yaml:"password"`
	UseHTTP           bool   `json:"useHttp"  yaml:"useHttp"`
	TimeoutSeconds    uint   `json:"timeoutSeconds"  yaml:"timeoutSeconds"`
	RequestedWith     string `json:"requestedWith"  yaml:"requestedWith"`
	MapReportTemplate string `json:"mapReportTemplate"  yaml:"mapReportTemplate"`
}

type CacheConfig struct {
	Enabled    bool     `json:"enabled"  yaml:"enabled"`
	Size       int      `json:"size"  yaml:"size"`
	TTLMinutes uint     `json:"ttlMinutes"  yaml:"ttlMinutes"`
	Calls      []string `json:"calls"  yaml:"calls"`
	// Persistent keeps a second tier in the MySQL database described by DB.
	Persistent bool `json:"persistent"  yaml:"persistent"`
}

type DBConfig struct {
	Host     string `json:"host"  yaml:"host"`
	Port     uint   `json:"port"  yaml:"port"`
	Username string `json:"username"  yaml:"username"`
	Password string `json:"password"  yaml:"password"`
	Database string `json:"database"  yaml:"database"`
}

type ServerConfig struct {
	HttpPort   uint   `json:"httpPort"  yaml:"httpPort"`
	Secret     string `json:"secret"  yaml:"secret"`
	SslEnabled bool   `json:"sslEnabled"  yaml:"sslEnabled"`
	Key        string `json:"key"  yaml:"key"`
	Cert       string `json:"cert"  yaml:"cert"`
}

type LoggerConfig struct {
	Level  string `json:"level"  yaml:"level"`
	Output string `json:"output"  yaml:"output"`
	Path   string `json:"path"  yaml:"path"`
}
