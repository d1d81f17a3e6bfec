package model

type Config struct {
	DataDir  string `yaml:"data_dir"`
	UserID   string `yaml:"user_id"`
	Database struct {
		Enable bool   `yaml:"enable"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`
	Server struct {
		Addr         string   `yaml:"addr"`
		AllowOrigins []string `yaml:"allow_origins"`
	} `yaml:"server"`
	Sync struct {
		Enable     bool   `yaml:"enable"`
		Platform   string `yaml:"platform"`
		Bucket     string `yaml:"bucket"`
		AWSProfile string `yaml:"aws_profile"`
		AWSRegion  string `yaml:"aws_region"`
	} `yaml:"sync"`
}

func DefaultConfig() Config {
	var config Config
	config.DataDir = "~/.config/tasksheet/data"
	config.UserID = "local"
	config.Server.Addr = ":8787"
	config.Server.AllowOrigins = []string{"http://localhost:5173"}
	return config
}
