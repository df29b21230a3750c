package main

import "github.com/spf13/viper"

type Config struct {
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`
	Version     string `mapstructure:"VERSION"`
	TLSCertFile string `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile  string `mapstructure:"TLS_KEY_FILE"`

	SessionURL string `mapstructure:"SESSION_URL"`

	DBHost     string `mapstructure:"MONGO_HOST"`
	DBPort     string `mapstructure:"MONGO_PORT"`
	DBUser     string `mapstructure:"MONGO_USER"`
	DBPassword string `mapstructure:"MONGO_PASSWORD"`
	DBName     string `mapstructure:"MONGO_DB"`

	MQHost     string `mapstructure:"RABBITMQ_HOST"`
	MQPort     string `mapstructure:"RABBITMQ_PORT"`
	MQUser     string `mapstructure:"RABBITMQ_USER"`
	MQPassword string `mapstructure:"RABBITMQ_PASSWORD"`

	MailHost          string `mapstructure:"MAIL_HOST"`
	MailPort          int    `mapstructure:"MAIL_PORT"`
	MailUser          string `mapstructure:"MAIL_USER"`
	MailPassword      string `mapstructure:"MAIL_PASSWORD"`
	MailSender        string `mapstructure:"MAIL_SENDER"`
	TimelineRecipient string `mapstructure:"TIMELINE_RECIPIENT"`

	PagingSize      int      `mapstructure:"BLOG_PAGING_SIZE"`
	SearchEnabled   bool     `mapstructure:"SEARCH_ENABLED"`
	SearchDomains   []string `mapstructure:"SEARCH_DOMAINS"`
	BlogWordMinSize int      `mapstructure:"BLOG_SEARCH_WORD_MIN_SIZE"`
	PostWordMinSize int      `mapstructure:"POST_SEARCH_WORD_MIN_SIZE"`
}

func loadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)

	viper.SetDefault("BLOG_PAGING_SIZE", 30)
	viper.SetDefault("SEARCH_ENABLED", true)
	viper.SetDefault("SEARCH_DOMAINS", "blog,post")
	viper.SetDefault("BLOG_SEARCH_WORD_MIN_SIZE", 4)
	viper.SetDefault("POST_SEARCH_WORD_MIN_SIZE", 4)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
