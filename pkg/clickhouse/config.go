package clickhouse

import (
	"fmt"
	"time"
)

// ClientConfig holds connection settings.
type ClientConfig struct {
	Host             string
	Port             int
	Database         string
	User             string
	Password         string
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
	DialTimeout      time.Duration
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	MaxExecutionTime time.Duration
	ConnectRetry     time.Duration
}

// ClientOption configures the client.
type ClientOption func(*ClientConfig)

func WithHost(host string) ClientOption {
	return func(c *ClientConfig) { c.Host = host }
}

func WithPort(port int) ClientOption {
	return func(c *ClientConfig) { c.Port = port }
}

func WithDatabase(db string) ClientOption {
	return func(c *ClientConfig) { c.Database = db }
}

func WithCredentials(user, password string) ClientOption {
	return func(c *ClientConfig) {
		c.User = user
		c.Password = password
	}
}

func WithMaxConnections(open, idle int) ClientOption {
	return func(c *ClientConfig) {
		c.MaxOpenConns = open
		c.MaxIdleConns = idle
	}
}

func WithTimeouts(dial, read, write time.Duration) ClientOption {
	return func(c *ClientConfig) {
		if dial > 0 {
			c.DialTimeout = dial
		}
		if read > 0 {
			c.ReadTimeout = read
		}
		if write > 0 {
			c.WriteTimeout = write
		}
	}
}

func WithMaxExecutionTime(d time.Duration) ClientOption {
	return func(c *ClientConfig) { c.MaxExecutionTime = d }
}

func WithConnectRetry(d time.Duration) ClientOption {
	return func(c *ClientConfig) {
		if d > 0 {
			c.ConnectRetry = d
		}
	}
}

func buildDSN(cfg ClientConfig) string {
	port := cfg.Port
	if port == 0 {
		port = 9000
	}
	dsn := fmt.Sprintf("clickhouse://%s:%s@%s:%d/%s?dial_timeout=%s&read_timeout=%s",
		cfg.User, cfg.Password, cfg.Host, port, cfg.Database,
		cfg.DialTimeout, cfg.ReadTimeout,
	)
	if cfg.MaxExecutionTime > 0 {
		dsn += fmt.Sprintf("&max_execution_time=%d", int(cfg.MaxExecutionTime.Seconds()))
	}
	return dsn
}
