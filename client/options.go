package client

type config struct {
	host string
	port int
}

func defaultConfig() *config {
	return &config{host: "127.0.0.1", port: 5050}
}

// Option configures Connect.
type Option func(*config)

// WithHost sets the daemon host to connect to.
func WithHost(host string) Option {
	return func(c *config) { c.host = host }
}

// WithPort sets the daemon port to connect to.
func WithPort(port int) Option {
	return func(c *config) { c.port = port }
}
