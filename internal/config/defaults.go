package config

var DefaultConfig = Config{
	Server: ServerConfig{
		Host: "localhost",
		Port: 8080,
	},
	Web: WebConfig{
		Enabled: true,
		Host:    "localhost",
		Port:    9090,
	},
	Pacing: PacingConfig{
		ThinkDelayMS: 600,
		PassDelayMS:  900,
	},
	CLI: CLIConfig{
		Theme: "green",
	},
	Session: SessionConfig{
		MaxSessions:    1000,
		IdleTTLMinutes: 120,
	},
}
