package config

type Config struct {
	Environment  Environment
	Log          Log
	HTTP         HTTPServer
	DatabasePath string `env:"DATABASE_PATH" envDefault:"backoffice.db"`

	Redis   Redis   `envPrefix:"REDIS_"`
	Kafka   Kafka   `envPrefix:"KAFKA_"`
	Auth    Auth    `envPrefix:"AUTH_"`
	Uploads Uploads `envPrefix:"UPLOAD_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

type Redis struct {
	Addr string `env:"ADDR" envDefault:"localhost:6379"`
}

type Kafka struct {
	Brokers []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic   string   `env:"TOPIC" envDefault:"backoffice-events"`
}

type Auth struct {
	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret"`
}

type Uploads struct {
	Dir string `env:"DIR" envDefault:"uploads"`
}
