package cmd

// Config carries the flat application settings loaded from the environment.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string

	GoogleMapsAPIKey string

	// OrderServiceURL is the base URL tracking pollers fetch orders and
	// deliveries from. Points at this process in a single-node deployment.
	OrderServiceURL string
}
