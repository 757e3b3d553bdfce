package database

// Storage abstracts the backing store so the router and app setup do not
// depend on a concrete driver.
type Storage interface {
	Init() error
	Close() error
	HealthCheck() error
	GetDB() interface{}
}
