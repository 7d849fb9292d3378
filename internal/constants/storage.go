package constants

// Keys under which the client persists its state. They match the keys the
// mobile app used so an exported device store can be read back as is.
const (
	STORAGE_KEY_CART  = "cart"
	STORAGE_KEY_TOKEN = "token"
	STORAGE_KEY_USER  = "user"
)

const (
	STORAGE_DRIVER_MEMORY   = "memory"
	STORAGE_DRIVER_FILE     = "file"
	STORAGE_DRIVER_REDIS    = "redis"
	STORAGE_DRIVER_POSTGRES = "postgres"
)
