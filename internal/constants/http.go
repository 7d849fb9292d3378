package constants

const (
	HEADER_AUTHORIZATION   = "Authorization"
	HEADER_REQUEST_ID      = "X-Request-Id"
	HEADER_CONTENT_TYPE    = "Content-Type"
	HEADER_ACCEPT          = "Accept"
	VALUE_APPLICATION_JSON = "application/json"
)

const (
	PATH_AUTH_LOGIN    = "/api/auth/login"
	PATH_AUTH_REGISTER = "/api/auth/register"
	PATH_CATEGORIES    = "/api/categories"
	PATH_ITEMS         = "/api/items"
	PATH_ORDERS        = "/api/orders"

	PATH_KITCHEN_ORDERS  = "/api/cocinero/orders"
	PATH_KITCHEN_PENDING = "/api/cocinero/orders/pending"
	PATH_KITCHEN_HISTORY = "/api/cocinero/orders/history"
)
