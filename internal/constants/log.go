package constants

const (
	KEY_APP_NAME         = "app"
	KEY_BODY             = "body"
	KEY_CACHE_KEY        = "cacheKey"
	KEY_CART             = "cart"
	KEY_CART_DELTA       = "delta"
	KEY_CART_ITEM_ID     = "cartItemId"
	KEY_CART_ITEMS       = "cartItems"
	KEY_CART_ITEMS_COUNT = "cartItemsCount"
	KEY_CART_QUANTITY    = "quantity"
	KEY_CART_TOTALS      = "totals"
	KEY_CATEGORY_ID      = "categoryId"
	KEY_CHECKOUT_OUTCOME = "checkoutOutcome"
	KEY_CONFIG           = "config"
	KEY_DB_URL           = "dbUrl"
	KEY_EMAIL            = "email"
	KEY_HEADER           = "header"
	KEY_ORDER            = "order"
	KEY_ORDER_ID         = "orderId"
	KEY_ORDERS           = "orders"
	KEY_PROCESS          = "process"
	KEY_PRODUCT_ID       = "productId"
	KEY_REQUEST          = "request"
	KEY_REQUEST_BODY     = "requestBody"
	KEY_REQUEST_HEADER   = "requestHeader"
	KEY_REQUEST_HOST     = "host"
	KEY_REQUEST_ID       = "requestId"
	KEY_REQUEST_IP       = "requesterIP"
	KEY_REQUEST_METHOD   = "requestMethod"
	KEY_REQUEST_URI      = "requestURI"
	KEY_REQUEST_URL      = "requestURL"
	KEY_RESPONSE_STATUS  = "responseStatus"
	KEY_SPAN_ID          = "spanId"
	KEY_STORAGE_DRIVER   = "storageDriver"
	KEY_STORAGE_KEY      = "storageKey"
	KEY_TAG              = "tag"
	KEY_TOKEN            = "token"
	KEY_TRACE_ID         = "traceId"
	KEY_USER_ID          = "userId"
)
