package constants

const (
	APP_MAIN_RESTAURANT = "restaurant"
	APP_CART_SERVICE    = "cart-service"
	APP_CART_SERVER     = "cart-server"
	APP_ORDER_SERVICE   = "order-service"
	APP_PRODUCT_SERVICE = "product-service"
	APP_USER_SERVICE    = "user-service"
)
