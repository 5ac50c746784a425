// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"

	// Cart
	KeyCartItemAdded   = "cart.item_added"
	KeyCartItemRemoved = "cart.item_removed"
	KeyCartEmpty       = "cart.empty"
	KeyCartFull        = "cart.full"

	// Checkout
	KeyCheckoutFailed = "checkout.failed"

	// Products
	KeyProductCreated  = "product.created"
	KeyProductNotFound = "product.not_found"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Validation
	KeyValidationInvalid = "validation.invalid"
	KeyValidationPrice   = "validation.invalid_price"

	// File Upload
	KeyFileUploadFailed = "file.upload_failed"

	// Errors
	KeyInternalError = "error.internal"
	KeyRateLimited   = "error.rate_limited"
)
