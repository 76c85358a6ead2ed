// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired      = "auth.required"
	KeyAuthMissingOpenID = "auth.missing_openid"
	KeyAuthLoginSuccess  = "auth.login_success"

	// User Management
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserNotFound       = "user.not_found"

	// Products
	KeyProductCreated       = "product.created"
	KeyProductUpdated       = "product.updated"
	KeyProductDeleted       = "product.deleted"
	KeyProductNotFound      = "product.not_found"
	KeyProductNotOwner      = "product.not_owner"
	KeyProductStatusToggled = "product.status_toggled"
	KeyProductToggleInvalid = "product.toggle_invalid"
	KeyProductUnavailable   = "product.unavailable"

	// Orders
	KeyOrderCreated          = "order.created"
	KeyOrderNotFound         = "order.not_found"
	KeyOrderPaid             = "order.paid"
	KeyOrderShipped          = "order.shipped"
	KeyOrderCompleted        = "order.completed"
	KeyOrderCancelled        = "order.cancelled"
	KeyOrderForbidden        = "order.forbidden"
	KeyOrderInvalidState     = "order.invalid_state"
	KeyOrderShippingRequired = "order.shipping_required"

	// Chat
	KeyMessageSent           = "message.sent"
	KeyMessageMarkedRead     = "message.marked_read"
	KeyMessageNotParticipant = "message.not_participant"

	// Taxonomy
	KeyCategoryNotFound = "category.not_found"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
)
