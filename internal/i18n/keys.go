package i18n

// Error message translation keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyUnauthorized       = "error.unauthorized"
	// ErrKeyInvalidCredentials covers both unknown emails and wrong passwords.
	ErrKeyInvalidCredentials = "error.invalid_credentials"
	ErrKeyAPIKeyRequired     = "error.api_key_required"
	ErrKeyInvalidAPIKey      = "error.invalid_api_key"
	ErrKeyForbidden          = "error.forbidden"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyRateLimitExceeded  = "error.rate_limit_exceeded"
	ErrKeyConflict           = "error.conflict"
	ErrKeyInvalidToken       = "error.invalid_token"
	ErrKeyTokenRequired      = "error.token_required"
	ErrKeyTimeout            = "error.timeout"
	ErrKeyUnavailable        = "error.service_unavailable"

	// Calculation input errors.
	ErrKeyIncompleteInput = "error.incomplete_input"
	ErrKeyInvalidValue    = "error.invalid_value"
	ErrKeyModeConflict    = "error.mode_conflict"

	// Chat and history errors.
	ErrKeySessionNotFound      = "error.session_not_found"
	ErrKeyMessageEmpty         = "error.message_empty"
	ErrKeyMessageTooLong       = "error.message_too_long"
	ErrKeyCalculationNotFound  = "error.calculation_not_found"
	ErrKeyInvalidCalculationID = "error.invalid_calculation_id"
	ErrKeyHistoryDisabled      = "error.history_disabled"
)

// Success message translation keys.
const (
	SuccessKeyCalculationCompleted = "success.calculation_completed"
	SuccessKeySessionStarted       = "success.session_started"
	SuccessKeyLoggedIn             = "success.logged_in"
)
