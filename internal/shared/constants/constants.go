package constants

const (
	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeySessionID = "session_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// User status
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"

	// Database table names
	TableUsers            = "users"
	TableSessions         = "sessions"
	TableOAuthAccounts    = "oauth_accounts"
	TablePlans            = "plans"
	TablePlanTools        = "plan_tools"
	TableSubscriptions    = "subscriptions"
	TableUsageCounters    = "usage_counters"
	TableFavorites        = "favorites"
	TableUserPreferences  = "user_preferences"
	TableToolRunEvents    = "tool_run_events"
	TableCasbinRule       = "casbin_rule"
	TableSchemaMigrations = "goose_db_version"

	// Tool output keys
	OutputKeyAnalysis = "analysis"
	OutputKeyGuidance = "guidance"

	// Message returned alongside unparsed completion text.
	RawAnalysisMessage = "Analysis completed successfully"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgProviderFailure     = "Failed to generate analysis"
)
