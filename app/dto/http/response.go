package http

type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type UserSummary struct {
	ID       uint64 `json:"id"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

type LoginResponse struct {
	Success bool        `json:"success"`
	User    UserSummary `json:"user"`
}

type RefreshResponse struct {
	Success bool `json:"success"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}

type MeResponse struct {
	ID       uint64   `json:"id"`
	Email    string   `json:"email"`
	IsActive bool     `json:"is_active"`
	Roles    []string `json:"roles"`
}

type AckResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type DashboardResponse struct {
	UserStats     UserStats     `json:"user_stats"`
	SystemMetrics SystemMetrics `json:"system_metrics"`
}

type UserStats struct {
	UserID         uint64 `json:"user_id"`
	Email          string `json:"email"`
	AccountCreated string `json:"account_created"`
}

type SystemMetrics struct {
	TotalUsers         int64 `json:"total_users"`
	ActiveUsers        int64 `json:"active_users"`
	PendingResetTokens int64 `json:"pending_reset_tokens"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
