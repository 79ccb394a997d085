package models

// DashboardStats aggregates the figures shown on the admin dashboard.
type DashboardStats struct {
	TotalUsers          int     `json:"totalUsers"`
	TotalProducts       int     `json:"totalProducts"`
	ActiveSubscriptions int     `json:"activeSubscriptions"`
	Revenue             float64 `json:"revenue"`
}

// ManagedUser is a user row on the admin user-management screen.
type ManagedUser struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Subscriptions int    `json:"subscriptions"`
	Blocked       bool   `json:"blocked"`
}
