package dashboard

// Stats is the overview block on the admin landing page.
type Stats struct {
	TotalPages       int `json:"total_pages"`
	PublishedPages   int `json:"published_pages"`
	TotalUsers       int `json:"total_users"`
	RecentActivities int `json:"recent_activities"`
}
