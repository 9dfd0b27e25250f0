package domain

import "time"

// Session replaces the browser-held token, instance URL and customer id.
type Session struct {
	ID          string    `json:"id"`
	Token       string    `json:"token,omitempty"`
	InstanceURL string    `json:"instanceUrl"`
	CustomerID  string    `json:"customerId,omitempty"`
	UserID      string    `json:"userId,omitempty"`
	TenantID    string    `json:"tenantId,omitempty"`
	Email       string    `json:"email,omitempty"`
	Scopes      []string  `json:"scopes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Public omits the token.
func (s Session) Public() Session {
	s.Token = ""
	return s
}

// ExportRecord one produced export file.
type ExportRecord struct {
	ID         string    `json:"id"`
	DeviceID   string    `json:"deviceId"`
	DeviceName string    `json:"deviceName"`
	Format     string    `json:"format"`
	Keys       []string  `json:"keys"`
	StartTs    int64     `json:"startTs"`
	EndTs      int64     `json:"endTs"`
	FileName   string    `json:"fileName"`
	RowCount   int       `json:"rowCount"`
	CreatedAt  time.Time `json:"createdAt"`
}
