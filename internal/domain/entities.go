package domain

import "encoding/json"

type Device struct {
	ID              *EntityID       `json:"id,omitempty"`
	CreatedTime     int64           `json:"createdTime,omitempty"`
	TenantID        *EntityID       `json:"tenantId,omitempty"`
	CustomerID      *EntityID       `json:"customerId,omitempty"`
	Name            string          `json:"name" validate:"required,max=255"`
	Type            string          `json:"type,omitempty"`
	Label           string          `json:"label,omitempty" validate:"max=255"`
	DeviceProfileID *EntityID       `json:"deviceProfileId,omitempty"`
	AdditionalInfo  json.RawMessage `json:"additionalInfo,omitempty"`
}

type Asset struct {
	ID             *EntityID       `json:"id,omitempty"`
	CreatedTime    int64           `json:"createdTime,omitempty"`
	TenantID       *EntityID       `json:"tenantId,omitempty"`
	CustomerID     *EntityID       `json:"customerId,omitempty"`
	Name           string          `json:"name" validate:"required,max=255"`
	Type           string          `json:"type,omitempty"`
	Label          string          `json:"label,omitempty" validate:"max=255"`
	AssetProfileID *EntityID       `json:"assetProfileId,omitempty"`
	AdditionalInfo json.RawMessage `json:"additionalInfo,omitempty"`
}

type ShortCustomerInfo struct {
	CustomerID *EntityID `json:"customerId"`
	Title      string    `json:"title"`
	Public     bool      `json:"public"`
}

type DashboardInfo struct {
	ID                *EntityID           `json:"id,omitempty"`
	CreatedTime       int64               `json:"createdTime,omitempty"`
	TenantID          *EntityID           `json:"tenantId,omitempty"`
	Title             string              `json:"title"`
	Image             string              `json:"image,omitempty"`
	AssignedCustomers []ShortCustomerInfo `json:"assignedCustomers,omitempty"`
	MobileHide        bool                `json:"mobileHide,omitempty"`
}

// Alarm statuses accepted by the v2 alarm query.
const (
	AlarmStatusActive  = "ACTIVE"
	AlarmStatusCleared = "CLEARED"
	AlarmStatusAck     = "ACK"
	AlarmStatusUnack   = "UNACK"
)

type Alarm struct {
	ID             *EntityID       `json:"id,omitempty"`
	CreatedTime    int64           `json:"createdTime,omitempty"`
	Type           string          `json:"type"`
	Originator     *EntityID       `json:"originator,omitempty"`
	OriginatorName string          `json:"originatorName,omitempty"`
	Severity       string          `json:"severity"`
	Status         string          `json:"status,omitempty"`
	Acknowledged   bool            `json:"acknowledged"`
	Cleared        bool            `json:"cleared"`
	StartTs        int64           `json:"startTs,omitempty"`
	EndTs          int64           `json:"endTs,omitempty"`
	AckTs          int64           `json:"ackTs,omitempty"`
	ClearTs        int64           `json:"clearTs,omitempty"`
	Details        json.RawMessage `json:"details,omitempty"`
}

type Customer struct {
	ID             *EntityID       `json:"id,omitempty"`
	CreatedTime    int64           `json:"createdTime,omitempty"`
	TenantID       *EntityID       `json:"tenantId,omitempty"`
	Title          string          `json:"title" validate:"required,max=255"`
	Email          string          `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string          `json:"phone,omitempty" validate:"max=64"`
	Country        string          `json:"country,omitempty"`
	State          string          `json:"state,omitempty"`
	City           string          `json:"city,omitempty"`
	Address        string          `json:"address,omitempty"`
	Address2       string          `json:"address2,omitempty"`
	Zip            string          `json:"zip,omitempty"`
	AdditionalInfo json.RawMessage `json:"additionalInfo,omitempty"`
}

// User authorities.
const (
	AuthoritySysAdmin     = "SYS_ADMIN"
	AuthorityTenantAdmin  = "TENANT_ADMIN"
	AuthorityCustomerUser = "CUSTOMER_USER"
)

type User struct {
	ID             *EntityID       `json:"id,omitempty"`
	CreatedTime    int64           `json:"createdTime,omitempty"`
	TenantID       *EntityID       `json:"tenantId,omitempty"`
	CustomerID     *EntityID       `json:"customerId,omitempty" validate:"required_if=Authority CUSTOMER_USER"`
	Email          string          `json:"email" validate:"required,email"`
	Authority      string          `json:"authority" validate:"required,oneof=TENANT_ADMIN CUSTOMER_USER"`
	FirstName      string          `json:"firstName,omitempty" validate:"max=255"`
	LastName       string          `json:"lastName,omitempty" validate:"max=255"`
	Phone          string          `json:"phone,omitempty" validate:"max=64"`
	AdditionalInfo json.RawMessage `json:"additionalInfo,omitempty"`
}

type AuditLog struct {
	ID                   *EntityID       `json:"id,omitempty"`
	CreatedTime          int64           `json:"createdTime"`
	EntityID             *EntityID       `json:"entityId,omitempty"`
	EntityName           string          `json:"entityName,omitempty"`
	UserName             string          `json:"userName,omitempty"`
	ActionType           string          `json:"actionType"`
	ActionStatus         string          `json:"actionStatus"`
	ActionFailureDetails string          `json:"actionFailureDetails,omitempty"`
	ActionData           json.RawMessage `json:"actionData,omitempty"`
}

type Job struct {
	ID            *EntityID       `json:"id,omitempty"`
	CreatedTime   int64           `json:"createdTime"`
	Type          string          `json:"type"`
	Key           string          `json:"key,omitempty"`
	EntityID      *EntityID       `json:"entityId,omitempty"`
	EntityName    string          `json:"entityName,omitempty"`
	Status        string          `json:"status"`
	Configuration json.RawMessage `json:"configuration,omitempty"`
	Result        json.RawMessage `json:"result,omitempty"`
}

type Notification struct {
	ID          *EntityID       `json:"id,omitempty"`
	CreatedTime int64           `json:"createdTime"`
	RequestID   *EntityID       `json:"requestId,omitempty"`
	RecipientID *EntityID       `json:"recipientId,omitempty"`
	Type        string          `json:"type"`
	Subject     string          `json:"subject,omitempty"`
	Text        string          `json:"text"`
	Status      string          `json:"status"`
	Info        json.RawMessage `json:"info,omitempty"`
}

type NotificationRule struct {
	ID               *EntityID       `json:"id,omitempty"`
	CreatedTime      int64           `json:"createdTime,omitempty"`
	Name             string          `json:"name" validate:"required,max=255"`
	Enabled          bool            `json:"enabled"`
	TemplateID       *EntityID       `json:"templateId" validate:"required"`
	TriggerType      string          `json:"triggerType" validate:"required"`
	TriggerConfig    json.RawMessage `json:"triggerConfig,omitempty"`
	RecipientsConfig json.RawMessage `json:"recipientsConfig,omitempty"`
	AdditionalConfig json.RawMessage `json:"additionalConfig,omitempty"`
}

type NotificationTemplate struct {
	ID               *EntityID       `json:"id,omitempty"`
	CreatedTime      int64           `json:"createdTime,omitempty"`
	Name             string          `json:"name" validate:"required,max=255"`
	NotificationType string          `json:"notificationType" validate:"required"`
	Configuration    json.RawMessage `json:"configuration,omitempty"`
}

type WidgetsBundle struct {
	ID          *EntityID `json:"id,omitempty"`
	CreatedTime int64     `json:"createdTime,omitempty"`
	Alias       string    `json:"alias"`
	Title       string    `json:"title"`
	Image       string    `json:"image,omitempty"`
	Description string    `json:"description,omitempty"`
	Order       *int      `json:"order,omitempty"`
}

type WidgetTypeInfo struct {
	ID          *EntityID `json:"id,omitempty"`
	FQN         string    `json:"fqn"`
	Name        string    `json:"name"`
	Deprecated  bool      `json:"deprecated"`
	Image       string    `json:"image,omitempty"`
	Description string    `json:"description,omitempty"`
	WidgetType  string    `json:"widgetType,omitempty"`
}

type TenantProfileInfo struct {
	ID   *EntityID `json:"id"`
	Name string    `json:"name"`
}

// Calculated field types; script semantics live on the platform.
const (
	CalculatedFieldSimple = "SIMPLE"
	CalculatedFieldScript = "SCRIPT"
)

type CalculatedField struct {
	ID                   *EntityID       `json:"id,omitempty"`
	CreatedTime          int64           `json:"createdTime,omitempty"`
	EntityID             *EntityID       `json:"entityId" validate:"required"`
	Type                 string          `json:"type" validate:"required,oneof=SIMPLE SCRIPT"`
	Name                 string          `json:"name" validate:"required,max=255"`
	ConfigurationVersion int             `json:"configurationVersion"`
	Configuration        json.RawMessage `json:"configuration" validate:"required"`
}

type SecuritySettings struct {
	PasswordPolicy               json.RawMessage `json:"passwordPolicy,omitempty"`
	MaxFailedLoginAttempts       *int            `json:"maxFailedLoginAttempts,omitempty" validate:"omitempty,min=0"`
	UserLockoutNotificationEmail string          `json:"userLockoutNotificationEmail,omitempty" validate:"omitempty,email"`
	MobileSecretKeyLength        *int            `json:"mobileSecretKeyLength,omitempty"`
	UserActivationTokenTTL       *int            `json:"userActivationTokenTtl,omitempty"`
	PasswordResetTokenTTL        *int            `json:"passwordResetTokenTtl,omitempty"`
}

// AdminSettings platform settings blob; Key "mail" carries the mail server.
type AdminSettings struct {
	ID        *EntityID       `json:"id,omitempty"`
	TenantID  *EntityID       `json:"tenantId,omitempty"`
	Key       string          `json:"key" validate:"required"`
	JSONValue json.RawMessage `json:"jsonValue" validate:"required"`
}

type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}
