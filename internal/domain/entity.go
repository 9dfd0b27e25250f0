package domain

import (
	"encoding/json"
	"strconv"
)

// Entity types as ThingsBoard names them.
const (
	EntityTypeDevice               = "DEVICE"
	EntityTypeAsset                = "ASSET"
	EntityTypeDashboard            = "DASHBOARD"
	EntityTypeAlarm                = "ALARM"
	EntityTypeCustomer             = "CUSTOMER"
	EntityTypeUser                 = "USER"
	EntityTypeTenant               = "TENANT"
	EntityTypeJob                  = "JOB"
	EntityTypeNotification         = "NOTIFICATION"
	EntityTypeNotificationRule     = "NOTIFICATION_RULE"
	EntityTypeNotificationTemplate = "NOTIFICATION_TEMPLATE"
	EntityTypeWidgetsBundle        = "WIDGETS_BUNDLE"
	EntityTypeWidgetType           = "WIDGET_TYPE"
	EntityTypeTenantProfile        = "TENANT_PROFILE"
	EntityTypeCalculatedField      = "CALCULATED_FIELD"
)

// Attribute scopes.
const (
	ScopeServer = "SERVER_SCOPE"
	ScopeShared = "SHARED_SCOPE"
	ScopeClient = "CLIENT_SCOPE"
)

// EntityID composite identifier carried by every platform entity
type EntityID struct {
	ID         string `json:"id"`
	EntityType string `json:"entityType"`
}

func NewEntityID(entityType, id string) *EntityID {
	return &EntityID{ID: id, EntityType: entityType}
}

// PageData ThingsBoard paged response
type PageData[T any] struct {
	Data          []T   `json:"data"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	HasNext       bool  `json:"hasNext"`
}

// PageLink paging query; Page is zero based.
type PageLink struct {
	PageSize     int
	Page         int
	TextSearch   string
	SortProperty string
	SortOrder    string
}

// Params renders the link as query parameters.
func (p PageLink) Params() map[string]string {
	size := p.PageSize
	if size <= 0 {
		size = 20
	}
	page := p.Page
	if page < 0 {
		page = 0
	}
	out := map[string]string{
		"pageSize": strconv.Itoa(size),
		"page":     strconv.Itoa(page),
	}
	if p.TextSearch != "" {
		out["textSearch"] = p.TextSearch
	}
	if p.SortProperty != "" {
		out["sortProperty"] = p.SortProperty
		if p.SortOrder != "" {
			out["sortOrder"] = p.SortOrder
		}
	}
	return out
}

// AttributeKV one attribute as returned by the telemetry plugin.
type AttributeKV struct {
	Key          string          `json:"key"`
	Value        json.RawMessage `json:"value"`
	LastUpdateTs int64           `json:"lastUpdateTs"`
}
