package dto

// ── 管理后台 DTO ──

// AuditLogListRequest 审计日志查询
type AuditLogListRequest struct {
	PaginationRequest
	Action     string `form:"action"     binding:"omitempty,max=64"`
	EntityType string `form:"entityType" binding:"omitempty,max=64"`
	ActorID    string `form:"actorId"    binding:"omitempty,uuid"`
}

// SuspendUserRequest 封禁 / 解封用户
type SuspendUserRequest struct {
	Suspended *bool `json:"suspended" binding:"required"`
}

// AuditLogResponse 审计日志
type AuditLogResponse struct {
	ID         string                 `json:"id"`
	ActorID    string                 `json:"actorId,omitempty"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entityType"`
	EntityID   string                 `json:"entityId"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	IP         string                 `json:"ip,omitempty"`
	CreatedAt  string                 `json:"createdAt"`
}

// StatsResponse 平台统计
type StatsResponse struct {
	UsersByType           map[string]int64 `json:"usersByType"`
	Teams                 int64            `json:"teams"`
	OpportunitiesByStatus map[string]int64 `json:"opportunitiesByStatus"`
	ApplicationsByStatus  map[string]int64 `json:"applicationsByStatus"`
	PendingInvitations    int64            `json:"pendingInvitations"`
}
