package dto

// ── 面试模块 DTO ──

// ScheduleInterviewRequest 安排面试
type ScheduleInterviewRequest struct {
	ScheduledAt     string   `json:"scheduledAt"     binding:"required"` // RFC3339
	DurationMinutes int      `json:"durationMinutes" binding:"omitempty,min=15,max=480"`
	Location        string   `json:"location"        binding:"omitempty,max=255"`
	MeetingURL      string   `json:"meetingUrl"      binding:"omitempty,url,max=500"`
	Notes           string   `json:"notes"           binding:"omitempty,max=5000"`
	Attendees       []string `json:"attendees"       binding:"required,min=1,max=50,dive,email"`
}

// InterviewResponse 面试信息
type InterviewResponse struct {
	ID              string   `json:"id"`
	ApplicationID   string   `json:"applicationId"`
	ScheduledAt     string   `json:"scheduledAt"`
	EndsAt          string   `json:"endsAt"`
	DurationMinutes int      `json:"durationMinutes"`
	Location        string   `json:"location,omitempty"`
	MeetingURL      string   `json:"meetingUrl,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	Attendees       []string `json:"attendees"`
	CreatedAt       string   `json:"createdAt"`
}

// DeliveryResult 单个收件人的发送结果
type DeliveryResult struct {
	Email     string `json:"email"`
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ScheduleInterviewResponse 安排面试结果（含逐个收件人的邮件发送结果）
type ScheduleInterviewResponse struct {
	Interview  InterviewResponse `json:"interview"`
	Deliveries []DeliveryResult  `json:"deliveries"`
}
