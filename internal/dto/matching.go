package dto

// ── 匹配评分 DTO ──

// TeamMatchRequest GET /matching/teams 查询参数
type TeamMatchRequest struct {
	OpportunityID string `form:"opportunityId" binding:"required,uuid"`
	MinScore      *int   `form:"minScore"      binding:"omitempty,min=0,max=100"`
	Limit         *int   `form:"limit"         binding:"omitempty,min=1,max=100"`
}

// OpportunityMatchRequest GET /matching/opportunities 查询参数
type OpportunityMatchRequest struct {
	TeamID   string `form:"teamId"   binding:"required,uuid"`
	MinScore *int   `form:"minScore" binding:"omitempty,min=0,max=100"`
	Limit    *int   `form:"limit"    binding:"omitempty,min=1,max=100"`
}

// MatchScoreResponse 评分结果
type MatchScoreResponse struct {
	Total          int            `json:"total"`
	Breakdown      map[string]int `json:"breakdown"`
	Recommendation string         `json:"recommendation"`
	Strengths      []string       `json:"strengths"`
	Concerns       []string       `json:"concerns"`
}

// TeamMatch 单个团队匹配结果
type TeamMatch struct {
	Team  TeamResponse       `json:"team"`
	Score MatchScoreResponse `json:"score"`
}

// OpportunityMatch 单个机会匹配结果
type OpportunityMatch struct {
	Opportunity OpportunityResponse `json:"opportunity"`
	Score       MatchScoreResponse  `json:"score"`
}

// TeamMatchesResponse 团队匹配列表；Total 为满足 minScore 的总数（截断前）
type TeamMatchesResponse struct {
	Matches []TeamMatch `json:"matches"`
	Total   int         `json:"total"`
}

// OpportunityMatchesResponse 机会匹配列表
type OpportunityMatchesResponse struct {
	Matches []OpportunityMatch `json:"matches"`
	Total   int                `json:"total"`
}
