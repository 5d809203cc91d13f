package matching

import (
	"math"
)

// Recommendation 推荐档位
type Recommendation string

const (
	RecommendationExcellent Recommendation = "excellent"
	RecommendationGood      Recommendation = "good"
	RecommendationFair      Recommendation = "fair"
	RecommendationPoor      Recommendation = "poor"
)

// TeamProfile 参与评分的团队字段
type TeamProfile struct {
	Name             string
	Industry         string
	Location         string
	Size             int
	Skills           []string
	CompensationMin  int64
	CompensationMax  int64
	YearsTogether    float64
	Availability     string
	OpenToRelocation bool
}

// OpportunityProfile 参与评分的机会字段
type OpportunityProfile struct {
	Title           string
	Industry        string
	Location        string
	Remote          bool
	CompensationMin int64
	CompensationMax int64
	RequiredSkills  []string
	TeamSizeMin     int
	TeamSizeMax     int
	Urgency         string
	CompanyVerified *bool
}

// MatchScore 单次评分结果（不落库，每次请求重新计算）
type MatchScore struct {
	Total          int            `json:"total"`
	Breakdown      map[Factor]int `json:"breakdown"`
	Recommendation Recommendation `json:"recommendation"`
	Strengths      []string       `json:"strengths"`
	Concerns       []string       `json:"concerns"`
}

// Scorer 加权评分器；零值不可用，通过 NewScorer 构造
type Scorer struct {
	weights    Weights
	thresholds Thresholds
}

// NewScorer 创建评分器。权重由调用方按评分方向选择（DefaultTeamWeights 或
// DefaultOpportunityWeights），不做回退：没有正权重的评分器总分恒为 0。
// Thresholds 全零时使用 DefaultThresholds。
func NewScorer(cfg Config) *Scorer {
	w := make(Weights, len(cfg.Weights))
	for k, v := range cfg.Weights {
		w[k] = v
	}
	t := cfg.Thresholds
	if t == (Thresholds{}) {
		t = DefaultThresholds()
	}
	return &Scorer{weights: w, thresholds: t}
}

// Weights 返回评分器使用的权重副本
func (s *Scorer) Weights() Weights {
	out := make(Weights, len(s.weights))
	for k, v := range s.weights {
		out[k] = v
	}
	return out
}

// Score 计算团队与机会的匹配分
func (s *Scorer) Score(team TeamProfile, opp OpportunityProfile) MatchScore {
	raw := map[Factor]float64{
		FactorSkills:         SkillsScore(opp.RequiredSkills, team.Skills),
		FactorIndustry:       IndustryScore(team.Industry, opp.Industry),
		FactorCompensation:   CompensationScore(team.CompensationMin, team.CompensationMax, opp.CompensationMin, opp.CompensationMax),
		FactorSize:           SizeScore(team.Size, opp.TeamSizeMin, opp.TeamSizeMax),
		FactorLocation:       LocationScore(team.Location, opp.Location, opp.Remote, team.OpenToRelocation),
		FactorExperience:     ExperienceScore(team.YearsTogether),
		FactorAvailability:   AvailabilityScore(team.Availability),
		FactorUrgency:        UrgencyScore(opp.Urgency),
		FactorCompanyQuality: CompanyQualityScore(opp.CompanyVerified),
	}

	result := MatchScore{
		Breakdown: make(map[Factor]int),
		Strengths: []string{},
		Concerns:  []string{},
	}

	var weighted, weightSum float64
	for _, f := range factorOrder {
		w := s.weights[f]
		if w <= 0 {
			continue
		}
		sub := raw[f]
		weighted += w * sub
		weightSum += w

		rounded := int(math.Round(sub))
		result.Breakdown[f] = rounded
		if rounded >= 80 {
			result.Strengths = append(result.Strengths, strengthText[f])
		} else if rounded < 50 {
			result.Concerns = append(result.Concerns, concernText[f])
		}
	}

	if weightSum > 0 {
		result.Total = clampInt(int(math.Round(weighted / weightSum)))
	}
	result.Recommendation = s.Recommend(result.Total)
	return result
}

// Recommend 根据总分给出推荐档位
func (s *Scorer) Recommend(total int) Recommendation {
	switch {
	case total >= s.thresholds.Excellent:
		return RecommendationExcellent
	case total >= s.thresholds.Good:
		return RecommendationGood
	case total >= s.thresholds.Fair:
		return RecommendationFair
	default:
		return RecommendationPoor
	}
}

func clampInt(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

var strengthText = map[Factor]string{
	FactorSkills:         "Strong skills alignment with the required skills",
	FactorIndustry:       "Relevant industry experience",
	FactorCompensation:   "Compensation expectations are aligned",
	FactorSize:           "Team size fits the opportunity",
	FactorLocation:       "Location is a good fit",
	FactorExperience:     "Long track record of working together",
	FactorAvailability:   "Team is available soon",
	FactorUrgency:        "Company is hiring with urgency",
	FactorCompanyQuality: "Verified company",
}

var concernText = map[Factor]string{
	FactorSkills:         "Skills gap: highlight transferable experience or plan for upskilling",
	FactorIndustry:       "Different industry background: explain how the team's domain knowledge transfers",
	FactorCompensation:   "Compensation gap: discuss flexibility on salary or equity early",
	FactorSize:           "Team size outside the requested range: clarify which members would join",
	FactorLocation:       "Location mismatch: confirm remote or relocation options",
	FactorExperience:     "Limited time working together: share examples of joint delivery",
	FactorAvailability:   "Limited availability: agree on a realistic start date",
	FactorUrgency:        "Low hiring urgency: expect a longer process",
	FactorCompanyQuality: "Company is not verified: do extra due diligence",
}
