package matching

import (
	"math/rand"
	"testing"
)

// ── 单因子 ──

func TestSkillsScore_NoRequiredSkillsIsNeutral(t *testing.T) {
	cases := [][]string{nil, {}, {"", "  "}}
	for _, req := range cases {
		got := SkillsScore(req, []string{"go", "python"})
		if got != 50 {
			t.Errorf("required=%q: 期望 50，实际 %v", req, got)
		}
	}
}

func TestSkillsScore_HalfMatched(t *testing.T) {
	got := SkillsScore([]string{"Python", "ML"}, []string{"python", "react"})
	if got != 50 {
		t.Errorf("期望 50，实际 %v", got)
	}
}

func TestSkillsScore_SubstringBothDirections(t *testing.T) {
	// "react native" 包含 "react"；"go" 被 "golang" 包含
	got := SkillsScore([]string{"React", "Go"}, []string{"react native", "golang"})
	if got != 100 {
		t.Errorf("期望 100，实际 %v", got)
	}
}

func TestSkillsScore_NoTeamSkills(t *testing.T) {
	if got := SkillsScore([]string{"Rust"}, nil); got != 0 {
		t.Errorf("期望 0，实际 %v", got)
	}
}

func TestIndustryScore(t *testing.T) {
	tests := []struct {
		team, opp string
		want      float64
	}{
		{"Healthcare", "healthcare", 100},
		{"FinTech", "Fin", 70},
		{"Tech", "Health Tech", 70},
		{"Finance", "Healthcare", 40},
		{"", "Healthcare", 50},
	}
	for _, tt := range tests {
		if got := IndustryScore(tt.team, tt.opp); got != tt.want {
			t.Errorf("IndustryScore(%q, %q) = %v, want %v", tt.team, tt.opp, got, tt.want)
		}
	}
}

func TestLocationScore(t *testing.T) {
	tests := []struct {
		name       string
		team, opp  string
		remote     bool
		relocation bool
		want       float64
	}{
		{"remote flag", "Berlin", "London", true, false, 100},
		{"remote text", "Berlin", "Remote", false, false, 100},
		{"exact", "New York, NY", "new york, ny", false, false, 100},
		{"same city", "Austin, TX, USA", "Austin, TX", false, false, 100},
		{"same region", "Oakland, CA", "San Francisco, CA", false, false, 70},
		{"relocation", "Berlin", "London", false, true, 60},
		{"mismatch", "Berlin", "London", false, false, 30},
		{"unknown", "", "London", false, false, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LocationScore(tt.team, tt.opp, tt.remote, tt.relocation); got != tt.want {
				t.Errorf("期望 %v，实际 %v", tt.want, got)
			}
		})
	}
}

func TestSizeScore(t *testing.T) {
	tests := []struct {
		size, min, max int
		want           float64
	}{
		{5, 3, 8, 100},
		{5, 0, 8, 100},
		{2, 4, 8, 60},
		{10, 3, 8, 60},
		{20, 3, 8, 0},
		{0, 3, 8, 50},
		{5, 0, 0, 50},
	}
	for _, tt := range tests {
		if got := SizeScore(tt.size, tt.min, tt.max); got != tt.want {
			t.Errorf("SizeScore(%d, %d, %d) = %v, want %v", tt.size, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestCompensationScore(t *testing.T) {
	tests := []struct {
		name                   string
		tMin, tMax, oMin, oMax int64
		want                   float64
	}{
		{"full overlap", 100, 200, 100, 200, 100},
		{"half overlap", 100, 200, 150, 300, 85},
		{"opportunity pays more", 100, 200, 250, 300, 100},
		{"small gap", 100, 200, 50, 90, 48},
		{"large gap", 100, 200, 10, 40, 0},
		{"missing team range", 0, 0, 100, 200, 50},
		{"point expectation", 150, 150, 100, 200, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompensationScore(tt.tMin, tt.tMax, tt.oMin, tt.oMax)
			if diff := got - tt.want; diff > 0.001 || diff < -0.001 {
				t.Errorf("期望 %v，实际 %v", tt.want, got)
			}
		})
	}
}

// ── 聚合 ──

func TestScorer_RecommendBoundaries(t *testing.T) {
	s := NewScorer(Config{})
	tests := []struct {
		total int
		want  Recommendation
	}{
		{100, RecommendationExcellent},
		{85, RecommendationExcellent},
		{84, RecommendationGood},
		{70, RecommendationGood},
		{69, RecommendationFair},
		{55, RecommendationFair},
		{54, RecommendationPoor},
		{0, RecommendationPoor},
	}
	for _, tt := range tests {
		if got := s.Recommend(tt.total); got != tt.want {
			t.Errorf("Recommend(%d) = %s, want %s", tt.total, got, tt.want)
		}
	}
}

func TestNewScorer_UsesCallerWeightsWithoutFallback(t *testing.T) {
	opp := NewScorer(Config{Weights: DefaultOpportunityWeights()})
	w := opp.Weights()
	if w[FactorUrgency] != 5 || w[FactorCompanyQuality] != 10 {
		t.Errorf("期望保留机会方向权重，实际 %v", w)
	}
	if _, ok := w[FactorExperience]; ok {
		t.Errorf("不应混入团队方向的 experience 权重: %v", w)
	}

	empty := NewScorer(Config{})
	if n := len(empty.Weights()); n != 0 {
		t.Fatalf("期望空权重，实际 %d 项", n)
	}
	score := empty.Score(TeamProfile{Skills: []string{"go"}}, OpportunityProfile{RequiredSkills: []string{"Go"}})
	if score.Total != 0 || len(score.Breakdown) != 0 {
		t.Errorf("期望空权重总分 0 且无 breakdown，实际 %+v", score)
	}
	if score.Recommendation != RecommendationPoor {
		t.Errorf("期望 poor，实际 %s", score.Recommendation)
	}

	src := Weights{FactorSkills: 1}
	s := NewScorer(Config{Weights: src})
	src[FactorSkills] = 99
	if got := s.Weights()[FactorSkills]; got != 1 {
		t.Errorf("期望评分器持有权重副本，实际 %v", got)
	}
}

func TestScorer_CustomThresholds(t *testing.T) {
	s := NewScorer(Config{Thresholds: Thresholds{Excellent: 90, Good: 60, Fair: 30}})
	if got := s.Recommend(85); got != RecommendationGood {
		t.Errorf("期望 good，实际 %s", got)
	}
	if got := s.Recommend(30); got != RecommendationFair {
		t.Errorf("期望 fair，实际 %s", got)
	}
}

func TestScorer_EndToEndSkillsAndIndustry(t *testing.T) {
	s := NewScorer(Config{Weights: DefaultTeamWeights()})
	score := s.Score(
		TeamProfile{Industry: "Finance", Skills: []string{"python", "react"}},
		OpportunityProfile{Industry: "Healthcare", RequiredSkills: []string{"Python", "ML"}},
	)

	if score.Breakdown[FactorSkills] != 50 {
		t.Errorf("skills 期望 50，实际 %d", score.Breakdown[FactorSkills])
	}
	if score.Breakdown[FactorIndustry] != 40 {
		t.Errorf("industry 期望 40，实际 %d", score.Breakdown[FactorIndustry])
	}
	if len(score.Concerns) == 0 {
		t.Error("期望 industry 产生 concern")
	}
}

func TestScorer_OnlyWeightedFactorsInBreakdown(t *testing.T) {
	s := NewScorer(Config{Weights: Weights{FactorSkills: 1}})
	score := s.Score(TeamProfile{Skills: []string{"go"}}, OpportunityProfile{RequiredSkills: []string{"Go"}})

	if len(score.Breakdown) != 1 {
		t.Fatalf("期望 breakdown 只有 1 项，实际 %v", score.Breakdown)
	}
	if score.Total != 100 {
		t.Errorf("期望 total 100，实际 %d", score.Total)
	}
	if score.Recommendation != RecommendationExcellent {
		t.Errorf("期望 excellent，实际 %s", score.Recommendation)
	}
	if len(score.Strengths) != 1 {
		t.Errorf("期望 1 条 strength，实际 %v", score.Strengths)
	}
}

func TestScorer_TotalBoundedAndOrderInvariant(t *testing.T) {
	s := NewScorer(Config{Weights: DefaultOpportunityWeights()})
	rng := rand.New(rand.NewSource(42))
	pool := []string{"Go", "python", "ML", "react", "Kubernetes", "sql", "rust", "java", "ts", ""}
	verified := true

	for i := 0; i < 200; i++ {
		team := TeamProfile{
			Industry:        pick(rng, []string{"Finance", "fintech", "Healthcare", ""}),
			Location:        pick(rng, []string{"Austin, TX", "Berlin", "", "Dallas, TX"}),
			Size:            rng.Intn(15),
			Skills:          sample(rng, pool),
			CompensationMin: int64(rng.Intn(200000)),
			CompensationMax: int64(rng.Intn(300000)),
			YearsTogether:   rng.Float64() * 8,
			Availability:    pick(rng, []string{"immediate", "within_month", "not_looking", ""}),
		}
		opp := OpportunityProfile{
			Industry:        pick(rng, []string{"Finance", "Health", ""}),
			Location:        pick(rng, []string{"Austin, TX", "Remote", "London"}),
			CompensationMin: int64(rng.Intn(200000)),
			CompensationMax: int64(rng.Intn(300000)),
			RequiredSkills:  sample(rng, pool),
			TeamSizeMin:     rng.Intn(5),
			TeamSizeMax:     rng.Intn(12),
			Urgency:         pick(rng, []string{"low", "urgent", ""}),
			CompanyVerified: &verified,
		}

		first := s.Score(team, opp)
		if first.Total < 0 || first.Total > 100 {
			t.Fatalf("total 越界: %d", first.Total)
		}
		for f, v := range first.Breakdown {
			if v < 0 || v > 100 {
				t.Fatalf("%s 子分越界: %d", f, v)
			}
		}

		shuffled := team
		shuffled.Skills = reversed(team.Skills)
		opp2 := opp
		opp2.RequiredSkills = reversed(opp.RequiredSkills)
		second := s.Score(shuffled, opp2)
		if first.Total != second.Total {
			t.Fatalf("技能顺序影响了总分: %d != %d", first.Total, second.Total)
		}
	}
}

func TestParseWeights(t *testing.T) {
	w, err := ParseWeights(map[string]float64{"skills": 30, "company_quality": 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w[FactorCompanyQuality] != 10 {
		t.Errorf("期望 companyQuality=10，实际 %v", w[FactorCompanyQuality])
	}
	if _, err := ParseWeights(map[string]float64{"vibes": 1}); err == nil {
		t.Error("期望未知因子报错")
	}
	if _, err := ParseWeights(map[string]float64{"skills": -1}); err == nil {
		t.Error("期望负权重报错")
	}
	if _, err := ParseWeights(map[string]float64{"skills": 0, "industry": 0}); err == nil {
		t.Error("期望全零权重报错")
	}
}

// ── helpers ──

func pick(rng *rand.Rand, items []string) string {
	return items[rng.Intn(len(items))]
}

func sample(rng *rand.Rand, pool []string) []string {
	n := rng.Intn(len(pool))
	out := make([]string, 0, n)
	for _, i := range rng.Perm(len(pool))[:n] {
		out = append(out, pool[i])
	}
	return out
}

func reversed(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[len(in)-1-i] = s
	}
	return out
}
