package matching

import (
	"fmt"
	"strings"
)

// Factor 评分因子名称，同时作为 breakdown 的 JSON key
type Factor string

const (
	FactorSkills         Factor = "skills"
	FactorIndustry       Factor = "industry"
	FactorCompensation   Factor = "compensation"
	FactorSize           Factor = "size"
	FactorLocation       Factor = "location"
	FactorExperience     Factor = "experience"
	FactorAvailability   Factor = "availability"
	FactorUrgency        Factor = "urgency"
	FactorCompanyQuality Factor = "companyQuality"
)

// factorOrder 固定输出顺序（strengths / concerns 按此顺序生成）
var factorOrder = []Factor{
	FactorSkills,
	FactorIndustry,
	FactorCompensation,
	FactorSize,
	FactorLocation,
	FactorExperience,
	FactorAvailability,
	FactorUrgency,
	FactorCompanyQuality,
}

// Factors 返回全部已知因子（按固定顺序）
func Factors() []Factor {
	out := make([]Factor, len(factorOrder))
	copy(out, factorOrder)
	return out
}

// Weights 因子权重；未出现或为 0 的因子不参与聚合
type Weights map[Factor]float64

// Thresholds 推荐档位阈值（total >= 阈值即命中该档）
type Thresholds struct {
	Excellent int
	Good      int
	Fair      int
}

// Config 评分器配置
type Config struct {
	Weights    Weights
	Thresholds Thresholds
}

// DefaultThresholds 默认档位：85 / 70 / 55
func DefaultThresholds() Thresholds {
	return Thresholds{Excellent: 85, Good: 70, Fair: 55}
}

// DefaultTeamWeights 为机会挑选团队时的默认权重（合计 100）
func DefaultTeamWeights() Weights {
	return Weights{
		FactorSkills:       30,
		FactorIndustry:     20,
		FactorCompensation: 15,
		FactorSize:         10,
		FactorLocation:     10,
		FactorExperience:   10,
		FactorAvailability: 5,
	}
}

// DefaultOpportunityWeights 为团队挑选机会时的默认权重（合计 100）
func DefaultOpportunityWeights() Weights {
	return Weights{
		FactorSkills:         30,
		FactorIndustry:       20,
		FactorCompensation:   15,
		FactorSize:           10,
		FactorLocation:       10,
		FactorUrgency:        5,
		FactorCompanyQuality: 10,
	}
}

// ParseWeights 将配置文件中的 map 转为 Weights。
// key 大小写、下划线、连字符不敏感：company_quality / companyQuality 等价。
func ParseWeights(raw map[string]float64) (Weights, error) {
	w := make(Weights, len(raw))
	for key, value := range raw {
		f, ok := lookupFactor(key)
		if !ok {
			return nil, fmt.Errorf("unknown matching factor %q", key)
		}
		if value < 0 {
			return nil, fmt.Errorf("matching factor %q has negative weight", key)
		}
		w[f] = value
	}
	if w.Sum() <= 0 {
		return nil, fmt.Errorf("matching weights need at least one positive factor")
	}
	return w, nil
}

func lookupFactor(key string) (Factor, bool) {
	norm := normalizeKey(key)
	for _, f := range factorOrder {
		if normalizeKey(string(f)) == norm {
			return f, true
		}
	}
	return "", false
}

func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "")
	return strings.ReplaceAll(s, "-", "")
}

// Sum 权重合计
func (w Weights) Sum() float64 {
	var sum float64
	for _, v := range w {
		if v > 0 {
			sum += v
		}
	}
	return sum
}
