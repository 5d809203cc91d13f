package matching

import (
	"strings"
)

// 数据缺失时的中性分
const neutralScore = 50.0

// ── 单因子评分（0–100，纯函数） ──

// SkillsScore 技能匹配：每个必需技能与团队技能做大小写不敏感的双向子串包含判断，
// 得分 = 命中数 / 必需数 × 100。没有必需技能时返回中性分 50。
func SkillsScore(required, teamSkills []string) float64 {
	req := cleanList(required)
	if len(req) == 0 {
		return neutralScore
	}
	have := cleanList(teamSkills)

	matched := 0
	for _, r := range req {
		for _, t := range have {
			if strings.Contains(t, r) || strings.Contains(r, t) {
				matched++
				break
			}
		}
	}
	return clamp(float64(matched) / float64(len(req)) * 100)
}

// IndustryScore 行业匹配：完全相同 100，子串包含 70，否则 40
func IndustryScore(teamIndustry, oppIndustry string) float64 {
	a := normalize(teamIndustry)
	b := normalize(oppIndustry)
	if a == "" || b == "" {
		return neutralScore
	}
	switch {
	case a == b:
		return 100
	case strings.Contains(a, b) || strings.Contains(b, a):
		return 70
	default:
		return 40
	}
}

// LocationScore 地点匹配
func LocationScore(teamLocation, oppLocation string, remote, openToRelocation bool) float64 {
	if remote || normalize(oppLocation) == "remote" {
		return 100
	}
	a := normalize(teamLocation)
	b := normalize(oppLocation)
	if a == "" || b == "" {
		return neutralScore
	}
	if a == b {
		return 100
	}

	ta := splitLocation(a)
	tb := splitLocation(b)
	if ta[0] == tb[0] {
		return 100
	}
	for _, x := range ta {
		for _, y := range tb {
			if x == y {
				return 70
			}
		}
	}
	if openToRelocation {
		return 60
	}
	return 30
}

// SizeScore 团队规模匹配；区间任一端为 0 表示该端不设限
func SizeScore(teamSize, minSize, maxSize int) float64 {
	if teamSize <= 0 {
		return neutralScore
	}
	if minSize <= 0 && maxSize <= 0 {
		return neutralScore
	}

	var distance int
	switch {
	case minSize > 0 && teamSize < minSize:
		distance = minSize - teamSize
	case maxSize > 0 && teamSize > maxSize:
		distance = teamSize - maxSize
	default:
		return 100
	}
	return clamp(100 - 20*float64(distance))
}

// CompensationScore 薪酬区间匹配
func CompensationScore(teamMin, teamMax, oppMin, oppMax int64) float64 {
	tMin, tMax, okT := normalizeRange(teamMin, teamMax)
	oMin, oMax, okO := normalizeRange(oppMin, oppMax)
	if !okT || !okO {
		return neutralScore
	}

	if oMin > tMax {
		return 100
	}
	if oMax < tMin {
		relGap := float64(tMin-oMax) / float64(tMin)
		return clamp(60 * (1 - 2*relGap))
	}

	width := tMax - tMin
	if width == 0 {
		return 100
	}
	overlap := min(tMax, oMax) - max(tMin, oMin)
	return clamp(70 + 30*float64(overlap)/float64(width))
}

// ExperienceScore 团队共事年限
func ExperienceScore(yearsTogether float64) float64 {
	switch {
	case yearsTogether >= 5:
		return 100
	case yearsTogether >= 3:
		return 85
	case yearsTogether >= 1:
		return 65
	case yearsTogether > 0:
		return 45
	default:
		return neutralScore
	}
}

// AvailabilityScore 团队到岗时间
func AvailabilityScore(availability string) float64 {
	switch normalize(availability) {
	case "immediate":
		return 100
	case "within_month":
		return 80
	case "within_quarter":
		return 60
	case "not_looking":
		return 20
	default:
		return neutralScore
	}
}

// UrgencyScore 机会紧急程度
func UrgencyScore(urgency string) float64 {
	switch normalize(urgency) {
	case "urgent":
		return 100
	case "high":
		return 85
	case "medium":
		return 70
	case "low":
		return 50
	default:
		return neutralScore
	}
}

// CompanyQualityScore 公司认证状态；nil 表示未知
func CompanyQualityScore(verified *bool) float64 {
	if verified == nil {
		return neutralScore
	}
	if *verified {
		return 100
	}
	return 60
}

// ── 工具函数 ──

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// cleanList 小写化并去除空项
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if n := normalize(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func splitLocation(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{s}
	}
	return out
}

// normalizeRange 处理只填一端的区间；两端都为 0 视为缺失
func normalizeRange(lo, hi int64) (int64, int64, bool) {
	if lo <= 0 && hi <= 0 {
		return 0, 0, false
	}
	if lo <= 0 {
		lo = hi
	}
	if hi <= 0 {
		hi = lo
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi, true
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
