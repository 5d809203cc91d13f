package service

import (
	"github.com/ezhulati/liftout-platform-sub008/internal/dto"
	"github.com/ezhulati/liftout-platform-sub008/internal/matching"
	"github.com/ezhulati/liftout-platform-sub008/internal/model"
)

// ── model → dto ──

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.UserID,
		Email:     u.Email,
		Name:      u.Name,
		UserType:  u.UserType,
		Suspended: u.Suspended,
		CreatedAt: formatTime(u.CreatedAt),
	}
}

func toCompanyResponse(c *model.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:          c.CompanyID,
		Name:        c.Name,
		Industry:    c.Industry,
		Location:    c.Location,
		Description: c.Description,
		Verified:    c.Verified,
	}
}

func toTeamResponse(t *model.Team) dto.TeamResponse {
	return dto.TeamResponse{
		ID:               t.TeamID,
		Name:             t.Name,
		Description:      t.Description,
		Industry:         t.Industry,
		Specialization:   t.Specialization,
		Location:         t.Location,
		Size:             teamSize(t),
		Skills:           nonNil(t.Skills),
		EffectiveSkills:  t.EffectiveSkills(),
		CompensationMin:  t.CompensationMin,
		CompensationMax:  t.CompensationMax,
		YearsTogether:    t.YearsTogether,
		Availability:     t.Availability,
		OpenToRelocation: t.OpenToRelocation,
		Visible:          t.Visible,
		MemberCount:      t.ActiveMemberCount(),
		CreatedBy:        t.CreatedBy,
		CreatedAt:        formatTime(t.CreatedAt),
	}
}

func toTeamMemberResponse(m *model.TeamMember) dto.TeamMemberResponse {
	resp := dto.TeamMemberResponse{
		ID:       m.TeamMemberID,
		Role:     m.Role,
		Title:    m.Title,
		Skills:   nonNil(m.Skills),
		JoinedAt: formatTimePtr(m.JoinedAt),
	}
	if m.UserID != nil {
		resp.UserID = *m.UserID
	}
	if m.User != nil {
		resp.Name = m.User.Name
		resp.Email = m.User.Email
	}
	return resp
}

func toOpportunityResponse(o *model.Opportunity) dto.OpportunityResponse {
	return dto.OpportunityResponse{
		ID:              o.OpportunityID,
		Title:           o.Title,
		Description:     o.Description,
		Industry:        o.Industry,
		Location:        o.Location,
		Remote:          o.Remote,
		CompensationMin: o.CompensationMin,
		CompensationMax: o.CompensationMax,
		RequiredSkills:  nonNil(o.RequiredSkills),
		PreferredSkills: nonNil(o.PreferredSkills),
		TeamSizeMin:     o.TeamSizeMin,
		TeamSizeMax:     o.TeamSizeMax,
		Urgency:         o.Urgency,
		Status:          o.Status,
		Company:         toCompanyResponse(o.Company),
		CreatedAt:       formatTime(o.CreatedAt),
	}
}

func toApplicationResponse(a *model.TeamApplication) dto.ApplicationResponse {
	resp := dto.ApplicationResponse{
		ID:                a.ApplicationID,
		TeamID:            a.TeamID,
		OpportunityID:     a.OpportunityID,
		Status:            a.Status,
		CoverLetter:       a.CoverLetter,
		OfferCompensation: a.OfferCompensation,
		OfferMessage:      a.OfferMessage,
		OfferMadeAt:       formatTimePtr(a.OfferMadeAt),
		RespondedAt:       formatTimePtr(a.RespondedAt),
		CreatedAt:         formatTime(a.CreatedAt),
	}
	if a.OfferStartDate != nil {
		resp.OfferStartDate = a.OfferStartDate.Format(dateLayout)
	}
	if a.Team != nil {
		resp.TeamName = a.Team.Name
	}
	if a.Opportunity != nil {
		resp.OpportunityTitle = a.Opportunity.Title
		if a.Opportunity.Company != nil {
			resp.CompanyName = a.Opportunity.Company.Name
		}
	}
	return resp
}

func toInterviewResponse(iv *model.Interview) dto.InterviewResponse {
	return dto.InterviewResponse{
		ID:              iv.InterviewID,
		ApplicationID:   iv.ApplicationID,
		ScheduledAt:     formatTime(iv.ScheduledAt),
		EndsAt:          formatTime(iv.EndsAt()),
		DurationMinutes: iv.DurationMinutes,
		Location:        iv.Location,
		MeetingURL:      iv.MeetingURL,
		Notes:           iv.Notes,
		Attendees:       nonNil(iv.Attendees),
		CreatedAt:       formatTime(iv.CreatedAt),
	}
}

func toMatchScoreResponse(s matching.MatchScore) dto.MatchScoreResponse {
	breakdown := make(map[string]int, len(s.Breakdown))
	for f, v := range s.Breakdown {
		breakdown[string(f)] = v
	}
	return dto.MatchScoreResponse{
		Total:          s.Total,
		Breakdown:      breakdown,
		Recommendation: string(s.Recommendation),
		Strengths:      nonNil(s.Strengths),
		Concerns:       nonNil(s.Concerns),
	}
}

// ── model → matching profile ──

// teamSize 未填写规模时以活跃成员数代替
func teamSize(t *model.Team) int {
	if t.Size > 0 {
		return t.Size
	}
	return t.ActiveMemberCount()
}

func teamProfile(t *model.Team) matching.TeamProfile {
	return matching.TeamProfile{
		Name:             t.Name,
		Industry:         t.Industry,
		Location:         t.Location,
		Size:             teamSize(t),
		Skills:           t.EffectiveSkills(),
		CompensationMin:  t.CompensationMin,
		CompensationMax:  t.CompensationMax,
		YearsTogether:    t.YearsTogether,
		Availability:     t.Availability,
		OpenToRelocation: t.OpenToRelocation,
	}
}

func opportunityProfile(o *model.Opportunity) matching.OpportunityProfile {
	p := matching.OpportunityProfile{
		Title:           o.Title,
		Industry:        o.Industry,
		Location:        o.Location,
		Remote:          o.Remote,
		CompensationMin: o.CompensationMin,
		CompensationMax: o.CompensationMax,
		RequiredSkills:  o.RequiredSkills,
		TeamSizeMin:     o.TeamSizeMin,
		TeamSizeMax:     o.TeamSizeMax,
		Urgency:         o.Urgency,
	}
	if o.Company != nil {
		verified := o.Company.Verified
		p.CompanyVerified = &verified
	}
	return p
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
