// Package seed 演示数据：仅在 SQLite 数据源且开启 feature.seed_demo_data 时加载。
package seed

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ezhulati/liftout-platform-sub008/internal/auth"
	"github.com/ezhulati/liftout-platform-sub008/internal/dto"
	"github.com/ezhulati/liftout-platform-sub008/internal/model"
	"github.com/ezhulati/liftout-platform-sub008/internal/repository"
	"github.com/ezhulati/liftout-platform-sub008/internal/service"
)

// 演示账号
const (
	AdminEmail      = "admin@liftout.com"
	CompanyEmail    = "demo@liftout.com"
	IndividualEmail = "alex.chen@liftout.com"
	DemoPassword    = "liftout-demo"
)

// Result 已创建的演示数据 ID
type Result struct {
	AdminID        string
	CompanyUserID  string
	IndividualID   string
	TeamIDs        []string
	OpportunityIDs []string
	ApplicationID  string
}

// Run 写入演示数据；管理员账号已存在时视为已加载，直接返回 nil, nil
func Run(ctx context.Context, repo *repository.Repository, svc *service.Service, logger *zap.Logger) (*Result, error) {
	if _, err := repo.User.GetByEmail(ctx, AdminEmail); err == nil {
		logger.Info("演示数据已存在，跳过加载")
		return nil, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("查询演示账号失败: %w", err)
	}

	res := &Result{}

	adminID, err := createAdmin(ctx, repo)
	if err != nil {
		return nil, err
	}
	res.AdminID = adminID

	company, err := register(ctx, svc, CompanyEmail, "Morgan Reyes", model.UserTypeCompany, "Meridian Capital")
	if err != nil {
		return nil, err
	}
	res.CompanyUserID = company.UserID

	lead, err := register(ctx, svc, IndividualEmail, "Alex Chen", model.UserTypeIndividual, "")
	if err != nil {
		return nil, err
	}
	res.IndividualID = lead.UserID

	// ────── 团队 ──────

	for _, req := range demoTeams() {
		team, err := svc.Team.Create(ctx, lead, req)
		if err != nil {
			return nil, fmt.Errorf("创建演示团队 %s 失败: %w", req.Name, err)
		}
		res.TeamIDs = append(res.TeamIDs, team.ID)
	}

	// ────── 招聘机会 ──────

	for _, req := range demoOpportunities() {
		opp, err := svc.Opportunity.Create(ctx, company, req)
		if err != nil {
			return nil, fmt.Errorf("创建演示机会 %s 失败: %w", req.Title, err)
		}
		res.OpportunityIDs = append(res.OpportunityIDs, opp.ID)
	}

	app, err := svc.Application.Create(ctx, lead, &dto.CreateApplicationRequest{
		TeamID:        res.TeamIDs[0],
		OpportunityID: res.OpportunityIDs[0],
		CoverLetter:   "We have shipped risk models together for four years and would like to move as a unit.",
	})
	if err != nil {
		return nil, fmt.Errorf("创建演示申请失败: %w", err)
	}
	res.ApplicationID = app.ID

	logger.Info("演示数据加载完成",
		zap.Int("teams", len(res.TeamIDs)),
		zap.Int("opportunities", len(res.OpportunityIDs)),
	)
	return res, nil
}

// createAdmin 管理员无法通过注册接口创建，直接写库
func createAdmin(ctx context.Context, repo *repository.Repository) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("生成密码哈希失败: %w", err)
	}
	admin := &model.User{
		Email:        AdminEmail,
		Name:         "Platform Admin",
		PasswordHash: string(hash),
		UserType:     model.UserTypeAdmin,
	}
	if err := repo.User.Create(ctx, admin); err != nil {
		return "", fmt.Errorf("创建管理员失败: %w", err)
	}
	return admin.UserID, nil
}

func register(ctx context.Context, svc *service.Service, email, name, userType, companyName string) (*auth.Principal, error) {
	resp, err := svc.Auth.Register(ctx, &dto.RegisterRequest{
		Email:       email,
		Password:    DemoPassword,
		Name:        name,
		UserType:    userType,
		CompanyName: companyName,
	})
	if err != nil {
		return nil, fmt.Errorf("注册演示账号 %s 失败: %w", email, err)
	}
	return &auth.Principal{UserID: resp.User.ID, Email: resp.User.Email, UserType: resp.User.UserType}, nil
}

func demoTeams() []*dto.CreateTeamRequest {
	return []*dto.CreateTeamRequest{
		{
			Name:             "Quant Risk Analytics",
			Description:      "Market and credit risk modelling team from a tier-one investment bank.",
			Industry:         "Finance",
			Specialization:   "Risk modelling",
			Location:         "New York, NY",
			Size:             5,
			Skills:           []string{"Python", "SQL", "Machine Learning", "Risk Modeling", "Statistics"},
			CompensationMin:  180000,
			CompensationMax:  240000,
			YearsTogether:    4,
			Availability:     model.AvailabilityWithinMonth,
			OpenToRelocation: false,
		},
		{
			Name:             "Clinical Data Platform",
			Description:      "Data engineering group that built an EHR ingestion platform.",
			Industry:         "Healthcare",
			Specialization:   "Data engineering",
			Location:         "Boston, MA",
			Size:             4,
			Skills:           []string{"Go", "Kubernetes", "PostgreSQL", "HL7", "AWS"},
			CompensationMin:  150000,
			CompensationMax:  200000,
			YearsTogether:    2.5,
			Availability:     model.AvailabilityWithinQuarter,
			OpenToRelocation: true,
		},
	}
}

func demoOpportunities() []*dto.CreateOpportunityRequest {
	return []*dto.CreateOpportunityRequest{
		{
			Title:           "Systematic Trading Risk Team",
			Description:     "Build the risk stack for a new systematic trading desk.",
			Industry:        "Finance",
			Location:        "New York, NY",
			CompensationMin: 170000,
			CompensationMax: 250000,
			RequiredSkills:  []string{"Python", "Risk Modeling", "SQL"},
			PreferredSkills: []string{"Machine Learning", "C++"},
			TeamSizeMin:     3,
			TeamSizeMax:     6,
			Urgency:         model.UrgencyHigh,
		},
		{
			Title:           "Healthcare Data Infrastructure",
			Description:     "Own the clinical data platform for a portfolio of hospitals.",
			Industry:        "Healthcare",
			Location:        "Remote",
			Remote:          true,
			CompensationMin: 140000,
			CompensationMax: 190000,
			RequiredSkills:  []string{"Go", "PostgreSQL", "AWS"},
			TeamSizeMin:     3,
			TeamSizeMax:     8,
			Urgency:         model.UrgencyMedium,
		},
	}
}
