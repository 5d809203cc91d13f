package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ezhulati/liftout-platform-sub008/internal/auth"
	"github.com/ezhulati/liftout-platform-sub008/internal/dto"
	"github.com/ezhulati/liftout-platform-sub008/internal/repository"
)

// CompanyService 公司业务接口
type CompanyService interface {
	GetMine(ctx context.Context, p *auth.Principal) (*dto.CompanyResponse, error)
	UpdateMine(ctx context.Context, p *auth.Principal, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error)
	ListMembers(ctx context.Context, p *auth.Principal) ([]dto.CompanyMemberResponse, error)
}

type companyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCompanyService 创建 CompanyService 实例
func NewCompanyService(repo *repository.Repository, logger *zap.Logger) CompanyService {
	return &companyService{repo: repo, logger: logger}
}

func (s *companyService) GetMine(ctx context.Context, p *auth.Principal) (*dto.CompanyResponse, error) {
	cu, err := callerCompany(ctx, s.repo, p)
	if err != nil {
		return nil, err
	}
	if cu.Company == nil {
		return nil, ErrCompanyNotFound
	}
	resp := toCompanyResponse(cu.Company)
	resp.Role = cu.Role
	return resp, nil
}

func (s *companyService) UpdateMine(ctx context.Context, p *auth.Principal, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	cu, err := callerCompany(ctx, s.repo, p)
	if err != nil {
		return nil, err
	}
	if !cu.CanManage() {
		return nil, ErrForbidden
	}
	company := cu.Company
	if company == nil {
		return nil, ErrCompanyNotFound
	}

	if req.Name != nil {
		company.Name = strings.TrimSpace(*req.Name)
	}
	if req.Industry != nil {
		company.Industry = strings.TrimSpace(*req.Industry)
	}
	if req.Location != nil {
		company.Location = strings.TrimSpace(*req.Location)
	}
	if req.Description != nil {
		company.Description = *req.Description
	}

	if err := s.repo.Company.Update(ctx, company); err != nil {
		s.logger.Error("更新公司资料失败", zap.String("company_id", company.CompanyID), zap.Error(err))
		return nil, err
	}

	resp := toCompanyResponse(company)
	resp.Role = cu.Role
	return resp, nil
}

func (s *companyService) ListMembers(ctx context.Context, p *auth.Principal) ([]dto.CompanyMemberResponse, error) {
	cu, err := callerCompany(ctx, s.repo, p)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.CompanyUser.ListActive(ctx, cu.CompanyID)
	if err != nil {
		s.logger.Error("查询公司成员失败", zap.String("company_id", cu.CompanyID), zap.Error(err))
		return nil, err
	}

	list := make([]dto.CompanyMemberResponse, 0, len(members))
	for _, m := range members {
		item := dto.CompanyMemberResponse{
			ID:       m.CompanyUserID,
			Role:     m.Role,
			JoinedAt: formatTimePtr(m.JoinedAt),
		}
		if m.UserID != nil {
			item.UserID = *m.UserID
		}
		if m.User != nil {
			item.Name = m.User.Name
			item.Email = m.User.Email
		}
		list = append(list, item)
	}
	return list, nil
}
