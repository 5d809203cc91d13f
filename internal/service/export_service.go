package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ezhulati/liftout-platform-sub008/internal/auth"
	"github.com/ezhulati/liftout-platform-sub008/internal/matching"
	"github.com/ezhulati/liftout-platform-sub008/internal/repository"
)

// ErrExportGenerateFail 生成 Excel 失败
var ErrExportGenerateFail = errors.New("Failed to generate export file")

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 设置响应头后写入。
type ExportService interface {
	// ExportApplications 导出机会的全部申请（含匹配分）为 Excel
	ExportApplications(ctx context.Context, p *auth.Principal, opportunityID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	scorer *matching.Scorer
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, scorer *matching.Scorer, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, scorer: scorer, logger: logger}
}

var exportHeaders = []string{"Team", "Members", "Status", "Match", "Recommendation", "Submitted"}

// ────────────────────── ExportApplications ──────────────────────
//
// 单个 Sheet "Applications"：
//   - 第 1 行：机会标题（合并单元格）
//   - 第 2 行：表头
//   - 第 3 行起：每个申请一行

func (s *exportService) ExportApplications(ctx context.Context, p *auth.Principal, opportunityID string) (*bytes.Buffer, string, error) {
	opp, err := s.repo.Opportunity.GetByID(ctx, opportunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrOpportunityNotFound
		}
		s.logger.Error("查询机会失败", zap.String("opportunity_id", opportunityID), zap.Error(err))
		return nil, "", err
	}
	if err := requireCompanyMember(ctx, s.repo, p, opp.CompanyID); err != nil {
		return nil, "", err
	}

	apps, err := s.repo.Application.ListByOpportunity(ctx, opportunityID)
	if err != nil {
		s.logger.Error("查询申请列表失败", zap.String("opportunity_id", opportunityID), zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Applications"
	idx, _ := f.NewSheet(sheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheet, "A", "A", 32)
	f.SetColWidth(sheet, "B", "B", 10)
	f.SetColWidth(sheet, "C", "C", 14)
	f.SetColWidth(sheet, "D", "D", 8)
	f.SetColWidth(sheet, "E", "E", 16)
	f.SetColWidth(sheet, "F", "F", 22)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheet, "A1", opp.Title+" - Applications")
	f.MergeCell(sheet, "A1", cell(colName(len(exportHeaders)-1), 1))
	f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	for i, h := range exportHeaders {
		f.SetCellValue(sheet, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheet, "A2", cell(colName(len(exportHeaders)-1), 2), headerStyle)

	oppProfile := opportunityProfile(opp)
	row := 3
	for i := range apps {
		app := &apps[i]
		teamName, members := "-", 0
		var score matching.MatchScore
		if app.Team != nil {
			teamName = app.Team.Name
			members = app.Team.ActiveMemberCount()
			score = s.scorer.Score(teamProfile(app.Team), oppProfile)
		}

		f.SetCellValue(sheet, cell("A", row), teamName)
		f.SetCellValue(sheet, cell("B", row), members)
		f.SetCellValue(sheet, cell("C", row), app.Status)
		f.SetCellValue(sheet, cell("D", row), score.Total)
		f.SetCellValue(sheet, cell("E", row), string(score.Recommendation))
		f.SetCellValue(sheet, cell("F", row), formatTime(app.CreatedAt))
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, fmt.Sprintf("applications_%s.xlsx", fileSafe(opp.Title)), nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// fileSafe 文件名只保留字母数字、下划线与连字符
func fileSafe(s string) string {
	s = strings.Trim(unsafeFileChars.ReplaceAllString(s, "_"), "_")
	if s == "" {
		return "export"
	}
	return s
}
