package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ezhulati/liftout-platform-sub008/internal/model"
	pkgerrors "github.com/ezhulati/liftout-platform-sub008/pkg/errors"
)

// ── 邀请令牌的条件更新 ──
//
// team_members 与 company_users 共用同一组邀请列。
// 消费与拒绝均为单条带谓词的 SQL，由 RowsAffected 判定是否命中，
// 并发请求中至多一个成功。
// 同一组织下每个邮箱至多一条 pending、每个用户至多一条 active，由部分唯一索引保证，
// 冲突时返回 gorm.ErrDuplicatedKey。
//
// 过期判定与 model.MembershipInvite.IsExpired 一致：now 等于过期时间时仍有效。

const pendingInvitePredicate = "invite_token = ? AND status = ? AND invite_expires_at >= ?"

// consumeInvite 接受邀请：pending 且未过期 → active，并清空令牌
func consumeInvite(ctx context.Context, db *gorm.DB, table interface{}, token, userID string, now time.Time) error {
	result := db.WithContext(ctx).
		Model(table).
		Where(pendingInvitePredicate, token, model.MemberStatusPending, now).
		Updates(map[string]interface{}{
			"status":       model.MemberStatusActive,
			"user_id":      userID,
			"joined_at":    now,
			"responded_at": now,
			"invite_token": nil,
			"updated_at":   now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrTokenConsumed
	}
	return nil
}

// declineInvite 拒绝邀请：retain=false 删除整行，retain=true 置为 declined 并清空令牌
func declineInvite(ctx context.Context, db *gorm.DB, table interface{}, token string, retain bool, now time.Time) error {
	q := db.WithContext(ctx).Where(pendingInvitePredicate, token, model.MemberStatusPending, now)

	var result *gorm.DB
	if retain {
		result = q.Model(table).Updates(map[string]interface{}{
			"status":       model.MemberStatusDeclined,
			"responded_at": now,
			"invite_token": nil,
			"updated_at":   now,
		})
	} else {
		result = q.Delete(table)
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrTokenConsumed
	}
	return nil
}

// hasPendingInvite 同一组织下该邮箱是否已有未过期的待处理邀请
func hasPendingInvite(ctx context.Context, db *gorm.DB, table interface{}, ownerColumn, ownerID, email string, now time.Time) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(table).
		Where(ownerColumn+" = ? AND invite_email = ? AND status = ? AND invite_token IS NOT NULL AND invite_expires_at >= ?",
			ownerID, model.NormalizeEmail(email), model.MemberStatusPending, now).
		Count(&count).Error
	return count > 0, err
}

// clearExpiredInvites 删除该邮箱已过期的 pending 邀请，为重新邀请腾出唯一索引
func clearExpiredInvites(ctx context.Context, db *gorm.DB, table interface{}, ownerColumn, ownerID, email string, now time.Time) error {
	return db.WithContext(ctx).
		Where(ownerColumn+" = ? AND invite_email = ? AND status = ? AND invite_expires_at < ?",
			ownerID, model.NormalizeEmail(email), model.MemberStatusPending, now).
		Delete(table).Error
}
