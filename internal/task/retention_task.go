package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"store_rating_v1_202608/internal/repository"
	"store_rating_v1_202608/pkg/utils"
)

// RetentionTask 后台维护任务
// 1. 每小时输出一次评分活跃度统计，并清理过期的 Token 黑名单条目
// 2. 每天凌晨 3 点按保留期清理评分审计日志
type RetentionTask struct {
	RatingRepo repository.RatingRepository
	AuditRepo  repository.RatingAuditLogRepository
	Cron       *cron.Cron

	auditRetention time.Duration // 审计日志保留期
}

// NewRetentionTask 创建维护任务
func NewRetentionTask(ratingRepo repository.RatingRepository, auditRepo repository.RatingAuditLogRepository) *RetentionTask {
	return &RetentionTask{
		RatingRepo:     ratingRepo,
		AuditRepo:      auditRepo,
		Cron:           cron.New(cron.WithSeconds()), // 支持秒级控制
		auditRetention: 90 * 24 * time.Hour,
	}
}

// Start 启动定时任务
func (t *RetentionTask) Start() {
	// 每小时整点：活跃度统计 + 黑名单清扫
	_, err := t.Cron.AddFunc("0 0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.statsJob(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动评分统计任务: %v", err)
	}

	// 每天 03:00：审计日志清理
	_, err = t.Cron.AddFunc("0 0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		t.purgeJob(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动审计日志清理任务: %v", err)
	}

	t.Cron.Start()
	log.Println("后台维护任务已启动 (统计每小时 / 审计清理每日 03:00)")
}

// Stop 停止定时任务
func (t *RetentionTask) Stop() {
	t.Cron.Stop()
}

// statsJob 评分活跃度统计 + 黑名单清扫
func (t *RetentionTask) statsJob(ctx context.Context) {
	count, err := t.RatingRepo.CountSince(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		log.Printf("[Cron] 评分活跃度统计失败: %v", err)
	} else {
		log.Printf("[Cron] 最近一小时评分提交/更新 %d 次", count)
	}

	if purged := utils.PurgeExpired(); purged > 0 {
		log.Printf("[Cron] 清理过期黑名单条目 %d 条", purged)
	}
}

// purgeJob 审计日志按保留期清理
func (t *RetentionTask) purgeJob(ctx context.Context) {
	before := time.Now().Add(-t.auditRetention)
	deleted, err := t.AuditRepo.DeleteBefore(ctx, before)
	if err != nil {
		log.Printf("[Cron] 审计日志清理失败: %v", err)
		return
	}
	log.Printf("[Cron] 审计日志清理完成，删除 %d 条 (%s 之前)", deleted, before.Format(time.DateOnly))
}
