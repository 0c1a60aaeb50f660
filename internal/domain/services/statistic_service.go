package services

import (
	"time"

	"bluemoon-fee-service/internal/domain/models"
	"bluemoon-fee-service/internal/domain/reconcile"
	"bluemoon-fee-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// DashboardCounts 仪表盘基础计数
type DashboardCounts struct {
	Households int64 `json:"households"`
	Residents  int64 `json:"residents"`
	Fees       int64 `json:"fees"`
	Payments   int64 `json:"payments"`
}

// MonthlyRevenue 单月收入
type MonthlyRevenue struct {
	Month   string  `json:"month"` // YYYY-MM
	Revenue float64 `json:"revenue"`
}

// DashboardFinancials 仪表盘财务统计
type DashboardFinancials struct {
	MonthlyRevenue float64                 `json:"monthly_revenue"`
	MonthlyTrend   []MonthlyRevenue        `json:"monthly_trend"`
	StatusSummary  reconcile.StatusSummary `json:"status_summary"`
	RevenueByFee   map[string]float64      `json:"revenue_by_fee"`
}

// DashboardStats 仪表盘聚合数据
type DashboardStats struct {
	Counts         DashboardCounts     `json:"counts"`
	Financials     DashboardFinancials `json:"financials"`
	RecentPayments []models.Payment    `json:"recent_payments"`
}

// InterfaceStatisticService defines the statistic service interface
type InterfaceStatisticService interface {
	GetDashboardStats() (*DashboardStats, error)
}

// StatisticService 提供仪表盘统计服务
type StatisticService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService
}

// NewStatisticService 创建一个新的统计服务
func NewStatisticService(db *gorm.DB, cfg *config.Config, redisService InterfaceRedisService) InterfaceStatisticService {
	return &StatisticService{
		DB:     db,
		Config: cfg,
		Redis:  redisService,
	}
}

// GetDashboardStats 聚合仪表盘数据。
// 结果缓存1分钟，缴费写入时失效。
func (s *StatisticService) GetDashboardStats() (*DashboardStats, error) {
	if s.Redis != nil {
		var cached DashboardStats
		if err := s.Redis.GetDashboard(&cached); err == nil {
			return &cached, nil
		}
	}

	stats := &DashboardStats{}
	now := time.Now()

	// 基础计数
	if err := s.DB.Model(&models.Household{}).Where("active = ?", true).Count(&stats.Counts.Households).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Resident{}).Count(&stats.Counts.Residents).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Fee{}).Where("active = ?", true).Count(&stats.Counts.Fees).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Payment{}).Count(&stats.Counts.Payments).Error; err != nil {
		return nil, err
	}

	// 近6个月收入走势（含当月）
	trendStart := reconcile.Normalize(now).AddDate(0, -5, 0)
	var trendPayments []models.Payment
	if err := s.DB.
		Where("status = ? AND payment_date >= ?", models.PaymentStatusPaid, trendStart).
		Find(&trendPayments).Error; err != nil {
		return nil, err
	}

	byMonth := make(map[string]float64)
	for i := range trendPayments {
		key := reconcile.Normalize(trendPayments[i].PaymentDate).Format("2006-01")
		byMonth[key] += trendPayments[i].Amount
	}
	trend := make([]MonthlyRevenue, 0, 6)
	for i := 0; i < 6; i++ {
		month := trendStart.AddDate(0, i, 0).Format("2006-01")
		trend = append(trend, MonthlyRevenue{Month: month, Revenue: byMonth[month]})
	}
	stats.Financials.MonthlyTrend = trend
	stats.Financials.MonthlyRevenue = byMonth[reconcile.Normalize(now).Format("2006-01")]

	// 状态分布与收入构成
	var allPayments []models.Payment
	if err := s.DB.Preload("Fee").Find(&allPayments).Error; err != nil {
		return nil, err
	}
	stats.Financials.StatusSummary = reconcile.SummarizeStatus(allPayments, now, false)
	stats.Financials.RevenueByFee = reconcile.SummarizeFeeRevenue(allPayments, now, false)

	// 最近5笔缴费
	if err := s.DB.Preload("Fee").Preload("Household").
		Order("payment_date DESC").Limit(5).
		Find(&stats.RecentPayments).Error; err != nil {
		return nil, err
	}

	if s.Redis != nil {
		_ = s.Redis.CacheDashboard(stats, time.Minute)
	}
	return stats, nil
}
