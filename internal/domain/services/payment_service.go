package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bluemoon-fee-service/internal/domain/models"
	"bluemoon-fee-service/internal/domain/reconcile"
	"bluemoon-fee-service/internal/infrastructure/config"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 服务层哨兵错误，控制器据此映射错误码
var (
	ErrDuplicatePayment = errors.New("该住户在此周期已缴纳该费用")
	ErrInvalidPeriod    = errors.New("无效的缴费周期格式")
	ErrPaymentRefunded  = errors.New("已退款的缴费记录不允许修改")
)

// PaymentSearchQuery 缴费记录查询条件
type PaymentSearchQuery struct {
	HouseholdID     uint    `form:"household_id"`
	FeeID           uint    `form:"fee_id"`
	ApartmentNumber string  `form:"apartment_number"` // 房号模糊匹配
	FeeName         string  `form:"fee_name"`         // 费用名称模糊匹配
	FeeType         string  `form:"fee_type"`
	Status          string  `form:"status"`
	Method          string  `form:"method"`
	Period          string  `form:"period"`     // YYYY-MM
	StartDate       string  `form:"start_date"` // 按收款日期过滤
	EndDate         string  `form:"end_date"`
	MinAmount       float64 `form:"min_amount"`
	MaxAmount       float64 `form:"max_amount"`
	PayerName       string  `form:"payer_name"`
	Keyword         string  `form:"keyword"` // 跨状态、方式、缴费人和收据号
	Page            int     `form:"page"`
	PageSize        int     `form:"page_size"`
}

// InterfacePaymentService defines the payment service interface
type InterfacePaymentService interface {
	GetAllPayments(page int, pageSize int) ([]models.Payment, int64, error)
	GetPaymentByID(id uint) (*models.Payment, error)
	CreatePayment(payment *models.Payment, periodStr string, collectorID uint) (*models.Payment, error)
	UpdatePayment(id uint, updates map[string]interface{}) (*models.Payment, error)
	RefundPayment(id uint, note string) (*models.Payment, error)
	DeletePayment(id uint) error
	SearchPayments(query *PaymentSearchQuery) ([]models.Payment, int64, error)
	GetHouseholdFeeStatus(householdID uint, periodStr string) ([]reconcile.FeeStatus, error)
	GetStatusSummary(currentMonthOnly bool) (reconcile.StatusSummary, error)
	GetRevenueSummary(currentMonthOnly bool) (map[string]float64, error)
}

// PaymentService 提供缴费相关的服务
type PaymentService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService
}

// NewPaymentService 创建一个新的缴费服务
func NewPaymentService(db *gorm.DB, cfg *config.Config, redisService InterfaceRedisService) InterfacePaymentService {
	return &PaymentService{
		DB:     db,
		Config: cfg,
		Redis:  redisService,
	}
}

// 1 GetAllPayments 获取所有缴费记录
func (s *PaymentService) GetAllPayments(page int, pageSize int) ([]models.Payment, int64, error) {
	var payments []models.Payment
	var total int64
	if err := s.DB.Model(&models.Payment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := s.DB.Preload("Fee").Preload("Household").Preload("Collector").
		Order("payment_date DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// 2 GetPaymentByID 根据ID获取缴费记录
func (s *PaymentService) GetPaymentByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := s.DB.Preload("Fee").Preload("Household").Preload("Collector").
		First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("缴费记录不存在")
		}
		return nil, err
	}
	return &payment, nil
}

// 3 CreatePayment 录入缴费。
// 周期字符串为空时默认当前自然月；金额为零时按费用项标准金额补齐；
// 同一 (费用项, 户号, 周期) 的重复录入先做区间预检查返回友好错误，
// 并发写入由联合唯一索引兜底，索引冲突同样映射为重复缴费错误。
func (s *PaymentService) CreatePayment(payment *models.Payment, periodStr string, collectorID uint) (*models.Payment, error) {
	// 解析并规范化缴费周期
	periodKey, err := reconcile.ParsePeriod(periodStr, time.Now())
	if err != nil {
		return nil, ErrInvalidPeriod
	}

	// 验证费用项
	var fee models.Fee
	if err := s.DB.First(&fee, payment.FeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("费用项不存在")
		}
		return nil, err
	}
	if !fee.Active {
		return nil, errors.New("费用项已停用")
	}

	// 验证住户
	var household models.Household
	if err := s.DB.First(&household, payment.HouseholdID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("住户不存在")
		}
		return nil, err
	}

	// 验证缴费方式
	if payment.Method != "" && !models.ValidPaymentMethods[payment.Method] {
		return nil, errors.New("无效的缴费方式")
	}

	// 重复缴费预检查
	start, end := reconcile.DuplicateInterval(periodKey)
	var count int64
	if err := s.DB.Model(&models.Payment{}).
		Where("fee_id = ? AND household_id = ? AND period >= ? AND period < ?",
			payment.FeeID, payment.HouseholdID, start, end).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicatePayment
	}

	payment.Period = &periodKey
	payment.CollectorID = collectorID
	payment.Status = models.PaymentStatusPaid
	if payment.Amount == 0 {
		payment.Amount = fee.Amount
	}
	if payment.Amount < 0 {
		return nil, errors.New("金额不能为负数")
	}
	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = time.Now()
	}
	if payment.ReceiptNo == "" {
		payment.ReceiptNo = generateReceiptNo()
	}

	if err := s.DB.Create(payment).Error; err != nil {
		// 并发录入撞上唯一索引
		if strings.Contains(err.Error(), "Duplicate entry") {
			return nil, ErrDuplicatePayment
		}
		return nil, err
	}

	s.invalidateCaches(payment.HouseholdID)
	return s.GetPaymentByID(payment.ID)
}

// 4 UpdatePayment 修正缴费记录。
// 只允许修改金额、收款日期、缴费方式、状态和备注；refunded 是终态。
func (s *PaymentService) UpdatePayment(id uint, updates map[string]interface{}) (*models.Payment, error) {
	payment, err := s.GetPaymentByID(id)
	if err != nil {
		return nil, err
	}

	if !reconcile.CanModify(payment.Status) {
		return nil, ErrPaymentRefunded
	}

	allowed := map[string]bool{
		"amount":       true,
		"payment_date": true,
		"method":       true,
		"status":       true,
		"note":         true,
	}
	filtered := make(map[string]interface{})
	for key, value := range updates {
		if allowed[key] {
			filtered[key] = value
		}
	}
	if len(filtered) == 0 {
		return nil, errors.New("没有可更新的字段")
	}

	if method, ok := filtered["method"].(string); ok && !models.ValidPaymentMethods[method] {
		return nil, errors.New("无效的缴费方式")
	}
	if amount, ok := filtered["amount"].(float64); ok && amount < 0 {
		return nil, errors.New("金额不能为负数")
	}

	if err := s.DB.Model(payment).Updates(filtered).Error; err != nil {
		return nil, err
	}

	s.invalidateCaches(payment.HouseholdID)
	return s.GetPaymentByID(id)
}

// 5 RefundPayment 标记退款。退款后记录进入终态。
func (s *PaymentService) RefundPayment(id uint, note string) (*models.Payment, error) {
	payment, err := s.GetPaymentByID(id)
	if err != nil {
		return nil, err
	}

	if payment.Status == models.PaymentStatusRefunded {
		return nil, ErrPaymentRefunded
	}

	updates := map[string]interface{}{"status": models.PaymentStatusRefunded}
	if note != "" {
		updates["note"] = note
	}
	if err := s.DB.Model(payment).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.invalidateCaches(payment.HouseholdID)
	return s.GetPaymentByID(id)
}

// 6 DeletePayment 删除缴费记录。已退款的记录不允许删除。
func (s *PaymentService) DeletePayment(id uint) error {
	payment, err := s.GetPaymentByID(id)
	if err != nil {
		return err
	}

	if !reconcile.CanModify(payment.Status) {
		return ErrPaymentRefunded
	}

	if err := s.DB.Delete(payment).Error; err != nil {
		return err
	}

	s.invalidateCaches(payment.HouseholdID)
	return nil
}

// 7 SearchPayments 按条件查询缴费记录
func (s *PaymentService) SearchPayments(query *PaymentSearchQuery) ([]models.Payment, int64, error) {
	db := s.DB.Model(&models.Payment{})

	if query.HouseholdID > 0 {
		db = db.Where("payments.household_id = ?", query.HouseholdID)
	}
	if query.FeeID > 0 {
		db = db.Where("payments.fee_id = ?", query.FeeID)
	}
	if query.ApartmentNumber != "" {
		db = db.Joins("JOIN households ON households.id = payments.household_id").
			Where("households.apartment_number LIKE ?", "%"+query.ApartmentNumber+"%")
	}
	if query.FeeName != "" || query.FeeType != "" {
		db = db.Joins("JOIN fees ON fees.id = payments.fee_id")
		if query.FeeName != "" {
			db = db.Where("fees.name LIKE ?", "%"+query.FeeName+"%")
		}
		if query.FeeType != "" {
			db = db.Where("fees.fee_type = ?", query.FeeType)
		}
	}
	if query.Status != "" {
		db = db.Where("payments.status = ?", query.Status)
	}
	if query.Method != "" {
		db = db.Where("payments.method = ?", query.Method)
	}
	if query.Period != "" {
		periodKey, err := reconcile.ParsePeriod(query.Period, time.Now())
		if err != nil {
			return nil, 0, ErrInvalidPeriod
		}
		start, end := reconcile.MonthInterval(periodKey)
		db = db.Where("payments.period >= ? AND payments.period < ?", start, end)
	}
	if query.StartDate != "" {
		if t, err := time.Parse("2006-01-02", query.StartDate); err == nil {
			db = db.Where("payments.payment_date >= ?", t)
		}
	}
	if query.EndDate != "" {
		if t, err := time.Parse("2006-01-02", query.EndDate); err == nil {
			// 含结束日当天
			db = db.Where("payments.payment_date < ?", t.AddDate(0, 0, 1))
		}
	}
	if query.MinAmount > 0 {
		db = db.Where("payments.amount >= ?", query.MinAmount)
	}
	if query.MaxAmount > 0 {
		db = db.Where("payments.amount <= ?", query.MaxAmount)
	}
	if query.PayerName != "" {
		db = db.Where("payments.payer_name LIKE ?", "%"+query.PayerName+"%")
	}
	if query.Keyword != "" {
		like := "%" + query.Keyword + "%"
		db = db.Where("payments.status LIKE ? OR payments.method LIKE ? OR payments.payer_name LIKE ? OR payments.receipt_no LIKE ?",
			like, like, like, like)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	var payments []models.Payment
	if err := db.Preload("Fee").Preload("Household").Preload("Collector").
		Order("payment_date DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// 8 GetHouseholdFeeStatus 对某住户按参考周期做双月对账。
// 结果按住户和周期缓存5分钟，缴费写入时失效。
func (s *PaymentService) GetHouseholdFeeStatus(householdID uint, periodStr string) ([]reconcile.FeeStatus, error) {
	referenceDate, err := reconcile.ParsePeriod(periodStr, time.Now())
	if err != nil {
		return nil, ErrInvalidPeriod
	}
	// 当前月的参考日期取当天，保证"当月"语义跟随真实时间
	if reconcile.Normalize(time.Now()).Equal(referenceDate) {
		referenceDate = time.Now()
	}

	cacheKey := referenceDate.Format("2006-01")
	if s.Redis != nil {
		var cached []reconcile.FeeStatus
		if err := s.Redis.GetFeeStatus(householdID, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	var household models.Household
	if err := s.DB.First(&household, householdID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("住户不存在")
		}
		return nil, err
	}

	var fees []models.Fee
	if err := s.DB.Where("active = ?", true).Order("fee_code").Find(&fees).Error; err != nil {
		return nil, err
	}

	// 只需当月和上月两个区间的记录
	lastStart, _ := reconcile.MonthInterval(reconcile.PreviousMonth(reconcile.Normalize(referenceDate)))
	_, currentEnd := reconcile.MonthInterval(reconcile.Normalize(referenceDate))
	var payments []models.Payment
	if err := s.DB.
		Where("household_id = ?", householdID).
		Where("status <> ?", models.PaymentStatusRefunded).
		Where("(period >= ? AND period < ?) OR (period IS NULL AND payment_date >= ? AND payment_date < ?)",
			lastStart, currentEnd, lastStart, currentEnd).
		Find(&payments).Error; err != nil {
		return nil, err
	}

	statuses := reconcile.ClassifyAll(fees, payments, referenceDate)

	if s.Redis != nil {
		_ = s.Redis.CacheFeeStatus(householdID, cacheKey, statuses, 5*time.Minute)
	}
	return statuses, nil
}

// 9 GetStatusSummary 全小区缴费状态汇总
func (s *PaymentService) GetStatusSummary(currentMonthOnly bool) (reconcile.StatusSummary, error) {
	var payments []models.Payment
	if err := s.DB.Find(&payments).Error; err != nil {
		return reconcile.StatusSummary{}, err
	}
	return reconcile.SummarizeStatus(payments, time.Now(), currentMonthOnly), nil
}

// 10 GetRevenueSummary 按费用项汇总已缴金额
func (s *PaymentService) GetRevenueSummary(currentMonthOnly bool) (map[string]float64, error) {
	var payments []models.Payment
	if err := s.DB.Preload("Fee").Where("status = ?", models.PaymentStatusPaid).Find(&payments).Error; err != nil {
		return nil, err
	}
	return reconcile.SummarizeFeeRevenue(payments, time.Now(), currentMonthOnly), nil
}

// generateReceiptNo 生成收据号，日期前缀便于人工核对
func generateReceiptNo() string {
	return fmt.Sprintf("BM%s-%s",
		time.Now().Format("20060102"),
		strings.ToUpper(uuid.New().String()[:8]))
}

// invalidateCaches 缴费数据变化后清除相关缓存
func (s *PaymentService) invalidateCaches(householdID uint) {
	if s.Redis == nil {
		return
	}
	_ = s.Redis.InvalidateFeeStatus(householdID)
	_ = s.Redis.InvalidateDashboard()
}
