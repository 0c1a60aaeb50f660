package services

import (
	"errors"

	"bluemoon-fee-service/internal/domain/models"
	"bluemoon-fee-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceFeeService defines the fee service interface
type InterfaceFeeService interface {
	GetAllFees(page int, pageSize int) ([]models.Fee, int64, error)
	GetActiveFees() ([]models.Fee, error)
	GetFeeByID(id uint) (*models.Fee, error)
	CreateFee(fee *models.Fee) error
	UpdateFee(id uint, updates map[string]interface{}) (*models.Fee, error)
	DeleteFee(id uint) error
}

// FeeService 提供费用项相关的服务
type FeeService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewFeeService 创建一个新的费用项服务
func NewFeeService(db *gorm.DB, cfg *config.Config) InterfaceFeeService {
	return &FeeService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllFees 获取所有费用项
func (s *FeeService) GetAllFees(page int, pageSize int) ([]models.Fee, int64, error) {
	var fees []models.Fee
	var total int64
	if err := s.DB.Model(&models.Fee{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := s.DB.Offset((page - 1) * pageSize).Limit(pageSize).Find(&fees).Error; err != nil {
		return nil, 0, err
	}
	return fees, total, nil
}

// 2 GetActiveFees 获取所有启用的费用项，供对账和缴费录入使用
func (s *FeeService) GetActiveFees() ([]models.Fee, error) {
	var fees []models.Fee
	if err := s.DB.Where("active = ?", true).Order("fee_code").Find(&fees).Error; err != nil {
		return nil, err
	}
	return fees, nil
}

// 3 GetFeeByID 根据ID获取费用项
func (s *FeeService) GetFeeByID(id uint) (*models.Fee, error) {
	var fee models.Fee
	if err := s.DB.First(&fee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("费用项不存在")
		}
		return nil, err
	}
	return &fee, nil
}

// 4 CreateFee 创建新费用项
func (s *FeeService) CreateFee(fee *models.Fee) error {
	// 验证费用编码唯一性
	var count int64
	if err := s.DB.Model(&models.Fee{}).Where("fee_code = ?", fee.FeeCode).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("费用编码已存在")
	}

	// 验证费用类型
	if !models.ValidFeeTypes[fee.FeeType] {
		return errors.New("无效的费用类型")
	}

	if fee.Amount < 0 {
		return errors.New("金额不能为负数")
	}

	// 生效结束日期不能早于开始日期
	if fee.EndDate != nil && fee.EndDate.Before(fee.StartDate) {
		return errors.New("结束日期不能早于开始日期")
	}

	return s.DB.Create(fee).Error
}

// 5 UpdateFee 更新费用项
func (s *FeeService) UpdateFee(id uint, updates map[string]interface{}) (*models.Fee, error) {
	fee, err := s.GetFeeByID(id)
	if err != nil {
		return nil, err
	}

	// 如果更新编码，需要检查唯一性
	if feeCode, ok := updates["fee_code"].(string); ok && feeCode != fee.FeeCode {
		var count int64
		if err := s.DB.Model(&models.Fee{}).Where("fee_code = ? AND id != ?", feeCode, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New("费用编码已被其他费用项使用")
		}
	}

	// 如果更新类型，需要验证合法性
	if feeType, ok := updates["fee_type"].(string); ok {
		if !models.ValidFeeTypes[feeType] {
			return nil, errors.New("无效的费用类型")
		}
	}

	if amount, ok := updates["amount"].(float64); ok && amount < 0 {
		return nil, errors.New("金额不能为负数")
	}

	if err := s.DB.Model(fee).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetFeeByID(id)
}

// 6 DeleteFee 删除费用项。
// 已有缴费记录的费用项只停用不删除，保证历史账目可追溯。
func (s *FeeService) DeleteFee(id uint) error {
	fee, err := s.GetFeeByID(id)
	if err != nil {
		return err
	}

	var paymentCount int64
	if err := s.DB.Model(&models.Payment{}).Where("fee_id = ?", id).Count(&paymentCount).Error; err != nil {
		return err
	}
	if paymentCount > 0 {
		return s.DB.Model(fee).Update("active", false).Error
	}

	return s.DB.Delete(fee).Error
}
