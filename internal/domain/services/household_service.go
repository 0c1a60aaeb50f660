package services

import (
	"errors"

	"bluemoon-fee-service/internal/domain/models"
	"bluemoon-fee-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceHouseholdService defines the household service interface
type InterfaceHouseholdService interface {
	GetAllHouseholds(page int, pageSize int) ([]models.Household, int64, error)
	GetHouseholdByID(id uint) (*models.Household, error)
	CreateHousehold(household *models.Household) error
	UpdateHousehold(id uint, updates map[string]interface{}) (*models.Household, error)
	DeleteHousehold(id uint) error
	SetHeadResident(householdID, residentID uint) (*models.Household, error)
	SearchHouseholds(keyword string, page int, pageSize int) ([]models.Household, int64, error)
}

// HouseholdService 提供住户相关的服务
type HouseholdService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewHouseholdService 创建一个新的住户服务
func NewHouseholdService(db *gorm.DB, cfg *config.Config) InterfaceHouseholdService {
	return &HouseholdService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllHouseholds 获取所有住户（带户主和成员）
func (s *HouseholdService) GetAllHouseholds(page int, pageSize int) ([]models.Household, int64, error) {
	var households []models.Household
	var total int64
	if err := s.DB.Model(&models.Household{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := s.DB.Preload("HeadResident").Preload("Residents").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&households).Error; err != nil {
		return nil, 0, err
	}
	return households, total, nil
}

// 2 GetHouseholdByID 根据ID获取住户
func (s *HouseholdService) GetHouseholdByID(id uint) (*models.Household, error) {
	var household models.Household
	if err := s.DB.Preload("HeadResident").Preload("Residents").First(&household, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("住户不存在")
		}
		return nil, err
	}
	return &household, nil
}

// 3 CreateHousehold 创建新住户
func (s *HouseholdService) CreateHousehold(household *models.Household) error {
	// 验证房号唯一性
	var count int64
	if err := s.DB.Model(&models.Household{}).Where("apartment_number = ?", household.ApartmentNumber).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("房号已存在")
	}

	return s.DB.Create(household).Error
}

// 4 UpdateHousehold 更新住户信息
func (s *HouseholdService) UpdateHousehold(id uint, updates map[string]interface{}) (*models.Household, error) {
	household, err := s.GetHouseholdByID(id)
	if err != nil {
		return nil, err
	}

	// 如果更新房号，需要检查唯一性
	if number, ok := updates["apartment_number"].(string); ok && number != household.ApartmentNumber {
		var count int64
		if err := s.DB.Model(&models.Household{}).Where("apartment_number = ? AND id != ?", number, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New("房号已被其他住户使用")
		}
	}

	if err := s.DB.Model(household).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetHouseholdByID(id)
}

// 5 DeleteHousehold 删除住户。
// 存在缴费记录的住户不允许删除，只能通过 active 字段停用，保证历史账目可追溯。
func (s *HouseholdService) DeleteHousehold(id uint) error {
	household, err := s.GetHouseholdByID(id)
	if err != nil {
		return err
	}

	var paymentCount int64
	if err := s.DB.Model(&models.Payment{}).Where("household_id = ?", id).Count(&paymentCount).Error; err != nil {
		return err
	}
	if paymentCount > 0 {
		return errors.New("该住户存在缴费记录，不能删除")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		// 先删除住户成员
		if err := tx.Where("household_id = ?", id).Delete(&models.Resident{}).Error; err != nil {
			return err
		}
		return tx.Delete(household).Error
	})
}

// 6 SetHeadResident 设置户主。户主必须是该住户的成员。
func (s *HouseholdService) SetHeadResident(householdID, residentID uint) (*models.Household, error) {
	household, err := s.GetHouseholdByID(householdID)
	if err != nil {
		return nil, err
	}

	var resident models.Resident
	if err := s.DB.First(&resident, residentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("居民不存在")
		}
		return nil, err
	}
	if resident.HouseholdID != householdID {
		return nil, errors.New("该居民不属于此住户")
	}

	if err := s.DB.Model(household).Update("head_resident_id", residentID).Error; err != nil {
		return nil, err
	}

	return s.GetHouseholdByID(householdID)
}

// 7 SearchHouseholds 按房号或地址模糊搜索住户
func (s *HouseholdService) SearchHouseholds(keyword string, page int, pageSize int) ([]models.Household, int64, error) {
	var households []models.Household
	var total int64

	query := s.DB.Model(&models.Household{})
	if keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("apartment_number LIKE ? OR address LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Preload("HeadResident").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&households).Error; err != nil {
		return nil, 0, err
	}
	return households, total, nil
}
