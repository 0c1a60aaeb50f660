package services

import (
	"errors"

	"bluemoon-fee-service/internal/domain/models"
	"bluemoon-fee-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceResidentService defines the resident service interface
type InterfaceResidentService interface {
	GetAllResidents(page int, pageSize int) ([]models.Resident, int64, error)
	GetResidentByID(id uint) (*models.Resident, error)
	GetResidentsByHousehold(householdID uint) ([]models.Resident, error)
	CreateResident(resident *models.Resident) error
	UpdateResident(id uint, updates map[string]interface{}) (*models.Resident, error)
	DeleteResident(id uint) error
	SearchResidents(keyword string, page int, pageSize int) ([]models.Resident, int64, error)
}

// ResidentService 提供居民相关的服务
type ResidentService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewResidentService 创建一个新的居民服务
func NewResidentService(db *gorm.DB, cfg *config.Config) InterfaceResidentService {
	return &ResidentService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllResidents 获取所有居民
func (s *ResidentService) GetAllResidents(page int, pageSize int) ([]models.Resident, int64, error) {
	var residents []models.Resident
	var total int64
	if err := s.DB.Model(&models.Resident{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := s.DB.Preload("Household").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&residents).Error; err != nil {
		return nil, 0, err
	}
	return residents, total, nil
}

// 2 GetResidentByID 根据ID获取居民
func (s *ResidentService) GetResidentByID(id uint) (*models.Resident, error) {
	var resident models.Resident
	if err := s.DB.Preload("Household").First(&resident, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("居民不存在")
		}
		return nil, err
	}
	return &resident, nil
}

// 3 GetResidentsByHousehold 获取某住户的全部成员
func (s *ResidentService) GetResidentsByHousehold(householdID uint) ([]models.Resident, error) {
	var residents []models.Resident
	if err := s.DB.Where("household_id = ?", householdID).Find(&residents).Error; err != nil {
		return nil, err
	}
	return residents, nil
}

// 4 CreateResident 创建新居民
func (s *ResidentService) CreateResident(resident *models.Resident) error {
	// 验证户号是否存在
	if resident.HouseholdID > 0 {
		var household models.Household
		if err := s.DB.First(&household, resident.HouseholdID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("住户不存在")
			}
			return err
		}
	} else {
		return errors.New("必须提供有效的住户ID")
	}

	// 身份证号不允许重复
	if resident.IDCard != "" {
		var count int64
		if err := s.DB.Model(&models.Resident{}).Where("id_card = ?", resident.IDCard).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errors.New("身份证号已被使用")
		}
	}

	return s.DB.Create(resident).Error
}

// 5 UpdateResident 更新居民信息
func (s *ResidentService) UpdateResident(id uint, updates map[string]interface{}) (*models.Resident, error) {
	resident, err := s.GetResidentByID(id)
	if err != nil {
		return nil, err
	}

	// 如果更新身份证号，需要检查唯一性
	if idCard, ok := updates["id_card"].(string); ok && idCard != "" && idCard != resident.IDCard {
		var count int64
		if err := s.DB.Model(&models.Resident{}).Where("id_card = ? AND id != ?", idCard, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New("身份证号已被其他居民使用")
		}
	}

	// 如果更新户号ID，需要验证住户是否存在
	if householdID, ok := updates["household_id"].(uint); ok {
		var household models.Household
		if err := s.DB.First(&household, householdID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("住户不存在")
			}
			return nil, err
		}
	}

	if err := s.DB.Model(resident).Updates(updates).Error; err != nil {
		return nil, err
	}

	// 重新获取更新后的居民信息
	return s.GetResidentByID(id)
}

// 6 DeleteResident 删除居民。若该居民是户主，先清除户主指向。
func (s *ResidentService) DeleteResident(id uint) error {
	resident, err := s.GetResidentByID(id)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Household{}).
			Where("head_resident_id = ?", id).
			Update("head_resident_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(resident).Error
	})
}

// 7 SearchResidents 按姓名、电话或身份证号模糊搜索居民
func (s *ResidentService) SearchResidents(keyword string, page int, pageSize int) ([]models.Resident, int64, error) {
	var residents []models.Resident
	var total int64

	query := s.DB.Model(&models.Resident{})
	if keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("name LIKE ? OR phone LIKE ? OR id_card LIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Preload("Household").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&residents).Error; err != nil {
		return nil, 0, err
	}
	return residents, total, nil
}
