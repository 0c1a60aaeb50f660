package controllers

import (
	"net/http"
	"strconv"

	"bluemoon-fee-service/internal/domain/models"
	"bluemoon-fee-service/internal/domain/services"
	"bluemoon-fee-service/internal/domain/services/container"
	"bluemoon-fee-service/internal/error/code"
	"bluemoon-fee-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceHouseholdController 定义住户控制器接口
type InterfaceHouseholdController interface {
	GetHouseholds()
	GetHousehold()
	CreateHousehold()
	UpdateHousehold()
	DeleteHousehold()
	GetHouseholdResidents()
	SetHeadResident()
	SearchHouseholds()
	GetHouseholdFeeStatus()
}

// HouseholdController 处理住户相关的请求
type HouseholdController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHouseholdController 创建一个新的住户控制器
func NewHouseholdController(ctx *gin.Context, container *container.ServiceContainer) *HouseholdController {
	return &HouseholdController{
		Ctx:       ctx,
		Container: container,
	}
}

// HouseholdRequest 表示住户请求
type HouseholdRequest struct {
	ApartmentNumber string `json:"apartment_number" binding:"required" example:"A-101"`
	Address         string `json:"address" example:"蓝月小区A栋101室"`
	Note            string `json:"note"`
	Active          *bool  `json:"active"`
}

// HeadResidentRequest 表示设置户主请求
type HeadResidentRequest struct {
	ResidentID uint `json:"resident_id" binding:"required" example:"1"`
}

// HandleHouseholdFunc 返回一个处理住户请求的Gin处理函数
func HandleHouseholdFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHouseholdController(ctx, container)

		switch method {
		case "getHouseholds":
			controller.GetHouseholds()
		case "getHousehold":
			controller.GetHousehold()
		case "createHousehold":
			controller.CreateHousehold()
		case "updateHousehold":
			controller.UpdateHousehold()
		case "deleteHousehold":
			controller.DeleteHousehold()
		case "getHouseholdResidents":
			controller.GetHouseholdResidents()
		case "setHeadResident":
			controller.SetHeadResident()
		case "searchHouseholds":
			controller.SearchHouseholds()
		case "getHouseholdFeeStatus":
			controller.GetHouseholdFeeStatus()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetHouseholds 获取所有住户列表
// @Summary 获取所有住户
// @Description 获取系统中所有住户的列表，含户主和成员信息
// @Tags Household
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码，默认为1"
// @Param page_size query int false "每页条数，默认为10"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /households [get]
func (c *HouseholdController) GetHouseholds() {
	// 获取分页参数
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	householdService := c.Container.GetService("household").(services.InterfaceHouseholdService)
	households, total, err := householdService.GetAllHouseholds(page, pageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取住户列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        households,
	})
}

// 2. GetHousehold 获取单个住户详情
// @Summary 获取住户详情
// @Description 根据ID获取住户详细信息
// @Tags Household
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "住户ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /households/{id} [get]
func (c *HouseholdController) GetHousehold() {
	id := c.Ctx.Param("id")
	householdID, err := strconv.Atoi(id)
	if err != nil {
		response.ParamError(c.Ctx, "无效的住户ID")
		return
	}

	householdService := c.Container.GetService("household").(services.InterfaceHouseholdService)
	household, err := householdService.GetHouseholdByID(uint(householdID))
	if err != nil {
		response.Fail(c.Ctx, code.ErrHouseholdNotFound, nil)
		return
	}

	response.Success(c.Ctx, household)
}

// 3. CreateHousehold 创建新住户
// @Summary 创建住户
// @Description 创建一个新的住户，房号不允许重复
// @Tags Household
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param household body HouseholdRequest true "住户信息"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /households [post]
func (c *HouseholdController) CreateHousehold() {
	var req HouseholdRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	household := &models.Household{
		ApartmentNumber: req.ApartmentNumber,
		Address:         req.Address,
		Note:            req.Note,
		Active:          true,
	}
	if req.Active != nil {
		household.Active = *req.Active
	}

	householdService := c.Container.GetService("household").(services.InterfaceHouseholdService)
	if err := householdService.CreateHousehold(household); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrHouseholdAlreadyExist, "创建住户失败: "+err.Error(), nil)
		return
	}

	c.Ctx.Status(http.StatusCreated)
	response.Success(c.Ctx, household)
}

// 4. UpdateHousehold 更新住户信息
// @Summary 更新住户
// @Description 更新住户信息
// @Tags Household
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "住户ID"
// @Param household body HouseholdRequest true "住户信息"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /households/{id} [put]
func (c *HouseholdController) UpdateHousehold() {
	id := c.Ctx.Param("id")
	householdID, err := strconv.Atoi(id)
	if err != nil {
		response.ParamError(c.Ctx, "无效的住户ID")
		return
	}

	var req HouseholdRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	// 创建更新映射
	updates := make(map[string]interface{})
	if req.ApartmentNumber != "" {
		updates["apartment_number"] = req.ApartmentNumber
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.Note != "" {
		updates["note"] = req.Note
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	householdService := c.Container.GetService("household").(services.InterfaceHouseholdService)
	household, err := householdService.UpdateHousehold(uint(householdID), updates)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新住户失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, household)
}

// 5. DeleteHousehold 删除住户
// @Summary 删除住户
// @Description 删除指定的住户，存在缴费记录的住户不允许删除
// @Tags Household
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "住户ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /households/{id} [delete]
func (c *HouseholdController) DeleteHousehold() {
	id := c.Ctx.Param("id")
	householdID, err := strconv.Atoi(id)
	if err != nil {
		response.ParamError(c.Ctx, "无效的住户ID")
		return
	}

	householdService := c.Container.GetService("household").(services.InterfaceHouseholdService)
	if err := householdService.DeleteHousehold(uint(householdID)); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrHouseholdHasPayments, "删除住户失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}

// 6. GetHouseholdResidents 获取住户下的成员
// @Summary 获取住户成员
// @Description 获取指定住户下的所有居民
// @Tags Household
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "住户ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /households/{id}/residents [get]
func (c *HouseholdController) GetHouseholdResidents() {
	id := c.Ctx.Param("id")
	householdID, err := strconv.Atoi(id)
	if err != nil {
		response.ParamError(c.Ctx, "无效的住户ID")
		return
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	residents, err := residentService.GetResidentsByHousehold(uint(householdID))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取住户成员失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, residents)
}

// 7. SetHeadResident 设置户主
// @Summary 设置户主
// @Description 将指定居民设置为该住户的户主，户主必须是住户成员
// @Tags Household
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "住户ID"
// @Param request body HeadResidentRequest true "户主信息"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /households/{id}/head [put]
func (c *HouseholdController) SetHeadResident() {
	id := c.Ctx.Param("id")
	householdID, err := strconv.Atoi(id)
	if err != nil {
		response.ParamError(c.Ctx, "无效的住户ID")
		return
	}

	var req HeadResidentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	householdService := c.Container.GetService("household").(services.InterfaceHouseholdService)
	household, err := householdService.SetHeadResident(uint(householdID), req.ResidentID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "设置户主失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, household)
}

// 8. SearchHouseholds 搜索住户
// @Summary 搜索住户
// @Description 按房号或地址模糊搜索住户
// @Tags Household
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param keyword query string false "搜索关键字"
// @Param page query int false "页码，默认为1"
// @Param page_size query int false "每页条数，默认为10"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /households/search [get]
func (c *HouseholdController) SearchHouseholds() {
	keyword := c.Ctx.Query("keyword")
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	householdService := c.Container.GetService("household").(services.InterfaceHouseholdService)
	households, total, err := householdService.SearchHouseholds(keyword, page, pageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "搜索住户失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        households,
	})
}

// 9. GetHouseholdFeeStatus 获取住户缴费状态
// @Summary 获取住户缴费状态
// @Description 对指定住户做当月与上月的费用对账，period 为空时默认当前月
// @Tags Household
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "住户ID"
// @Param period query string false "参考周期，格式 YYYY-MM"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /households/{id}/fee-status [get]
func (c *HouseholdController) GetHouseholdFeeStatus() {
	id := c.Ctx.Param("id")
	householdID, err := strconv.Atoi(id)
	if err != nil {
		response.ParamError(c.Ctx, "无效的住户ID")
		return
	}

	period := c.Ctx.Query("period")

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	statuses, err := paymentService.GetHouseholdFeeStatus(uint(householdID), period)
	if err != nil {
		if err == services.ErrInvalidPeriod {
			response.Fail(c.Ctx, code.ErrPaymentInvalidPeriod, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取缴费状态失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"household_id": householdID,
		"period":       period,
		"fees":         statuses,
	})
}
