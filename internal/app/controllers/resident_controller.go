package controllers

import (
	"net/http"
	"strconv"
	"time"

	"bluemoon-fee-service/internal/domain/models"
	"bluemoon-fee-service/internal/domain/services"
	"bluemoon-fee-service/internal/domain/services/container"
	"bluemoon-fee-service/internal/error/code"
	"bluemoon-fee-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceResidentController 定义居民控制器接口
type InterfaceResidentController interface {
	GetResidents()
	GetResident()
	CreateResident()
	UpdateResident()
	DeleteResident()
	SearchResidents()
}

// ResidentController 处理居民相关的请求
type ResidentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewResidentController 创建一个新的居民控制器
func NewResidentController(ctx *gin.Context, container *container.ServiceContainer) *ResidentController {
	return &ResidentController{
		Ctx:       ctx,
		Container: container,
	}
}

// ResidentRequest 表示居民请求
type ResidentRequest struct {
	Name        string `json:"name" binding:"required" example:"王小明"`
	Gender      string `json:"gender" example:"male"`
	DateOfBirth string `json:"date_of_birth" example:"1990-01-01"`
	IDCard      string `json:"id_card" example:"110101199001010011"`
	IDCardDate  string `json:"id_card_date" example:"2015-06-01"`
	IDCardPlace string `json:"id_card_place" example:"北京市公安局"`
	Phone       string `json:"phone" example:"13800138000"`
	Email       string `json:"email" example:"resident@example.com"`
	HouseholdID uint   `json:"household_id" example:"1"`
}

// HandleResidentFunc 返回一个处理居民请求的Gin处理函数
func HandleResidentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewResidentController(ctx, container)

		switch method {
		case "getResidents":
			controller.GetResidents()
		case "getResident":
			controller.GetResident()
		case "createResident":
			controller.CreateResident()
		case "updateResident":
			controller.UpdateResident()
		case "deleteResident":
			controller.DeleteResident()
		case "searchResidents":
			controller.SearchResidents()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// parseDate 解析日期字段，空串返回nil
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	return nil
}

// 1. GetResidents 获取所有居民列表
// @Summary 获取所有居民
// @Description 获取系统中所有居民的列表
// @Tags Resident
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码，默认为1"
// @Param page_size query int false "每页条数，默认为10"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /residents [get]
func (c *ResidentController) GetResidents() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	residents, total, err := residentService.GetAllResidents(page, pageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取居民列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        residents,
	})
}

// 2. GetResident 获取单个居民详情
// @Summary 获取居民详情
// @Description 根据ID获取居民详细信息
// @Tags Resident
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "居民ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /residents/{id} [get]
func (c *ResidentController) GetResident() {
	id := c.Ctx.Param("id")
	residentID, err := strconv.Atoi(id)
	if err != nil {
		response.ParamError(c.Ctx, "无效的居民ID")
		return
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	resident, err := residentService.GetResidentByID(uint(residentID))
	if err != nil {
		response.Fail(c.Ctx, code.ErrResidentNotFound, nil)
		return
	}

	response.Success(c.Ctx, resident)
}

// 3. CreateResident 创建新居民
// @Summary 创建居民
// @Description 创建一个新的居民，必须关联到住户
// @Tags Resident
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param resident body ResidentRequest true "居民信息"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /residents [post]
func (c *ResidentController) CreateResident() {
	var req ResidentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	resident := &models.Resident{
		Name:        req.Name,
		Gender:      req.Gender,
		DateOfBirth: parseDate(req.DateOfBirth),
		IDCard:      req.IDCard,
		IDCardDate:  parseDate(req.IDCardDate),
		IDCardPlace: req.IDCardPlace,
		Phone:       req.Phone,
		Email:       req.Email,
		HouseholdID: req.HouseholdID,
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	if err := residentService.CreateResident(resident); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrResidentAlreadyExist, "创建居民失败: "+err.Error(), nil)
		return
	}

	c.Ctx.Status(http.StatusCreated)
	response.Success(c.Ctx, resident)
}

// 4. UpdateResident 更新居民信息
// @Summary 更新居民
// @Description 更新居民信息
// @Tags Resident
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "居民ID"
// @Param resident body ResidentRequest true "居民信息"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /residents/{id} [put]
func (c *ResidentController) UpdateResident() {
	id := c.Ctx.Param("id")
	residentID, err := strconv.Atoi(id)
	if err != nil {
		response.ParamError(c.Ctx, "无效的居民ID")
		return
	}

	var req ResidentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Gender != "" {
		updates["gender"] = req.Gender
	}
	if t := parseDate(req.DateOfBirth); t != nil {
		updates["date_of_birth"] = *t
	}
	if req.IDCard != "" {
		updates["id_card"] = req.IDCard
	}
	if t := parseDate(req.IDCardDate); t != nil {
		updates["id_card_date"] = *t
	}
	if req.IDCardPlace != "" {
		updates["id_card_place"] = req.IDCardPlace
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.HouseholdID > 0 {
		updates["household_id"] = req.HouseholdID
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	resident, err := residentService.UpdateResident(uint(residentID), updates)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新居民失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, resident)
}

// 5. DeleteResident 删除居民
// @Summary 删除居民
// @Description 删除指定的居民，若其为户主将同时清除户主指向
// @Tags Resident
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "居民ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /residents/{id} [delete]
func (c *ResidentController) DeleteResident() {
	id := c.Ctx.Param("id")
	residentID, err := strconv.Atoi(id)
	if err != nil {
		response.ParamError(c.Ctx, "无效的居民ID")
		return
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	if err := residentService.DeleteResident(uint(residentID)); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除居民失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}

// 6. SearchResidents 搜索居民
// @Summary 搜索居民
// @Description 按姓名、电话或身份证号模糊搜索居民
// @Tags Resident
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param keyword query string false "搜索关键字"
// @Param page query int false "页码，默认为1"
// @Param page_size query int false "每页条数，默认为10"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /residents/search [get]
func (c *ResidentController) SearchResidents() {
	keyword := c.Ctx.Query("keyword")
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	residents, total, err := residentService.SearchResidents(keyword, page, pageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "搜索居民失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        residents,
	})
}
