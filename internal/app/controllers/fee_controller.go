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

// InterfaceFeeController 定义费用项控制器接口
type InterfaceFeeController interface {
	GetFees()
	GetActiveFees()
	GetFee()
	CreateFee()
	UpdateFee()
	DeleteFee()
}

// FeeController 处理费用项相关的请求
type FeeController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewFeeController 创建一个新的费用项控制器
func NewFeeController(ctx *gin.Context, container *container.ServiceContainer) *FeeController {
	return &FeeController{
		Ctx:       ctx,
		Container: container,
	}
}

// FeeRequest 表示费用项请求
type FeeRequest struct {
	FeeCode     string  `json:"fee_code" binding:"required" example:"FEE-MGMT"`
	Name        string  `json:"name" binding:"required" example:"管理费"`
	Description string  `json:"description"`
	FeeType     string  `json:"fee_type" binding:"required" example:"mandatory"` // mandatory, service, maintenance, water, electricity, parking, internet, security, other
	Amount      float64 `json:"amount" example:"150000"`
	StartDate   string  `json:"start_date" binding:"required" example:"2024-01-01"`
	EndDate     string  `json:"end_date" example:""`
	Active      *bool   `json:"active"`
}

// HandleFeeFunc 返回一个处理费用项请求的Gin处理函数
func HandleFeeFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewFeeController(ctx, container)

		switch method {
		case "getFees":
			controller.GetFees()
		case "getActiveFees":
			controller.GetActiveFees()
		case "getFee":
			controller.GetFee()
		case "createFee":
			controller.CreateFee()
		case "updateFee":
			controller.UpdateFee()
		case "deleteFee":
			controller.DeleteFee()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetFees 获取所有费用项列表
// @Summary 获取所有费用项
// @Description 获取系统中所有费用项的列表
// @Tags Fee
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码，默认为1"
// @Param page_size query int false "每页条数，默认为10"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /fees [get]
func (c *FeeController) GetFees() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	feeService := c.Container.GetService("fee").(services.InterfaceFeeService)
	fees, total, err := feeService.GetAllFees(page, pageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取费用项列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        fees,
	})
}

// 2. GetActiveFees 获取所有启用的费用项
// @Summary 获取启用的费用项
// @Description 获取当前启用的费用项，供缴费录入下拉使用
// @Tags Fee
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /fees/active [get]
func (c *FeeController) GetActiveFees() {
	feeService := c.Container.GetService("fee").(services.InterfaceFeeService)
	fees, err := feeService.GetActiveFees()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取费用项失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, fees)
}

// 3. GetFee 获取单个费用项详情
// @Summary 获取费用项详情
// @Description 根据ID获取费用项详细信息
// @Tags Fee
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "费用项ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /fees/{id} [get]
func (c *FeeController) GetFee() {
	id := c.Ctx.Param("id")
	feeID, err := strconv.Atoi(id)
	if err != nil {
		response.ParamError(c.Ctx, "无效的费用项ID")
		return
	}

	feeService := c.Container.GetService("fee").(services.InterfaceFeeService)
	fee, err := feeService.GetFeeByID(uint(feeID))
	if err != nil {
		response.Fail(c.Ctx, code.ErrFeeNotFound, nil)
		return
	}

	response.Success(c.Ctx, fee)
}

// 4. CreateFee 创建新费用项
// @Summary 创建费用项
// @Description 创建一个新的费用项，编码不允许重复
// @Tags Fee
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param fee body FeeRequest true "费用项信息"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /fees [post]
func (c *FeeController) CreateFee() {
	var req FeeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		response.ParamError(c.Ctx, "无效的开始日期格式，应为 YYYY-MM-DD")
		return
	}

	fee := &models.Fee{
		FeeCode:     req.FeeCode,
		Name:        req.Name,
		Description: req.Description,
		FeeType:     req.FeeType,
		Amount:      req.Amount,
		StartDate:   startDate,
		EndDate:     parseDate(req.EndDate),
		Active:      true,
	}
	if req.Active != nil {
		fee.Active = *req.Active
	}

	feeService := c.Container.GetService("fee").(services.InterfaceFeeService)
	if err := feeService.CreateFee(fee); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrFeeAlreadyExist, "创建费用项失败: "+err.Error(), nil)
		return
	}

	c.Ctx.Status(http.StatusCreated)
	response.Success(c.Ctx, fee)
}

// 5. UpdateFee 更新费用项
// @Summary 更新费用项
// @Description 更新费用项信息
// @Tags Fee
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "费用项ID"
// @Param fee body FeeRequest true "费用项信息"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /fees/{id} [put]
func (c *FeeController) UpdateFee() {
	id := c.Ctx.Param("id")
	feeID, err := strconv.Atoi(id)
	if err != nil {
		response.ParamError(c.Ctx, "无效的费用项ID")
		return
	}

	var req FeeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	updates := make(map[string]interface{})
	if req.FeeCode != "" {
		updates["fee_code"] = req.FeeCode
	}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.FeeType != "" {
		updates["fee_type"] = req.FeeType
	}
	if req.Amount > 0 {
		updates["amount"] = req.Amount
	}
	if t := parseDate(req.StartDate); t != nil {
		updates["start_date"] = *t
	}
	if t := parseDate(req.EndDate); t != nil {
		updates["end_date"] = *t
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	feeService := c.Container.GetService("fee").(services.InterfaceFeeService)
	fee, err := feeService.UpdateFee(uint(feeID), updates)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新费用项失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, fee)
}

// 6. DeleteFee 删除费用项
// @Summary 删除费用项
// @Description 删除指定的费用项，已有缴费记录的费用项只停用不删除
// @Tags Fee
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "费用项ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /fees/{id} [delete]
func (c *FeeController) DeleteFee() {
	id := c.Ctx.Param("id")
	feeID, err := strconv.Atoi(id)
	if err != nil {
		response.ParamError(c.Ctx, "无效的费用项ID")
		return
	}

	feeService := c.Container.GetService("fee").(services.InterfaceFeeService)
	if err := feeService.DeleteFee(uint(feeID)); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除费用项失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}
