package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"bluemoon-fee-service/internal/app/middleware"
	"bluemoon-fee-service/internal/domain/models"
	"bluemoon-fee-service/internal/domain/services"
	"bluemoon-fee-service/internal/domain/services/container"
	"bluemoon-fee-service/internal/error/code"
	"bluemoon-fee-service/internal/error/response"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// InterfacePaymentController 定义缴费控制器接口
type InterfacePaymentController interface {
	GetPayments()
	GetPayment()
	CreatePayment()
	UpdatePayment()
	RefundPayment()
	DeletePayment()
	SearchPayments()
	ExportPayments()
	GetPaymentsByHousehold()
	GetPaymentsByFee()
	GetStatusSummary()
	GetRevenueSummary()
}

// PaymentController 处理缴费相关的请求
type PaymentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPaymentController 创建一个新的缴费控制器
func NewPaymentController(ctx *gin.Context, container *container.ServiceContainer) *PaymentController {
	return &PaymentController{
		Ctx:       ctx,
		Container: container,
	}
}

// PaymentRequest 表示缴费录入请求
type PaymentRequest struct {
	FeeID       uint    `json:"fee_id" binding:"required" example:"1"`
	HouseholdID uint    `json:"household_id" binding:"required" example:"1"`
	Period      string  `json:"period" example:"2024-03"` // 为空时默认当前月
	Amount      float64 `json:"amount" example:"150000"`  // 为零时按费用项标准金额
	PaymentDate string  `json:"payment_date" example:"2024-03-15"`
	DueDate     string  `json:"due_date" example:"2024-03-31"`
	PayerName   string  `json:"payer_name" example:"王小明"`
	PayerID     string  `json:"payer_id"`
	PayerPhone  string  `json:"payer_phone"`
	Method      string  `json:"method" example:"cash"` // cash, bank_transfer, other
	Note        string  `json:"note"`
}

// PaymentUpdateRequest 表示缴费修正请求
type PaymentUpdateRequest struct {
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"`
	Method      string  `json:"method"`
	Status      string  `json:"status"`
	Note        string  `json:"note"`
}

// RefundRequest 表示退款请求
type RefundRequest struct {
	Note string `json:"note"`
}

// HandlePaymentFunc 返回一个处理缴费请求的Gin处理函数
func HandlePaymentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPaymentController(ctx, container)

		switch method {
		case "getPayments":
			controller.GetPayments()
		case "getPayment":
			controller.GetPayment()
		case "createPayment":
			controller.CreatePayment()
		case "updatePayment":
			controller.UpdatePayment()
		case "refundPayment":
			controller.RefundPayment()
		case "deletePayment":
			controller.DeletePayment()
		case "searchPayments":
			controller.SearchPayments()
		case "exportPayments":
			controller.ExportPayments()
		case "getPaymentsByHousehold":
			controller.GetPaymentsByHousehold()
		case "getPaymentsByFee":
			controller.GetPaymentsByFee()
		case "getStatusSummary":
			controller.GetStatusSummary()
		case "getRevenueSummary":
			controller.GetRevenueSummary()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// failPayment 将服务层错误映射为对应的错误码
func (c *PaymentController) failPayment(err error) {
	switch {
	case errors.Is(err, services.ErrDuplicatePayment):
		response.Fail(c.Ctx, code.ErrPaymentDuplicate, nil)
	case errors.Is(err, services.ErrInvalidPeriod):
		response.Fail(c.Ctx, code.ErrPaymentInvalidPeriod, nil)
	case errors.Is(err, services.ErrPaymentRefunded):
		response.Fail(c.Ctx, code.ErrPaymentRefunded, nil)
	default:
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
	}
}

// 1. GetPayments 获取所有缴费记录
// @Summary 获取所有缴费记录
// @Description 获取系统中所有缴费记录的列表，按收款日期倒序
// @Tags Payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码，默认为1"
// @Param page_size query int false "每页条数，默认为10"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /payments [get]
func (c *PaymentController) GetPayments() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	payments, total, err := paymentService.GetAllPayments(page, pageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取缴费记录失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        payments,
	})
}

// 2. GetPayment 获取单条缴费记录详情
// @Summary 获取缴费记录详情
// @Description 根据ID获取缴费记录详细信息
// @Tags Payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "缴费记录ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /payments/{id} [get]
func (c *PaymentController) GetPayment() {
	id := c.Ctx.Param("id")
	paymentID, err := strconv.Atoi(id)
	if err != nil {
		response.ParamError(c.Ctx, "无效的缴费记录ID")
		return
	}

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	payment, err := paymentService.GetPaymentByID(uint(paymentID))
	if err != nil {
		response.Fail(c.Ctx, code.ErrPaymentNotFound, nil)
		return
	}

	response.Success(c.Ctx, payment)
}

// 3. CreatePayment 录入缴费
// @Summary 录入缴费
// @Description 为指定住户录入某费用项的缴费，同一住户同一费用项同一周期只允许一条记录
// @Tags Payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payment body PaymentRequest true "缴费信息"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /payments [post]
func (c *PaymentController) CreatePayment() {
	var req PaymentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	payment := &models.Payment{
		FeeID:       req.FeeID,
		HouseholdID: req.HouseholdID,
		Amount:      req.Amount,
		PayerName:   req.PayerName,
		PayerID:     req.PayerID,
		PayerPhone:  req.PayerPhone,
		Method:      req.Method,
		Note:        req.Note,
	}
	if t := parseDate(req.PaymentDate); t != nil {
		payment.PaymentDate = *t
	}
	payment.DueDate = parseDate(req.DueDate)

	collectorID := middleware.CurrentUserID(c.Ctx)

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	created, err := paymentService.CreatePayment(payment, req.Period, collectorID)
	if err != nil {
		c.failPayment(err)
		return
	}

	c.Ctx.Status(http.StatusCreated)
	response.Success(c.Ctx, created)
}

// 4. UpdatePayment 修正缴费记录
// @Summary 修正缴费记录
// @Description 修正缴费记录的金额、收款日期、方式、状态或备注，已退款的记录不允许修改
// @Tags Payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "缴费记录ID"
// @Param payment body PaymentUpdateRequest true "修正信息"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /payments/{id} [put]
func (c *PaymentController) UpdatePayment() {
	id := c.Ctx.Param("id")
	paymentID, err := strconv.Atoi(id)
	if err != nil {
		response.ParamError(c.Ctx, "无效的缴费记录ID")
		return
	}

	var req PaymentUpdateRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	updates := make(map[string]interface{})
	if req.Amount > 0 {
		updates["amount"] = req.Amount
	}
	if t := parseDate(req.PaymentDate); t != nil {
		updates["payment_date"] = *t
	}
	if req.Method != "" {
		updates["method"] = req.Method
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.Note != "" {
		updates["note"] = req.Note
	}

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	payment, err := paymentService.UpdatePayment(uint(paymentID), updates)
	if err != nil {
		c.failPayment(err)
		return
	}

	response.Success(c.Ctx, payment)
}

// 5. RefundPayment 退款
// @Summary 退款
// @Description 将缴费记录标记为已退款，退款后记录进入终态
// @Tags Payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "缴费记录ID"
// @Param request body RefundRequest false "退款备注"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /payments/{id}/refund [post]
func (c *PaymentController) RefundPayment() {
	id := c.Ctx.Param("id")
	paymentID, err := strconv.Atoi(id)
	if err != nil {
		response.ParamError(c.Ctx, "无效的缴费记录ID")
		return
	}

	var req RefundRequest
	_ = c.Ctx.ShouldBindJSON(&req)

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	payment, err := paymentService.RefundPayment(uint(paymentID), req.Note)
	if err != nil {
		c.failPayment(err)
		return
	}

	response.Success(c.Ctx, payment)
}

// 6. DeletePayment 删除缴费记录
// @Summary 删除缴费记录
// @Description 删除指定的缴费记录，已退款的记录不允许删除
// @Tags Payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "缴费记录ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /payments/{id} [delete]
func (c *PaymentController) DeletePayment() {
	id := c.Ctx.Param("id")
	paymentID, err := strconv.Atoi(id)
	if err != nil {
		response.ParamError(c.Ctx, "无效的缴费记录ID")
		return
	}

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	if err := paymentService.DeletePayment(uint(paymentID)); err != nil {
		c.failPayment(err)
		return
	}

	response.Success(c.Ctx, nil)
}

// 7. SearchPayments 搜索缴费记录
// @Summary 搜索缴费记录
// @Description 按住户、费用项、状态、方式、周期或日期范围组合查询缴费记录
// @Tags Payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param household_id query int false "住户ID"
// @Param fee_id query int false "费用项ID"
// @Param apartment_number query string false "房号，模糊匹配"
// @Param fee_name query string false "费用名称，模糊匹配"
// @Param fee_type query string false "费用类型"
// @Param status query string false "状态: paid, pending, overdue, refunded"
// @Param method query string false "缴费方式: cash, bank_transfer, other"
// @Param period query string false "缴费周期，格式 YYYY-MM"
// @Param start_date query string false "收款起始日期，格式 YYYY-MM-DD"
// @Param end_date query string false "收款结束日期，格式 YYYY-MM-DD"
// @Param min_amount query number false "最小金额"
// @Param max_amount query number false "最大金额"
// @Param payer_name query string false "缴费人姓名，模糊匹配"
// @Param keyword query string false "跨状态、方式、缴费人和收据号的关键字"
// @Param page query int false "页码，默认为1"
// @Param page_size query int false "每页条数，默认为10"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /payments/search [get]
func (c *PaymentController) SearchPayments() {
	var query services.PaymentSearchQuery
	if err := c.Ctx.ShouldBindQuery(&query); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的查询参数: "+err.Error(), nil)
		return
	}

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	payments, total, err := paymentService.SearchPayments(&query)
	if err != nil {
		c.failPayment(err)
		return
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        payments,
	})
}

// 8. ExportPayments 导出缴费记录
// @Summary 导出缴费记录
// @Description 将符合条件的缴费记录导出为XLSX文件
// @Tags Payment
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param household_id query int false "住户ID"
// @Param fee_id query int false "费用项ID"
// @Param status query string false "状态"
// @Param period query string false "缴费周期，格式 YYYY-MM"
// @Param start_date query string false "收款起始日期"
// @Param end_date query string false "收款结束日期"
// @Success 200 {file} binary
// @Failure 500 {object} ErrorResponse
// @Router /payments/export [get]
func (c *PaymentController) ExportPayments() {
	var query services.PaymentSearchQuery
	if err := c.Ctx.ShouldBindQuery(&query); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的查询参数: "+err.Error(), nil)
		return
	}
	// 导出不分页
	query.Page = 1
	query.PageSize = 100000

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	payments, _, err := paymentService.SearchPayments(&query)
	if err != nil {
		c.failPayment(err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	headers := []string{"收据号", "房号", "费用项", "缴费周期", "金额", "收款日期", "缴费人", "缴费方式", "状态", "备注"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, p := range payments {
		apartment := ""
		if p.Household != nil {
			apartment = p.Household.ApartmentNumber
		}
		feeName := ""
		if p.Fee != nil {
			feeName = p.Fee.Name
		}
		period := ""
		if p.Period != nil {
			period = p.Period.Format("2006-01")
		}

		values := []interface{}{
			p.ReceiptNo,
			apartment,
			feeName,
			period,
			p.Amount,
			p.PaymentDate.Format("2006-01-02"),
			p.PayerName,
			p.Method,
			p.Status,
			p.Note,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "D", 14)
	f.SetColWidth(sheet, "F", "F", 14)

	filename := fmt.Sprintf("payments_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Ctx.Header("Content-Disposition", "attachment; filename="+filename)

	if err := f.Write(c.Ctx.Writer); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUnknown, "导出文件失败: "+err.Error(), nil)
		return
	}
}

// listByQuery 按查询条件分页返回缴费记录，供按住户/费用项列表复用
func (c *PaymentController) listByQuery(query *services.PaymentSearchQuery) {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	query.Page = page
	query.PageSize = pageSize

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	payments, total, err := paymentService.SearchPayments(query)
	if err != nil {
		c.failPayment(err)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        payments,
	})
}

// 9. GetPaymentsByHousehold 获取某住户的缴费记录
// @Summary 获取住户缴费记录
// @Description 获取指定住户的所有缴费记录，按收款日期倒序
// @Tags Payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "住户ID"
// @Param page query int false "页码，默认为1"
// @Param page_size query int false "每页条数，默认为10"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /payments/household/{id} [get]
func (c *PaymentController) GetPaymentsByHousehold() {
	id := c.Ctx.Param("id")
	householdID, err := strconv.Atoi(id)
	if err != nil {
		response.ParamError(c.Ctx, "无效的住户ID")
		return
	}

	c.listByQuery(&services.PaymentSearchQuery{HouseholdID: uint(householdID)})
}

// 10. GetPaymentsByFee 获取某费用项的缴费记录
// @Summary 获取费用项缴费记录
// @Description 获取指定费用项的所有缴费记录，按收款日期倒序
// @Tags Payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "费用项ID"
// @Param page query int false "页码，默认为1"
// @Param page_size query int false "每页条数，默认为10"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /payments/fee/{id} [get]
func (c *PaymentController) GetPaymentsByFee() {
	id := c.Ctx.Param("id")
	feeID, err := strconv.Atoi(id)
	if err != nil {
		response.ParamError(c.Ctx, "无效的费用项ID")
		return
	}

	c.listByQuery(&services.PaymentSearchQuery{FeeID: uint(feeID)})
}

// 11. GetStatusSummary 获取缴费状态汇总
// @Summary 获取缴费状态汇总
// @Description 统计已缴、即将到期（7天内）和逾期的记录数
// @Tags Payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param current_month query bool false "是否仅统计当月"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /payments/summary/status [get]
func (c *PaymentController) GetStatusSummary() {
	currentMonthOnly := c.Ctx.DefaultQuery("current_month", "false") == "true"

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	summary, err := paymentService.GetStatusSummary(currentMonthOnly)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取状态汇总失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, summary)
}

// 12. GetRevenueSummary 获取收入汇总
// @Summary 获取收入汇总
// @Description 按费用项名称统计已缴金额
// @Tags Payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param current_month query bool false "是否仅统计当月"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /payments/summary/revenue [get]
func (c *PaymentController) GetRevenueSummary() {
	currentMonthOnly := c.Ctx.DefaultQuery("current_month", "false") == "true"

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	totals, err := paymentService.GetRevenueSummary(currentMonthOnly)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取收入汇总失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, totals)
}
