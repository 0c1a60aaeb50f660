package controllers

import (
	"bluemoon-fee-service/internal/domain/services"
	"bluemoon-fee-service/internal/domain/services/container"
	"bluemoon-fee-service/internal/error/code"
	"bluemoon-fee-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceStatisticController 定义统计控制器接口
type InterfaceStatisticController interface {
	GetDashboard()
}

// StatisticController 处理仪表盘统计请求
type StatisticController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewStatisticController 创建一个新的统计控制器
func NewStatisticController(ctx *gin.Context, container *container.ServiceContainer) *StatisticController {
	return &StatisticController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleStatisticFunc 返回一个处理统计请求的Gin处理函数
func HandleStatisticFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewStatisticController(ctx, container)

		switch method {
		case "getDashboard":
			controller.GetDashboard()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetDashboard 获取仪表盘数据
// @Summary 获取仪表盘数据
// @Description 聚合住户/居民数量、近6个月收入走势、缴费状态分布和最近缴费记录
// @Tags Statistic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /statistics/dashboard [get]
func (c *StatisticController) GetDashboard() {
	statisticService := c.Container.GetService("statistic").(services.InterfaceStatisticService)
	stats, err := statisticService.GetDashboardStats()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取仪表盘数据失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, stats)
}
