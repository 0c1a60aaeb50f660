package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:         "成功",
	ErrUnknown:         "未知错误",
	ErrBind:            "请求参数绑定错误",
	ErrValidation:      "请求参数验证错误",
	ErrTokenInvalid:    "无效的认证令牌",
	ErrTooManyRequests: "请求频率过高",

	// 用户相关错误码
	ErrUserNotFound:          "用户不存在",
	ErrUserAlreadyExist:      "用户已存在",
	ErrUserPasswordIncorrect: "用户密码错误",

	// 户号相关错误码
	ErrHouseholdNotFound:     "户号不存在",
	ErrHouseholdAlreadyExist: "户号已存在",
	ErrHouseholdHasPayments:  "该户号存在缴费记录，无法删除",

	// 住户相关错误码
	ErrResidentNotFound:     "住户不存在",
	ErrResidentAlreadyExist: "住户已存在",

	// 费用相关错误码
	ErrFeeNotFound:     "费用项不存在",
	ErrFeeAlreadyExist: "费用项已存在",
	ErrFeeInactive:     "费用项已停用",

	// 缴费相关错误码
	ErrPaymentNotFound:      "缴费记录不存在",
	ErrPaymentDuplicate:     "该户号在此缴费周期内已缴纳该费用",
	ErrPaymentInvalidPeriod: "缴费周期格式无效",
	ErrPaymentRefunded:      "缴费记录已退款，无法修改",

	// 数据库相关错误码
	ErrDatabase:       "数据库错误",
	ErrRecordNotFound: "记录不存在",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,

	// 用户相关错误码
	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusBadRequest,
	ErrUserPasswordIncorrect: StatusUnauthorized,

	// 户号相关错误码
	ErrHouseholdNotFound:     StatusNotFound,
	ErrHouseholdAlreadyExist: StatusBadRequest,
	ErrHouseholdHasPayments:  StatusBadRequest,

	// 住户相关错误码
	ErrResidentNotFound:     StatusNotFound,
	ErrResidentAlreadyExist: StatusBadRequest,

	// 费用相关错误码
	ErrFeeNotFound:     StatusNotFound,
	ErrFeeAlreadyExist: StatusBadRequest,
	ErrFeeInactive:     StatusBadRequest,

	// 缴费相关错误码
	ErrPaymentNotFound:      StatusNotFound,
	ErrPaymentDuplicate:     StatusConflict,
	ErrPaymentInvalidPeriod: StatusBadRequest,
	ErrPaymentRefunded:      StatusBadRequest,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "未知错误"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
