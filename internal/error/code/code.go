package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusConflict - 409: 资源冲突.
	StatusConflict = 409
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
)

// 用户相关错误码 (101xxx).
const (
	// ErrUserNotFound - 404: 用户不存在.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 400: 用户已存在.
	ErrUserAlreadyExist
	// ErrUserPasswordIncorrect - 401: 用户密码错误.
	ErrUserPasswordIncorrect
)

// 户号相关错误码 (102xxx).
const (
	// ErrHouseholdNotFound - 404: 户号不存在.
	ErrHouseholdNotFound int = iota + 102000
	// ErrHouseholdAlreadyExist - 400: 户号已存在.
	ErrHouseholdAlreadyExist
	// ErrHouseholdHasPayments - 400: 户号存在缴费记录，无法删除.
	ErrHouseholdHasPayments
)

// 住户相关错误码 (103xxx).
const (
	// ErrResidentNotFound - 404: 住户不存在.
	ErrResidentNotFound int = iota + 103000
	// ErrResidentAlreadyExist - 400: 住户已存在.
	ErrResidentAlreadyExist
)

// 费用相关错误码 (104xxx).
const (
	// ErrFeeNotFound - 404: 费用项不存在.
	ErrFeeNotFound int = iota + 104000
	// ErrFeeAlreadyExist - 400: 费用项已存在.
	ErrFeeAlreadyExist
	// ErrFeeInactive - 400: 费用项已停用.
	ErrFeeInactive
)

// 缴费相关错误码 (105xxx).
const (
	// ErrPaymentNotFound - 404: 缴费记录不存在.
	ErrPaymentNotFound int = iota + 105000
	// ErrPaymentDuplicate - 409: 该户号在此缴费周期内已缴纳该费用.
	ErrPaymentDuplicate
	// ErrPaymentInvalidPeriod - 400: 缴费周期格式无效.
	ErrPaymentInvalidPeriod
	// ErrPaymentRefunded - 400: 缴费记录已退款，无法修改.
	ErrPaymentRefunded
)

// 数据库相关错误码 (106xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 106000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)
