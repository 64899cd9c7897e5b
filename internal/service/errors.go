package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	RequestTimeout      = 408
	Conflict            = 409
	InternalServerError = 500
	BadGateway          = 502
)

var (
	ErrParamInvalid           = errors.New("参数错误")
	ErrNotLoggedIn            = errors.New("请先登录")
	ErrUserNotFound           = errors.New("用户不存在")
	ErrMerchantNotFound       = errors.New("商家不存在")
	ErrPostNotFound           = errors.New("帖子不存在")
	ErrInvalidReactionType    = errors.New("无效的反应类型")
	ErrRatingOutOfRange       = errors.New("评分必须在1-5之间")
	ErrCommentEmpty           = errors.New("评论内容不能为空")
	ErrCommentTooLong         = errors.New("评论内容不能超过1000字符")
	ErrTitleTooShort          = errors.New("标题至少需要3个字符")
	ErrContentTooShort        = errors.New("内容至少需要15个字符")
	ErrAlreadyReacted         = errors.New("您已经对此商家做出过反应")
	ErrAlreadyMerchant        = errors.New("您已是商家，无法重复申请")
	ErrApplyInProgress        = errors.New("申请处理中，请勿重复提交")
	ErrActionDuplicate        = errors.New("重复操作")
	ErrFileNotSupported       = errors.New("不支持的文件类型")
	ErrImageMissing           = errors.New("请求参数错误：缺少图片数据（文件或 base64）")
	ErrImageInvalidBase64     = errors.New("无效的 base64 图片数据格式")
	ErrImageHostNotConfigured = errors.New("服务器配置错误：未找到 API 密钥")
	ErrUploadTimeout          = errors.New("上传超时，请稍后重试")
	ErrUploadFailed           = errors.New("图片上传失败")
	ErrSysBoxNotFound         = errors.New("系统通知不存在")
	ErrSearchUnavailable      = errors.New("搜索服务不可用")
	UnExpectedError           = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:           BadRequest,
	ErrNotLoggedIn:            Unauthorized,
	ErrUserNotFound:           NotFound,
	ErrMerchantNotFound:       NotFound,
	ErrPostNotFound:           NotFound,
	ErrInvalidReactionType:    BadRequest,
	ErrRatingOutOfRange:       BadRequest,
	ErrCommentEmpty:           BadRequest,
	ErrCommentTooLong:         BadRequest,
	ErrTitleTooShort:          BadRequest,
	ErrContentTooShort:        BadRequest,
	ErrAlreadyReacted:         Conflict,
	ErrAlreadyMerchant:        BadRequest,
	ErrApplyInProgress:        Conflict,
	ErrActionDuplicate:        Conflict,
	ErrFileNotSupported:       BadRequest,
	ErrImageMissing:           BadRequest,
	ErrImageInvalidBase64:     BadRequest,
	ErrImageHostNotConfigured: InternalServerError,
	ErrUploadTimeout:          RequestTimeout,
	ErrUploadFailed:           BadGateway,
	ErrSysBoxNotFound:         NotFound,
	ErrSearchUnavailable:      InternalServerError,
	UnExpectedError:           InternalServerError,
}

// StatusOf 解析（可能被包装的）业务错误对应的 HTTP 状态码
func StatusOf(err error) (error, int, bool) {
	for known, code := range ErrorMap {
		if errors.Is(err, known) {
			return known, code, true
		}
	}
	return nil, InternalServerError, false
}
