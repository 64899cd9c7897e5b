package consts

const (
	MimePrefixImage = "image"
)

// 商家申请的缺省值
const (
	MerchantSlugPrefix  = "merchant-"
	MerchantSlugIDLen   = 12
	DefaultMerchantName = "商家"
	DefaultAvatarColor  = "#0ea5e9"
)

// ContextUserID gin.Context 中的用户 ID
const ContextUserID = "user_id"
