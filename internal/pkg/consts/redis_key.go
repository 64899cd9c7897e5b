package consts

const (
	TokenRevokedKey       = "auth:revoked:"
	PostViewPendingKey    = "post:view:pending"
	PostViewProcessingKey = "post:view:pending:processing"
)

const (
	MerchantApplyLock = "lock:merchant:apply:"
	ViewFlushLock     = "lock:job:view_flush"
)
