package globals

type contextKey string

const (
	UserIDKey contextKey = "userId"
	TokenKey  contextKey = "token"
)
