package types

const (
	ContextUserKey      = "user"
	ContextRequestIDKey = "request_id"
	RequestIDHeader     = "X-Request-ID"
)

type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}
