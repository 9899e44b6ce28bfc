package userservice

// Student профиль студента из UserService
type Student struct {
	UserID    int64  `json:"user_id"`
	StudentID string `json:"student_id"` // номер студенческого
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
