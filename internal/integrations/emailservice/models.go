package emailservice

// Config параметры email API (EmailJS-совместимый REST)
type Config struct {
	URL        string
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
	AdminEmail string
}

// SendRequest тело запроса к email API
type SendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	AccessToken    string         `json:"accessToken,omitempty"`
	TemplateParams TemplateParams `json:"template_params"`
}

// TemplateParams параметры шаблона письма о бронировании
type TemplateParams struct {
	ToEmail        string `json:"to_email"`
	FromName       string `json:"from_name"`
	BookingType    string `json:"booking_type"`
	RoomName       string `json:"room_name"`
	StudentName    string `json:"student_name"`
	StudentID      string `json:"student_id"`
	BookingDate    string `json:"booking_date"`
	TimeSlot       string `json:"time_slot"`
	BookingDetails string `json:"booking_details"`
}
