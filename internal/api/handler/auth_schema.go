package handler

type registrationData struct {
	Email                string  `json:"email" validate:"required,email,max=254"`
	Password             string  `json:"password" validate:"required,min=8,max=128"`
	PasswordConfirmation string  `json:"password_confirmation" validate:"required"`
	FirstName            string  `json:"first_name" validate:"required,max=150"`
	LastName             string  `json:"last_name" validate:"required,max=150"`
	Patronymic           *string `json:"patronymic" validate:"omitempty,max=150"`
	DepartmentID         int64   `json:"department_id" validate:"required,gt=0"`
}

type registerRequest struct {
	UserData registrationData `json:"user_data" validate:"required"`
}

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Credentials credentials `json:"credentials" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type echoRequest struct {
	Message string `json:"message" validate:"required"`
}
