package handler

// errorEnvelope is the standard error shape returned on all 4xx/5xx
// responses, regardless of whether the failure originated locally or
// upstream. Error carries extra detail and is omitted when there is none to
// show.
type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// userView is the public projection of a user. It never carries the password
// digest.
type userView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type authResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    userView `json:"user"`
}

type profileResponse struct {
	Status string   `json:"status"`
	User   userView `json:"user"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type renameConversationRequest struct {
	Title string `json:"title"`
}
