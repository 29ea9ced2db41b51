package dto

// LoginRequest represents the JSON request body for the login endpoint.
//
// @Description Instructor sign-in
// @Example {"email": "instructor@example.edu", "password": "correct horse"}
type LoginRequest struct {
	// Email is the instructor's email address.
	Email string `json:"email" binding:"required,email" example:"instructor@example.edu"`
	// Password is the instructor's password.
	Password string `json:"password" binding:"required,min=8" example:"correct horse"`
} // @name LoginRequest

// Validate performs custom validation on the login request.
func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if len(r.Password) < 8 {
		return &ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// TokenPair carries the issued access token. There are no refresh tokens;
// instructors sign in again when the token expires.
type TokenPair struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"` // seconds
}

// Claims are the application claims carried by an access token.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResponse represents the JSON response body for the login endpoint.
//
// @Description Successful sign-in with a bearer token
type LoginResponse struct {
	AccessToken string             `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresIn   int64              `json:"expires_in" example:"3600"`
	Instructor  InstructorResponse `json:"instructor"`
} // @name LoginResponse

// InstructorResponse describes the signed-in instructor.
type InstructorResponse struct {
	Email string `json:"email" example:"instructor@example.edu"`
	Role  string `json:"role" example:"instructor"`
} // @name InstructorResponse
