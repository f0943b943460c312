package http

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

const (
	statusError = "error"

	passwordSymbols = "!@#$%^&*("
)

// newValidator returns a validator reporting json field names and knowing
// the password tag.
func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration with a fixed tag and function cannot fail.
	_ = validate.RegisterValidation("password", validatePassword)
	_ = validate.RegisterValidation("maxbytes", validateMaxBytes)

	return validate
}

// validatePassword requires at least one upper case letter, one lower case
// letter, one digit and one of passwordSymbols.
func validatePassword(fl validator.FieldLevel) bool {
	var upper, lower, digit, symbol bool

	for _, c := range fl.Field().String() {
		switch {
		case unicode.IsUpper(c):
			upper = true
		case unicode.IsLower(c):
			lower = true
		case unicode.IsDigit(c):
			digit = true
		case strings.ContainsRune(passwordSymbols, c):
			symbol = true
		}
	}

	return upper && lower && digit && symbol
}

// validateMaxBytes bounds the encoded length of a string. Unlike max it
// counts bytes, which is what bcrypt limits.
func validateMaxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	return len(fl.Field().String()) <= limit
}

type registerRequest struct {
	Username       string `json:"username" validate:"required,min=3,max=50"`
	Password       string `json:"password" validate:"required,min=8,maxbytes=72,password"`
	RepeatPassword string `json:"repeat_password" validate:"required,eqfield=Password"`
	profileRequest
}

func (req registerRequest) toEntity() entity.Registration {
	return entity.Registration{
		Username: req.Username,
		Password: req.Password,
		Profile:  req.profileRequest.toEntity(),
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type profileRequest struct {
	FirstName string `json:"first_name" validate:"required,min=2,max=35"`
	LastName  string `json:"last_name" validate:"required,min=2,max=35"`
	Email     string `json:"email" validate:"required,email,min=6,max=320"`
	Phone     string `json:"phone" validate:"omitempty,min=2,max=35"`
	Website   string `json:"website" validate:"omitempty,url,min=10"`
}

func (req profileRequest) toEntity() entity.Profile {
	return entity.Profile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Website:   req.Website,
	}
}

type urlRequest struct {
	OriginalURL string `json:"original_url" validate:"required,url"`
}

const searchQueryRules = "required,min=2,max=50"

type urlResponse struct {
	ID          int64     `json:"id"`
	ShortCode   string    `json:"short_code"`
	OriginalURL string    `json:"original_url"`
	Clicks      int64     `json:"clicks"`
	CreatedAt   time.Time `json:"created_at"`
}

func toURLResponse(url *entity.URL) urlResponse {
	return urlResponse{
		ID:          url.ID,
		ShortCode:   url.ShortCode,
		OriginalURL: url.OriginalURL,
		Clicks:      url.Clicks,
		CreatedAt:   url.CreatedAt,
	}
}

func toURLResponses(urls []entity.URL) []urlResponse {
	res := make([]urlResponse, 0, len(urls))
	for i := range urls {
		res = append(res, toURLResponse(&urls[i]))
	}
	return res
}

type searchResultResponse struct {
	ShortCode   string `json:"short_code"`
	OriginalURL string `json:"original_url"`
	Clicks      int64  `json:"clicks"`
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
}

func toSearchResultResponses(results []entity.SearchResult) []searchResultResponse {
	res := make([]searchResultResponse, 0, len(results))
	for _, r := range results {
		res = append(res, searchResultResponse(r))
	}
	return res
}

// userResponse is the private view of an account, shown only to its owner.
type userResponse struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	Website     string     `json:"website,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toUserResponse(user *entity.User) userResponse {
	return userResponse{
		ID:          user.ID,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		Phone:       user.Phone,
		Website:     user.Website,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

type userStatsResponse struct {
	URLs   int64 `json:"urls"`
	Clicks int64 `json:"clicks"`
}

type meResponse struct {
	userResponse
	Stats userStatsResponse `json:"stats"`
}

// publicUserResponse is what anyone can see of an account.
type publicUserResponse struct {
	ID        int64         `json:"id"`
	Username  string        `json:"username"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Website   string        `json:"website,omitempty"`
	URLs      []urlResponse `json:"urls"`
}

func toPublicUserResponse(user *entity.User, urls []entity.URL) publicUserResponse {
	return publicUserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Website:   user.Website,
		URLs:      toURLResponses(urls),
	}
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Status           string            `json:"status"`
	Message          string            `json:"message"`
	RemainingMinutes int               `json:"remaining_minutes,omitempty"`
	Errors           []validationError `json:"errors,omitempty"`
}

var (
	emptyRequestBodyResponse = errorResponse{
		Status:  statusError,
		Message: "empty request body",
	}

	invalidRequestBodyResponse = errorResponse{
		Status:  statusError,
		Message: "invalid request body",
	}

	invalidURLResponse = errorResponse{
		Status:  statusError,
		Message: "invalid url",
	}

	urlNotFoundResponse = errorResponse{
		Status:  statusError,
		Message: "url not found",
	}

	userNotFoundResponse = errorResponse{
		Status:  statusError,
		Message: "user not found",
	}

	usernameExistsResponse = errorResponse{
		Status:  statusError,
		Message: "username already taken",
	}

	emailExistsResponse = errorResponse{
		Status:  statusError,
		Message: "email already taken",
	}

	invalidCredentialsResponse = errorResponse{
		Status:  statusError,
		Message: "invalid credentials",
	}

	unauthorizedResponse = errorResponse{
		Status:  statusError,
		Message: "authentication required",
	}

	serverErrorResponse = errorResponse{
		Status:  statusError,
		Message: "server error occurred",
	}
)

func accountLockedResponse(minutes int) errorResponse {
	return errorResponse{
		Status:           statusError,
		Message:          fmt.Sprintf("account locked, try again in %d minutes", minutes),
		RemainingMinutes: minutes,
	}
}

func messageForError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "url":
		return "invalid url"
	case "email":
		return "invalid email"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "maxbytes":
		return fmt.Sprintf("must be at most %s bytes long", fe.Param())
	case "eqfield":
		return "passwords must match"
	case "password":
		return "must contain an upper case letter, a lower case letter, a digit and one of " + passwordSymbols
	default:
		return "invalid value"
	}
}

func getValidationErrors(err error, field string) []validationError {
	var validationErrs []validationError

	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		for _, e := range errs {
			name := e.Field()
			if name == "" {
				name = field
			}

			validationErrs = append(validationErrs, validationError{
				Field:   name,
				Message: messageForError(e),
			})
		}
	}

	return validationErrs
}

// validationErrorResponse builds the response for err. field names the value
// for errors produced by validate.Var, which carry no field of their own.
func validationErrorResponse(err error, field string) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: "validation error",
		Errors:  getValidationErrors(err, field),
	}
}
