package member

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/storekit/backoffice/auth"
	"github.com/storekit/backoffice/response"
)

// SignUpRequest payload
type SignUpRequest struct {
	Email     string `json:"email" form:"email"`
	Password  string `json:"password" form:"password"`
	Name      string `json:"name" form:"name"`
	StoreName string `json:"store_name" form:"store_name"`
	Role      string `json:"role" form:"role"`
}

// Validate will run validation rules
func (r SignUpRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.StoreName, validation.Required),
		validation.Field(&r.Role, validation.Required, validation.In(
			CapabilityFranchisee,
			CapabilityFranchiseOwner,
		)),
	)
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// TokenResponse is the login boundary payload: the bearer token and its
// declared TTL.
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

// Controller exposes signup and login over HTTP.
type Controller struct {
	service *Service
	auther  auth.Authenticator
	ttl     int64
	logger  auth.Logger
}

// NewController builds the member HTTP controller. ttlSeconds is the
// declared token lifetime reported to clients.
func NewController(service *Service, auther auth.Authenticator, ttlSeconds int64) *Controller {
	return &Controller{
		service: service,
		auther:  auther,
		ttl:     ttlSeconds,
		logger:  auth.NopLogger(),
	}
}

func (ctrl *Controller) WithLogger(logger auth.Logger) *Controller {
	ctrl.logger = logger
	return ctrl
}

// RegisterRoutes mounts the member endpoints. Both are public by policy;
// the rule table leaves /member untouched on purpose.
func (ctrl *Controller) RegisterRoutes(app fiber.Router) {
	app.Post("/member/signup", ctrl.SignUp)
	app.Post("/member/login", ctrl.Login)
}

// SignUp handles POST /member/signup.
func (ctrl *Controller) SignUp(c *fiber.Ctx) error {
	payload := new(SignUpRequest)
	if err := c.BodyParser(payload); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "could not parse request body")
	}

	if err := payload.Validate(); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	if _, err := ctrl.service.SignUp(c.UserContext(), SignUpMessage{
		Email:     payload.Email,
		Password:  payload.Password,
		Name:      payload.Name,
		StoreName: payload.StoreName,
		Role:      payload.Role,
	}); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return response.Fail(c, fiber.StatusConflict, ErrDuplicateEmail.Message)
		}
		ctrl.logger.Error("SignUp failed", "error", err)
		return response.Fail(c, fiber.StatusInternalServerError, "could not complete signup")
	}

	return response.Message(c, "signup complete")
}

// Login handles POST /member/login. Every credential failure answers with
// the same opaque 401.
func (ctrl *Controller) Login(c *fiber.Ctx) error {
	payload := new(LoginRequest)
	if err := c.BodyParser(payload); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "could not parse request body")
	}

	if err := payload.Validate(); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	token, err := ctrl.auther.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		ctrl.logger.Info("Login rejected", "email", payload.Email)
		return response.Fail(c, fiber.StatusUnauthorized, auth.ErrLoginFailed.Message)
	}

	return response.OK(c, TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: ctrl.ttl,
	})
}
