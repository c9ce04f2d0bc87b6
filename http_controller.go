package auth

import (
	"errors"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
)

// SignupRequest payload
type SignupRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
	Nickname string `form:"nickname" json:"nickname"`
}

// LoginRequest payload
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// TokenResponse is the login success body.
type TokenResponse struct {
	Token string `json:"token"`
}

// Controller exposes the signup, login, and current-user endpoints.
type Controller struct {
	Validator *CredentialValidator
	Users     Users
	Tokens    *TokenService
	Hasher    PasswordAuthenticator
	Logger    Logger
}

type ControllerOption func(*Controller) *Controller

// NewController creates the HTTP controller with its default collaborators.
func NewController(users Users, tokens *TokenService, opts ...ControllerOption) *Controller {
	c := &Controller{
		Users:     users,
		Tokens:    tokens,
		Validator: NewCredentialValidator(users),
		Hasher:    NewPasswordAuthenticator(),
		Logger:    defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Users == nil {
		panic("Missing Users repository in auth controller...")
	}

	if c.Tokens == nil {
		panic("Missing TokenService in auth controller...")
	}

	return c
}

func WithControllerLogger(l Logger) ControllerOption {
	return func(c *Controller) *Controller {
		if l != nil {
			c.Logger = l
			c.Validator = c.Validator.WithLogger(l)
		}
		return c
	}
}

func WithControllerHasher(h PasswordAuthenticator) ControllerOption {
	return func(c *Controller) *Controller {
		if h != nil {
			c.Hasher = h
			c.Validator = c.Validator.WithPasswordAuthenticator(h)
		}
		return c
	}
}

// Signup handles POST /signup.
func (a *Controller) Signup(c *fiber.Ctx) error {
	payload := new(SignupRequest)
	if err := c.BodyParser(payload); err != nil {
		return ErrInvalidPayload
	}

	validated, err := a.Validator.ValidateSignup(c.UserContext(), payload.Username, payload.Password, payload.Nickname)
	if err != nil {
		return err
	}

	hash, err := a.Hasher.HashPassword(validated.Password)
	if err != nil {
		return err
	}

	user, err := a.Users.Create(c.UserContext(), NewUser(validated.Username, validated.Nickname, hash))
	if err != nil {
		return err
	}

	a.Logger.Info("registered user %s", user.Username)

	return c.Status(fiber.StatusCreated).JSON(user.Info())
}

// Login handles POST /login.
func (a *Controller) Login(c *fiber.Ctx) error {
	payload := new(LoginRequest)
	if err := c.BodyParser(payload); err != nil {
		return ErrInvalidPayload
	}

	if err := payload.Validate(); err != nil {
		return ErrMissingField
	}

	user, err := a.Validator.ValidateLogin(c.UserContext(), payload.Username, payload.Password)
	if err != nil {
		return err
	}

	token, err := a.Tokens.Issue(IdentityFromUser(user))
	if err != nil {
		return err
	}

	return c.JSON(TokenResponse{Token: token})
}

// CurrentUser handles GET /user. The gate middleware has already resolved
// and attached the user; not finding one here is a wiring bug, not a
// client error.
func (a *Controller) CurrentUser(c *fiber.Ctx) error {
	user, ok := UserFromFiber(c)
	if !ok {
		a.Logger.Error("protected handler reached without a resolved user")
		return ErrServer
	}

	return c.JSON(user.Info())
}

// Healthcheck handles GET /healthz.
func (a *Controller) Healthcheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// RegisterAuthRoutes mounts the endpoints. Only /user sits behind the gate;
// the public routes bypass it entirely.
func RegisterAuthRoutes(app *fiber.App, controller *Controller, gate *Gate) {
	app.Post("/signup", controller.Signup).Name("signup.post")
	app.Post("/login", controller.Login).Name("login.post")
	app.Get("/user", gate.Protected(), controller.CurrentUser).Name("user.get")
	app.Get("/healthz", controller.Healthcheck).Name("healthz.get")
}

// NewApp builds a fiber app whose error handler applies Map at the
// response boundary, so no internal error leaves the system unshaped.
func NewApp(logger Logger) *fiber.App {
	if logger == nil {
		logger = defLogger{}
	}
	return fiber.New(fiber.Config{
		AppName:               "authsvc",
		DisableStartupMessage: true,
		ErrorHandler:          NewErrorHandler(logger),
	})
}

// NewErrorHandler returns the boundary error handler. Framework-level
// *fiber.Error values below 500 keep their status with a code derived from
// the status text; everything else goes through Map.
func NewErrorHandler(logger Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code < http.StatusInternalServerError {
			return c.Status(fe.Code).JSON(errorBody(&Error{
				Code:    statusCode(fe.Code),
				Message: fe.Message,
				Status:  fe.Code,
			}))
		}

		e := Map(err)
		if e == ErrServer {
			logger.Error("unhandled error: %v", err)
		}

		return c.Status(e.Status).JSON(errorBody(e))
	}
}

func errorBody(e *Error) fiber.Map {
	return fiber.Map{"error": e}
}

func statusCode(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}
