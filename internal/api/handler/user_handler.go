package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emotional-truth/portal-api/internal/api/metrics"
	"github.com/emotional-truth/portal-api/internal/core/domain"
	"github.com/emotional-truth/portal-api/internal/core/ports"
)

// UserHandler serves the admin user management panel.
type UserHandler struct {
	accounts ports.AccountService
}

func NewUserHandler(accounts ports.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

type userRequest struct {
	Username  string   `json:"username" validate:"required"`
	Password  string   `json:"password"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email" validate:"required,email"`
	Role      string   `json:"role" validate:"omitempty,oneof=admin user"`
	VideoURLs []string `json:"video_urls"`
	AvatarURL string   `json:"avatar_url"`
}

func (r userRequest) toDomain() domain.User {
	return domain.User{
		Username:  r.Username,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Role:      r.Role,
		VideoURLs: r.VideoURLs,
		AvatarURL: r.AvatarURL,
	}
}

// List returns the cached user list, passwords stripped.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.User
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.accounts.Users())
}

// Create adds a user account.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      userRequest  true  "User details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.accounts.AddUser(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	metrics.MutationsTotal.WithLabelValues("user", "add").Inc()
	return c.JSON(http.StatusCreated, created)
}

// Update rewrites a user by id. An empty password field leaves the stored
// password untouched.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "User id"
// @Param        body  body      userRequest  true  "User details"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	_, sessionID, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req userRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := req.toDomain()
	user.ID = c.Param("id")

	updated, err := h.accounts.UpdateUser(c.Request().Context(), sessionID, user)
	if err != nil {
		return err
	}
	metrics.MutationsTotal.WithLabelValues("user", "update").Inc()
	return c.JSON(http.StatusOK, updated)
}

// Delete removes a user by id. Deleting your own account is rejected: the
// admin row stays reachable from the UI by convention.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204  "user deleted"
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if id == actor.ID {
		return echo.NewHTTPError(http.StatusConflict, "cannot delete the signed-in account")
	}

	if err := h.accounts.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	metrics.MutationsTotal.WithLabelValues("user", "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
