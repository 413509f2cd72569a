package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/peoplecore/identity-system/internal/core/domain"
	"github.com/peoplecore/identity-system/internal/core/ports"
)

// AdminHandler handles administrative directory operations. All routes are
// guarded by the Auth and RBAC(Admin) middleware.
type AdminHandler struct {
	adminService ports.AdminService
}

func NewAdminHandler(adminService ports.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// GetByEmail returns the password-free summary of a user.
//
// @Summary      Look a user up by email
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Email address (case-insensitive)"
// @Success      200    {object}  ports.UserSummary
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /v1/admin/users/{email} [get]
func (h *AdminHandler) GetByEmail(c echo.Context) error {
	if _, err := ctxActor(c); err != nil {
		return err
	}

	summary, err := h.adminService.GetUserByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	if summary == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
	}

	return c.JSON(http.StatusOK, summary)
}

// Update applies a partial patch to an existing user.
//
// @Summary      Update a user
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  updateUserRequest  true  "Partial patch; absent fields are left unchanged"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/users [put]
func (h *AdminHandler) Update(c echo.Context) error {
	actorID, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	in := ports.UpdateUserInput{
		ID:           req.ID,
		ActorID:      actorID,
		FullName:     req.FullName,
		Email:        req.Email,
		Password:     req.Password,
		DepartmentID: req.DepartmentID,
		JobTitle:     req.JobTitle,
		IsActive:     req.IsActive,
	}
	if req.Role != nil {
		role, err := domain.ParseRole(*req.Role)
		if err != nil {
			return err
		}
		in.Role = &role
	}

	if err := h.adminService.UpdateUser(c.Request().Context(), in); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Delete removes a user and their role-specific payload.
//
// @Summary      Delete a user
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/users/{id} [delete]
func (h *AdminHandler) Delete(c echo.Context) error {
	actorID, err := ctxActor(c)
	if err != nil {
		return err
	}

	removed, err := h.adminService.DeleteUser(c.Request().Context(), actorID, c.Param("id"))
	if err != nil {
		return err
	}
	if !removed {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
	}

	return c.NoContent(http.StatusNoContent)
}

// AuditTrail lists the most recent audit events for a user.
//
// @Summary      List a user's audit trail
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id     path   string  true   "User id"
// @Param        limit  query  int     false  "Maximum entries (default 50)"
// @Success      200    {array}   domain.AuditEvent
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /v1/admin/users/{id}/audit [get]
func (h *AdminHandler) AuditTrail(c echo.Context) error {
	if _, err := ctxActor(c); err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	events, err := h.adminService.ListAuditTrail(c.Request().Context(), c.Param("id"), limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, events)
}
