// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"roster/internal/delivery/http/middleware"
	"roster/internal/delivery/http/response"
	"roster/internal/domain/entity"
	"roster/internal/domain/repository"
	"roster/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// memberView is the outward-facing shape of a member. The password hash
// never appears in a response.
type memberView struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Address   string      `json:"address"`
	Role      entity.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func memberViewOf(m *entity.Member) memberView {
	return memberView{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		Address:   m.Address,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// pageView is the outward-facing shape of one admin listing page.
type pageView struct {
	Items      []memberView `json:"items"`
	TotalCount int64        `json:"totalCount"`
	Page       int          `json:"page"`
	Size       int          `json:"size"`
	TotalPages int          `json:"totalPages"`
}

func pageViewOf(p *repository.Page) pageView {
	items := make([]memberView, 0, len(p.Items))
	for _, m := range p.Items {
		items = append(items, memberViewOf(m))
	}

	return pageView{
		Items:      items,
		TotalCount: p.TotalCount,
		Page:       p.Page,
		Size:       p.Size,
		TotalPages: p.TotalPages(),
	}
}

// MemberHandler holds dependencies for member-related handlers.
type MemberHandler struct {
	members  usecase.MemberUsecase
	sessions usecase.SessionUsecase
	logger   *slog.Logger
}

// NewMemberHandler is the constructor for MemberHandler, injected by Fx.
func NewMemberHandler(members usecase.MemberUsecase, sessions usecase.SessionUsecase, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{
		members:  members,
		sessions: sessions,
		logger:   logger,
	}
}

// Register handles the member registration request.
func (h *MemberHandler) Register(c echo.Context) error {
	// Bind leaves input nil on an empty body, so the nil check is part of
	// the binding validation.
	var input *usecase.RegisterInput
	if err := c.Bind(&input); err != nil || input == nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	member, err := h.members.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, memberViewOf(member), "Member registered successfully")
}

// Login handles the member login request.
func (h *MemberHandler) Login(c echo.Context) error {
	var input *usecase.LoginInput
	if err := c.Bind(&input); err != nil || input == nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.sessions.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	data := map[string]any{
		"accessToken": output.AccessToken,
		"member":      memberViewOf(output.Member),
	}

	return response.Success(c, http.StatusOK, data, "Login successful")
}

// GetProfile returns the authenticated member's own profile.
func (h *MemberHandler) GetProfile(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid identity in token")
	}

	member, err := h.members.GetMember(c.Request().Context(), actor.MemberID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, memberViewOf(member), "Profile retrieved successfully")
}

// verifyPasswordRequest carries the candidate password to check.
type verifyPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// VerifyPassword reports whether the supplied password matches the
// authenticated member's stored one. It never mutates state.
func (h *MemberHandler) VerifyPassword(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid identity in token")
	}

	var input *verifyPasswordRequest
	if err := c.Bind(&input); err != nil || input == nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	match, err := h.members.VerifyPassword(c.Request().Context(), actor.MemberID, input.Password)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"match": match}, "Password verification completed")
}

// UpdateProfile handles the member's self-service profile update.
func (h *MemberHandler) UpdateProfile(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid identity in token")
	}

	var input *usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil || input == nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	member, err := h.members.UpdateProfile(c.Request().Context(), actor.MemberID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, memberViewOf(member), "Profile updated successfully")
}

// DeleteAccount removes the authenticated member's own account.
func (h *MemberHandler) DeleteAccount(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid identity in token")
	}

	if err := h.members.Delete(c.Request().Context(), actor, actor.MemberID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"id": actor.MemberID.String()}, "Member deleted successfully")
}

// SearchMembers returns one page of the administrative member listing.
// Filters (name, email, role) and paging (page, size) come as query params.
func (h *MemberHandler) SearchMembers(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid identity in token")
	}

	filter := repository.SearchFilter{
		Name:  c.QueryParam("name"),
		Email: c.QueryParam("email"),
	}
	if roleParam := c.QueryParam("role"); roleParam != "" {
		role, valid := entity.RoleFromString(roleParam)
		if !valid {
			return response.BadRequest(c, "INVALID_INPUT", "Unknown role filter: "+roleParam)
		}
		filter.Role = role
	}

	page, err := queryInt(c, "page", 0)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid page number")
	}
	size, err := queryInt(c, "size", 0)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid page size")
	}

	result, err := h.members.SearchAdminPage(c.Request().Context(), actor, filter, repository.PageRequest{
		Page: page,
		Size: size,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, pageViewOf(result), "Members retrieved successfully")
}

// AdminUpdateMember applies an administrative patch to the member in the path.
func (h *MemberHandler) AdminUpdateMember(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid identity in token")
	}

	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid member id")
	}

	var patch *usecase.AdminPatch
	if err := c.Bind(&patch); err != nil || patch == nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid patch input")
	}
	if err := c.Validate(patch); err != nil {
		return errors.WithStack(err)
	}

	updatedID, err := h.members.AdminUpdate(c.Request().Context(), actor, memberID, patch)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"id": updatedID.String()}, "Member updated successfully")
}

// AdminDeleteMember removes the member in the path.
func (h *MemberHandler) AdminDeleteMember(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid identity in token")
	}

	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid member id")
	}

	if err := h.members.Delete(c.Request().Context(), actor, memberID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"id": memberID.String()}, "Member deleted successfully")
}

// queryInt parses an optional integer query parameter.
func queryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s parameter", name)
	}

	return value, nil
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
