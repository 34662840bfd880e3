package friends

import (
	"binder-backend/internal/middleware"
	"binder-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles friends handlers.
type Handlers struct {
	Service *Service
}

type sendRequestBody struct {
	Username string `json:"username"`
}

// SendRequest POST /api/v1/friends/send-request
func (h *Handlers) SendRequest(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req sendRequestBody
	if err := c.BodyParser(&req); err != nil || req.Username == "" {
		return response.Error(c, "username is required", fiber.StatusBadRequest, nil)
	}

	f, err := h.Service.SendRequest(c.Context(), userID, req.Username)
	if err != nil {
		switch err.Error() {
		case "User not found":
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		case "Cannot friend yourself", "username is required":
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case "Friend request already exists":
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Friend request sent", f, nil)
}

type acceptRequestBody struct {
	FriendshipID string `json:"friendship_id"`
}

// AcceptRequest POST /api/v1/friends/accept-request
func (h *Handlers) AcceptRequest(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req acceptRequestBody
	if err := c.BodyParser(&req); err != nil || req.FriendshipID == "" {
		return response.Error(c, "friendship_id is required", fiber.StatusBadRequest, nil)
	}
	friendshipID, err := uuid.Parse(req.FriendshipID)
	if err != nil {
		return response.Error(c, "Invalid friendship ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}

	f, err := h.Service.AcceptRequest(c.Context(), userID, friendshipID)
	if err != nil {
		switch err.Error() {
		case "Friend request not found":
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		case "Only the addressee can accept":
			return response.Error(c, err.Error(), fiber.StatusForbidden, nil)
		case "Friend request is not pending":
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Friend request accepted", f, nil)
}

// RemoveFriend DELETE /api/v1/friends/remove-friend/:user_id
func (h *Handlers) RemoveFriend(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	otherID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return response.Error(c, "Invalid user ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}

	if err := h.Service.RemoveFriend(c.Context(), userID, otherID); err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Friend removed", nil, nil)
}

// ViewFriends GET /api/v1/friends/view-friends
func (h *Handlers) ViewFriends(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	list, err := h.Service.ListFriends(c.Context(), userID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Friends fetched successfully", list, fiber.Map{"count": len(list)})
}

// ViewRequests GET /api/v1/friends/view-requests
func (h *Handlers) ViewRequests(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	list, err := h.Service.ListRequests(c.Context(), userID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Friend requests fetched successfully", list, fiber.Map{"count": len(list)})
}
