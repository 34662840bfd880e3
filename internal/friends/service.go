package friends

import (
	"context"
	"errors"

	"binder-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// SendRequest creates a pending friendship row. Duplicate or reversed pairs
// (either direction, any status) are rejected.
func (s *Service) SendRequest(ctx context.Context, requesterID uuid.UUID, addresseeUsername string) (*models.Friendship, error) {
	if addresseeUsername == "" {
		return nil, errors.New("username is required")
	}

	var addressee models.User
	if err := s.DB.WithContext(ctx).Where("username = ?", addresseeUsername).First(&addressee).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("User not found")
		}
		return nil, err
	}
	if addressee.UserID == requesterID {
		return nil, errors.New("Cannot friend yourself")
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Friendship{}).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			requesterID, addressee.UserID, addressee.UserID, requesterID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("Friend request already exists")
	}

	f := models.Friendship{
		RequesterID: requesterID,
		AddresseeID: addressee.UserID,
		Status:      models.FriendshipPending,
	}
	if err := s.DB.WithContext(ctx).Create(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// AcceptRequest transitions a pending request; only the addressee may accept.
func (s *Service) AcceptRequest(ctx context.Context, userID, friendshipID uuid.UUID) (*models.Friendship, error) {
	var f models.Friendship
	if err := s.DB.WithContext(ctx).Where("friendship_id = ?", friendshipID).First(&f).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Friend request not found")
		}
		return nil, err
	}
	if f.AddresseeID != userID {
		return nil, errors.New("Only the addressee can accept")
	}
	if f.Status != models.FriendshipPending {
		return nil, errors.New("Friend request is not pending")
	}

	f.Status = models.FriendshipAccepted
	if err := s.DB.WithContext(ctx).Save(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// RemoveFriend deletes the friendship row in either direction. Absence is a
// benign no-op.
func (s *Service) RemoveFriend(ctx context.Context, userID, otherID uuid.UUID) error {
	return s.DB.WithContext(ctx).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			userID, otherID, otherID, userID).
		Delete(&models.Friendship{}).Error
}

// ListFriends returns accepted friends as user summaries.
func (s *Service) ListFriends(ctx context.Context, userID uuid.UUID) ([]map[string]interface{}, error) {
	var rows []models.Friendship
	if err := s.DB.WithContext(ctx).
		Where("(requester_id = ? OR addressee_id = ?) AND status = ?", userID, userID, models.FriendshipAccepted).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	friendIDs := make([]uuid.UUID, 0, len(rows))
	for _, f := range rows {
		if f.RequesterID == userID {
			friendIDs = append(friendIDs, f.AddresseeID)
		} else {
			friendIDs = append(friendIDs, f.RequesterID)
		}
	}

	out := make([]map[string]interface{}, 0, len(friendIDs))
	if len(friendIDs) == 0 {
		return out, nil
	}
	var users []models.User
	if err := s.DB.WithContext(ctx).Where("user_id IN ?", friendIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		out = append(out, map[string]interface{}{
			"user_id":  u.UserID,
			"username": u.Username,
		})
	}
	return out, nil
}

// ListRequests returns pending requests addressed to the user.
func (s *Service) ListRequests(ctx context.Context, userID uuid.UUID) ([]map[string]interface{}, error) {
	var rows []models.Friendship
	if err := s.DB.WithContext(ctx).
		Where("addressee_id = ? AND status = ?", userID, models.FriendshipPending).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]map[string]interface{}, 0, len(rows))
	for _, f := range rows {
		var requester models.User
		if err := s.DB.WithContext(ctx).Where("user_id = ?", f.RequesterID).First(&requester).Error; err != nil {
			return nil, err
		}
		out = append(out, map[string]interface{}{
			"friendship_id": f.FriendshipID,
			"requester": map[string]interface{}{
				"user_id":  requester.UserID,
				"username": requester.Username,
			},
			"requested_at": f.CreatedAt,
		})
	}
	return out, nil
}
