package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/studentlife/taskboard/internal/dto"
	"github.com/studentlife/taskboard/internal/models"
	"github.com/studentlife/taskboard/internal/repository"
	"github.com/studentlife/taskboard/internal/store"
)

var ErrMessageArgsRequired = errors.New("message text and both users are required")

// MessageService appends and retrieves two-party message threads,
// optionally tagged with a task.
type MessageService struct {
	msgRepo  repository.MessageRepository
	userRepo repository.UserRepository
}

// NewMessageService creates a new MessageService
func NewMessageService(msgRepo repository.MessageRepository, userRepo repository.UserRepository) *MessageService {
	return &MessageService{msgRepo: msgRepo, userRepo: userRepo}
}

// AdminID returns the ID of the first user whose role is admin, or the
// empty string when no admin exists.
func (s *MessageService) AdminID() (string, error) {
	admin, err := s.userRepo.FindFirstAdmin()
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to find admin: %w", err)
	}
	return admin.ID, nil
}

// SendMessage appends a message to the log. The body must be non-empty
// after trimming and both parties must be named.
func (s *MessageService) SendMessage(fromID, toID, body string, taskID *string) (*models.Message, error) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" || fromID == "" || toID == "" {
		return nil, ErrMessageArgsRequired
	}

	msg := &models.Message{
		ID:         store.NewID(),
		FromUserID: fromID,
		ToUserID:   toID,
		Body:       trimmed,
		CreatedAt:  time.Now(),
		TaskID:     taskID,
	}
	if err := s.msgRepo.Append(msg); err != nil {
		return nil, fmt.Errorf("failed to append message: %w", err)
	}
	return msg, nil
}

// Conversation returns the two users' thread oldest first. A missing
// party yields an empty thread, not an error.
func (s *MessageService) Conversation(userA, userB string) ([]models.Message, error) {
	if userA == "" || userB == "" {
		return []models.Message{}, nil
	}
	messages, err := s.msgRepo.Between(userA, userB)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}

// AdminConversations summarizes every counterparty that has exchanged any
// message with the admin: their profile fields and the most recent
// message, newest conversation first.
func (s *MessageService) AdminConversations() ([]dto.ConversationSummaryDTO, error) {
	adminID, err := s.AdminID()
	if err != nil {
		return nil, err
	}
	if adminID == "" {
		return []dto.ConversationSummaryDTO{}, nil
	}

	messages, err := s.msgRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	// Counterparties in first-seen order; the sort below decides display order.
	var order []string
	seen := make(map[string]struct{})
	for _, m := range messages {
		var other string
		switch adminID {
		case m.FromUserID:
			other = m.ToUserID
		case m.ToUserID:
			other = m.FromUserID
		default:
			continue
		}
		if _, ok := seen[other]; !ok {
			seen[other] = struct{}{}
			order = append(order, other)
		}
	}

	summaries := make([]dto.ConversationSummaryDTO, 0, len(order))
	for _, userID := range order {
		summary := dto.ConversationSummaryDTO{
			UserID:   userID,
			FullName: "Unknown",
		}
		if profile, err := s.userRepo.FindProfile(userID); err == nil {
			summary.FullName = profile.FullName
			summary.Email = profile.Email
		}

		var last *models.Message
		for i := range messages {
			m := messages[i]
			if (m.FromUserID == adminID && m.ToUserID == userID) ||
				(m.ToUserID == adminID && m.FromUserID == userID) {
				if last == nil || m.CreatedAt.After(last.CreatedAt) {
					last = &messages[i]
				}
			}
		}
		if last != nil {
			summary.LastMessage = last.Body
			at := last.CreatedAt
			summary.LastAt = &at
		}

		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		ti, tj := time.Time{}, time.Time{}
		if summaries[i].LastAt != nil {
			ti = *summaries[i].LastAt
		}
		if summaries[j].LastAt != nil {
			tj = *summaries[j].LastAt
		}
		return ti.After(tj)
	})

	return summaries, nil
}
