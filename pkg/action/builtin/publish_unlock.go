package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AccelByte/extend-character-progression/pkg/action"
	"github.com/AccelByte/extend-character-progression/pkg/character"
	"github.com/AccelByte/extend-character-progression/pkg/service"
	"github.com/AccelByte/extend-character-progression/pkg/title"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// PublishUnlockActionID is the identifier for the unlock announcement action
	PublishUnlockActionID = "publish_unlock"
)

// UnlockAnnouncement is the message published for every unlocked title.
// EventID is derived from the unlock itself, so a retried publish carries the
// same ID and consumers can drop the duplicate.
type UnlockAnnouncement struct {
	EventID       string    `json:"eventId"`
	UserID        string    `json:"userId"`
	TitleID       string    `json:"titleId"`
	TitleName     string    `json:"titleName"`
	UnlockedAt    time.Time `json:"unlockedAt"`
	EarnedCount   int       `json:"earnedCount"`
	ActiveTitleID string    `json:"activeTitleId,omitempty"`
}

// PublishUnlockAction announces unlocks on a Pub/Sub channel for
// notification or social services to consume.
type PublishUnlockAction struct {
	config    action.ActionConfig
	publisher service.Publisher
	channel   string
}

// NewPublishUnlockAction creates the action. Parameter "channel" overrides defaultChannel.
func NewPublishUnlockAction(config action.ActionConfig, publisher service.Publisher, defaultChannel string) (*PublishUnlockAction, error) {
	channel := config.GetParameterString("channel", defaultChannel)
	if channel == "" {
		return nil, fmt.Errorf("%w: %s requires a channel", action.ErrInvalidConfig, config.ID)
	}

	return &PublishUnlockAction{
		config:    config,
		publisher: publisher,
		channel:   channel,
	}, nil
}

func (a *PublishUnlockAction) ID() string {
	return a.config.ID
}

func (a *PublishUnlockAction) Name() string {
	return "Publish Unlock"
}

func (a *PublishUnlockAction) Config() action.ActionConfig {
	return a.config
}

func (a *PublishUnlockAction) Execute(ctx context.Context, unlock *title.Unlock, summary *character.Summary) error {
	msg := UnlockAnnouncement{
		EventID:    announcementID(unlock),
		UserID:     unlock.UserID,
		TitleID:    unlock.Title.ID,
		TitleName:  unlock.Title.Name,
		UnlockedAt: unlock.UnlockedAt,
	}
	if summary != nil {
		msg.EarnedCount = summary.EarnedCount
		if summary.ActiveTitle != nil {
			msg.ActiveTitleID = summary.ActiveTitle.ID
		}
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal unlock announcement: %w", err)
	}

	if a.publisher == nil {
		logrus.Warnf("[TEST MODE] would publish to %s: %s", a.channel, payload)
		return nil
	}

	return a.publisher.Publish(ctx, a.channel, payload)
}

// announcementID is a name-based UUID over user, title and unlock time. The
// unlock time separates a re-earned title after the character was deleted.
func announcementID(unlock *title.Unlock) string {
	name := fmt.Sprintf("%s/%s/%d", unlock.UserID, unlock.Title.ID, unlock.UnlockedAt.UnixNano())
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

func (a *PublishUnlockAction) Rollback(ctx context.Context, unlock *title.Unlock, summary *character.Summary) error {
	return action.ErrRollbackNotSupported
}
