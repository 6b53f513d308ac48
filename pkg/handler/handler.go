package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AccelByte/extend-character-progression/pkg/character"
	"github.com/AccelByte/extend-character-progression/pkg/common"
	"github.com/AccelByte/extend-character-progression/pkg/event"
	"github.com/AccelByte/extend-character-progression/pkg/pipeline"
	"github.com/AccelByte/extend-character-progression/pkg/progression"
	"github.com/AccelByte/extend-character-progression/pkg/title"

	"github.com/sirupsen/logrus"
)

const (
	// Message types carried in the event envelope
	MessageTypeStatUpdated      = "stat_updated"
	MessageTypeTitleSelected    = "title_selected"
	MessageTypeCharacterDeleted = "character_deleted"

	// DefaultEventChannel is the Pub/Sub channel gameplay events arrive on
	DefaultEventChannel = "progression:events"
)

// ErrMalformedMessage is returned for payloads that cannot be handled at all.
var ErrMalformedMessage = errors.New("malformed progression message")

// Message is the JSON envelope of a progression event.
type Message struct {
	Type      string    `json:"type"`
	Namespace string    `json:"namespace,omitempty"`
	UserID    string    `json:"userId"`
	StatCode  string    `json:"statCode,omitempty"`
	Value     *float64  `json:"value,omitempty"`
	TitleID   string    `json:"titleId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// EventHandler is the progression pipeline as seen by the message handler.
type EventHandler interface {
	HandleStatUpdate(ctx context.Context, update event.StatUpdate) (*pipeline.Outcome, error)
	HandleTitleSelection(ctx context.Context, userID, titleID string) (*character.Summary, error)
	DeleteCharacter(ctx context.Context, userID string) error
}

// Progression routes progression event messages to the pipeline
type Progression struct {
	pipeline  EventHandler
	namespace string
}

// NewProgression creates a new Progression event listener.
// Messages that carry a namespace other than namespace are ignored.
func NewProgression(pipeline EventHandler, namespace string) *Progression {
	return &Progression{
		pipeline:  pipeline,
		namespace: namespace,
	}
}

// OnMessage handles one raw event payload.
// Rejected gameplay values are logged and swallowed; the returned error is
// either ErrMalformedMessage or a failure of the pipeline's collaborators.
func (p *Progression) OnMessage(ctx context.Context, payload []byte) error {
	scope := common.ChildScopeFromRemoteScope(ctx, "Progression.OnMessage")
	defer scope.Finish()

	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	if msg.UserID == "" {
		return fmt.Errorf("%w: %s event has empty userId", ErrMalformedMessage, msg.Type)
	}

	if p.namespace != "" && msg.Namespace != "" && msg.Namespace != p.namespace {
		scope.Log.Debugf("ignoring event for namespace %s", msg.Namespace)
		return nil
	}

	scope.SetAttributes("message_type", msg.Type)
	scope.Log.Infof("received progression event: type=%s userId=%s", msg.Type, msg.UserID)

	var err error
	switch msg.Type {
	case MessageTypeStatUpdated:
		err = p.handleStatUpdated(scope.Ctx, &msg)
	case MessageTypeTitleSelected:
		err = p.handleTitleSelected(scope.Ctx, &msg)
	case MessageTypeCharacterDeleted:
		err = p.pipeline.DeleteCharacter(scope.Ctx, msg.UserID)
	default:
		return fmt.Errorf("%w: unknown type %q", ErrMalformedMessage, msg.Type)
	}

	if err != nil {
		if isRejection(err) {
			scope.Log.Warnf("event rejected: type=%s userId=%s: %v", msg.Type, msg.UserID, err)
			return nil
		}
		scope.TraceError(err)
		return fmt.Errorf("failed to handle %s event for user %s: %w", msg.Type, msg.UserID, err)
	}

	return nil
}

func (p *Progression) handleStatUpdated(ctx context.Context, msg *Message) error {
	if msg.StatCode == "" || msg.Value == nil {
		return fmt.Errorf("%w: stat_updated requires statCode and value", ErrMalformedMessage)
	}

	timestamp := msg.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	outcome, err := p.pipeline.HandleStatUpdate(ctx, event.StatUpdate{
		UserID:    msg.UserID,
		StatCode:  msg.StatCode,
		Value:     *msg.Value,
		Timestamp: timestamp,
	})
	if err != nil {
		return err
	}

	logrus.Infof("successfully processed stat update for user %s: %s=%v unlocked=%d",
		msg.UserID, msg.StatCode, *msg.Value, len(outcome.Unlocked))
	return nil
}

func (p *Progression) handleTitleSelected(ctx context.Context, msg *Message) error {
	if msg.TitleID == "" {
		return fmt.Errorf("%w: title_selected requires titleId", ErrMalformedMessage)
	}

	_, err := p.pipeline.HandleTitleSelection(ctx, msg.UserID, msg.TitleID)
	return err
}

// isRejection reports errors caused by the event content rather than by infrastructure.
func isRejection(err error) bool {
	return errors.Is(err, progression.ErrInvalidInput) ||
		errors.Is(err, progression.ErrUnknownCategory) ||
		errors.Is(err, progression.ErrUnknownStat) ||
		errors.Is(err, event.ErrNoMapper) ||
		errors.Is(err, title.ErrInvalidSelection)
}
