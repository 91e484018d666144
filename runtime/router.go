package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abadojack/whatlanggo"
	"github.com/samber/lo"

	"studio-chat/contract"
	"studio-chat/domain"
	"studio-chat/errors"
	"studio-chat/moderation"
	"studio-chat/observability"
	"studio-chat/protocol"
	"studio-chat/repositories"
	"studio-chat/search"
)

// Router turns decoded commands into persisted state and outbound events.
// The ordering contract is persist first, deliver second: a message that was
// delivered but not stored must never exist.
type Router struct {
	registry  contract.IRegistry
	messages  repositories.IMessageRepository
	rooms     repositories.IRoomRepository
	moderator *moderation.Moderator
	index     *search.Index
	stats     *observability.Stats
	log       *slog.Logger
}

// NewRouter assembles the routing pipeline. moderator and index may be nil;
// moderation and search are then skipped.
func NewRouter(
	registry contract.IRegistry,
	messages repositories.IMessageRepository,
	rooms repositories.IRoomRepository,
	moderator *moderation.Moderator,
	index *search.Index,
	stats *observability.Stats,
	log *slog.Logger,
) *Router {
	return &Router{
		registry:  registry,
		messages:  messages,
		rooms:     rooms,
		moderator: moderator,
		index:     index,
		stats:     stats,
		log:       log,
	}
}

// Submit executes one command on behalf of sender. Failures are reported back
// to the sender as an error event on their own channel; the returned error is
// for the caller's log only and never closes the channel.
func (rt *Router) Submit(ctx context.Context, sender domain.User, cmd protocol.Command) error {
	switch c := cmd.(type) {
	case protocol.DirectMessageCommand:
		return rt.routeDirect(ctx, sender, c)
	case protocol.RoomMessageCommand:
		return rt.routeRoom(ctx, sender, c)
	case protocol.TypingCommand:
		return rt.relayTyping(ctx, sender, c)
	case protocol.ReadMessagesCommand:
		return rt.markRead(ctx, sender, c)
	default:
		return fmt.Errorf("%w: %T", errors.ErrUnknownEnvelopeType, cmd)
	}
}

func (rt *Router) routeDirect(ctx context.Context, sender domain.User, cmd protocol.DirectMessageCommand) error {
	content := rt.moderate(cmd.Content)

	msg, err := domain.NewDirectMessage(sender.ID, cmd.ReceiverID, content, cmd.Type, time.Now().UTC())
	if err != nil {
		return rt.reject(ctx, sender.ID, err)
	}

	stored, err := rt.messages.Store(msg)
	if err != nil {
		rt.log.Error("failed to store direct message", "sender_id", sender.ID, "receiver_id", cmd.ReceiverID, "error", err)
		return rt.reject(ctx, sender.ID, fmt.Errorf("message could not be saved: %w", err))
	}
	rt.stats.IncrDirectRouted()
	rt.indexStored(stored)

	delivered := rt.registry.Send(ctx, cmd.ReceiverID, protocol.MessageEventFor(stored, sender))
	rt.countDelivery(delivered)

	rt.registry.Send(ctx, sender.ID, protocol.MessageSentEvent(protocol.AckPayload{
		MessageID:  stored.ID,
		ReceiverID: stored.ReceiverID,
		Delivered:  delivered,
		Timestamp:  time.Now().UTC(),
	}))
	return nil
}

func (rt *Router) routeRoom(ctx context.Context, sender domain.User, cmd protocol.RoomMessageCommand) error {
	member, err := rt.rooms.IsMember(cmd.RoomID, sender.ID)
	if err != nil {
		return rt.reject(ctx, sender.ID, fmt.Errorf("membership check failed: %w", err))
	}
	if !member {
		rt.stats.IncrRejected()
		return rt.reject(ctx, sender.ID, errors.ErrNotRoomMember)
	}

	content := rt.moderate(cmd.Content)

	msg, err := domain.NewRoomMessage(sender.ID, cmd.RoomID, content, cmd.Type, time.Now().UTC())
	if err != nil {
		return rt.reject(ctx, sender.ID, err)
	}

	stored, err := rt.messages.Store(msg)
	if err != nil {
		rt.log.Error("failed to store room message", "sender_id", sender.ID, "room_id", cmd.RoomID, "error", err)
		return rt.reject(ctx, sender.ID, fmt.Errorf("message could not be saved: %w", err))
	}
	rt.stats.IncrRoomRouted()
	rt.indexStored(stored)

	delivered := rt.fanOut(ctx, cmd.RoomID, sender.ID, protocol.MessageEventFor(stored, sender))

	rt.registry.Send(ctx, sender.ID, protocol.MessageSentEvent(protocol.AckPayload{
		MessageID: stored.ID,
		RoomID:    stored.RoomID,
		Delivered: delivered > 0,
		Timestamp: time.Now().UTC(),
	}))
	return nil
}

func (rt *Router) relayTyping(ctx context.Context, sender domain.User, cmd protocol.TypingCommand) error {
	event := protocol.TypingStatusEvent(protocol.TypingPayload{
		UserID:     sender.ID,
		Username:   sender.Username,
		Nickname:   sender.Nickname,
		TargetID:   cmd.TargetID,
		TargetType: cmd.TargetType,
		IsTyping:   cmd.IsTyping,
		Timestamp:  time.Now().UTC(),
	})

	if cmd.TargetType == protocol.TargetUser {
		rt.registry.Send(ctx, cmd.TargetID, event)
		return nil
	}

	member, err := rt.rooms.IsMember(cmd.TargetID, sender.ID)
	if err != nil {
		return fmt.Errorf("membership check failed: %w", err)
	}
	if !member {
		return rt.reject(ctx, sender.ID, errors.ErrNotRoomMember)
	}
	rt.fanOut(ctx, cmd.TargetID, sender.ID, event)
	return nil
}

// markRead flips read state for direct messages and advances room read
// cursors. Ids that do not belong to the reader are skipped, not errors.
func (rt *Router) markRead(ctx context.Context, reader domain.User, cmd protocol.ReadMessagesCommand) error {
	if _, err := rt.messages.MarkRead(cmd.MessageIDs, reader.ID); err != nil {
		return rt.reject(ctx, reader.ID, fmt.Errorf("read marking failed: %w", err))
	}

	// Room messages advance the per-member cursor to the highest id seen.
	cursorTarget := make(map[int64]int64)
	for _, id := range cmd.MessageIDs {
		msg, err := rt.messages.Get(id)
		if err != nil {
			continue
		}
		if msg.RoomID == nil {
			continue
		}
		if id > cursorTarget[*msg.RoomID] {
			cursorTarget[*msg.RoomID] = id
		}
	}
	for roomID, messageID := range cursorTarget {
		member, err := rt.rooms.IsMember(roomID, reader.ID)
		if err != nil || !member {
			continue
		}
		if err := rt.rooms.AdvanceReadCursor(roomID, reader.ID, messageID); err != nil {
			rt.log.Warn("failed to advance read cursor", "room_id", roomID, "user_id", reader.ID, "error", err)
		}
	}
	return nil
}

// fanOut delivers one event to every room member except the sender and
// reports how many live channels took it.
func (rt *Router) fanOut(ctx context.Context, roomID, senderID int64, event protocol.Event) int {
	memberIDs, err := rt.rooms.MemberIDs(roomID)
	if err != nil {
		rt.log.Error("failed to list room members for fan-out", "room_id", roomID, "error", err)
		return 0
	}

	targets := lo.Filter(memberIDs, func(id int64, _ int) bool { return id != senderID })
	delivered := 0
	for _, id := range targets {
		if rt.registry.Send(ctx, id, event) {
			delivered++
			rt.stats.IncrDelivered()
		}
	}
	return delivered
}

// moderate masks censored content. A hit is logged with the detected
// language, which feeds wordlist curation.
func (rt *Router) moderate(content string) string {
	if rt.moderator == nil {
		return content
	}
	masked, hits := rt.moderator.Censor(content)
	if len(hits) > 0 {
		info := whatlanggo.Detect(content)
		rt.log.Info("censored message content",
			"hits", len(hits),
			"language", info.Lang.String(),
			"confidence", info.Confidence)
	}
	return masked
}

func (rt *Router) indexStored(msg domain.Message) {
	if rt.index == nil {
		return
	}
	if err := rt.index.IndexMessage(msg.ID, msg.SenderID, msg.RoomID, msg.ReceiverID, msg.Content); err != nil {
		rt.log.Warn("failed to index message", "message_id", msg.ID, "error", err)
	}
}

func (rt *Router) countDelivery(delivered bool) {
	if delivered {
		rt.stats.IncrDelivered()
	} else {
		rt.stats.IncrDeliveryFailures()
	}
}

// reject reports a failure back to the offending sender on their own channel.
func (rt *Router) reject(ctx context.Context, userID int64, cause error) error {
	rt.registry.Send(ctx, userID, protocol.ErrorEvent(cause.Error()))
	return cause
}
