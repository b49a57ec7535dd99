package messages

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/memberhub/internal/db"
	"github.com/2beens/memberhub/internal/telemetry/tracing"
)

type Repo struct {
	db db.Querier
}

func NewRepo(db db.Querier) *Repo {
	return &Repo{
		db: db,
	}
}

// Conversation returns all messages between the member and the gym admin, oldest first.
func (r *Repo) Conversation(ctx context.Context, gymID, memberID int64) (_ []Message, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.messages.conversation")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("gym.id", gymID), attribute.Int64("member.id", memberID))

	rows, err := r.db.Query(ctx, `
		SELECT id, gym_id, sender_id, receiver_id, sender_type, receiver_type, content, created_at, read_at
		FROM messages
		WHERE gym_id = $1
		  AND ((sender_type = 'member' AND sender_id = $2) OR (receiver_type = 'member' AND receiver_id = $2))
		ORDER BY created_at ASC, id ASC
	`, gymID, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]Message, 0)
	for rows.Next() {
		var m Message
		if err := rows.Scan(
			&m.ID, &m.GymID, &m.SenderID, &m.ReceiverID, &m.SenderType, &m.ReceiverType, &m.Content, &m.CreatedAt, &m.ReadAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("messages.count", len(messages)))
	return messages, nil
}

func (r *Repo) Create(ctx context.Context, msg Message) (_ *Message, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.messages.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	m := &Message{}
	err = r.db.QueryRow(ctx, `
		INSERT INTO messages (gym_id, sender_id, receiver_id, sender_type, receiver_type, content)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, gym_id, sender_id, receiver_id, sender_type, receiver_type, content, created_at, read_at
	`, msg.GymID, msg.SenderID, msg.ReceiverID, msg.SenderType, msg.ReceiverType, msg.Content).Scan(
		&m.ID, &m.GymID, &m.SenderID, &m.ReceiverID, &m.SenderType, &m.ReceiverType, &m.Content, &m.CreatedAt, &m.ReadAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// MarkRead marks unread messages of the conversation addressed to the reader as read.
// Returns how many were marked.
func (r *Repo) MarkRead(ctx context.Context, gymID, memberID int64, readerType string, at time.Time) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.messages.markRead")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var query string
	switch readerType {
	case ParticipantMember:
		query = `
		UPDATE messages SET read_at = $3
		WHERE gym_id = $1 AND receiver_type = 'member' AND receiver_id = $2 AND read_at IS NULL`
	case ParticipantAdmin:
		query = `
		UPDATE messages SET read_at = $3
		WHERE gym_id = $1 AND receiver_type = 'admin' AND sender_type = 'member' AND sender_id = $2 AND read_at IS NULL`
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidReader, readerType)
	}

	tag, err := r.db.Exec(ctx, query, gymID, memberID, at)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
