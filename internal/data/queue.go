package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
	"github.com/Elgenzay/kava.elg.gg/internal/biz/repo"
)

// queueRepo implements the log_queue repository
type queueRepo struct {
	db *sql.DB
}

// NewQueueRepo creates a queue repository over an open database
func NewQueueRepo(db *sql.DB) repo.QueueRepo {
	return &queueRepo{db: db}
}

// Ping checks the database connection
func (r *queueRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Oldest returns the row with the lowest id
func (r *queueRepo) Oldest(ctx context.Context) (*domain.QueuedMessage, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, guild_id, ch_id, msg, reactions
		FROM log_queue
		ORDER BY id ASC
		LIMIT 1
	`)

	var msg domain.QueuedMessage
	var guildID, channelID int64
	var reactions sql.NullString
	err := row.Scan(&msg.ID, &guildID, &channelID, &msg.Body, &reactions)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	msg.GuildID = domain.Snowflake(guildID)
	msg.ChannelID = domain.Snowflake(channelID)
	msg.Reactions = decodeReactions(msg.ID, reactions)
	return &msg, nil
}

// decodeReactions reads the reactions column. NULL means no reactions; a
// malformed value is reported and also treated as none so the row still drains.
func decodeReactions(id int64, col sql.NullString) []string {
	if !col.Valid || col.String == "" {
		return nil
	}
	var glyphs []string
	if err := json.Unmarshal([]byte(col.String), &glyphs); err != nil {
		fmt.Printf("[Queue] Ignoring malformed reactions on row %d: %v\n", id, err)
		return nil
	}
	return glyphs
}

// Delete removes a row
func (r *queueRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM log_queue WHERE id = ?`, id)
	return err
}

// Enqueue appends a row
func (r *queueRepo) Enqueue(ctx context.Context, msg *domain.QueuedMessage) (int64, error) {
	var reactions sql.NullString
	if len(msg.Reactions) > 0 {
		b, err := json.Marshal(msg.Reactions)
		if err != nil {
			return 0, fmt.Errorf("encode reactions: %w", err)
		}
		reactions = sql.NullString{String: string(b), Valid: true}
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO log_queue (guild_id, ch_id, msg, reactions)
		VALUES (?, ?, ?, ?)
	`, int64(msg.GuildID), int64(msg.ChannelID), msg.Body, reactions)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Depth counts pending rows
func (r *queueRepo) Depth(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM log_queue`).Scan(&n)
	return n, err
}

// Close closes the database
func (r *queueRepo) Close() error {
	return r.db.Close()
}
