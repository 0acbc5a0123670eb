package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/entroverse/entroverse-api/internal/domain"
)

// QuestRepository implements the quest repository for PostgreSQL
type QuestRepository struct {
	db *pgxpool.Pool
}

// NewQuestRepository creates a new QuestRepository
func NewQuestRepository(db *pgxpool.Pool) *QuestRepository {
	return &QuestRepository{db: db}
}

const questColumns = `quest_id, title, description, quest_type,
	reward_entrobucks, reward_xp, reward_item, target, hidden, created_at`

func scanQuest(row pgx.Row) (domain.Quest, error) {
	var q domain.Quest
	err := row.Scan(
		&q.ID,
		&q.Title,
		&q.Description,
		&q.Type,
		&q.RewardEntrobucks,
		&q.RewardXP,
		&q.RewardItem,
		&q.Target,
		&q.Hidden,
		&q.CreatedAt,
	)
	return q, err
}

// GetQuests returns the full quest catalog
func (r *QuestRepository) GetQuests(ctx context.Context) ([]domain.Quest, error) {
	query := `SELECT ` + questColumns + ` FROM quests ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query quests: %w", err)
	}
	defer rows.Close()

	var quests []domain.Quest
	for rows.Next() {
		q, err := scanQuest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quest: %w", err)
		}
		quests = append(quests, q)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return quests, nil
}

// GetQuestByID retrieves a single quest definition
func (r *QuestRepository) GetQuestByID(ctx context.Context, questID string) (*domain.Quest, error) {
	id, err := parseID(questID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + questColumns + ` FROM quests WHERE quest_id = $1`
	q, err := scanQuest(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrQuestNotFound
		}
		return nil, fmt.Errorf("failed to get quest: %w", err)
	}

	return &q, nil
}

// GetUserQuests returns all of a user's quest rows joined with catalog fields
func (r *QuestRepository) GetUserQuests(ctx context.Context, userID string) ([]domain.UserQuest, error) {
	id, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT uq.user_id, uq.quest_id, uq.status, uq.progress,
		       uq.started_at, uq.completed_at, uq.updated_at,
		       q.title, q.target
		FROM user_quests uq
		JOIN quests q ON q.quest_id = uq.quest_id
		WHERE uq.user_id = $1
		ORDER BY uq.started_at
	`

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query user quests: %w", err)
	}
	defer rows.Close()

	var userQuests []domain.UserQuest
	for rows.Next() {
		var uq domain.UserQuest
		err := rows.Scan(
			&uq.UserID,
			&uq.QuestID,
			&uq.Status,
			&uq.Progress,
			&uq.StartedAt,
			&uq.CompletedAt,
			&uq.UpdatedAt,
			&uq.Title,
			&uq.Target,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user quest: %w", err)
		}
		userQuests = append(userQuests, uq)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return userQuests, nil
}

// InsertUserQuest creates a new progress row. The primary key on
// (user_id, quest_id) rejects duplicate starts at the store level.
func (r *QuestRepository) InsertUserQuest(ctx context.Context, userQuest domain.UserQuest) error {
	userID, err := parseID(userQuest.UserID)
	if err != nil {
		return err
	}
	questID, err := parseID(userQuest.QuestID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO user_quests (user_id, quest_id, status, progress)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, quest_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, userID, questID, userQuest.Status, userQuest.Progress); err != nil {
		return fmt.Errorf("failed to insert user quest: %w", err)
	}
	return nil
}

// UpdateQuestProgress persists a new progress value. Progress never regresses
// and completed rows are never touched from this path.
func (r *QuestRepository) UpdateQuestProgress(ctx context.Context, userID, questID string, progress int) error {
	uid, err := parseID(userID)
	if err != nil {
		return err
	}
	qid, err := parseID(questID)
	if err != nil {
		return err
	}

	query := `
		UPDATE user_quests
		SET progress = GREATEST(progress, $3), updated_at = NOW()
		WHERE user_id = $1 AND quest_id = $2 AND status <> 'completed'
	`
	if _, err := r.db.Exec(ctx, query, uid, qid, progress); err != nil {
		return fmt.Errorf("failed to update quest progress: %w", err)
	}
	return nil
}

// UpsertCompleted marks the quest completed. The conflict key on
// (user, quest) makes re-completion idempotent at the store level.
func (r *QuestRepository) UpsertCompleted(ctx context.Context, userID, questID string, progress int) error {
	uid, err := parseID(userID)
	if err != nil {
		return err
	}
	qid, err := parseID(questID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO user_quests (user_id, quest_id, status, progress, completed_at)
		VALUES ($1, $2, 'completed', $3, NOW())
		ON CONFLICT (user_id, quest_id) DO UPDATE
		SET status = 'completed',
		    progress = $3,
		    completed_at = COALESCE(user_quests.completed_at, NOW()),
		    updated_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, uid, qid, progress); err != nil {
		return fmt.Errorf("failed to upsert completed quest: %w", err)
	}
	return nil
}
