package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/HammerMeetNail/fitrank/internal/models"
)

var (
	ErrFriendshipNotFound   = errors.New("friendship not found")
	ErrFriendshipExists     = errors.New("friendship already exists")
	ErrCannotFriendSelf     = errors.New("cannot send friend request to yourself")
	ErrFriendshipNotPending = errors.New("friendship is not pending")
)

type FriendService struct {
	db     DB
	users  UserLookup
	scores WeeklyScorer
	now    func() time.Time
}

func NewFriendService(db DB, users UserLookup, scores WeeklyScorer, now func() time.Time) *FriendService {
	return &FriendService{db: db, users: users, scores: scores, now: clockOrDefault(now)}
}

// SendRequest creates a pending friendship from userID to the user named
// friendUsername. An existing friendship between the two, in either
// direction and in any status, is reported as ErrFriendshipExists.
func (s *FriendService) SendRequest(ctx context.Context, userID uuid.UUID, friendUsername string) (*models.Friendship, error) {
	friend, err := s.users.GetByUsername(ctx, friendUsername)
	if err != nil {
		return nil, err
	}
	if friend.ID == userID {
		return nil, ErrCannotFriendSelf
	}

	pair := models.NewFriendPair(userID, friend.ID)
	var status models.FriendshipStatus
	err = s.db.QueryRow(ctx,
		`SELECT status FROM friendships
		 WHERE LEAST(user_id, friend_id) = $1 AND GREATEST(user_id, friend_id) = $2`,
		pair.Low, pair.High,
	).Scan(&status)
	if err == nil {
		return nil, fmt.Errorf("%w with status: %s", ErrFriendshipExists, status)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("checking friendship existence: %w", err)
	}

	friendship, err := scanFriendship(s.db.QueryRow(ctx,
		`INSERT INTO friendships (user_id, friend_id, status)
		 VALUES ($1, $2, 'pending')
		 RETURNING id, user_id, friend_id, status, created_at, updated_at`,
		userID, friend.ID,
	))
	if isPgError(err, pgUniqueViolation) {
		return nil, ErrFriendshipExists
	}
	if isPgError(err, pgForeignKeyViolation) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("creating friendship: %w", err)
	}
	return friendship, nil
}

// AcceptRequest moves a pending friendship to accepted. The row is locked for
// the duration of the check and update.
func (s *FriendService) AcceptRequest(ctx context.Context, friendshipID uuid.UUID) (*models.Friendship, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	friendship, err := getFriendship(ctx, tx, friendshipID, " FOR UPDATE")
	if err != nil {
		return nil, err
	}
	if friendship.Status != models.FriendshipStatusPending {
		return nil, ErrFriendshipNotPending
	}

	accepted, err := scanFriendship(tx.QueryRow(ctx,
		`UPDATE friendships SET status = 'accepted', updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, user_id, friend_id, status, created_at, updated_at`,
		friendshipID,
	))
	if err != nil {
		return nil, fmt.Errorf("accepting friendship: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return accepted, nil
}

// friendshipOrder is the store order friends are enumerated in.
const friendshipOrder = `f.created_at, f.id`

// AcceptedFriendIDs returns the other party of every accepted friendship
// involving userID, in store order.
func (s *FriendService) AcceptedFriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(ctx,
		`SELECT CASE WHEN user_id = $1 THEN friend_id ELSE user_id END
		 FROM friendships f
		 WHERE (user_id = $1 OR friend_id = $1) AND status = 'accepted'
		 ORDER BY `+friendshipOrder,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing accepted friendships: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning friend id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating friendships: %w", err)
	}
	return ids, nil
}

// ListFriends returns the accepted friends of userID with their current
// weekly scores, in the order the friendships were created.
func (s *FriendService) ListFriends(ctx context.Context, userID uuid.UUID) ([]models.FriendWithScore, error) {
	rows, err := s.db.Query(ctx,
		`SELECT u.id, u.username, u.email, f.created_at
		 FROM friendships f
		 JOIN users u ON u.id = CASE WHEN f.user_id = $1 THEN f.friend_id ELSE f.user_id END
		 WHERE (f.user_id = $1 OR f.friend_id = $1) AND f.status = 'accepted'
		 ORDER BY `+friendshipOrder,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing friends: %w", err)
	}
	defer rows.Close()

	friends := []models.FriendWithScore{}
	for rows.Next() {
		var f models.FriendWithScore
		if err := rows.Scan(&f.ID, &f.Username, &f.Email, &f.FriendshipSince); err != nil {
			return nil, fmt.Errorf("scanning friend: %w", err)
		}
		friends = append(friends, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating friends: %w", err)
	}

	now := s.now()
	err = forEachParticipant(ctx, len(friends), func(ctx context.Context, i int) error {
		score, err := s.scores.WeeklyScore(ctx, friends[i].ID, now)
		if err != nil {
			return err
		}
		friends[i].WeeklyScore = score
		return nil
	})
	if err != nil {
		return nil, err
	}
	return friends, nil
}

// RemoveFriend deletes the friendship between the two users regardless of
// who sent the request or its status.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) error {
	pair := models.NewFriendPair(userID, friendID)
	result, err := s.db.Exec(ctx,
		`DELETE FROM friendships
		 WHERE LEAST(user_id, friend_id) = $1 AND GREATEST(user_id, friend_id) = $2`,
		pair.Low, pair.High,
	)
	if err != nil {
		return fmt.Errorf("removing friendship: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrFriendshipNotFound
	}
	return nil
}

func getFriendship(ctx context.Context, db DBConn, friendshipID uuid.UUID, lock string) (*models.Friendship, error) {
	friendship, err := scanFriendship(db.QueryRow(ctx,
		`SELECT id, user_id, friend_id, status, created_at, updated_at
		 FROM friendships WHERE id = $1`+lock,
		friendshipID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrFriendshipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting friendship: %w", err)
	}
	return friendship, nil
}

func scanFriendship(row Row) (*models.Friendship, error) {
	f := &models.Friendship{}
	if err := row.Scan(&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return f, nil
}
