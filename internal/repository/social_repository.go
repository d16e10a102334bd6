package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"imagegram/api/internal/models"
)

// Likes and comments live in child tables keyed by image id, so each
// mutation is a single statement and concurrent writers cannot lose
// each other's updates.

// Unlike removes the user's like and reports whether one existed.
func (r *ImageRepository) Unlike(ctx context.Context, imageID, userID string) (bool, error) {
	const query = `DELETE FROM image_likes WHERE image_id = $1 AND user_id = $2`
	cmd, err := r.pool.Exec(ctx, query, imageID, userID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *ImageRepository) Like(ctx context.Context, imageID, userID string) error {
	const query = `
		INSERT INTO image_likes (image_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (image_id, user_id) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query, imageID, userID)
	return err
}

func (r *ImageRepository) CountLikes(ctx context.Context, imageID string) (int, error) {
	const query = `SELECT COUNT(*) FROM image_likes WHERE image_id = $1`

	var count int
	if err := r.pool.QueryRow(ctx, query, imageID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ImageRepository) ListLikers(ctx context.Context, imageID string) ([]models.Profile, error) {
	const query = `
		SELECT u.id, u.username, u.avatar_url
		FROM image_likes l
		JOIN users u ON u.id = l.user_id
		WHERE l.image_id = $1
		ORDER BY l.created_at
	`

	rows, err := r.pool.Query(ctx, query, imageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likers := make([]models.Profile, 0)
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.Username, &p.AvatarURL); err != nil {
			return nil, err
		}
		likers = append(likers, p)
	}
	return likers, rows.Err()
}

func (r *ImageRepository) AddComment(ctx context.Context, comment models.Comment) error {
	const query = `
		INSERT INTO image_comments (id, image_id, user_id, username, body, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.pool.Exec(ctx, query,
		comment.ID,
		comment.ImageID,
		comment.UserID,
		comment.Username,
		comment.Text,
	)
	return err
}

func (r *ImageRepository) GetComment(ctx context.Context, imageID, commentID string) (models.Comment, error) {
	const query = `
		SELECT id, image_id, user_id, username, body, created_at
		FROM image_comments
		WHERE id = $1 AND image_id = $2
	`

	row := r.pool.QueryRow(ctx, query, commentID, imageID)
	var comment models.Comment
	if err := row.Scan(
		&comment.ID,
		&comment.ImageID,
		&comment.UserID,
		&comment.Username,
		&comment.Text,
		&comment.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Comment{}, ErrCommentNotFound
		}
		return models.Comment{}, err
	}
	return comment, nil
}

func (r *ImageRepository) DeleteComment(ctx context.Context, commentID string) error {
	const query = `DELETE FROM image_comments WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, commentID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *ImageRepository) ListComments(ctx context.Context, imageID string) ([]models.CommentDetail, error) {
	const query = `
		SELECT c.id, c.image_id, c.user_id, c.username, c.body, c.created_at,
		       u.id, u.username, u.avatar_url
		FROM image_comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.image_id = $1
		ORDER BY c.created_at
	`

	rows, err := r.pool.Query(ctx, query, imageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]models.CommentDetail, 0)
	for rows.Next() {
		var detail models.CommentDetail
		if err := rows.Scan(
			&detail.Comment.ID,
			&detail.Comment.ImageID,
			&detail.Comment.UserID,
			&detail.Comment.Username,
			&detail.Comment.Text,
			&detail.Comment.CreatedAt,
			&detail.Author.ID,
			&detail.Author.Username,
			&detail.Author.AvatarURL,
		); err != nil {
			return nil, err
		}
		comments = append(comments, detail)
	}
	return comments, rows.Err()
}
