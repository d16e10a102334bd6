package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"imagegram/api/internal/models"
)

var (
	ErrImageNotFound   = errors.New("image not found")
	ErrCommentNotFound = errors.New("comment not found")
)

type ImageRepository struct {
	pool *pgxpool.Pool
}

func NewImageRepository(pool *pgxpool.Pool) *ImageRepository {
	return &ImageRepository{pool: pool}
}

func (r *ImageRepository) Create(ctx context.Context, image models.Image) error {
	const query = `
		INSERT INTO images (
			id, user_id, object_key, url, format, width, height, size_bytes, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		image.ID,
		image.UserID,
		image.ObjectKey,
		image.URL,
		image.Format,
		image.Width,
		image.Height,
		image.SizeBytes,
	)
	return err
}

func (r *ImageRepository) GetByID(ctx context.Context, id string) (models.Image, error) {
	const query = `
		SELECT id, user_id, object_key, url, format, width, height, size_bytes, created_at, updated_at
		FROM images WHERE id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)
	return scanImage(row)
}

func (r *ImageRepository) ListByOwner(ctx context.Context, userID string) ([]models.Image, error) {
	const query = `
		SELECT id, user_id, object_key, url, format, width, height, size_bytes, created_at, updated_at
		FROM images
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := make([]models.Image, 0)
	for rows.Next() {
		image, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}

func (r *ImageRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM images WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrImageNotFound
	}
	return nil
}

// UpdateObject rewrites the storage coordinates and derived fields after a
// destructive transform.
func (r *ImageRepository) UpdateObject(ctx context.Context, image models.Image) error {
	const query = `
		UPDATE images
		SET object_key = $2, url = $3, format = $4, width = $5, height = $6,
		    size_bytes = $7, updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query,
		image.ID,
		image.ObjectKey,
		image.URL,
		image.Format,
		image.Width,
		image.Height,
		image.SizeBytes,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrImageNotFound
	}
	return nil
}

func scanImage(row pgx.Row) (models.Image, error) {
	var image models.Image
	if err := row.Scan(
		&image.ID,
		&image.UserID,
		&image.ObjectKey,
		&image.URL,
		&image.Format,
		&image.Width,
		&image.Height,
		&image.SizeBytes,
		&image.CreatedAt,
		&image.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Image{}, ErrImageNotFound
		}
		return models.Image{}, err
	}
	return image, nil
}

// ListObjectKeys returns every object key referenced by a metadata row.
func (r *ImageRepository) ListObjectKeys(ctx context.Context) (map[string]struct{}, error) {
	const query = `SELECT object_key FROM images`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys[key] = struct{}{}
	}
	return keys, rows.Err()
}
