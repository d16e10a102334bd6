package jobs

import (
	"context"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"imagegram/api/internal/repository"
	"imagegram/api/internal/storage"
)

// orphanGrace is how long an unreferenced blob must have existed before
// the sweep may remove it. Uploads write the blob before inserting the
// metadata row, so a freshly written object with no row yet is an
// in-flight upload, not garbage.
const orphanGrace = time.Hour

// Sweeper reclaims image blobs left behind when a metadata delete
// succeeded but the paired object delete did not. The request path never
// compensates inline; this job runs daily instead.
type Sweeper struct {
	cron   *cron.Cron
	images *repository.ImageRepository
	store  *storage.ObjectStore
	log    zerolog.Logger
}

func NewSweeper(images *repository.ImageRepository, store *storage.ObjectStore, log zerolog.Logger) *Sweeper {
	return &Sweeper{
		cron:   cron.New(),
		images: images,
		store:  store,
		log:    log,
	}
}

func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc("@daily", s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("sweeper stop timed out")
	}
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	referenced, err := s.images.ListObjectKeys(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("sweep: list metadata keys failed")
		return
	}

	stored, err := s.store.ListObjects(ctx, "images/")
	if err != nil {
		s.log.Error().Err(err).Msg("sweep: list objects failed")
		return
	}

	removed := 0
	for _, key := range orphanedKeys(referenced, stored, time.Now().Add(-orphanGrace)) {
		if err := s.store.Remove(ctx, key); err != nil {
			s.log.Warn().Err(err).Str("object_key", key).Msg("sweep: remove failed")
			continue
		}
		removed++
	}

	s.log.Info().Int("removed", removed).Int("scanned", len(stored)).Msg("orphan sweep finished")
}

// orphanedKeys selects objects with no metadata row that were last
// modified before the cutoff. Younger unreferenced blobs are kept for
// the next run.
func orphanedKeys(referenced map[string]struct{}, stored []storage.ObjectEntry, cutoff time.Time) []string {
	var keys []string
	for _, entry := range stored {
		if !strings.HasPrefix(entry.Key, "images/") {
			continue
		}
		if _, ok := referenced[entry.Key]; ok {
			continue
		}
		if entry.LastModified.After(cutoff) {
			continue
		}
		keys = append(keys, entry.Key)
	}
	return keys
}
