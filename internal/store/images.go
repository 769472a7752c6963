package store

import (
	"context"

	"GardenGenie/internal/unsplash"

	"github.com/rs/zerolog/log"
)

// StoreImage upserts one representative photo with attribution per plant
// name: find-by-name, then update or insert. Every failure is logged and
// swallowed; image staleness or absence never blocks plant persistence.
func (o *Orchestrator) StoreImage(ctx context.Context, plantName string, img *unsplash.Image) {
	if plantName == "" || img == nil {
		log.Warn().Msg("skipping image storage due to missing plant name or image data")
		return
	}

	found, err := o.db.QueryRows(ctx,
		`SELECT id::text AS id FROM plant_images WHERE name = $1 LIMIT 1`, plantName)
	if err != nil {
		log.Error().Err(err).Str("plant", plantName).Msg("image lookup failed")
		return
	}

	if len(found) > 0 {
		id, _ := found[0]["id"].(string)
		if id == "" {
			log.Error().Str("plant", plantName).Msg("found image record but missing id")
			return
		}
		log.Info().Str("plant", plantName).Str("id", id).Msg("updating existing image record")
		_, err = o.db.Exec(ctx,
			`UPDATE plant_images SET unsplash_image_url = $1, unsplash_photographer_name = $2, unsplash_photographer_url = $3 WHERE id = $4`,
			img.URL, img.PhotographerName, img.PhotographerURL, id)
		if err != nil {
			log.Error().Err(err).Str("plant", plantName).Msg("image update failed")
		}
		return
	}

	log.Info().Str("plant", plantName).Msg("inserting new image record")
	_, err = o.db.Exec(ctx,
		`INSERT INTO plant_images (name, unsplash_image_url, unsplash_photographer_name, unsplash_photographer_url) VALUES ($1, $2, $3, $4)`,
		plantName, img.URL, img.PhotographerName, img.PhotographerURL)
	if err != nil {
		log.Error().Err(err).Str("plant", plantName).Msg("image insert failed")
	}
}
