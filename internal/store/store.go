package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"GardenGenie/internal/plantcare"

	"github.com/rs/zerolog/log"
)

// Orchestrator persists generated care documents. It first attempts one
// atomic server-side upsert; on absence or failure of that path it falls
// back to an explicit find-or-create, delete-old, bulk-insert sequence.
//
// The fallback's delete-then-insert is not protected by a transaction, so
// two concurrent regenerations of the same plant identity can interleave
// and leave a transient window of missing or duplicated instruction rows.
// The atomic path, when the store supports it, closes that window.
type Orchestrator struct {
	db Querier
}

func New(db Querier) *Orchestrator {
	return &Orchestrator{db: db}
}

// plantColumns is the full attribute set persisted for a plant row, in
// the order used by the fallback update and insert statements.
var plantColumns = []string{
	"plant_name",
	"zone",
	"description",
	"type",
	"sun_requirements",
	"seed_starting_month",
	"planting_month",
	"seed_starting_instructions",
	"planting_instructions",
	"zone_suitability",
	"seasonality",
	"plant_group",
	"requirements",
	"seed_starting",
	"planting",
	"care_plan",
	"model_used",
	"raw_llm_response",
}

// Store persists the plant and its full instruction set for the given
// identity. The instruction rows for a plant are replaced wholesale on
// every call, never incrementally patched.
func (o *Orchestrator) Store(ctx context.Context, doc *plantcare.Document, userZone string) error {
	if doc == nil {
		return fmt.Errorf("no care document to store")
	}
	if strings.TrimSpace(doc.PlantName) == "" {
		return fmt.Errorf("care document is missing the plant name")
	}

	identity := NewIdentity(doc.PlantName, doc.Group, userZone)
	if identity.Zone == nil && !doc.Group.Indoor() {
		return fmt.Errorf("missing essential zone for plant %q", doc.PlantName)
	}

	// Legacy-dialect documents get the deep structure check; tabbed
	// documents were already shape-checked by the generator.
	if doc.PlanKind != plantcare.PlanTabbed {
		validation := plantcare.ValidateCareStructure(doc.Legacy, doc.PlantName)
		if !validation.Valid {
			return fmt.Errorf("invalid care structure for %q: %s", doc.PlantName, strings.Join(validation.Errors, "; "))
		}
		if len(validation.Warnings) > 0 {
			log.Warn().Str("plant", doc.PlantName).Strs("warnings", validation.Warnings).Msg("care structure warnings")
		}
	}

	rows, skipped := doc.FlattenInstructions()
	if skipped > 0 {
		log.Warn().Str("plant", doc.PlantName).Int("skipped", skipped).Msg("skipped invalid care instructions")
	}

	payload := plantPayload(doc, identity)

	atomicErr := o.storeAtomic(ctx, identity, payload, rows)
	if atomicErr == nil {
		log.Info().Str("plant", doc.PlantName).Msg("stored plant and care via atomic upsert")
		return nil
	}
	log.Warn().Err(atomicErr).Str("plant", doc.PlantName).Msg("atomic upsert failed, falling back to client-side operations")

	if err := o.storeFallback(ctx, identity, payload, rows, skipped); err != nil {
		// Keep both failure reasons; the atomic error is the root
		// cause the fallback was masking.
		return fmt.Errorf("%w (atomic path: %v)", err, atomicErr)
	}
	return nil
}

// plantPayload assembles the column->value map shared by the atomic and
// fallback paths.
func plantPayload(doc *plantcare.Document, identity PlantIdentity) map[string]any {
	var carePlan any
	if doc.PlanKind == plantcare.PlanTabbed && doc.Tabbed != nil {
		carePlan = doc.Tabbed
	}
	return map[string]any{
		"plant_name":          doc.PlantName,
		"zone":                identity.Zone,
		"description":         doc.Description,
		"type":                doc.Type,
		"sun_requirements":    doc.Sun,
		"seed_starting_month": doc.SeedStartingMonth,
		"planting_month":      doc.PlantingMonth,
		"seed_starting_instructions": rawOrEmptyList(doc.SeedStartingInstructions),
		"planting_instructions":      rawOrEmptyList(doc.PlantingInstructions),
		"zone_suitability":    doc.ZoneSuitability,
		"seasonality":         doc.Seasonality,
		"plant_group":         string(doc.Group),
		"requirements":        doc.Requirements,
		"seed_starting":       rawOrNil(doc.SeedStarting),
		"planting":            rawOrNil(doc.Planting),
		"care_plan":           carePlan,
		"model_used":          doc.ModelUsed,
		"raw_llm_response":    rawOrNil(doc.RawResponse),
	}
}

func rawOrNil(raw json.RawMessage) any {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	return raw
}

// rawOrEmptyList defaults an absent instruction list to an empty one; the
// legacy list columns are non-null.
func rawOrEmptyList(raw json.RawMessage) any {
	if v := rawOrNil(raw); v != nil {
		return v
	}
	return json.RawMessage("[]")
}

// storeAtomic invokes the server-side transactional upsert procedure.
// Success is recognized by the presence of a returned plant identifier.
func (o *Orchestrator) storeAtomic(ctx context.Context, identity PlantIdentity, payload map[string]any, rows []plantcare.InstructionRow) error {
	plantJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal plant payload: %w", err)
	}
	if rows == nil {
		rows = []plantcare.InstructionRow{}
	}
	rowsJSON, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("marshal care rows: %w", err)
	}
	lookupJSON, err := json.Marshal(map[string]any{
		"plant_name":  identity.Name,
		"zone":        identity.Zone,
		"plant_group": string(identity.Group),
	})
	if err != nil {
		return fmt.Errorf("marshal lookup: %w", err)
	}

	result, err := o.db.QueryRows(ctx,
		`SELECT upsert_plant_and_care($1::jsonb, $2::jsonb, $3::jsonb) AS result`,
		plantJSON, rowsJSON, lookupJSON)
	if err != nil {
		return fmt.Errorf("upsert_plant_and_care call failed: %w", err)
	}
	if len(result) == 0 {
		return fmt.Errorf("upsert_plant_and_care returned no rows")
	}

	if id := plantIDFromRPC(result[0]["result"]); id != "" {
		return nil
	}
	return fmt.Errorf("upsert_plant_and_care did not return a plant id")
}

// plantIDFromRPC extracts the plant identifier from the procedure result,
// tolerating both a bare-object and a singleton-list envelope.
func plantIDFromRPC(result any) string {
	switch v := result.(type) {
	case map[string]any:
		if id, ok := v["plant_id"].(string); ok {
			return id
		}
	case []any:
		if len(v) > 0 {
			if first, ok := v[0].(map[string]any); ok {
				if id, ok := first["plant_id"].(string); ok {
					return id
				}
			}
		}
	}
	return ""
}

// storeFallback is the explicit multi-step path:
// find-by-identity, update or insert, delete old rows, bulk insert new.
func (o *Orchestrator) storeFallback(ctx context.Context, identity PlantIdentity, payload map[string]any, rows []plantcare.InstructionRow, skipped int) error {
	plantID, err := o.findOrCreatePlant(ctx, identity, payload)
	if err != nil {
		return err
	}

	// Best-effort delete of the previous instruction set. A failure here
	// is logged but not fatal; proceeding can transiently duplicate rows,
	// an accepted tradeoff on this path.
	if _, err := o.db.Exec(ctx, `DELETE FROM care_instructions WHERE plant_id = $1`, plantID); err != nil {
		log.Warn().Err(err).Str("plant_id", plantID).Msg("could not confirm deletion of old care instructions")
	}

	if len(rows) == 0 {
		if skipped > 0 {
			return fmt.Errorf("all care instructions were invalid for %q, nothing to insert", identity.Name)
		}
		log.Info().Str("plant", identity.Name).Msg("no care instructions generated to insert")
		return nil
	}

	affected, err := o.insertInstructions(ctx, plantID, rows)
	if err != nil {
		return fmt.Errorf("insert care instructions: %w", err)
	}
	if affected != int64(len(rows)) {
		return fmt.Errorf("partial care instruction insert: requested %d, confirmed %d", len(rows), affected)
	}

	log.Info().Str("plant_id", plantID).Int("instructions", len(rows)).Msg("stored care instructions")
	return nil
}

// findOrCreatePlant resolves the identity to a plant id, updating the
// attribute columns in place when the plant exists and inserting a new
// row otherwise. Failure to obtain an identifier is fatal for the whole
// store operation.
func (o *Orchestrator) findOrCreatePlant(ctx context.Context, identity PlantIdentity, payload map[string]any) (string, error) {
	var (
		found []map[string]any
		err   error
	)
	if identity.Group.Indoor() {
		found, err = o.db.QueryRows(ctx,
			`SELECT plant_id::text AS plant_id FROM plants WHERE plant_name = $1 AND plant_group = $2 AND zone IS NULL`,
			identity.Name, string(identity.Group))
	} else {
		found, err = o.db.QueryRows(ctx,
			`SELECT plant_id::text AS plant_id FROM plants WHERE plant_name = $1 AND zone = $2`,
			identity.Name, *identity.Zone)
	}
	if err != nil {
		return "", fmt.Errorf("find plant by identity: %w", err)
	}

	if len(found) > 0 {
		if len(found) > 1 {
			// Pre-existing duplicates are never merged or deleted
			// here; the first match is used deterministically.
			log.Warn().Str("plant", identity.Name).Int("matches", len(found)).Msg("multiple plant records found for identity, using the first")
		}
		plantID, _ := found[0]["plant_id"].(string)
		if plantID == "" {
			return "", fmt.Errorf("found plant record for %q but it is missing plant_id", identity.Name)
		}

		set := make([]string, 0, len(plantColumns))
		args := make([]any, 0, len(plantColumns)+1)
		for i, col := range plantColumns {
			set = append(set, fmt.Sprintf("%s = $%d", col, i+1))
			args = append(args, payload[col])
		}
		args = append(args, plantID)
		sql := fmt.Sprintf(`UPDATE plants SET %s WHERE plant_id = $%d`, strings.Join(set, ", "), len(args))
		if _, err := o.db.Exec(ctx, sql, args...); err != nil {
			return "", fmt.Errorf("update plant %q: %w", identity.Name, err)
		}
		log.Info().Str("plant_id", plantID).Str("plant", identity.Name).Msg("updating existing plant")
		return plantID, nil
	}

	placeholders := make([]string, 0, len(plantColumns))
	args := make([]any, 0, len(plantColumns))
	for i, col := range plantColumns {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, payload[col])
	}
	sql := fmt.Sprintf(`INSERT INTO plants (%s) VALUES (%s) RETURNING plant_id::text AS plant_id`,
		strings.Join(plantColumns, ", "), strings.Join(placeholders, ", "))

	inserted, err := o.db.QueryRows(ctx, sql, args...)
	if err != nil {
		return "", fmt.Errorf("insert plant %q: %w", identity.Name, err)
	}
	if len(inserted) == 0 {
		return "", fmt.Errorf("insert for plant %q returned no rows", identity.Name)
	}
	plantID, _ := inserted[0]["plant_id"].(string)
	if plantID == "" {
		return "", fmt.Errorf("insert for plant %q returned no plant_id", identity.Name)
	}
	log.Info().Str("plant_id", plantID).Str("plant", identity.Name).Msg("inserted new plant")
	return plantID, nil
}

// insertInstructions bulk-inserts the flattened rows in one statement.
func (o *Orchestrator) insertInstructions(ctx context.Context, plantID string, rows []plantcare.InstructionRow) (int64, error) {
	values := make([]string, 0, len(rows))
	args := make([]any, 0, len(rows)*6)
	for i, row := range rows {
		base := i * 6
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6))
		args = append(args, plantID, row.Phase, row.Months, row.Description, row.Priority, row.Order)
	}
	sql := fmt.Sprintf(
		`INSERT INTO care_instructions (plant_id, care_phase, months, step_description, priority, order_within_season) VALUES %s`,
		strings.Join(values, ", "))
	return o.db.Exec(ctx, sql, args...)
}
