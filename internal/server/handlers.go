package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"runtime"
	"strings"
	"time"

	"GardenGenie/internal/identify"
	"GardenGenie/internal/plantcare"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"golang.org/x/sync/errgroup"
)

// zonePattern matches a USDA hardiness zone: 1-2 digits plus an optional
// a/b suffix (e.g. 7a, 8b, 5).
var zonePattern = regexp.MustCompile(`^\d{1,2}[ab]?$`)

type careRequest struct {
	PlantName string `json:"plant_name"`
	UserZone  string `json:"user_zone"`
	Persist   *bool  `json:"persist"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type nonPlantResponse struct {
	IsPlant bool   `json:"is_plant"`
	Message string `json:"message"`
}

// careInstructionsHandler classifies the plant, generates category-specific
// care instructions, persists them, and opportunistically attaches a stock
// photo. Generation failures surface as 503; persistence failures after a
// successful generation surface as 500. Image enrichment never changes the
// outcome.
func (s *Server) careInstructionsHandler(c echo.Context) error {
	var req careRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: "Invalid request body."})
	}
	req.PlantName = strings.TrimSpace(req.PlantName)
	if req.PlantName == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: "plant_name is required."})
	}
	if !zonePattern.MatchString(req.UserZone) {
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: "user_zone must be a USDA hardiness zone like 7a, 8b, or 5."})
	}
	persist := req.Persist == nil || *req.Persist

	// Once a model or store call is issued it runs to completion or its
	// own timeout; a client disconnect must not abort in-flight work.
	// Aborting between the fallback's delete and insert would strip a
	// plant of its instructions.
	ctx := context.WithoutCancel(c.Request().Context())
	log.Info().Str("plant", req.PlantName).Str("zone", req.UserZone).Msg("received plant care request")

	classification, err := s.classifier.Classify(ctx, req.PlantName)
	if err != nil {
		log.Error().Err(err).Str("plant", req.PlantName).Msg("classification failed")
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Detail: "Error generating plant care instructions."})
	}

	// A determined non-plant is a valid terminal outcome; downstream
	// generation and persistence are skipped entirely.
	if !classification.IsPlant {
		return c.JSON(http.StatusOK, nonPlantResponse{
			IsPlant: false,
			Message: fmt.Sprintf("%q doesn't appear to be a plant. Please try the name of a plant, tree, or shrub.", req.PlantName),
		})
	}

	group := *classification.Group
	promptGroup, err := plantcare.Route(group)
	if err != nil {
		log.Error().Err(err).Str("plant", req.PlantName).Msg("routing failed")
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Detail: "Error generating plant care instructions."})
	}

	doc, err := s.generator.Generate(ctx, req.PlantName, req.UserZone, promptGroup, group)
	if err != nil {
		log.Error().Err(err).Str("plant", req.PlantName).Msg("care generation failed")
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Detail: "Error generating plant care instructions."})
	}

	if persist {
		if err := s.orch.Store(ctx, doc, req.UserZone); err != nil {
			log.Error().Err(err).Str("plant", req.PlantName).Msg("failed to store plant and care instructions")
			return c.JSON(http.StatusInternalServerError, errorResponse{Detail: "Care instructions were generated but could not be stored."})
		}

		// Best-effort image enrichment, inline after persistence.
		s.enrichImage(ctx, doc.PlantName)
	}

	return c.JSONBlob(http.StatusOK, doc.Payload)
}

// enrichImage looks up and upserts one stock photo for the corrected
// plant name. Failures are logged and swallowed.
func (s *Server) enrichImage(ctx context.Context, plantName string) {
	img, err := s.images.Lookup(ctx, plantName)
	if err != nil {
		log.Warn().Err(err).Str("plant", plantName).Msg("image lookup failed")
		return
	}
	if img == nil {
		log.Info().Str("plant", plantName).Msg("no image data found, skipping image storage")
		return
	}
	s.orch.StoreImage(ctx, plantName, img)
}

// identifyPlantHandler accepts a multipart image upload and asks the
// vision model whether it depicts a plant.
func (s *Server) identifyPlantHandler(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: "A file upload named 'file' is required."})
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: "File must be an image (JPEG, PNG, etc.)"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Msg("error opening uploaded file")
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: "Error reading uploaded image file."})
	}
	defer src.Close()

	// Read one byte past the cap so oversized uploads are detectable
	// without buffering arbitrarily large bodies.
	limit := int64(s.cfg.MaxUploadMB)*1024*1024 + 1
	imageData, err := io.ReadAll(io.LimitReader(src, limit))
	if err != nil {
		log.Error().Err(err).Msg("error reading uploaded file")
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: "Error reading uploaded image file."})
	}
	if err := identify.ValidateImage(imageData, s.cfg.MaxUploadMB); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: err.Error()})
	}

	log.Info().Str("filename", fileHeader.Filename).Msg("received plant identification request")

	result, err := s.identifier.Identify(context.WithoutCancel(c.Request().Context()), imageData)
	if err != nil {
		log.Error().Err(err).Msg("plant identification failed")
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Detail: "Error analyzing the image. Please try again."})
	}

	return c.JSON(http.StatusOK, result)
}

// healthHandler reports store connectivity plus a system section, probed
// concurrently.
func (s *Server) healthHandler(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		dbStats map[string]string
		system  map[string]any
	)

	g, grpCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		dbStats = s.db.Health(grpCtx)
		return nil
	})
	g.Go(func() error {
		system = collectSystemStats(s.startTime)
		return nil
	})
	_ = g.Wait()

	status := "ok"
	dbConnection := "successful"
	if dbStats["status"] != "up" {
		status = "error"
		dbConnection = fmt.Sprintf("failed (%s)", dbStats["error"])
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":        status,
		"version":       s.cfg.Version,
		"db_connection": dbConnection,
		"db_pool":       dbStats,
		"system":        system,
	})
}

// collectSystemStats gathers process and host metrics. Probe errors leave
// zero values; health reporting never fails on them.
func collectSystemStats(startTime time.Time) map[string]any {
	v, _ := mem.VirtualMemory()
	cpuPercent, _ := cpu.Percent(0, false)
	hInfo, _ := host.Info()

	usage := 0.0
	if len(cpuPercent) > 0 {
		usage = cpuPercent[0]
	}

	stats := map[string]any{
		"uptime":     time.Since(startTime).String(),
		"goroutines": runtime.NumGoroutine(),
		"cpu": map[string]any{
			"usage_percent": fmt.Sprintf("%.2f%%", usage),
		},
	}
	if v != nil {
		stats["memory"] = map[string]any{
			"used_percent": fmt.Sprintf("%.2f%%", v.UsedPercent),
			"total_gb":     fmt.Sprintf("%.2f GB", float64(v.Total)/1024/1024/1024),
		}
	}
	if hInfo != nil {
		stats["host"] = map[string]any{
			"os":       hInfo.OS,
			"platform": hInfo.Platform,
			"hostname": hInfo.Hostname,
		}
	}
	return stats
}
