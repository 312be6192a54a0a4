package handlers

import (
	"log"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"skylink/internal/services"
)

const MissingArchiveError = "no dataset archive provided"

// DatasetHandler defines handlers for dataset archive uploads.
type DatasetHandler struct {
	Service *services.InstrumentedAirspaceService
}

// NewDatasetHandler creates a new DatasetHandler with the given service.
func NewDatasetHandler(service *services.InstrumentedAirspaceService) *DatasetHandler {
	return &DatasetHandler{Service: service}
}

// ImportDataset handles POST /datasets.
// @Summary Import a dataset archive
// @Description Uploads an archive containing aircraft and drone CSV files, extracts it, switches to real mode and runs a pass
// @Tags datasets
// @Accept multipart/form-data
// @Produce json
// @Param archive formData file true "Dataset archive (zip, tar, tar.gz, ...)"
// @Success 200 {object} models.SystemStatus "Status after the pass over the imported dataset"
// @Failure 400 {object} map[string]interface{} "Missing or unusable archive"
// @Failure 500 {object} map[string]interface{} "Extraction or pass failed"
// @Router /datasets [post]
func (h *DatasetHandler) ImportDataset(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("archive")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": MissingArchiveError,
		})
	}

	tmpDir, err := os.MkdirTemp("", "skylink-upload-*")
	if err != nil {
		log.Printf("Error creating upload directory: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "failed to store uploaded archive",
		})
	}
	defer os.RemoveAll(tmpDir)

	archivePath := filepath.Join(tmpDir, filepath.Base(fileHeader.Filename))
	if err := c.SaveFile(fileHeader, archivePath); err != nil {
		log.Printf("Error saving uploaded archive %s: %v", fileHeader.Filename, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "failed to store uploaded archive",
		})
	}

	snap, err := h.Service.ImportDataset(archivePath)
	if err != nil {
		log.Printf("Error importing dataset %s: %v", fileHeader.Filename, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	log.Printf("Imported dataset %s: %d aircraft, %d drones", fileHeader.Filename, len(snap.Aircraft), len(snap.Drones))
	return c.JSON(h.Service.Status())
}
