package handler

import (
	"errors"
	"mime"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"quoteapi/internal/service"
)

// ListAnalyses handles GET /api/analyses?limit=&offset=.
//
// @Summary  List archived analyses
// @Tags     archive
// @Produce  json
// @Param    limit  query int false "page size (default 10, max 100)"
// @Param    offset query int false "rows to skip"
// @Success  200 {object} service.AnalysisListResult
// @Failure  400 {object} errorPayload
// @Router   /api/analyses [get]
func ListAnalyses(svc service.ArchiveService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// GetAnalysis handles GET /api/analyses/:id.
//
// @Summary  Get an archived analysis
// @Tags     archive
// @Produce  json
// @Param    id path string true "analysis ID (UUID)"
// @Success  200 {object} service.ArchivedAnalysis
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /api/analyses/{id} [get]
func GetAnalysis(svc service.ArchiveService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		res, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeArchiveError(c, err)
		}
		return c.JSON(res)
	}
}

// DownloadAnalysisFile handles GET /api/analyses/:id/file and streams the original upload.
//
// @Summary  Download the archived quote file
// @Tags     archive
// @Produce  octet-stream
// @Param    id path string true "analysis ID (UUID)"
// @Success  200 {file} file
// @Failure  404 {object} errorPayload
// @Router   /api/analyses/{id}/file [get]
func DownloadAnalysisFile(svc service.ArchiveService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, rec, err := svc.Open(c.UserContext(), id)
		if err != nil {
			return writeArchiveError(c, err)
		}

		ct := rec.ContentType
		if ct == "" {
			ct = fiber.MIMEOctetStream
		}
		c.Set(fiber.HeaderContentType, ct)
		c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": rec.Filename}))
		// fasthttp closes rc once the body is written
		size := int(rec.Size)
		if size <= 0 {
			size = -1
		}
		return c.SendStream(rc, size)
	}
}

// DeleteAnalysis handles DELETE /api/analyses/:id.
//
// @Summary  Delete an archived analysis and its file
// @Tags     archive
// @Param    id path string true "analysis ID (UUID)"
// @Success  204
// @Failure  404 {object} errorPayload
// @Router   /api/analyses/{id} [delete]
func DeleteAnalysis(svc service.ArchiveService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeArchiveError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func parseID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func writeArchiveError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "analysis not found")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
