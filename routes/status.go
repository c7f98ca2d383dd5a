/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/flamego"

	"github.com/hemolens/hemolens/db"
	"github.com/hemolens/hemolens/ocr"
)

// Status reports service health: database reachability, active session
// count, and whether the OCR collaborator is configured.
func Status(c flamego.Context) {
	ctx := c.Request().Context()

	response := map[string]interface{}{
		"status": "ok",
	}

	if pool := db.GetPool(); pool != nil {
		if err := pool.Ping(ctx); err != nil {
			logger.Error("Database ping failed", "error", err)
			response["status"] = "degraded"
			response["database"] = "unreachable"
		} else {
			response["database"] = "ok"
			if count, err := db.CountActiveSessions(ctx); err == nil {
				response["activeSessions"] = count
			}
		}
	} else {
		response["database"] = "not configured"
	}

	if _, err := ocr.NewClient(); err != nil {
		response["ocr"] = "not configured"
	} else {
		response["ocr"] = "ok"
	}

	writeJSON(c, http.StatusOK, response)
}
