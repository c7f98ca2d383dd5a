/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import "errors"

var (
	errNoAnalysis        = errors.New("no report analyzed yet; upload and analyze a report first")
	errEmptyReportText   = errors.New("report text is empty")
	errMissingUserName   = errors.New("user name missing")
	errUnknownParameter  = errors.New("unknown parameter name")
	errMissingFileUpload = errors.New("missing file upload")
)
