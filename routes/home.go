/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
)

// Home renders the chat UI.
func Home(c flamego.Context, t template.Template, data template.Data, s session.Session) {
	data["UserName"] = sessionUserName(s)

	if _, ok := getAnalysisState(s); ok {
		data["HasAnalysis"] = true
	}

	t.HTML(http.StatusOK, "index")
}
