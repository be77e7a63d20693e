// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"codeberg.org/guidefe/guidefe/config"
	"codeberg.org/guidefe/guidefe/server/request_context"
)

var errorTemplate = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.StatusCode}} {{.StatusText}}</title>
<link rel="stylesheet" href="/css/style.css">
</head>
<body class="error-page">
<main>
<h1>{{.StatusCode}} {{.StatusText}}</h1>
{{if .Message}}<p class="error-detail">{{.Message}}</p>{{end}}
<p><a href="/">Back to the guide</a></p>
</main>
{{if .RepoURL}}<footer><a href="{{.RepoURL}}">guidefe source code</a></footer>{{end}}
</body>
</html>
`))

type errorData struct {
	StatusCode int
	StatusText string
	Message    string
	RepoURL    string
}

// ErrorPage renders an error page.
func ErrorPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	ctx := request_context.FromRequest(r)

	data := errorData{
		StatusCode: ctx.StatusCode,
		StatusText: http.StatusText(ctx.StatusCode),
		RepoURL:    config.Global.Instance.RepoURL,
	}

	if ctx.RequestError != nil {
		data.Message = ctx.RequestError.Error()
	}

	if err := errorTemplate.Execute(w, data); err != nil {
		log.Err(err).Msg("Failed to render error page")
	}
}
