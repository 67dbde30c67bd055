package export

import (
	"html/template"
	"io"
	"time"

	"github.com/watchvaultapp/watchvault-server/internal/domain"
	apperrors "github.com/watchvaultapp/watchvault-server/internal/errors"
	"github.com/watchvaultapp/watchvault-server/internal/views"
)

// printableTemplate renders the print-to-PDF document: a stats header
// followed by To Watch and Watched sections. Styling stays minimal and
// inline; the document must print standalone.
var printableTemplate = template.Must(template.New("printable").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Georgia, serif; margin: 2rem auto; max-width: 48rem; color: #222; }
h1 { border-bottom: 2px solid #222; padding-bottom: 0.5rem; }
h2 { margin-top: 2rem; }
.stats { display: flex; gap: 2rem; margin: 1rem 0; font-size: 0.9rem; }
.entry { padding: 0.5rem 0; border-bottom: 1px solid #ddd; }
.meta { color: #666; font-size: 0.85rem; }
.notes { font-style: italic; margin-top: 0.25rem; }
@media print { body { margin: 0.5rem; } }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="stats">
<span>{{.Stats.Total}} titles</span>
<span>{{.Stats.Watched}} watched</span>
<span>{{.Stats.Unwatched}} to watch</span>
<span>{{printf "%.0f" .Stats.CompletionPercent}}% complete</span>
</div>
<h2>To Watch ({{len .ToWatch}})</h2>
{{range .ToWatch}}{{template "entry" .}}{{else}}<p class="meta">Nothing queued.</p>
{{end}}
<h2>Watched ({{len .Watched}})</h2>
{{range .Watched}}{{template "entry" .}}{{else}}<p class="meta">Nothing watched yet.</p>
{{end}}
<p class="meta">Generated {{.GeneratedAt.Format "January 2, 2006"}}</p>
</body>
</html>
{{define "entry"}}<div class="entry">
<strong>{{.Title}}</strong>{{with .ReleaseYear}} ({{.}}){{end}}
<div class="meta">{{.MediaKind.Label}}{{if .Rated}} &middot; rated {{.UserRating}}/5{{end}}</div>
{{with .Notes}}<div class="notes">{{.}}</div>{{end}}
</div>
{{end}}`))

type printableData struct {
	Title       string
	Stats       views.Stats
	ToWatch     []domain.Entry
	Watched     []domain.Entry
	GeneratedAt time.Time
}

// WritePrintable renders the printable HTML document.
func WritePrintable(w io.Writer, entries []domain.Entry, title string, now time.Time) error {
	if title == "" {
		title = "My Watchlist"
	}
	data := printableData{
		Title:       title,
		Stats:       views.Statistics(entries),
		ToWatch:     views.Filter(entries, views.FilterUnwatched, ""),
		Watched:     views.Filter(entries, views.FilterWatched, ""),
		GeneratedAt: now,
	}
	if err := printableTemplate.Execute(w, data); err != nil {
		return apperrors.ErrExportFailed.WithCause(err)
	}
	return nil
}
