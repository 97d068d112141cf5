package reviews

import "context"

//go:generate templ generate -f views.templ

type breadcrumb struct {
	Title string
	URL   string
}

type listLabels struct {
	Delete   string
	Empty    string
	Previous string
	Next     string
	Rating   string
}

type listView struct {
	Title       string
	Breadcrumbs []breadcrumb
	Reviews     []Review
	Navigation  Navigation
	Flashes     []string
	DeleteURL   string
	Token       string
	Page        int
	Labels      listLabels
}

func (h *Handler) labels(ctx context.Context) listLabels {
	return listLabels{
		Delete:   h.translator.Tc(ctx, "DELETE"),
		Empty:    h.translator.Tc(ctx, "NO_REVIEWS"),
		Previous: h.translator.Tc(ctx, "PREVIOUS"),
		Next:     h.translator.Tc(ctx, "NEXT"),
		Rating:   h.translator.Tc(ctx, "RATING"),
	}
}
