package shell

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/omeeai/appshell/pkg/catalog"
)

// planView is the render model for one pricing card.
type planView struct {
	Name     string        `json:"name"`
	AI       string        `json:"ai"`
	Features []featureView `json:"features"`
	Free     bool          `json:"free"`
	Price    *priceView    `json:"price,omitempty"`
}

type featureView struct {
	Main   string `json:"main"`
	Detail string `json:"detail,omitempty"`
}

type priceView struct {
	Duration string  `json:"duration"`
	Amount   float64 `json:"amount"`
	Label    string  `json:"label"`
}

// pricingPage renders the plan-selection view. Catalog absence is a loading
// state, never an error.
func (m *Module) pricingPage(w http.ResponseWriter, r *http.Request) {
	snap := m.store.Snapshot()
	if snap.Catalog == nil {
		m.respond(w, http.StatusOK, map[string]bool{"loading": true})
		return
	}

	duration := selectedDuration(r.URL.Query())

	plans := make([]planView, 0, len(snap.Catalog.Plans))
	for _, p := range snap.Catalog.Plans {
		plans = append(plans, planViewOf(p, duration))
	}

	m.respond(w, http.StatusOK, map[string]any{
		"view":             "pricing",
		"subscriptionType": string(duration),
		"plans":            plans,
	})
}

// paymentPage renders the checkout summary for the selection carried in the
// navigation parameters. An unresolvable selection routes back to plan
// selection, but only once the catalog is actually present.
func (m *Module) paymentPage(w http.ResponseWriter, r *http.Request) {
	snap := m.store.Snapshot()
	if snap.Catalog == nil {
		m.respond(w, http.StatusOK, map[string]bool{"loading": true})
		return
	}

	offer, err := resolveSelection(snap.Catalog, r.URL.Query())
	if err != nil {
		http.Redirect(w, r, "/pricing", http.StatusSeeOther)
		return
	}

	m.respond(w, http.StatusOK, map[string]any{
		"view":     "payment",
		"plan":     offer.Plan.Name,
		"duration": string(offer.Price.Duration),
		"amount":   offer.Price.Amount,
		"total":    catalog.FormatAmount(offer.Price.Amount, "USD"),
	})
}

func planViewOf(p catalog.Plan, d catalog.Duration) planView {
	features := make([]featureView, 0, len(p.Features))
	for _, f := range p.Features {
		fv := featureView{Main: f.Main}
		if f.Detail != nil {
			fv.Detail = f.Detail.For(d)
		}
		features = append(features, fv)
	}

	view := planView{
		Name:     p.Name,
		AI:       p.AI,
		Features: features,
		Free:     p.IsFree(),
	}

	if pp, ok := p.Price(d); ok {
		view.Price = &priceView{
			Duration: string(pp.Duration),
			Amount:   pp.Amount,
			Label:    catalog.FormatAmount(pp.Amount, "USD"),
		}
	}

	return view
}

func selectedDuration(query url.Values) catalog.Duration {
	d, err := catalog.ParseDuration(query.Get("subscriptionType"))
	if err != nil {
		return catalog.DurationMonthly
	}
	return d
}

func resolveSelection(c *catalog.PriceCatalog, query url.Values) (catalog.ResolvedOffer, error) {
	plan := query.Get("plan")
	if plan == "" {
		return catalog.ResolvedOffer{}, errors.Join(catalog.ErrResolution, errors.New("no plan selected"))
	}

	d, err := catalog.ParseDuration(query.Get("subscriptionType"))
	if err != nil {
		return catalog.ResolvedOffer{}, errors.Join(catalog.ErrResolution, err)
	}

	return catalog.Resolve(c, plan, d)
}
