package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/xtding233/pricing-backend/internal/pricing"
)

type usageResp struct {
	Currency string              `json:"currency"`
	Usage    []pricing.UsageCost `json:"usage"`
}

type licensingResp struct {
	Currency string `json:"currency"`
	pricing.LicenseBreakdown
}

type recommendResp struct {
	Currency string `json:"currency"`
	pricing.Recommendation
}

type pricingHandler struct {
	engine *pricing.Engine
}

func (h *pricingHandler) listPlans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Catalog().Plans)
}

func (h *pricingHandler) listModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Catalog().Models)
}

func (h *pricingHandler) listOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Catalog().Options)
}

func (h *pricingHandler) listSecurity(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Catalog().Security)
}

func (h *pricingHandler) compare(w http.ResponseWriter, r *http.Request) {
	cmp, err := h.engine.Compare(r.URL.Query()["plan"])
	if err != nil {
		handleError(w, r, toServiceError(err))
		return
	}
	writeJSON(w, http.StatusOK, cmp)
}

func (h *pricingHandler) usage(w http.ResponseWriter, r *http.Request) {
	sel, se := readSelection(r)
	if se != nil {
		handleError(w, r, se)
		return
	}
	usage, err := h.engine.Usage(sel)
	if err != nil {
		handleError(w, r, toServiceError(err))
		return
	}
	writeJSON(w, http.StatusOK, usageResp{Currency: h.engine.Catalog().Currency, Usage: usage})
}

func (h *pricingHandler) licensing(w http.ResponseWriter, r *http.Request) {
	sel, se := readSelection(r)
	if se != nil {
		handleError(w, r, se)
		return
	}
	lb, err := h.engine.Licensing(sel)
	if err != nil {
		handleError(w, r, toServiceError(err))
		return
	}
	writeJSON(w, http.StatusOK, licensingResp{Currency: h.engine.Catalog().Currency, LicenseBreakdown: lb})
}

func (h *pricingHandler) recommend(w http.ResponseWriter, r *http.Request) {
	sel, se := readSelection(r)
	if se != nil {
		handleError(w, r, se)
		return
	}
	rec, err := h.engine.Recommend(sel)
	if err != nil {
		handleError(w, r, toServiceError(err))
		return
	}
	writeJSON(w, http.StatusOK, recommendResp{Currency: h.engine.Catalog().Currency, Recommendation: rec})
}

func healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readSelection decodes a JSON body on POST, query parameters otherwise.
// Numbers are read permissively; only an unreadable body is an error.
func readSelection(r *http.Request) (pricing.Selection, *ServiceError) {
	sel := pricing.NewSelection()
	if r.Method == http.MethodPost {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return sel, newServiceError(ErrorMalformedRequest, ErrorMalformedRequestReason, http.StatusBadRequest, err.Error())
		}
		if len(strings.TrimSpace(string(body))) == 0 {
			return sel, nil
		}
		if err := json.Unmarshal(body, &sel); err != nil {
			return sel, newServiceError(ErrorMalformedRequest, ErrorMalformedRequestReason, http.StatusBadRequest, err.Error())
		}
		return sel, nil
	}
	return selectionFromQuery(sel, r.URL.Query()), nil
}

func selectionFromQuery(sel pricing.Selection, q url.Values) pricing.Selection {
	sel.Plans = q["plan"]
	sel.Models = q["model"]
	if q.Has("requests") {
		sel.RequestCount = pricing.Count(pricing.ParseCount(q.Get("requests")))
	}
	if q.Has("developers") {
		sel.DeveloperCount = pricing.Count(pricing.ParseCount(q.Get("developers")))
	}
	if q.Has("months") {
		sel.Months = pricing.Count(pricing.ParseCount(q.Get("months")))
	}
	if q.Has("billing") {
		sel.Billing = pricing.BillingCycle(q.Get("billing"))
	}
	if q.Has("github_plan") {
		sel.GitHubPlan = q.Get("github_plan")
	}
	sel.DivideRequests = parseBool(q.Get("divide"))
	sel = sel.WithKeyCounts(q["licenses"], q["option"], q["security"])
	if parseBool(q.Get("standalone")) {
		sel = sel.WithStandalone(true)
	}
	return sel
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}
