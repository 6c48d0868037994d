package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/umputun/briefing/pkg/aggregate"
	"github.com/umputun/briefing/pkg/briefing"
	"github.com/umputun/briefing/pkg/domain"
	"github.com/umputun/briefing/pkg/rules"
)

// titleRecord is one aggregated title in the titles listing
type titleRecord struct {
	SourceID     string             `json:"source_id"`
	SourceName   string             `json:"source_name"`
	Title        string             `json:"title"`
	Count        int                `json:"count"`
	Ranks        []int              `json:"ranks"`
	URL          string             `json:"url"`
	MobileURL    string             `json:"mobile_url"`
	FirstTime    time.Time          `json:"first_time"`
	LastTime     time.Time          `json:"last_time"`
	RankTimeline []domain.RankPoint `json:"rank_timeline"`
}

// healthHandler returns server status, unavailable if the database can't be reached
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		log.Printf("[WARN] health check failed: %v", err)
		renderJSON(w, r, http.StatusServiceUnavailable,
			map[string]string{"status": "unavailable", "version": s.version, "error": err.Error()})
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"status": "ok", "version": s.version})
}

// briefingHandler builds a briefing for the posted request
func (s *Server) briefingHandler(w http.ResponseWriter, r *http.Request) {
	var req briefing.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	if len(req.Rules) == 0 && req.Preset == "" {
		renderError(w, r, errors.New("rules or preset required"), http.StatusBadRequest)
		return
	}

	res, err := s.briefer.Build(r.Context(), req)
	if err != nil {
		if errors.Is(err, briefing.ErrPresetNotFound) {
			renderError(w, r, err, http.StatusNotFound)
			return
		}
		log.Printf("[ERROR] failed to build briefing: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// titlesHandler lists aggregated titles for a date range
func (s *Server) titlesHandler(w http.ResponseWriter, r *http.Request) {
	req := aggregateRequest(r, "source")
	if err := checkRange(req, s.config.GetMaxDays()); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	res, err := s.briefer.Search(r.Context(), req)
	if err != nil {
		s.renderAggregateError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, flattenTitles(res))
}

// feedsHandler lists stored feed entries for a date range
func (s *Server) feedsHandler(w http.ResponseWriter, r *http.Request) {
	req := aggregateRequest(r, "feed")
	if err := checkRange(req, s.config.GetMaxDays()); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	res, err := s.briefer.Entries(r.Context(), req)
	if err != nil {
		s.renderAggregateError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// rulesHandler parses posted rule text and returns the resulting groups
func (s *Server) rulesHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		renderError(w, r, fmt.Errorf("read body: %w", err), http.StatusBadRequest)
		return
	}
	rs := rules.Parse([]string{string(body)})
	if rs.Groups == nil {
		rs.Groups = []rules.WordGroup{}
	}
	if rs.FilterWords == nil {
		rs.FilterWords = []rules.WordToken{}
	}
	if rs.GlobalFilters == nil {
		rs.GlobalFilters = []string{}
	}
	renderJSON(w, r, http.StatusOK, rs)
}

// daysHandler lists days with stored snapshots
func (s *Server) daysHandler(w http.ResponseWriter, r *http.Request) {
	days, err := s.db.Days(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to list days: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if days == nil {
		days = []string{}
	}
	renderJSON(w, r, http.StatusOK, map[string][]string{"days": days})
}

// presetsHandler lists configured group names usable as presets
func (s *Server) presetsHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, map[string][]string{"presets": s.briefer.Presets()})
}

func (s *Server) renderAggregateError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, aggregate.ErrInvalidRequest) {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	log.Printf("[ERROR] failed to aggregate: %v", err)
	renderError(w, r, err, http.StatusInternalServerError)
}

// aggregateRequest reads the range and filters from query params. End defaults to start,
// sources come from repeated or comma separated values of sourceParam.
func aggregateRequest(r *http.Request, sourceParam string) aggregate.Request {
	q := r.URL.Query()
	req := aggregate.Request{
		Start:        q.Get("start"),
		End:          q.Get("end"),
		Query:        q.Get("q"),
		IncludeRegex: q.Get("regex"),
	}
	if req.End == "" {
		req.End = req.Start
	}
	if vals, ok := q[sourceParam]; ok {
		req.Sources = []string{}
		for _, v := range vals {
			for _, id := range strings.Split(v, ",") {
				if id = strings.TrimSpace(id); id != "" {
					req.Sources = append(req.Sources, id)
				}
			}
		}
	}
	return req
}

// checkRange rejects ranges longer than maxDays. Unparsable dates pass through,
// the aggregator reports them.
func checkRange(req aggregate.Request, maxDays int) error {
	if maxDays <= 0 {
		return nil
	}
	start, startErr := time.Parse(aggregate.DateLayout, req.Start)
	end, endErr := time.Parse(aggregate.DateLayout, req.End)
	if startErr != nil || endErr != nil {
		return nil
	}
	if days := int(end.Sub(start).Hours()/24) + 1; days > maxDays {
		return fmt.Errorf("%w: range of %d days exceeds %d", aggregate.ErrInvalidRequest, days, maxDays)
	}
	return nil
}

// flattenTitles turns a title result into records ordered by source, best rank and title
func flattenTitles(tr *aggregate.TitleResult) []titleRecord {
	res := []titleRecord{}
	if tr == nil {
		return res
	}
	for srcID, titles := range tr.Results {
		name := tr.IDToName[srcID]
		if name == "" {
			name = srcID
		}
		for title, summary := range titles {
			rec := titleRecord{SourceID: srcID, SourceName: name, Title: title, Ranks: summary.Ranks,
				URL: summary.URL, MobileURL: summary.MobileURL}
			if full := tr.Titles[srcID][title]; full != nil {
				rec.Count = full.Count
				rec.FirstTime, rec.LastTime = full.FirstTime, full.LastTime
				rec.RankTimeline = full.RankTimeline
			}
			res = append(res, rec)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].SourceID != res[j].SourceID {
			return res[i].SourceID < res[j].SourceID
		}
		bi, bj := domain.BestRank(res[i].Ranks), domain.BestRank(res[j].Ranks)
		if bi != bj {
			return bi < bj
		}
		return res[i].Title < res[j].Title
	})
	return res
}
