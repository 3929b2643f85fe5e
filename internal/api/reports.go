package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kwamena/ugrecover/internal/authz"
	"github.com/kwamena/ugrecover/internal/query"
	"github.com/kwamena/ugrecover/internal/report"
	"github.com/kwamena/ugrecover/internal/session"
)

// ReportsHandler produces downloadable exports of session data.
type ReportsHandler struct {
	Sessions *session.Manager
}

// ItemsXLSX streams an Excel workbook of lost items. The same filter
// parameters as the item listing apply; pagination does not.
func (h *ReportsHandler) ItemsXLSX(w http.ResponseWriter, r *http.Request) {
	s, claims, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}
	if err := authz.Can(claims.Role, authz.ExportReports); err != nil {
		domainError(w, err)
		return
	}

	now := time.Now()
	s.SweepExpired(now)

	p := parseQuery(r)
	items := s.ListItems(now)
	items = query.Search(items, p.Search, itemAccessors.SearchFields)
	items = query.FilterStatus(items, p.Category, itemAccessors.Category)
	items = query.FilterStatus(items, p.Status, itemAccessors.Status)
	items = query.FilterDateRange(items, p.From, p.To, itemAccessors.Date)

	workbook, err := report.ItemsWorkbook(items)
	if err != nil {
		domainError(w, err)
		return
	}

	filename := fmt.Sprintf("lost-items-%s.xlsx", now.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(workbook); err != nil {
		return
	}
}
