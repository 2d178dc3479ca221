package shell

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/omeeai/appshell/pkg/apiclient"
)

const (
	defaultHistoryPageSize = 10
	maxHistoryPageSize     = 50
)

func (m *Module) homePage(w http.ResponseWriter, r *http.Request) {
	snap := m.store.Snapshot()
	m.respond(w, http.StatusOK, map[string]any{
		"view": "home",
		"user": snap.User,
	})
}

// dashPage renders the visitor's usage-history table, paginated server-side
// via `page`/`pageSize` query params. A failed history fetch renders an empty
// table; the view stays usable and a re-navigation retries.
func (m *Module) dashPage(w http.ResponseWriter, r *http.Request) {
	snap := m.store.Snapshot()
	page, pageSize := historyPagination(r.URL.Query())

	history, err := m.api.ChatHistory(r.Context(), pageSize, page*pageSize)
	if err != nil {
		m.log.WarnContext(r.Context(), "chat history fetch failed", slog.Any("error", err))
		history = apiclient.ChatHistoryPage{List: []apiclient.ChatRecord{}}
	}

	m.respond(w, http.StatusOK, map[string]any{
		"view":     "dash",
		"user":     snap.User,
		"page":     page,
		"pageSize": pageSize,
		"history":  history,
	})
}

func historyPagination(query url.Values) (page, pageSize int) {
	page, _ = strconv.Atoi(query.Get("page"))
	if page < 0 {
		page = 0
	}

	pageSize, err := strconv.Atoi(query.Get("pageSize"))
	if err != nil || pageSize <= 0 {
		pageSize = defaultHistoryPageSize
	}
	if pageSize > maxHistoryPageSize {
		pageSize = maxHistoryPageSize
	}
	return page, pageSize
}
