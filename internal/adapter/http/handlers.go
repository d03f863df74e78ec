package http

import (
	"net/http"
	"strconv"

	"github.com/Strob0t/QAForge/internal/domain/history"
	"github.com/Strob0t/QAForge/internal/service"
)

// bodyLimit is the maximum accepted JSON request body size.
const bodyLimit = 1 << 20 // 1 MiB

// Handlers bundles the services exposed over HTTP.
type Handlers struct {
	Projects  *service.ProjectService
	Scopes    *service.ScopeService
	Workflow  *service.WorkflowService
	Commands  *service.CommandService
	Terminal  *service.TerminalService
	Dashboard *service.DashboardService
}

// ExecuteCommand runs a shell command and returns the outcome. Command
// failures (non-zero exit, timeout, spawn error) still produce 200; the
// result carries the details.
func (h *Handlers) ExecuteCommand(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[service.ExecuteRequest](w, r, bodyLimit)
	if !ok {
		return
	}

	res, err := h.Terminal.Execute(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "execution failed")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ListHistory returns recorded executions, newest first. Supports
// ?command_id= and ?limit=.
func (h *Handlers) ListHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	entries, err := h.Terminal.History(r.Context(), q.Get("command_id"), limit)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// GetDashboard returns aggregate counts and recent activity.
func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Dashboard.Summary(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
