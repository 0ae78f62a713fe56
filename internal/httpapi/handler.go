// Package httpapi provides the REST adapter mounted under /api/v1.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tracklab/pmt/internal/domain"
	"github.com/tracklab/pmt/internal/repository"
	"github.com/tracklab/pmt/internal/service"
	"github.com/tracklab/pmt/internal/timeline"
)

// maxRequestBodyBytes limits decoded JSON payload size.
const maxRequestBodyBytes int64 = 1 << 20

// errInvalidRequest marks client errors that map to a 400.
var errInvalidRequest = errors.New("invalid request")

// Handler serves the versioned API subrouter.
type Handler struct {
	workflow   service.WorkflowService
	timelines  service.TimelineService
	reports    service.ReportService
	milestones service.MilestoneService
	projects   service.ProjectService
}

// APIError represents one structured API failure response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorEnvelope wraps one structured API error.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func NewHandler(workflow service.WorkflowService, timelines service.TimelineService, reports service.ReportService, milestones service.MilestoneService, projects service.ProjectService) *Handler {
	return &Handler{
		workflow:   workflow,
		timelines:  timelines,
		reports:    reports,
		milestones: milestones,
		projects:   projects,
	}
}

// ServeHTTP routes one versioned API request to the matching handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	segments := splitPath(r.URL.Path)
	switch {
	case len(segments) == 3 && segments[0] == "items":
		h.routeItem(w, r, segments[1], segments[2])
	case len(segments) == 3 && segments[0] == "projects" && segments[2] == "timeline":
		h.requireMethod(w, r, http.MethodGet, func() { h.handleProjectTimeline(w, r, segments[1]) })
	case len(segments) == 3 && segments[0] == "projects" && segments[2] == "items":
		h.requireMethod(w, r, http.MethodPost, func() { h.handleItemIntake(w, r, segments[1]) })
	case len(segments) == 3 && segments[0] == "projects" && segments[2] == "personnel":
		h.handlePersonnel(w, r, segments[1])
	case len(segments) == 3 && segments[0] == "users" && segments[2] == "roles":
		h.requireMethod(w, r, http.MethodGet, func() { h.handleUserRoles(w, r, segments[1]) })
	case len(segments) == 1 && segments[0] == "clients":
		h.requireMethod(w, r, http.MethodPost, func() { h.handleClientRegister(w, r) })
	case len(segments) == 3 && segments[0] == "users" && segments[2] == "timeline":
		h.requireMethod(w, r, http.MethodGet, func() { h.handleUserTimeline(w, r, segments[1]) })
	case len(segments) == 2 && segments[0] == "milestones" && segments[1] == "sweep":
		h.requireMethod(w, r, http.MethodPost, func() { h.handleMilestoneSweep(w, r) })
	case len(segments) == 2 && segments[0] == "reports" && segments[1] == "weekly":
		h.requireMethod(w, r, http.MethodGet, func() { h.handleWeeklyReport(w, r) })
	default:
		writeJSONError(w, http.StatusNotFound, APIError{Code: "not_found", Message: "endpoint not found"})
	}
}

func (h *Handler) requireMethod(w http.ResponseWriter, r *http.Request, method string, next func()) {
	if r.Method != method {
		writeMethodNotAllowed(w, method)
		return
	}
	next()
}

// routeItem dispatches /items/{id}/{action}.
func (h *Handler) routeItem(w http.ResponseWriter, r *http.Request, rawID, action string) {
	iid, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "item id must be numeric"})
		return
	}

	if action == "notify" {
		h.handleNotify(w, r, iid)
		return
	}
	if action == "clients" {
		h.handleItemClients(w, r, iid)
		return
	}

	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	switch action {
	case "hours":
		h.handleItemHours(w, r, iid)
	case "resolve":
		h.handleItemResolve(w, r, iid)
	case "inprogress":
		h.handleTransition(w, r, iid, h.workflow.InProgress)
	case "verify":
		h.handleTransition(w, r, iid, h.workflow.Verify)
	case "reopen":
		h.handleTransition(w, r, iid, h.workflow.Reopen)
	case "comment":
		h.handleItemComment(w, r, iid)
	default:
		writeJSONError(w, http.StatusNotFound, APIError{Code: "not_found", Message: "endpoint not found"})
	}
}

type transitionRequest struct {
	User    string `json:"user"`
	Comment string `json:"comment,omitempty"`
	RStatus string `json:"r_status,omitempty"`
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request, iid int64, apply func(ctx context.Context, iid int64, actor, comment string) error) {
	var req transitionRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeErrorFrom(w, err)
		return
	}
	if req.User == "" {
		writeJSONError(w, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "user is required"})
		return
	}
	if err := apply(r.Context(), iid, req.User, req.Comment); err != nil {
		writeErrorFrom(w, err)
		return
	}
	h.writeItem(w, r, iid)
}

func (h *Handler) handleItemResolve(w http.ResponseWriter, r *http.Request, iid int64) {
	var req transitionRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeErrorFrom(w, err)
		return
	}
	if req.User == "" {
		writeJSONError(w, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "user is required"})
		return
	}
	if err := h.workflow.Resolve(r.Context(), iid, req.User, domain.ResolveStatus(req.RStatus), req.Comment); err != nil {
		writeErrorFrom(w, err)
		return
	}
	h.writeItem(w, r, iid)
}

type hoursRequest struct {
	User      string `json:"user"`
	Time      string `json:"time"`
	Completed string `json:"completed,omitempty"`
}

func (h *Handler) handleItemHours(w http.ResponseWriter, r *http.Request, iid int64) {
	var req hoursRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeErrorFrom(w, err)
		return
	}
	if req.User == "" {
		writeJSONError(w, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "user is required"})
		return
	}
	if req.Time == "" {
		req.Time = "1 hour"
	}
	var completed time.Time
	if req.Completed != "" {
		parsed, err := time.Parse(time.RFC3339, req.Completed)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "completed must be RFC3339"})
			return
		}
		completed = parsed
	}
	if err := h.workflow.AddResolveTime(r.Context(), iid, req.User, req.Time, completed); err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"status": "logged"})
}

type commentRequest struct {
	User string `json:"user"`
	Body string `json:"body"`
}

func (h *Handler) handleItemComment(w http.ResponseWriter, r *http.Request, iid int64) {
	var req commentRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeErrorFrom(w, err)
		return
	}
	if req.User == "" || req.Body == "" {
		writeJSONError(w, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "user and body are required"})
		return
	}
	if err := h.workflow.AddComment(r.Context(), iid, req.User, req.Body); err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"status": "added"})
}

type notifyRequest struct {
	User string `json:"user"`
}

// handleNotify serves the watcher subscription under /items/{id}/notify.
func (h *Handler) handleNotify(w http.ResponseWriter, r *http.Request, iid int64) {
	switch r.Method {
	case http.MethodGet:
		user := strings.TrimSpace(r.URL.Query().Get("user"))
		if user == "" {
			writeJSONError(w, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "user is required"})
			return
		}
		watching, err := h.workflow.IsWatching(r.Context(), iid, user)
		if err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"watching": watching})
	case http.MethodPost:
		var req notifyRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			writeErrorFrom(w, err)
			return
		}
		if req.User == "" {
			writeJSONError(w, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "user is required"})
			return
		}
		if err := h.workflow.Watch(r.Context(), iid, req.User); err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"status": "watching"})
	case http.MethodDelete:
		user := strings.TrimSpace(r.URL.Query().Get("user"))
		if user == "" {
			writeJSONError(w, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "user is required"})
			return
		}
		if err := h.workflow.Unwatch(r.Context(), iid, user); err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "unwatched"})
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodDelete)
	}
}

// intakeRequest is the external item submission payload. Unresolvable
// assignee/owner fall back to the project caretaker; a missing milestone
// falls back to the project's upcoming one.
type intakeRequest struct {
	Type          string `json:"type"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	AssignedTo    string `json:"assigned_to,omitempty"`
	Owner         string `json:"owner,omitempty"`
	MilestoneID   int64  `json:"milestone_id,omitempty"`
	Priority      int    `json:"priority,omitempty"`
	TargetDate    string `json:"target_date,omitempty"`
	EstimatedTime string `json:"estimated_time,omitempty"`
	SubmitterName string `json:"submitter_name,omitempty"`
	SubmitterMail string `json:"submitter_email,omitempty"`
	ClientEmail   string `json:"client_email,omitempty"`
}

func (h *Handler) handleItemIntake(w http.ResponseWriter, r *http.Request, rawPID string) {
	pid, err := strconv.ParseInt(rawPID, 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "project id must be numeric"})
		return
	}
	var req intakeRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeErrorFrom(w, err)
		return
	}
	if req.Title == "" {
		writeJSONError(w, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "title is required"})
		return
	}
	itemType := domain.ItemType(req.Type)
	if itemType != domain.ItemTypeBug && itemType != domain.ItemTypeAction {
		itemType = domain.ItemTypeBug
	}

	description := req.Description
	if req.SubmitterName != "" || req.SubmitterMail != "" {
		description = fmt.Sprintf("%s\n\nSubmitted by: %s <%s>", description, req.SubmitterName, req.SubmitterMail)
	}

	var targetDate time.Time
	if req.TargetDate != "" {
		parsed, err := time.Parse("2006-01-02", req.TargetDate)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "target_date must be YYYY-MM-DD"})
			return
		}
		targetDate = parsed
	}

	item, err := h.workflow.AddItem(r.Context(), service.AddItemRequest{
		ProjectID:     pid,
		MilestoneID:   req.MilestoneID,
		Type:          itemType,
		Title:         req.Title,
		Description:   description,
		AssignedTo:    req.AssignedTo,
		Owner:         req.Owner,
		Priority:      req.Priority,
		TargetDate:    targetDate,
		EstimatedTime: req.EstimatedTime,
	})
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	// A client address is attached opportunistically; an unregistered one
	// does not fail the intake.
	if req.ClientEmail != "" {
		if _, err := h.workflow.AttachClients(r.Context(), item.IID, []string{req.ClientEmail}); err != nil {
			writeErrorFrom(w, err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, itemPayload(item))
}

// handleItemClients serves the item-client association under
// /items/{id}/clients.
func (h *Handler) handleItemClients(w http.ResponseWriter, r *http.Request, iid int64) {
	switch r.Method {
	case http.MethodGet:
		clients, err := h.workflow.ItemClients(r.Context(), iid)
		if err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"clients": clientPayload(clients)})
	case http.MethodPost:
		var req struct {
			Emails []string `json:"emails"`
		}
		if err := decodeJSONBody(w, r, &req); err != nil {
			writeErrorFrom(w, err)
			return
		}
		if len(req.Emails) == 0 {
			writeJSONError(w, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "emails is required"})
			return
		}
		attached, err := h.workflow.AttachClients(r.Context(), iid, req.Emails)
		if err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"clients": clientPayload(attached)})
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (h *Handler) handleClientRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LastName  string `json:"lastname"`
		FirstName string `json:"firstname"`
		Email     string `json:"email"`
	}
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeErrorFrom(w, err)
		return
	}
	c := &domain.Client{LastName: req.LastName, FirstName: req.FirstName, Email: req.Email}
	if err := h.workflow.RegisterClient(r.Context(), c); err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, clientPayload([]*domain.Client{c})[0])
}

// handlePersonnel serves project membership under
// /projects/{id}/personnel.
func (h *Handler) handlePersonnel(w http.ResponseWriter, r *http.Request, rawPID string) {
	pid, err := strconv.ParseInt(rawPID, 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "project id must be numeric"})
		return
	}
	switch r.Method {
	case http.MethodGet:
		personnel, err := h.projects.Personnel(r.Context(), pid)
		if err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"managers":   usernames(personnel.Managers),
			"developers": usernames(personnel.Developers),
			"guests":     usernames(personnel.Guests),
		})
	case http.MethodPost:
		var req struct {
			User string `json:"user"`
			Role string `json:"role"`
		}
		if err := decodeJSONBody(w, r, &req); err != nil {
			writeErrorFrom(w, err)
			return
		}
		if req.User == "" {
			writeJSONError(w, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "user is required"})
			return
		}
		if err := h.projects.AddPersonnel(r.Context(), pid, req.User, domain.ProjectRole(req.Role)); err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"status": "added"})
	case http.MethodDelete:
		user := strings.TrimSpace(r.URL.Query().Get("user"))
		role := strings.TrimSpace(r.URL.Query().Get("role"))
		if user == "" || role == "" {
			writeJSONError(w, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "user and role are required"})
			return
		}
		if err := h.projects.RemovePersonnel(r.Context(), pid, user, domain.ProjectRole(role)); err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "removed"})
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodDelete)
	}
}

func (h *Handler) handleUserRoles(w http.ResponseWriter, r *http.Request, username string) {
	roles, err := h.projects.RolesFor(r.Context(), username)
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"manager_on":   projectNames(roles.ManagerOn),
		"developer_on": projectNames(roles.DeveloperOn),
		"guest_on":     projectNames(roles.GuestOn),
	})
}

func (h *Handler) handleProjectTimeline(w http.ResponseWriter, r *http.Request, rawPID string) {
	pid, err := strconv.ParseInt(rawPID, 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "project id must be numeric"})
		return
	}
	entries, err := h.timelines.ProjectTimeline(r.Context(), pid)
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": timelinePayload(entries)})
}

func (h *Handler) handleUserTimeline(w http.ResponseWriter, r *http.Request, username string) {
	entries, err := h.timelines.UserTimeline(r.Context(), username)
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": timelinePayload(entries)})
}

func (h *Handler) handleMilestoneSweep(w http.ResponseWriter, r *http.Request) {
	closed, err := h.milestones.Sweep(r.Context(), time.Now().UTC())
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"closed": closed})
}

func (h *Handler) handleWeeklyReport(w http.ResponseWriter, r *http.Request) {
	user := strings.TrimSpace(r.URL.Query().Get("user"))
	if user == "" {
		writeJSONError(w, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "user is required"})
		return
	}
	date := time.Now().UTC()
	if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}
	report, err := h.reports.WeeklyReport(r.Context(), user, date)
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reportPayload(report))
}

func (h *Handler) writeItem(w http.ResponseWriter, r *http.Request, iid int64) {
	item, err := h.workflow.GetItem(r.Context(), iid)
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, itemPayload(item))
}

func itemPayload(item *domain.Item) map[string]any {
	return map[string]any{
		"iid":            item.IID,
		"type":           string(item.Type),
		"title":          item.Title,
		"status":         string(item.Status),
		"status_display": string(item.StatusDisplay()),
		"r_status":       string(item.RStatus),
		"priority":       item.Priority,
		"priority_label": domain.PriorityLabel(item.Priority),
		"owner":          item.Owner,
		"assigned_to":    item.AssignedTo,
		"milestone_id":   item.MilestoneID,
		"target_date":    item.TargetDate.Format("2006-01-02"),
		"estimated_time": domain.FormatHours(item.EstimatedTime),
		"url":            item.URL(),
	}
}

func clientPayload(clients []*domain.Client) []map[string]any {
	out := make([]map[string]any, 0, len(clients))
	for _, c := range clients {
		out = append(out, map[string]any{
			"client_id": c.ClientID,
			"lastname":  c.LastName,
			"firstname": c.FirstName,
			"email":     c.Email,
			"status":    string(c.Status),
			"url":       c.URL(),
		})
	}
	return out
}

func usernames(users []*domain.UserProfile) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.Username)
	}
	return out
}

func projectNames(projects []*domain.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Name)
	}
	return out
}

func timelinePayload(entries []timeline.Entry) []map[string]any {
	out := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, map[string]any{
			"timestamp":  e.Timestamp().Format(time.RFC3339),
			"user":       e.User(),
			"project":    e.Project(),
			"event_type": e.EventType(),
			"title":      e.Title(),
			"body":       e.Body(),
			"label":      e.Label(),
			"url":        e.URL(),
		})
	}
	return out
}

func reportPayload(report *service.WeeklyReport) map[string]any {
	projects := make([]map[string]any, 0, len(report.Projects))
	for _, p := range report.Projects {
		projects = append(projects, map[string]any{
			"project_id":   p.ProjectID,
			"project_name": p.ProjectName,
			"hours":        p.Total.Hours(),
		})
	}
	return map[string]any{
		"user":        report.Username,
		"week_start":  report.WeekStart.Format("2006-01-02"),
		"week_end":    report.WeekEnd.Format("2006-01-02"),
		"prev_week":   report.PrevWeek.Format("2006-01-02"),
		"next_week":   report.NextWeek.Format("2006-01-02"),
		"projects":    projects,
		"total_hours": report.TotalHours(),
	}
}

// splitPath canonicalizes a request path into its segments.
func splitPath(path string) []string {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// writeErrorFrom maps service errors into structured HTTP responses.
func writeErrorFrom(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		writeJSONError(w, http.StatusInternalServerError, APIError{Code: "internal_error", Message: "unknown error"})
	case errors.Is(err, repository.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, APIError{Code: "not_found", Message: err.Error()})
	case errors.Is(err, errInvalidRequest), errors.Is(err, service.ErrInvalidInput):
		writeJSONError(w, http.StatusBadRequest, APIError{Code: "invalid_request", Message: err.Error()})
	default:
		writeJSONError(w, http.StatusInternalServerError, APIError{Code: "internal_error", Message: err.Error()})
	}
}

// writeMethodNotAllowed writes a structured 405 response with Allow headers.
func writeMethodNotAllowed(w http.ResponseWriter, methods ...string) {
	if len(methods) > 0 {
		w.Header().Set("Allow", strings.Join(methods, ", "))
	}
	writeJSONError(w, http.StatusMethodNotAllowed, APIError{Code: "method_not_allowed", Message: "method not allowed"})
}

func writeJSONError(w http.ResponseWriter, statusCode int, apiErr APIError) {
	writeJSON(w, statusCode, ErrorEnvelope{Error: apiErr})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, fmt.Sprintf(`{"error":{"code":"encode_error","message":"%s"}}`, err.Error()), http.StatusInternalServerError)
	}
}

// decodeJSONBody decodes one JSON request body with strict shape checks.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, out any) error {
	reader := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	defer reader.Close()

	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("decode request body: %w", errors.Join(errInvalidRequest, err))
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode request body: trailing content: %w", errInvalidRequest)
	}
	return nil
}
