// Package fakeapi is an in-memory stand-in for the actions collection service.
// It mirrors the REST contract the client consumes (status codes, field error
// arrays, trailing-slash paths) and records every request so tests can assert
// on the traffic a caller generated.
package fakeapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/julianstephens/sustainlog/internal/constants"
	"github.com/julianstephens/sustainlog/internal/models"
)

// Fault is a canned response returned instead of the normal handler.
type Fault struct {
	Status int
	Body   string
}

// Request is one recorded call.
type Request struct {
	Method string
	Path   string
	Body   []byte
	Header http.Header
}

// Server implements http.Handler. The zero value is not usable; call New.
type Server struct {
	mu       sync.Mutex
	router   *mux.Router
	actions  []models.Action
	nextID   int64
	requests []Request
	faults   map[string][]Fault
}

// New creates a server seeded with actions. Ids continue after the largest
// seeded id.
func New(seed ...models.Action) *Server {
	s := &Server{
		actions: append([]models.Action(nil), seed...),
		faults:  make(map[string][]Fault),
	}
	for _, a := range seed {
		if a.ID > s.nextID {
			s.nextID = a.ID
		}
	}

	r := mux.NewRouter()
	r.HandleFunc(constants.ActionsPath, s.handleList).Methods(http.MethodGet)
	r.HandleFunc(constants.ActionsPath, s.handleCreate).Methods(http.MethodPost)
	r.HandleFunc(constants.ActionsPath+"{id:[0-9]+}/", s.handleGet).Methods(http.MethodGet)
	r.HandleFunc(constants.ActionsPath+"{id:[0-9]+}/", s.handleUpdate).Methods(http.MethodPatch, http.MethodPut)
	r.HandleFunc(constants.ActionsPath+"{id:[0-9]+}/", s.handleDelete).Methods(http.MethodDelete)
	s.router = r

	return s
}

// ServeHTTP records the request, applies any queued fault and routes it.
// Paths may be mounted under a prefix such as /api.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if i := strings.Index(r.URL.Path, constants.ActionsPath); i > 0 {
		r.URL.Path = r.URL.Path[i:]
	}

	var body []byte
	if r.Body != nil {
		body, _ = io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
	}

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Body:   body,
		Header: r.Header.Clone(),
	})
	var fault *Fault
	if queue := s.faults[r.Method]; len(queue) > 0 {
		fault = &queue[0]
		s.faults[r.Method] = queue[1:]
	}
	s.mu.Unlock()

	if fault != nil {
		if fault.Body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(fault.Status)
		_, _ = w.Write([]byte(fault.Body))
		return
	}

	s.router.ServeHTTP(w, r)
}

// Fail queues a canned response for the next request with the given method.
func (s *Server) Fail(method string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[method] = append(s.faults[method], Fault{Status: status, Body: body})
}

// Count returns how many requests with the given method have been received.
func (s *Server) Count(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, req := range s.requests {
		if req.Method == method {
			n++
		}
	}
	return n
}

// Requests returns a copy of every recorded request.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent request with the given method.
func (s *Server) LastRequest(method string) (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		if s.requests[i].Method == method {
			return s.requests[i], true
		}
	}
	return Request{}, false
}

// Actions returns a copy of the stored collection.
func (s *Server) Actions() []models.Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Action(nil), s.actions...)
}

// SetActions replaces the stored collection.
func (s *Server) SetActions(actions ...models.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append([]models.Action(nil), actions...)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	actions := append([]models.Action{}, s.actions...)
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, actions)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}

	action, errs := validate(fields, models.Action{}, false)
	if len(errs) > 0 {
		respondJSON(w, http.StatusBadRequest, errs)
		return
	}

	s.mu.Lock()
	s.nextID++
	action.ID = s.nextID
	s.actions = append(s.actions, action)
	s.mu.Unlock()

	respondJSON(w, http.StatusCreated, action)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		respondError(w, http.StatusNotFound, "Not found")
		return
	}
	respondJSON(w, http.StatusOK, s.actions[i])
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	s.mu.Lock()
	i := s.indexOf(id)
	var current models.Action
	if i >= 0 {
		current = s.actions[i]
	}
	s.mu.Unlock()
	if i < 0 {
		respondError(w, http.StatusNotFound, "Not found")
		return
	}

	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}

	updated, errs := validate(fields, current, r.Method == http.MethodPatch)
	if len(errs) > 0 {
		respondJSON(w, http.StatusBadRequest, errs)
		return
	}
	updated.ID = id

	s.mu.Lock()
	if i = s.indexOf(id); i >= 0 {
		s.actions[i] = updated
	}
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		respondError(w, http.StatusNotFound, "Not found")
		return
	}
	s.actions = append(s.actions[:i], s.actions[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

// indexOf must be called with mu held.
func (s *Server) indexOf(id int64) int {
	for i, a := range s.actions {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func decodeFields(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"detail": "JSON parse error - " + err.Error()})
		return nil, false
	}
	return fields, true
}

// validate applies fields on top of base. With partial set, absent fields keep
// their base value; otherwise every field is required.
func validate(fields map[string]json.RawMessage, base models.Action, partial bool) (models.Action, map[string][]string) {
	errs := make(map[string][]string)
	out := base

	if raw, ok := fields["action"]; ok {
		var s *string
		if err := json.Unmarshal(raw, &s); err != nil {
			errs["action"] = []string{"Not a valid string."}
		} else if s == nil {
			errs["action"] = []string{"This field may not be null."}
		} else if strings.TrimSpace(*s) == "" {
			errs["action"] = []string{"This field may not be blank."}
		} else {
			out.Action = *s
		}
	} else if !partial {
		errs["action"] = []string{"This field is required."}
	}

	if raw, ok := fields["date"]; ok {
		var s *string
		if err := json.Unmarshal(raw, &s); err != nil || s == nil {
			errs["date"] = []string{"Date has wrong format. Use one of these formats instead: YYYY-MM-DD."}
		} else if _, err := time.Parse(constants.DateFormat, *s); err != nil {
			errs["date"] = []string{"Date has wrong format. Use one of these formats instead: YYYY-MM-DD."}
		} else {
			out.Date = *s
		}
	} else if !partial {
		errs["date"] = []string{"This field is required."}
	}

	if raw, ok := fields["points"]; ok {
		var f *float64
		if err := json.Unmarshal(raw, &f); err != nil {
			errs["points"] = []string{"A valid integer is required."}
		} else if f == nil {
			errs["points"] = []string{"This field may not be null."}
		} else if *f != float64(int(*f)) {
			errs["points"] = []string{"A valid integer is required."}
		} else if *f < 0 {
			errs["points"] = []string{"Ensure this value is greater than or equal to 0."}
		} else {
			out.Points = int(*f)
		}
	} else if !partial {
		errs["points"] = []string{"This field is required."}
	}

	return out, errs
}

func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, code int, msg string) {
	respondJSON(w, code, map[string]string{"error": msg})
}
