package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// The demo routes mirror the classic ways a request carries input: path
// segments, the query string, a JSON body, headers, and cookies. They echo
// what they decode and touch no state.

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"data": "Hello world!"})
}

func (s *Server) handleHomepage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"data": "Handler"})
}

func (s *Server) handlePathParams(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	age := r.PathValue("age")

	writeJSON(w, http.StatusOK, map[string]string{
		"data": fmt.Sprintf("Name is : %s, age is: %s", name, age),
	})
}

// queryParams holds the decoded pagination-style query inputs
type queryParams struct {
	DataType string `json:"data_type" validate:"required"`
	Skip     int    `json:"skip" validate:"gte=0"`
	Limit    int    `json:"limit" validate:"lte=100"`
}

func (s *Server) handleQueryParams(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := queryParams{
		DataType: q.Get("data_type"),
		Skip:     0,
		Limit:    10,
	}

	if raw := q.Get("skip"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "skip must be an integer")
			return
		}
		params.Skip = v
	}
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		params.Limit = v
	}

	if errs := checkStruct(params); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	writeJSON(w, http.StatusOK, params)
}

// demoItem is the illustrative body shape; it has no persistence and is
// unrelated to the stored Item entity.
type demoItem struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"required,gt=0"`
	Brand *string `json:"brand"`
}

type demoItemEnvelope struct {
	Item *demoItem `json:"item" validate:"required"`
}

func (s *Server) handleBodyParam(w http.ResponseWriter, r *http.Request) {
	var envelope demoItemEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if errs := checkStruct(envelope); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	writeJSON(w, http.StatusOK, map[string]*demoItem{"item": envelope.Item})
}

func (s *Server) handleHeaderEcho(w http.ResponseWriter, r *http.Request) {
	var userAgent *string
	if ua := r.Header.Get("User-Agent"); ua != "" {
		userAgent = &ua
	}

	writeJSON(w, http.StatusOK, map[string]*string{"user_agent": userAgent})
}

func (s *Server) handleCookieEcho(w http.ResponseWriter, r *http.Request) {
	var token *string
	if cookie, err := r.Cookie("session_token"); err == nil {
		token = &cookie.Value
	}

	writeJSON(w, http.StatusOK, map[string]*string{"session_token": token})
}
