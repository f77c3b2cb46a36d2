package http

import (
	"net/http"
	"strconv"
)

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeEntryRequest(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.entries.Create(r.Context(), raw)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", entryLocation(created.ID))
	writeJSON(w, http.StatusCreated, newEntryResponse(created))
}

func (s *Server) handlePreviewEntry(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeEntryRequest(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	m, err := s.entries.Preview(raw)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newMetricsResponse(m))
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	opts, err := parseListOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	entries, err := s.entries.ListAll(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newEntryListResponse(entries))
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	id, err := parseEntryID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	e, err := s.entries.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newEntryResponse(e))
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, err := parseEntryID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	raw, err := decodeEntryRequest(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := s.entries.Update(r.Context(), id, raw)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newEntryResponse(updated))
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := parseEntryID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.entries.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminEntries lists entries for modification, in the same orders as
// the public listing.
func (s *Server) handleAdminEntries(w http.ResponseWriter, r *http.Request) {
	s.handleListEntries(w, r)
}

func entryLocation(id int64) string {
	return "/entries/" + strconv.FormatInt(id, 10)
}
