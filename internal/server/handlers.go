package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"neonmap/internal/apperr"
	"neonmap/internal/store"
)

const maxBody = 32 << 20

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	if err := dec.Decode(v); err != nil {
		return apperr.Validation("invalid JSON body: " + err.Error())
	}
	return nil
}

func mapID(r *http.Request) store.ID {
	return store.ID(chi.URLParam(r, "id"))
}

// list handles GET /api/mindmaps/maps
func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	f, err := store.ParseFilter(r.URL.Query())
	if err != nil {
		s.fail(w, r, apperr.Validation(err.Error()))
		return
	}
	recs, err := s.backend.Records(r.Context(), f)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if recs == nil {
		recs = []store.Record{}
	}
	respondJSON(w, http.StatusOK, recs)
}

// create handles POST /api/mindmaps/maps
func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var in store.NewRecord
	if err := decode(w, r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	rec, err := s.backend.Create(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

// get handles GET /api/mindmaps/maps/{id}
func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	rec, err := s.backend.Load(r.Context(), mapID(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// update handles PATCH /api/mindmaps/maps/{id}
func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	var patch store.Patch
	if err := decode(w, r, &patch); err != nil {
		s.fail(w, r, err)
		return
	}
	rec, err := s.backend.Update(r.Context(), mapID(r), patch)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// delete handles DELETE /api/mindmaps/maps/{id}
func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id := mapID(r)
	if err := s.backend.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	s.log.Info("map deleted", zap.String("map", id.String()))
	w.WriteHeader(http.StatusNoContent)
}
