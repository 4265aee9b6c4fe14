// internal/httpapi/map_handler.go
package httpapi

import (
	"encoding/json"
	"net/http"

	"realty-assistant/internal/mapview"
	"realty-assistant/internal/models"
	"realty-assistant/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// Marker pairs a property with its rendered color.
type Marker struct {
	Property models.Property `json:"property"`
	Color    string          `json:"color"`
}

type MapState struct {
	Visible bool           `json:"visible"`
	Pane    string         `json:"pane"`
	Bounds  mapview.Bounds `json:"bounds"`
	Markers []Marker       `json:"markers"`
}

type PaneRequest struct {
	Pane string `json:"pane"`
}

func mapStateOf(ctrl *session.Controller) MapState {
	mv := ctrl.MapView()
	properties := mv.Properties()
	markers := make([]Marker, 0, len(properties))
	for _, p := range properties {
		markers = append(markers, Marker{Property: p, Color: mapview.MarkerColor(p.Type)})
	}
	return MapState{
		Visible: mv.IsVisible(),
		Pane:    string(mv.Pane()),
		Bounds:  mv.Bounds(),
		Markers: markers,
	}
}

func RegisterMap(r chi.Router, d Deps) {
	lookup := func(w http.ResponseWriter, req *http.Request) *session.Controller {
		ctrl, ok := d.Sessions.Lookup(chi.URLParam(req, "id"))
		if !ok {
			render.Status(req, http.StatusNotFound)
			render.JSON(w, req, map[string]any{"error": "chat_not_found"})
			return nil
		}
		return ctrl
	}

	r.Get("/v1/chat/{id}/map", func(w http.ResponseWriter, req *http.Request) {
		ctrl := lookup(w, req)
		if ctrl == nil {
			return
		}
		render.JSON(w, req, mapStateOf(ctrl))
	})

	r.Post("/v1/chat/{id}/map/open", func(w http.ResponseWriter, req *http.Request) {
		ctrl := lookup(w, req)
		if ctrl == nil {
			return
		}
		ctrl.MapView().Open()
		render.JSON(w, req, mapStateOf(ctrl))
	})

	r.Post("/v1/chat/{id}/map/close", func(w http.ResponseWriter, req *http.Request) {
		ctrl := lookup(w, req)
		if ctrl == nil {
			return
		}
		ctrl.MapView().Close()
		render.JSON(w, req, mapStateOf(ctrl))
	})

	r.Post("/v1/chat/{id}/pane", func(w http.ResponseWriter, req *http.Request) {
		ctrl := lookup(w, req)
		if ctrl == nil {
			return
		}
		var body PaneRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_json", "detail": err.Error()})
			return
		}
		if body.Pane != string(mapview.PaneMap) && body.Pane != string(mapview.PaneDetail) {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_pane"})
			return
		}
		ctrl.MapView().SetPane(mapview.Pane(body.Pane))
		render.JSON(w, req, mapStateOf(ctrl))
	})
}
