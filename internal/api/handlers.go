package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/kago96/character-worker/internal/broker"
	"github.com/kago96/character-worker/internal/engine"
	"github.com/kago96/character-worker/internal/identity"
	"github.com/kago96/character-worker/internal/scenes"
	"github.com/kago96/character-worker/internal/store"
	"github.com/kago96/character-worker/internal/timeline"

	"github.com/google/uuid"
)

type createCharacterRequest struct {
	CharacterID string          `json:"character_id"`
	Identity    json.RawMessage `json:"identity"`
}

type scenesRequest struct {
	CharacterID string              `json:"character_id"`
	Scenes      []scenes.SceneInput `json:"scenes"`
}

type engineRequest struct {
	CharacterID string           `json:"character_id"`
	Timeline    []timeline.Entry `json:"timeline"`
}

type generateRequest struct {
	CharacterID string  `json:"character_id"`
	Action      string  `json:"action"`
	Object      string  `json:"object"`
	Dialogue    string  `json:"dialogue"`
	Duration    float64 `json:"duration"`
}

func (s *Server) handleCreateCharacter(w http.ResponseWriter, r *http.Request) {
	var req createCharacterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidJSON, "malformed request body")
		return
	}
	if req.CharacterID == "" || len(req.Identity) == 0 {
		writeError(w, http.StatusBadRequest, CodeInvalidCharacterPayload, "character_id and identity are required")
		return
	}

	if err := s.store.PutIdentity(r.Context(), req.CharacterID, req.Identity); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			writeError(w, http.StatusConflict, CodeCharacterAlreadyExists, fmt.Sprintf("character %s already exists", req.CharacterID))
			return
		}
		slog.Error("store identity failed", "character_id", req.CharacterID, "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternalError, "failed to store identity")
		return
	}

	slog.Info("identity locked", "character_id", req.CharacterID)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "stored",
		"character_id": req.CharacterID,
	})
}

func (s *Server) handleValidateScenes(w http.ResponseWriter, r *http.Request) {
	var req scenesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidJSON, "malformed request body")
		return
	}
	if req.CharacterID == "" || len(req.Scenes) == 0 {
		writeError(w, http.StatusBadRequest, CodeInvalidScenesPayload, "character_id and scenes are required")
		return
	}

	if !s.requireCharacter(w, r, req.CharacterID) {
		return
	}

	normalized, warnings, err := scenes.NormalizeStrict(req.CharacterID, req.Scenes)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidScenesPayload, err.Error())
		return
	}
	if warnings == nil {
		warnings = []string{}
	}

	// Persist a transient plan so a later generation step can pick it up.
	planID := uuid.New().String()
	plan, _ := json.Marshal(map[string]any{
		"character_id": req.CharacterID,
		"scenes":       normalized,
		"warnings":     warnings,
		"created_at":   time.Now().UTC().Format(time.RFC3339),
	})
	if err := s.store.PutPlan(r.Context(), planID, req.CharacterID, plan, s.planTTL); err != nil {
		slog.Error("store plan failed", "plan_id", planID, "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternalError, "failed to store plan")
		return
	}

	s.notify(broker.SubjectPlanStored, plan)
	slog.Info("scenes validated", "character_id", req.CharacterID, "plan_id", planID, "scenes", len(normalized), "warnings", len(warnings))

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "accepted",
		"plan_id":  planID,
		"scenes":   normalized,
		"warnings": warnings,
	})
}

func (s *Server) handleBuildTimeline(w http.ResponseWriter, r *http.Request) {
	var req scenesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidJSON, "malformed request body")
		return
	}
	if req.CharacterID == "" || len(req.Scenes) == 0 {
		writeError(w, http.StatusBadRequest, CodeInvalidTimelinePayload, "character_id and scenes are required")
		return
	}

	if !s.requireCharacter(w, r, req.CharacterID) {
		return
	}

	scs := make([]scenes.Scene, 0, len(req.Scenes))
	for i, in := range req.Scenes {
		if in.Action == "" {
			writeError(w, http.StatusBadRequest, CodeInvalidTimelinePayload, fmt.Sprintf("scene_%d: action is required", i+1))
			return
		}
		duration := scenes.DefaultDuration
		if in.Duration != nil && *in.Duration > 0 {
			duration = *in.Duration
		}
		scs = append(scs, scenes.Scene{
			SceneID:     fmt.Sprintf("scene_%d", i+1),
			CharacterID: req.CharacterID,
			Action:      in.Action,
			Object:      in.Object,
			Dialogue:    in.Dialogue,
			Duration:    duration,
		})
	}

	entries, total := timeline.Build(scs)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ready",
		"character_id":   req.CharacterID,
		"timeline":       entries,
		"total_duration": total,
	})
}

func (s *Server) handlePrepareEngine(w http.ResponseWriter, r *http.Request) {
	var req engineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidJSON, "malformed request body")
		return
	}
	if req.CharacterID == "" || len(req.Timeline) == 0 {
		writeError(w, http.StatusBadRequest, CodeInvalidEnginePayload, "character_id and timeline are required")
		return
	}

	if !s.requireCharacter(w, r, req.CharacterID) {
		return
	}

	descriptors := engine.Prepare(req.CharacterID, req.Timeline)

	payload, _ := json.Marshal(map[string]any{
		"character_id": req.CharacterID,
		"scenes":       descriptors,
	})
	s.notify(broker.SubjectEngineReady, payload)

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ready",
		"character_id": req.CharacterID,
		"scenes":       descriptors,
	})
}

// handleGenerate runs the full smart-split pipeline: split the compound
// action, normalize, enrich with the stored identity, then build the
// timeline.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidJSON, "malformed request body")
		return
	}
	if req.CharacterID == "" || req.Action == "" {
		writeError(w, http.StatusBadRequest, CodeInvalidGeneratePayload, "character_id and action are required")
		return
	}

	ident, err := s.store.GetIdentity(r.Context(), req.CharacterID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, CodeCharacterNotFound, fmt.Sprintf("character %s not found", req.CharacterID))
			return
		}
		slog.Error("get identity failed", "character_id", req.CharacterID, "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternalError, "failed to load identity")
		return
	}

	actions, objects := scenes.Split(req.Action, req.Object)
	normalized := scenes.Normalize(req.CharacterID, actions, objects, req.Dialogue, req.Duration)
	enriched := identity.Enrich(normalized, ident)
	entries, total := timeline.Build(normalized)

	slog.Info("pipeline complete", "character_id", req.CharacterID, "scenes", len(normalized), "total_duration", total)

	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ready",
		"character_id":   req.CharacterID,
		"scenes":         enriched,
		"timeline":       entries,
		"total_duration": total,
	})
}

// requireCharacter checks that an identity exists for the character, writing
// the error response itself when it does not.
func (s *Server) requireCharacter(w http.ResponseWriter, r *http.Request, characterID string) bool {
	_, err := s.store.GetIdentity(r.Context(), characterID)
	if err == nil {
		return true
	}
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, CodeCharacterNotFound, fmt.Sprintf("character %s not found", characterID))
		return false
	}
	slog.Error("get identity failed", "character_id", characterID, "error", err)
	writeError(w, http.StatusInternalServerError, CodeInternalError, "failed to load identity")
	return false
}
