// internal/api/save_handlers.go
// Save lifecycle command surface (spec.md §6 "Saves"): one JWT-authenticated
// account owns zero or more independent save-game worlds.

package api

import (
	"net/http"

	"tournament-planner/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleCreateSave creates a new save world for the authenticated owner
// (create_save).
func HandleCreateSave(saveService *services.SaveService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := AuthUserID(c)
		if !ok {
			FailWith(c, http.StatusUnauthorized, "ERR_UNAUTHORIZED", "authentication required")
			return
		}
		var req struct {
			Name string `json:"name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			FailWith(c, http.StatusBadRequest, "ERR_INVALID_INPUT", err.Error())
			return
		}
		save, err := saveService.Create(c.Request.Context(), userID, req.Name)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusCreated, save)
	}
}

// HandleListSaves lists every save the authenticated owner has (get_saves).
func HandleListSaves(saveService *services.SaveService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := AuthUserID(c)
		if !ok {
			FailWith(c, http.StatusUnauthorized, "ERR_UNAUTHORIZED", "authentication required")
			return
		}
		saves, err := saveService.ListByOwner(c.Request.Context(), userID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, saves)
	}
}

// HandleCurrentSaveID returns the owner's most recently touched save, the
// closest web equivalent of the desktop client's single loaded-save slot
// (get_current_save_id -- Open Question resolution, see DESIGN.md).
func HandleCurrentSaveID(saveService *services.SaveService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := AuthUserID(c)
		if !ok {
			FailWith(c, http.StatusUnauthorized, "ERR_UNAUTHORIZED", "authentication required")
			return
		}
		saves, err := saveService.ListByOwner(c.Request.Context(), userID)
		if err != nil {
			Fail(c, err)
			return
		}
		if len(saves) == 0 {
			Ok(c, http.StatusOK, gin.H{"save_id": nil})
			return
		}
		latest := saves[0]
		for _, s := range saves {
			if s.UpdatedAt.After(latest.UpdatedAt) {
				latest = s
			}
		}
		Ok(c, http.StatusOK, gin.H{"save_id": latest.ID})
	}
}

// HandleLoadSave returns one save's full record (load_save).
func HandleLoadSave(saveService *services.SaveService) gin.HandlerFunc {
	return func(c *gin.Context) {
		saveID, ok := ParamID(c, "save_id")
		if !ok {
			return
		}
		save, err := saveService.GetByID(c.Request.Context(), saveID)
		if err != nil {
			Fail(c, err)
			return
		}
		regions, err := saveService.Regions(c.Request.Context(), saveID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, gin.H{"save": save, "regions": regions})
	}
}

// HandleDeleteSave permanently deletes a save (delete_save).
func HandleDeleteSave(saveService *services.SaveService) gin.HandlerFunc {
	return func(c *gin.Context) {
		saveID, ok := ParamID(c, "save_id")
		if !ok {
			return
		}
		if err := saveService.Delete(c.Request.Context(), saveID); err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, gin.H{"deleted": saveID})
	}
}
