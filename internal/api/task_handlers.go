// internal/api/task_handlers.go
package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/focusdeck/focusdeck/internal/models"
)

func pathInt(r *http.Request, name string) int {
	n, _ := strconv.Atoi(mux.Vars(r)[name])
	return n
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") == "true" {
		if err := s.controller.LoadTasks(r.Context()); err != nil {
			respondError(w, err)
			return
		}
	}
	respondJSON(w, http.StatusOK, s.controller.Tasks())
}

func (s *Server) handleListDeletedTasks(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.controller.DeletedTasks())
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var task models.Task
	if !decodeBody(w, r, &task) {
		return
	}
	created, err := s.controller.CreateTask(r.Context(), task)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleCreateSubTask(w http.ResponseWriter, r *http.Request) {
	var task models.Task
	if !decodeBody(w, r, &task) {
		return
	}
	created, err := s.controller.CreateSubTask(r.Context(), pathInt(r, "id"), task)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var task models.Task
	if !decodeBody(w, r, &task) {
		return
	}
	task.ID = pathInt(r, "id")
	if err := s.controller.UpdateTask(r.Context(), task); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleUpdateDueDate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DueDate string `json:"dueDate"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.controller.UpdateDueDate(r.Context(), pathInt(r, "id"), body.DueDate); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.MarkCompleted(r.Context(), pathInt(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleStartTask(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.MarkInProgress(r.Context(), pathInt(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OrderedIDs []int `json:"orderedIds"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.controller.Reorder(r.Context(), body.OrderedIDs); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleToggleSort(w http.ResponseWriter, r *http.Request) {
	enabled := s.controller.ToggleSortByPriority()
	respondJSON(w, http.StatusOK, map[string]bool{"sortByPriority": enabled})
}

func (s *Server) handleSoftDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.SoftDeleteTask(r.Context(), pathInt(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleRestoreTask(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.RestoreTask(r.Context(), pathInt(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handlePermanentDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.PermanentlyDeleteTask(r.Context(), pathInt(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleTaskProgress(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]float64{
		"progress": s.controller.Progress(pathInt(r, "id")),
	})
}

// ---- attachments ----

func (s *Server) handleUploadAttachment(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "missing file field"})
		return
	}
	defer file.Close()

	created, err := s.controller.UploadAttachment(r.Context(), pathInt(r, "id"), header.Filename, header.Size, file)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDownloadAttachment(w http.ResponseWriter, r *http.Request) {
	body, err := s.controller.DownloadAttachment(r.Context(), pathInt(r, "id"), pathInt(r, "aid"))
	if err != nil {
		respondError(w, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, body); err != nil {
		// Headers are already sent; nothing left to signal.
		return
	}
}

func (s *Server) handleRecycledAttachments(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.controller.RecycledAttachments(pathInt(r, "id")))
}

func (s *Server) handleDeleteAttachment(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.DeleteAttachment(r.Context(), pathInt(r, "id"), pathInt(r, "aid")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleRestoreAttachment(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.RestoreAttachment(r.Context(), pathInt(r, "id"), pathInt(r, "aid")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleAttachmentPermissions(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Permissions map[int]models.Role `json:"permissions"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	err := s.controller.UpdateAttachmentPermissions(r.Context(), pathInt(r, "id"), pathInt(r, "aid"), body.Permissions)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}
