package handler

import (
	"net/http"

	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetTasks(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	tasks, err := h.tasks.ForCard(r.Context(), actor, chi.URLParam(r, "card"))
	if fail(w, err) {
		return
	}

	resp := api.TasksResponse{Tasks: make([]api.TaskResponse, 0, len(tasks))}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, api.NewTaskResponse(t, h.render))
	}
	writeJSON(w, resp)
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	body, ok := decode[api.CreateTaskRequest](w, r)
	if !ok {
		return
	}

	task, err := h.tasks.Create(r.Context(), actor, domain.TaskCreationData{
		ProjectCardId: chi.URLParam(r, "card"),
		Title:         body.Title,
		Description:   body.Description,
		DueDate:       body.DueDate,
	})
	if fail(w, err) {
		return
	}
	writeCreated(w, api.NewTaskResponse(task, h.render))
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	body, ok := decode[api.UpdateTaskRequest](w, r)
	if !ok {
		return
	}

	task, err := h.tasks.Update(r.Context(), actor, chi.URLParam(r, "task"), domain.TaskUpdateData{
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
		DueDate:     body.DueDate,
		Position:    body.Position,
	})
	if fail(w, err) {
		return
	}
	writeJSON(w, api.NewTaskResponse(task, h.render))
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	if fail(w, h.tasks.Delete(r.Context(), actor, chi.URLParam(r, "task"))) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddTaskLabel(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	task, err := h.tasks.AddLabel(r.Context(), actor, chi.URLParam(r, "task"), chi.URLParam(r, "label"))
	if fail(w, err) {
		return
	}
	writeJSON(w, api.NewTaskResponse(task, h.render))
}

func (h *Handler) RemoveTaskLabel(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	task, err := h.tasks.RemoveLabel(r.Context(), actor, chi.URLParam(r, "task"), chi.URLParam(r, "label"))
	if fail(w, err) {
		return
	}
	writeJSON(w, api.NewTaskResponse(task, h.render))
}
