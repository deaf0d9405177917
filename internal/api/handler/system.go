package handler

import (
	"net/http"

	"github.com/nguyentantai21042004/video-summarizer/internal/api/response"
	"github.com/nguyentantai21042004/video-summarizer/internal/gpu"
)

type acceleratorGate struct {
	InUse int `json:"in_use"`
	Slots int `json:"slots"`
}

type gpuStatus struct {
	gpu.Status
	Gate acceleratorGate `json:"accelerator_gate"`
}

// GPUStatus handles GET /gpu-status.
func (h *Handler) GPUStatus(w http.ResponseWriter, r *http.Request) {
	inUse, slots := h.jobs.AcceleratorStats()
	response.OK(w, gpuStatus{
		Status: h.gpu.Status(r.Context()),
		Gate:   acceleratorGate{InUse: inUse, Slots: slots},
	})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"status": "healthy"})
}
