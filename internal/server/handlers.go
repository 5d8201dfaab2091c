package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mountainops/lifthire/internal/hiring"
	"github.com/mountainops/lifthire/internal/pipeline"
	"github.com/mountainops/lifthire/internal/store"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "lifthire",
		"job":     s.engine.JobProfile().Title,
	})
}

func (s *Server) job(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.JobProfile())
}

func (s *Server) listApplicants(c *gin.Context) {
	applicants, err := s.engine.List()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, applicants.Items)
}

func (s *Server) getApplicant(c *gin.Context) {
	a, err := s.engine.Get(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

type statusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) updateStatus(c *gin.Context) {
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	a, err := s.engine.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": a.ID, "status": a.Status})
}

func (s *Server) scoreAll(c *gin.Context) {
	report, err := s.engine.ScoreAll(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) scoreOne(c *gin.Context) {
	a, err := s.engine.ScoreOne(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a.ScoreData)
}

type bulkRequest struct {
	ApplicantIDs []string `json:"applicant_ids" binding:"required"`
	Action       string   `json:"action" binding:"required"`
}

func (s *Server) bulkAction(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "applicant_ids and action are required"})
		return
	}

	report, err := s.engine.ApplyBulkAction(c.Request.Context(), req.ApplicantIDs, req.Action)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

type previewRequest struct {
	ApplicantIDs []string `json:"applicant_ids" binding:"required"`
}

func (s *Server) previewEmails(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "applicant_ids is required"})
		return
	}

	// Best-effort like bulk actions: unknown ids are skipped.
	previews := make([]*pipeline.EmailPreview, 0, len(req.ApplicantIDs))
	for _, id := range req.ApplicantIDs {
		preview, err := s.engine.PreviewEmail(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			s.fail(c, err)
			return
		}
		previews = append(previews, preview)
	}
	c.JSON(http.StatusOK, gin.H{"previews": previews})
}

type simulateReplyRequest struct {
	ApplicantID string `json:"applicant_id" binding:"required"`
}

func (s *Server) simulateReply(c *gin.Context) {
	var req simulateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "applicant_id is required"})
		return
	}

	a, err := s.engine.SimulateReply(req.ApplicantID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) uploadResume(c *gin.Context) {
	var req pipeline.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid upload payload"})
		return
	}

	a, err := s.engine.Upload(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (s *Server) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, s.settings.Get())
}

func (s *Server) putSettings(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid settings payload"})
		return
	}

	updated, err := s.settings.Update(payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) resetSettings(c *gin.Context) {
	s.settings.Reset()
	c.JSON(http.StatusOK, s.settings.Get())
}

func (s *Server) refresh(c *gin.Context) {
	n, err := s.engine.Refresh()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"refreshed": true, "applicant_count": n})
}

func (s *Server) summary(c *gin.Context) {
	report, err := s.engine.Summary()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) digest(c *gin.Context) {
	report, err := s.engine.Digest()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	matches, err := s.engine.Search(query)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": query, "matches": matches})
}

// fail maps engine errors onto HTTP statuses.
func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Applicant not found"})
	case errors.Is(err, hiring.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
