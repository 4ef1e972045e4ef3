package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/tuturo/internal/curriculum"
	"github.com/abhisek/tuturo/internal/pathway"
	"github.com/abhisek/tuturo/internal/session"
)

type createSessionRequest struct {
	Profile curriculum.Profile `json:"profile"`
}

type curriculumRequest struct {
	Subject string `json:"subject" binding:"required"`
}

type topicRequest struct {
	Subject string `json:"subject" binding:"required"`
	Topic   string `json:"topic" binding:"required"`
}

type advanceRequest struct {
	Subject string `json:"subject" binding:"required"`
	Delta   int    `json:"delta"`
}

type statusRequest struct {
	Subject string `json:"subject" binding:"required"`
	Topic   string `json:"topic" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

// CurriculumResponse is returned by POST /curriculum. Curriculum is nil
// when the model refused the subject.
type CurriculumResponse struct {
	Refused    bool             `json:"refused"`
	Message    string           `json:"message,omitempty"`
	Curriculum *curriculum.View `json:"curriculum,omitempty"`
}

// TheoryResponse is returned by POST /theory.
type TheoryResponse struct {
	Subject string `json:"subject"`
	Topic   string `json:"topic"`
	Theory  string `json:"theory"`
}

func (s *Server) lookupSession(c *gin.Context) (*session.Session, bool) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) handleCreateSession(c *gin.Context) {
	var req createSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	sess := s.sessions.Create(req.Profile)
	c.JSON(http.StatusCreated, sess.Info())
}

func (s *Server) handleGetSession(c *gin.Context) {
	sess, ok := s.lookupSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Info())
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	if !s.sessions.Remove(c.Param("id")) {
		respondError(c, session.ErrUnknownSession)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleRequestCurriculum(c *gin.Context) {
	sess, ok := s.lookupSession(c)
	if !ok {
		return
	}
	var req curriculumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := pathway.WithSession(c.Request.Context(), sess.ID)
	var out pathway.Outcome
	err := sess.Do(func(st *curriculum.Store, profile curriculum.Profile) error {
		var err error
		out, err = s.svc.RequestCurriculum(ctx, st, profile, req.Subject)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if out.Refused {
		c.JSON(http.StatusOK, CurriculumResponse{Refused: true, Message: pathway.RefusalMessage})
		return
	}
	c.JSON(http.StatusOK, CurriculumResponse{Curriculum: &out.View})
}

func (s *Server) handleGetCurriculum(c *gin.Context) {
	subject := c.Query("subject")
	s.withStore(c, func(st *curriculum.Store) (curriculum.View, error) {
		return st.Get(subject)
	})
}

func (s *Server) handleSelectTopic(c *gin.Context) {
	var req topicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.withStore(c, func(st *curriculum.Store) (curriculum.View, error) {
		return st.SelectTopic(req.Subject, req.Topic)
	})
}

func (s *Server) handleAdvance(c *gin.Context) {
	var req advanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.withStore(c, func(st *curriculum.Store) (curriculum.View, error) {
		return st.Advance(req.Subject, req.Delta)
	})
}

func (s *Server) handleClearSelection(c *gin.Context) {
	var req curriculumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.withStore(c, func(st *curriculum.Store) (curriculum.View, error) {
		return st.ClearSelection(req.Subject)
	})
}

func (s *Server) handleSetStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	status, err := curriculum.ParseStatus(req.Status)
	if err != nil {
		badRequest(c, err)
		return
	}
	s.withStore(c, func(st *curriculum.Store) (curriculum.View, error) {
		return st.SetStatus(req.Subject, req.Topic, status)
	})
}

func (s *Server) handleTheory(c *gin.Context) {
	sess, ok := s.lookupSession(c)
	if !ok {
		return
	}
	var req topicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := pathway.WithSession(c.Request.Context(), sess.ID)
	var text string
	err := sess.Do(func(st *curriculum.Store, profile curriculum.Profile) error {
		var err error
		text, err = s.svc.RequestTheory(ctx, st, profile, req.Subject, req.Topic)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, TheoryResponse{Subject: req.Subject, Topic: req.Topic, Theory: text})
}

// withStore runs a store operation inside the session and writes the
// resulting view.
func (s *Server) withStore(c *gin.Context, op func(st *curriculum.Store) (curriculum.View, error)) {
	sess, ok := s.lookupSession(c)
	if !ok {
		return
	}
	var view curriculum.View
	err := sess.Do(func(st *curriculum.Store, _ curriculum.Profile) error {
		var err error
		view, err = op(st)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
