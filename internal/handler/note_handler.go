package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/damoang/angple-notes/internal/common"
	"github.com/damoang/angple-notes/internal/domain"
	"github.com/damoang/angple-notes/internal/service"
	"github.com/damoang/angple-notes/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// NoteHandler handles note requests
type NoteHandler struct {
	service *service.NoteService
}

// NewNoteHandler creates a new NoteHandler
func NewNoteHandler(service *service.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

// ListNotes handles GET /api/notes
// @Summary 노트 목록 조회
// @Tags notes
// @Produce json
// @Success 200 {array} domain.Note
// @Failure 500 {object} common.ErrorBody
// @Router /notes [get]
func (h *NoteHandler) ListNotes(c *gin.Context) {
	notes, err := h.service.ListNotes(c.Request.Context())
	if err != nil {
		h.fail(c, err, common.MsgFetchNotes)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// SearchNotes handles GET /api/notes/search?q=
// @Summary 노트 검색
// @Tags notes
// @Produce json
// @Param q query string true "검색어"
// @Success 200 {array} domain.Note
// @Failure 400 {object} common.ErrorBody
// @Failure 500 {object} common.ErrorBody
// @Router /notes/search [get]
func (h *NoteHandler) SearchNotes(c *gin.Context) {
	notes, err := h.service.SearchNotes(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.fail(c, err, common.MsgSearchNotes)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// GetNote handles GET /api/notes/:id
// @Summary 노트 조회
// @Tags notes
// @Produce json
// @Param id path int true "노트 ID"
// @Success 200 {object} domain.Note
// @Failure 404 {object} common.ErrorBody
// @Failure 500 {object} common.ErrorBody
// @Router /notes/{id} [get]
func (h *NoteHandler) GetNote(c *gin.Context) {
	id, ok := noteID(c)
	if !ok {
		return
	}

	note, err := h.service.GetNote(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, common.MsgFetchNote)
		return
	}
	c.JSON(http.StatusOK, note)
}

// CreateNote handles POST /api/notes
// @Summary 노트 생성
// @Tags notes
// @Accept json
// @Produce json
// @Param request body domain.NoteRequest true "노트 내용"
// @Success 201 {object} domain.Note
// @Failure 400 {object} common.ErrorBody
// @Failure 500 {object} common.ErrorBody
// @Router /notes [post]
func (h *NoteHandler) CreateNote(c *gin.Context) {
	req, err := bindNoteRequest(c)
	if err != nil {
		h.fail(c, err, common.MsgCreateNote)
		return
	}

	note, err := h.service.CreateNote(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, common.MsgCreateNote)
		return
	}
	c.JSON(http.StatusCreated, note)
}

// UpdateNote handles PUT /api/notes/:id
// @Summary 노트 수정
// @Tags notes
// @Accept json
// @Produce json
// @Param id path int true "노트 ID"
// @Param request body domain.NoteRequest true "노트 내용"
// @Success 200 {object} domain.Note
// @Failure 400 {object} common.ErrorBody
// @Failure 404 {object} common.ErrorBody
// @Failure 500 {object} common.ErrorBody
// @Router /notes/{id} [put]
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	req, err := bindNoteRequest(c)
	if err != nil {
		h.fail(c, err, common.MsgUpdateNote)
		return
	}

	id, ok := noteID(c)
	if !ok {
		return
	}

	note, err := h.service.UpdateNote(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, common.MsgUpdateNote)
		return
	}
	c.JSON(http.StatusOK, note)
}

// DeleteNote handles DELETE /api/notes/:id
// @Summary 노트 삭제
// @Tags notes
// @Param id path int true "노트 ID"
// @Success 204
// @Failure 404 {object} common.ErrorBody
// @Failure 500 {object} common.ErrorBody
// @Router /notes/{id} [delete]
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	id, ok := noteID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteNote(c.Request.Context(), id); err != nil {
		h.fail(c, err, common.MsgDeleteNote)
		return
	}
	c.Status(http.StatusNoContent)
}

// fail maps err onto 400/404/500. serverMsg is the client-facing text for anything not a validation or not-found error.
func (h *NoteHandler) fail(c *gin.Context, err error, serverMsg string) {
	switch {
	case common.IsValidation(err):
		common.ErrorResponse(c, http.StatusBadRequest, common.ValidationMessage(err))
	case common.IsNotFound(err):
		common.ErrorResponse(c, http.StatusNotFound, common.MsgNoteNotFound)
	default:
		// middleware.RequestLogger writes it on the request's access line
		_ = c.Error(err)
		common.ErrorResponse(c, http.StatusInternalServerError, serverMsg)
	}
}

// noteID parses the :id path segment. Anything that is not a positive integer cannot name a note.
func noteID(c *gin.Context) (int64, bool) {
	id, ok := ginutil.ParamID(c, "id")
	if !ok {
		common.ErrorResponse(c, http.StatusNotFound, common.MsgNoteNotFound)
	}
	return id, ok
}

// bindNoteRequest decodes the JSON body. An empty body decodes as {}.
// A field holding a non-string value is left empty so validation reports it as missing.
func bindNoteRequest(c *gin.Context) (*domain.NoteRequest, error) {
	var req domain.NoteRequest
	err := c.ShouldBindJSON(&req)
	if err == nil || errors.Is(err, io.EOF) {
		return &req, nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		switch typeErr.Field {
		case "note_title":
			req.NoteTitle = ""
			return &req, nil
		case "note_text":
			req.NoteText = ""
			return &req, nil
		}
	}
	return nil, common.ErrInvalidJSON
}
