package document

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yonginsolar/erp/internal/shared/apperror"
	"github.com/yonginsolar/erp/internal/shared/response"
)

type Handler struct {
	service   Service
	logger    *zap.Logger
	presenter func(c *gin.Context) Presenter
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("document.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.handler")
	}
	return &Handler{
		service: service,
		logger:  l,
		presenter: func(c *gin.Context) Presenter {
			return httpPresenter{c: c}
		},
	}
}

// httpPresenter displays an artifact by writing it to the HTTP response. The
// artifact is a complete document: the client opens it in a fresh window and
// the embedded chrome handles print/close.
type httpPresenter struct {
	c *gin.Context
}

func (p httpPresenter) Display(_ context.Context, artifact Artifact) error {
	p.c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(artifact.HTML))
	return nil
}

func (h *Handler) PrintSalary(c *gin.Context) {
	var req PrintSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperror.MapValidationError(err)
		response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, nil)
		return
	}

	artifact, err := h.service.RenderSalary(c.Request.Context(), req.toRecord())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, err.Error(), nil)
		return
	}

	h.display(c, artifact)
}

func (h *Handler) PrintCertificate(c *gin.Context) {
	var req PrintCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperror.MapValidationError(err)
		response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, nil)
		return
	}

	artifact, err := h.service.RenderCertificate(c.Request.Context(), req.toRecord())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, err.Error(), nil)
		return
	}

	h.display(c, artifact)
}

func (h *Handler) PrintLedger(c *gin.Context) {
	var req PrintLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperror.MapValidationError(err)
		response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, nil)
		return
	}

	record, err := req.toRecord()
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, err.Error(), nil)
		return
	}

	artifact, err := h.service.RenderLedger(c.Request.Context(), record)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, err.Error(), nil)
		return
	}

	h.display(c, artifact)
}

func (h *Handler) display(c *gin.Context, artifact Artifact) {
	if err := h.presenter(c).Display(c.Request.Context(), artifact); err != nil {
		h.logger.Error("display artifact failed",
			zap.String("document_type", string(artifact.Type)),
			zap.Error(err),
		)
		if !c.Writer.Written() {
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError,
				"Failed to deliver document", nil)
		}
	}
}
