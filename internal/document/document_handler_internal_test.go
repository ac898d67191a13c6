package document

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type failingPresenter struct{ err error }

func (p failingPresenter) Display(ctx context.Context, artifact Artifact) error {
	return p.err
}

func TestHandlerDisplay_PresenterFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.ErrorLevel)

	h := &Handler{
		logger: zap.New(core),
		presenter: func(c *gin.Context) Presenter {
			return failingPresenter{err: errors.New("output device gone")}
		},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/documents/salary", nil)

	h.display(c, Artifact{Type: TypeSalary, HTML: "<html></html>"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, logs.FilterMessage("display artifact failed").Len())
}

func TestHandlerDisplay_HTTPPresenterWritesArtifact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewHandler(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/documents/salary", nil)

	h.display(c, Artifact{Type: TypeSalary, HTML: "<html>doc</html>"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<html>doc</html>", w.Body.String())
}
