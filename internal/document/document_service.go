package document

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yonginsolar/erp/internal/shared/counter"
)

const docNumberCounterType = "cert_document_number"

//go:generate mockgen -source=document_service.go -destination=mock/document_service_mock.go -package=mock
type Service interface {
	RenderSalary(ctx context.Context, record SalaryRecord) (Artifact, error)
	RenderCertificate(ctx context.Context, record CertificateRecord) (Artifact, error)
	RenderLedger(ctx context.Context, record LedgerRecord) (Artifact, error)
}

type service struct {
	counter counter.Repository
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(counterRepo counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}
	return &service{
		counter: counterRepo,
		now:     time.Now,
		logger:  l,
	}
}

func (s *service) RenderSalary(ctx context.Context, record SalaryRecord) (Artifact, error) {
	content, err := ComposeSalary(record)
	if err != nil {
		s.logger.Error("compose salary failed", zap.Error(err))
		return Artifact{}, err
	}

	return Assemble(TypeSalary, content)
}

func (s *service) RenderCertificate(ctx context.Context, record CertificateRecord) (Artifact, error) {
	// Blank document number: issue the next one for the current year.
	// Numbering is the only impure step; composition below stays deterministic.
	if record.DocumentNumber == "" && s.counter != nil {
		year := s.now().UTC().Year()
		next, err := s.counter.GetNextValue(ctx, docNumberCounterType, fmt.Sprintf("%d", year))
		if err != nil {
			s.logger.Error("issue document number failed", zap.Error(err))
			return Artifact{}, err
		}
		record.DocumentNumber = fmt.Sprintf("제%d-%04d호", year, next)

		s.logger.Info("document number issued",
			zap.String("document_number", record.DocumentNumber),
		)
	}

	content, err := ComposeCertificate(record)
	if err != nil {
		s.logger.Error("compose certificate failed", zap.Error(err))
		return Artifact{}, err
	}

	return Assemble(TypeCertificate, content)
}

func (s *service) RenderLedger(ctx context.Context, record LedgerRecord) (Artifact, error) {
	content, err := ComposeLedger(record)
	if err != nil {
		s.logger.Error("compose ledger failed", zap.Error(err))
		return Artifact{}, err
	}

	return Assemble(TypeLedger, content)
}
