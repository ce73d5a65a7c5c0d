package service

import (
	"errors"
	"fmt"
	"net/netip"

	"github.com/ak7sky/cidrsum/internal/core"
	"github.com/ak7sky/cidrsum/internal/core/model"
	"github.com/ak7sky/cidrsum/internal/logger"
)

type loggingSummaryService struct {
	logger logger.Logger
	next   core.SummaryService
}

// WithLogging wraps next so that every call and its outcome is logged.
func WithLogging(logger logger.Logger, next core.SummaryService) core.SummaryService {
	if logger == nil || next == nil {
		return next
	}
	return &loggingSummaryService{logger: logger, next: next}
}

func (s *loggingSummaryService) Summarize(req model.Request) (*model.Report, error) {
	s.logger.Debug("summarize started: input=%s exclude=%s prefix=%d", req.InputPath, req.ExcludePath, req.MaskLen)
	report, err := s.next.Summarize(req)
	if err != nil {
		s.logFailure(fmt.Sprintf("summarize %s failed: %v", req.InputPath, err), err)
		return nil, err
	}
	s.logger.Info("summarized %s: %d subnets, %d hosts", req.InputPath, report.TotalSubnets, report.TotalHosts)
	return report, nil
}

func (s *loggingSummaryService) Group(addrs []netip.Addr, maskLen uint8) (*model.Report, error) {
	s.logger.Debug("grouping %d addresses by /%d", len(addrs), maskLen)
	report, err := s.next.Group(addrs, maskLen)
	if err != nil {
		s.logFailure(fmt.Sprintf("grouping by /%d failed: %v", maskLen, err), err)
	}
	return report, err
}

// logFailure logs bad input or environment at warn, which the caller reports to the
// user anyway, and anything else at error.
func (s *loggingSummaryService) logFailure(msg string, err error) {
	for _, kind := range []error{model.ErrUsage, model.ErrParse, model.ErrConfig, model.ErrIO} {
		if errors.Is(err, kind) {
			s.logger.Warn(msg)
			return
		}
	}
	s.logger.Error("%s", msg)
}
