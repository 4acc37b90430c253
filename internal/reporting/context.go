// Package reporting bundles everything report builders need into a single
// context value.
package reporting

import (
	"github.com/coverscope/coverscope/internal/reportconfig"
	"github.com/coverscope/coverscope/internal/settings"
)

// IReportContext is the read-only view report builders receive.
type IReportContext interface {
	ReportConfiguration() reportconfig.IReportConfiguration
	Settings() *settings.Settings
}

// ReportContext is the concrete IReportContext.
type ReportContext struct {
	Cfg   reportconfig.IReportConfiguration
	Stngs *settings.Settings
}

func (rc *ReportContext) ReportConfiguration() reportconfig.IReportConfiguration { return rc.Cfg }
func (rc *ReportContext) Settings() *settings.Settings                           { return rc.Stngs }

// NewReportContext pairs a configuration with processing settings. Nil
// settings fall back to the defaults.
func NewReportContext(config reportconfig.IReportConfiguration, s *settings.Settings) *ReportContext {
	if s == nil {
		s = settings.NewSettings()
	}
	return &ReportContext{
		Cfg:   config,
		Stngs: s,
	}
}
