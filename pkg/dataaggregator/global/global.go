package global

import (
	"github.com/travigo/connections/pkg/config"
	"github.com/travigo/connections/pkg/dataaggregator"
	"github.com/travigo/connections/pkg/dataaggregator/source/tfi"
)

// Setup builds the aggregator serving departure boards and timetables for cfg. There is no
// process wide aggregator so each caller owns the one it builds.
func Setup(cfg *config.Config) *dataaggregator.Aggregator {
	aggregator := &dataaggregator.Aggregator{}

	aggregator.RegisterSource(tfi.NewSource(
		cfg.Upstream.BaseURL,
		cfg.Upstream.APIKey,
		cfg.Upstream.Timeout(),
	))

	return aggregator
}
