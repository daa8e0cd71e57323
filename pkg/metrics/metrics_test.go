package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/okian/ninebox/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a manager on a fresh registry", t, func() {
		registry := prometheus.NewRegistry()
		m := metrics.NewManager(
			metrics.WithPrometheusRegistry(registry),
			metrics.WithNamespace("test"),
			metrics.WithSubsystem("calibration"),
		)

		Convey("When the manager registers its metrics", func() {
			families, err := registry.Gather()

			Convey("Then gathering succeeds", func() {
				So(m, ShouldNotBeNil)
				So(err, ShouldBeNil)
				So(families, ShouldNotBeNil)
			})
		})
	})
}

func TestPackageHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording domain events", func() {
			metrics.RecordSessionStarted()
			metrics.RecordSessionClosed()
			metrics.UpdateActiveSessions(2)
			metrics.RecordMove()
			metrics.RecordRevert()
			metrics.RecordNoteUpdate()
			metrics.RecordExport()
			metrics.RecordAnalysis(12.5)
			metrics.RecordInsight("severe")
			metrics.RecordHTTPRequest("sessions", "POST", "201")
			metrics.RecordHTTPRequestDuration("sessions", "POST", "201", 3.2)

			Convey("Then the registry gathers without error", func() {
				families, err := metrics.GetRegistry().Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}
