package service_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	service "github.com/okian/crease/internal/app"
	"github.com/okian/crease/internal/domain/model"
	"github.com/okian/crease/internal/domain/model/modeltest"
	"github.com/okian/crease/internal/domain/reports"
	"github.com/okian/crease/internal/domain/types"
	"github.com/okian/crease/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

type fakeSource struct {
	ds  *model.Dataset
	err error
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Load(context.Context) (*model.Dataset, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ds, nil
}

type fakeBackend struct {
	calls []reports.Name
	err   error
}

func (f *fakeBackend) Run(_ context.Context, name reports.Name, _ reports.Params) (any, error) {
	f.calls = append(f.calls, name)
	if f.err != nil {
		return nil, f.err
	}
	return []types.TeamWins{{Rank: 1, TeamName: "From SQL", TotalWins: 9}}, nil
}

func TestService_Start(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service with a working source", t, func() {
		svc := service.New(service.WithSource(&fakeSource{ds: modeltest.Sample()}))
		defer svc.Stop()

		Convey("When starting the service", func() {
			err := svc.Start(ctx)

			Convey("Then the dataset is published", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["loaded"], ShouldEqual, true)
				So(stats["source"], ShouldEqual, "fake")
				So(stats["datasetVersion"], ShouldEqual, uint64(1))
				So(stats["counts"], ShouldResemble, map[string]int{
					"matches": 7, "teams": 4, "players": 6, "deliveries": 71,
				})
			})

			Convey("And starting again is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
				So(svc.GetStats()["datasetVersion"], ShouldEqual, uint64(1))
			})
		})
	})

	Convey("Given a service whose source fails", t, func() {
		svc := service.New(service.WithSource(&fakeSource{err: errors.New("boom")}))

		Convey("Then Start returns the error and nothing is loaded", func() {
			err := svc.Start(ctx)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "boom")
			So(svc.GetStats()["started"], ShouldEqual, false)

			_, err = svc.Run(ctx, "top-run-scorers", reports.Params{})
			So(errors.Is(err, service.ErrNotLoaded), ShouldBeTrue)
		})
	})
}

func TestService_Reload(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service", t, func() {
		src := &fakeSource{ds: modeltest.Sample()}
		svc := service.New(service.WithSource(src))
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When the source changes and Reload succeeds", func() {
			src.ds = modeltest.NewBuilder().
				Team(1, "Solo", "Nowhere").
				Player(1, "Zed", 1, "batsman").
				Build()
			snap, err := svc.Reload(ctx)

			Convey("Then the new dataset is served", func() {
				So(err, ShouldBeNil)
				So(snap.Version, ShouldEqual, uint64(2))
				res, err := svc.Run(ctx, "top-run-scorers", reports.Params{})
				So(err, ShouldBeNil)
				So(res.Rows, ShouldBeEmpty)
				So(res.DatasetVersion, ShouldEqual, uint64(2))
			})
		})

		Convey("When Reload fails", func() {
			src.err = errors.New("gone")
			_, err := svc.Reload(ctx)

			Convey("Then the previous dataset stays current", func() {
				So(err, ShouldNotBeNil)
				res, err := svc.Run(ctx, "top-run-scorers", reports.Params{})
				So(err, ShouldBeNil)
				So(res.DatasetVersion, ShouldEqual, uint64(1))
			})
		})
	})

	Convey("Given a service without a source", t, func() {
		svc := service.New()
		_, err := svc.Reload(ctx)
		So(err, ShouldNotBeNil)
	})
}

func TestService_Run(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service with the sample dataset published", t, func() {
		svc := service.New(service.WithDefaultSeason(2021))
		_, err := svc.Publish(ctx, modeltest.Sample(), "sample")
		So(err, ShouldBeNil)

		Convey("A zero season uses the default season", func() {
			res, err := svc.Run(ctx, "season-win-leaders", reports.Params{})
			So(err, ShouldBeNil)
			So(res.Season, ShouldEqual, 2021)
			So(res.Backend, ShouldEqual, service.BackendMemory)
			So(res.Rows, ShouldResemble, []types.TeamWins{{Rank: 1, TeamName: "Lions", TotalWins: 2}})
		})

		Convey("An explicit season is honoured", func() {
			res, err := svc.Run(ctx, "season-win-leaders", reports.Params{Season: 2020})
			So(err, ShouldBeNil)
			So(res.Rows, ShouldResemble, []types.TeamWins{
				{Rank: 1, TeamName: "Eagles", TotalWins: 1},
				{Rank: 1, TeamName: "Lions", TotalWins: 1},
			})
		})

		Convey("A zero min balls uses the engine default", func() {
			res, err := svc.Run(ctx, "top-strike-rates", reports.Params{})
			So(err, ShouldBeNil)
			So(res.MinBalls, ShouldEqual, reports.StandardMinBalls)
			So(res.Rows, ShouldBeEmpty)
		})

		Convey("Unknown reports are rejected", func() {
			_, err := svc.Run(ctx, "most-sixes", reports.Params{})
			So(errors.Is(err, reports.ErrUnknownReport), ShouldBeTrue)
		})

		Convey("Negative min balls are rejected", func() {
			_, err := svc.Run(ctx, "top-strike-rates", reports.Params{MinBalls: -1})
			So(errors.Is(err, reports.ErrInvalidParams), ShouldBeTrue)
		})
	})

	Convey("Given a service that publishes an invalid dataset", t, func() {
		svc := service.New()
		ds := modeltest.NewBuilder().Player(1, "Ghost", 99, "batsman").Build()
		_, err := svc.Publish(ctx, ds, "bad")

		Convey("Then it is refused", func() {
			So(errors.Is(err, model.ErrInvalidReference), ShouldBeTrue)
			_, err := svc.Dataset()
			So(errors.Is(err, service.ErrNotLoaded), ShouldBeTrue)
		})
	})
}

func TestService_RunAll(t *testing.T) {
	ctx := context.Background()

	Convey("Given the sample dataset", t, func() {
		svc := service.New()
		_, err := svc.Publish(ctx, modeltest.Sample(), "sample")
		So(err, ShouldBeNil)

		Convey("RunAll returns every report in registry order", func() {
			batch, err := svc.RunAll(ctx, reports.Params{Season: 2021, MinBalls: 8})
			So(err, ShouldBeNil)
			So(batch.RunID, ShouldNotBeEmpty)
			So(batch.Results, ShouldHaveLength, len(reports.Names))
			for i, res := range batch.Results {
				So(res.Report, ShouldEqual, string(reports.Names[i]))
			}
			So(batch.Results[1].Season, ShouldEqual, 0)
			So(batch.Results[7].MinBalls, ShouldEqual, 8)
			So(batch.Results[1].Rows, ShouldResemble, []types.PlayerRuns{
				{Rank: 1, PlayerName: "Asha", TotalRuns: 84},
				{Rank: 2, PlayerName: "Chen", TotalRuns: 58},
				{Rank: 3, PlayerName: "Faye", TotalRuns: 16},
			})
		})

		Convey("Each run gets its own id", func() {
			a, err := svc.RunAll(ctx, reports.Params{})
			So(err, ShouldBeNil)
			b, err := svc.RunAll(ctx, reports.Params{})
			So(err, ShouldBeNil)
			So(a.RunID, ShouldNotEqual, b.RunID)
		})

		Convey("A cancelled context fails the batch", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := svc.RunAll(cctx, reports.Params{})
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestService_Pushdown(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service with a pushdown backend", t, func() {
		backend := &fakeBackend{}
		svc := service.New(service.WithPushdown(service.BackendSQL, backend))
		_, err := svc.Publish(ctx, modeltest.Sample(), "sample")
		So(err, ShouldBeNil)

		Convey("Reports are answered by the backend", func() {
			res, err := svc.Run(ctx, "season-win-leaders", reports.Params{})
			So(err, ShouldBeNil)
			So(res.Backend, ShouldEqual, service.BackendSQL)
			So(res.Rows, ShouldResemble, []types.TeamWins{{Rank: 1, TeamName: "From SQL", TotalWins: 9}})
			So(backend.calls, ShouldResemble, []reports.Name{reports.SeasonWinLeadersReport})
		})

		Convey("Backend errors are wrapped with the report name", func() {
			backend.err = errors.New("deadlock")
			_, err := svc.Run(ctx, "top-run-scorers", reports.Params{})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "report top-run-scorers")
			So(err.Error(), ShouldContainSubstring, "deadlock")
		})
	})
}

func TestService_Lookup(t *testing.T) {
	ctx := context.Background()

	Convey("Given the sample dataset", t, func() {
		svc := service.New()

		Convey("Lookups before loading fail", func() {
			_, err := svc.FindPlayers(ctx, "asha", 5)
			So(errors.Is(err, service.ErrNotLoaded), ShouldBeTrue)
		})

		_, err := svc.Publish(ctx, modeltest.Sample(), "sample")
		So(err, ShouldBeNil)

		Convey("Player lookup is case-insensitive", func() {
			got, err := svc.FindPlayers(ctx, "ASHA", 5)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, []types.NamedEntity{{ID: modeltest.Asha, Name: "Asha", Detail: "batsman"}})
		})

		Convey("Team lookup matches fuzzily and orders by closeness", func() {
			got, err := svc.FindTeams(ctx, "es", 10)
			So(err, ShouldBeNil)
			So(len(got), ShouldBeGreaterThanOrEqualTo, 2)
			names := make([]string, len(got))
			for i, e := range got {
				names[i] = e.Name
			}
			So(names, ShouldContain, "Eagles")
			So(names, ShouldContain, "Tigers")
		})

		Convey("Limit caps the result", func() {
			got, err := svc.FindTeams(ctx, "s", 2)
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 2)
		})

		Convey("Empty queries and bad limits are rejected", func() {
			_, err := svc.FindTeams(ctx, "  ", 5)
			So(errors.Is(err, service.ErrInvalidQuery), ShouldBeTrue)
			_, err = svc.FindPlayers(ctx, "a", 0)
			So(errors.Is(err, service.ErrInvalidQuery), ShouldBeTrue)
		})
	})
}
