package model_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/okian/crease/internal/domain/model"
	"github.com/okian/crease/internal/domain/model/modeltest"
	"github.com/smartystreets/goconvey/convey"
)

func TestMatchWinner(t *testing.T) {
	convey.Convey("Given matches with and without a result", t, func() {
		won := model.Match{ID: 1, Team1ID: 1, Team2ID: 2, WinnerTeamID: model.WinnerID(2)}
		abandoned := model.Match{ID: 2, Team1ID: 1, Team2ID: 2}

		convey.Convey("Then Winner reports the winner only when present", func() {
			id, ok := won.Winner()
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(id, convey.ShouldEqual, 2)

			_, ok = abandoned.Winner()
			convey.So(ok, convey.ShouldBeFalse)
		})
	})
}

func TestDatasetLookups(t *testing.T) {
	convey.Convey("Given the sample dataset", t, func() {
		ds := modeltest.Sample()

		convey.Convey("When looking up known ids", func() {
			team, ok := ds.Team(modeltest.Lions)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(team.Name, convey.ShouldEqual, "Lions")

			player, err := ds.MustPlayer(modeltest.Chen)
			convey.So(err, convey.ShouldBeNil)
			convey.So(player.Name, convey.ShouldEqual, "Chen")

			match, err := ds.MustMatch(5)
			convey.So(err, convey.ShouldBeNil)
			convey.So(match.Venue, convey.ShouldEqual, "Kotla")
		})

		convey.Convey("When looking up unknown ids", func() {
			_, ok := ds.Team(99)
			convey.So(ok, convey.ShouldBeFalse)

			_, err := ds.MustPlayer(99)
			convey.So(errors.Is(err, model.ErrInvalidReference), convey.ShouldBeTrue)

			_, err = ds.MustTeam(99)
			convey.So(errors.Is(err, model.ErrInvalidReference), convey.ShouldBeTrue)

			_, err = ds.MustMatch(99)
			convey.So(errors.Is(err, model.ErrInvalidReference), convey.ShouldBeTrue)
		})

		convey.Convey("Then counts reflect every table", func() {
			counts := ds.Counts()
			convey.So(counts["teams"], convey.ShouldEqual, 4)
			convey.So(counts["players"], convey.ShouldEqual, 6)
			convey.So(counts["matches"], convey.ShouldEqual, 7)
			convey.So(counts["deliveries"], convey.ShouldEqual, 71)
		})

		convey.Convey("Then it validates cleanly", func() {
			convey.So(ds.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestDatasetValidate(t *testing.T) {
	base := func() *modeltest.Builder {
		return modeltest.NewBuilder().
			Team(1, "A", "x").
			Team(2, "B", "y").
			Player(10, "P", 1, "batsman").
			Player(20, "Q", 2, "bowler")
	}

	convey.Convey("Given datasets with broken references", t, func() {
		convey.Convey("When a delivery references an unknown match", func() {
			ds := base().Match(1, 2021, 1, 2, 1, "V", "2021-01-01").Ball(9, 20, 10, 1, false).Build()
			err := ds.Validate()
			convey.So(errors.Is(err, model.ErrInvalidReference), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "unknown match 9")
		})

		convey.Convey("When a delivery references an unknown batsman", func() {
			ds := base().Match(1, 2021, 1, 2, 1, "V", "2021-01-01").Ball(1, 20, 77, 1, false).Build()
			err := ds.Validate()
			convey.So(errors.Is(err, model.ErrInvalidReference), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "unknown batsman 77")
		})

		convey.Convey("When a delivery references an unknown bowler", func() {
			ds := base().Match(1, 2021, 1, 2, 1, "V", "2021-01-01").Ball(1, 55, 10, 1, false).Build()
			convey.So(errors.Is(ds.Validate(), model.ErrInvalidReference), convey.ShouldBeTrue)
		})

		convey.Convey("When a match winner did not play", func() {
			ds := base().Team(3, "C", "z").Match(1, 2021, 1, 2, 3, "V", "2021-01-01").Build()
			err := ds.Validate()
			convey.So(errors.Is(err, model.ErrInvalidReference), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "not a participant")
		})

		convey.Convey("When a match references an unknown team", func() {
			ds := base().Match(1, 2021, 1, 8, 0, "V", "2021-01-01").Build()
			convey.So(errors.Is(ds.Validate(), model.ErrInvalidReference), convey.ShouldBeTrue)
		})

		convey.Convey("When a player references an unknown team", func() {
			ds := base().Player(30, "R", 5, "bowler").Build()
			convey.So(errors.Is(ds.Validate(), model.ErrInvalidReference), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given datasets with invalid records", t, func() {
		convey.Convey("When two teams share a name", func() {
			ds := base().Team(3, "a", "z").Build()
			err := ds.Validate()
			convey.So(errors.Is(err, model.ErrInvalidRecord), convey.ShouldBeTrue)
			convey.So(errors.Is(err, model.ErrInvalidReference), convey.ShouldBeFalse)
		})

		convey.Convey("When a team id is repeated", func() {
			ds := base().Team(1, "D", "z").Build()
			convey.So(errors.Is(ds.Validate(), model.ErrInvalidRecord), convey.ShouldBeTrue)
		})

		convey.Convey("When a delivery has negative runs", func() {
			ds := base().Match(1, 2021, 1, 2, 0, "V", "2021-01-01").Ball(1, 20, 10, -1, false).Build()
			convey.So(errors.Is(ds.Validate(), model.ErrInvalidRecord), convey.ShouldBeTrue)
		})
	})
}
