package model_test

import (
	"testing"

	"github.com/okian/futsal/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParsePosition(t *testing.T) {
	Convey("Given free-form position input", t, func() {
		So(model.ParsePosition("gk"), ShouldEqual, model.Goalkeeper)
		So(model.ParsePosition("GOALKEEPER"), ShouldEqual, model.Goalkeeper)
		So(model.ParsePosition(" def "), ShouldEqual, model.Defender)
		So(model.ParsePosition("Defender"), ShouldEqual, model.Defender)
		So(model.ParsePosition("FWD"), ShouldEqual, model.Forward)
		So(model.ParsePosition("forward"), ShouldEqual, model.Forward)
		So(model.ParsePosition("MIDFIELDER"), ShouldEqual, model.Midfielder)
		So(model.ParsePosition(""), ShouldEqual, model.Midfielder)
		So(model.ParsePosition("striker"), ShouldEqual, model.Midfielder)
	})
}

func TestPlayerDefaults(t *testing.T) {
	Convey("Given a new player", t, func() {
		p := model.NewPlayer("  Zoe ")

		Convey("Then every field has its default", func() {
			So(p.Name, ShouldEqual, "Zoe")
			So(p.Rating, ShouldEqual, model.DefaultRating)
			So(p.Position, ShouldEqual, model.Midfielder)
			So(p.IsGoalie, ShouldBeFalse)
			So(p.HasLink(), ShouldBeFalse)
		})
	})

	Convey("Given a sparse player record", t, func() {
		p := model.Player{Name: " Yan ", Position: "defender", LinkedTo: " Zoe "}.Normalize()

		Convey("Then normalizing fills defaults and trims", func() {
			So(p.Name, ShouldEqual, "Yan")
			So(p.Rating, ShouldEqual, model.DefaultRating)
			So(p.Position, ShouldEqual, model.Defender)
			So(p.LinkedTo, ShouldEqual, "Zoe")
		})
	})
}

func TestLinkedWith(t *testing.T) {
	Convey("Given players with one-sided links", t, func() {
		a := model.Player{Name: "a", LinkedTo: "b"}
		b := model.Player{Name: "b"}
		c := model.Player{Name: "c", LinkedTo: "ghost"}

		Convey("Then the link resolves from either side", func() {
			So(a.LinkedWith(b), ShouldBeTrue)
			So(b.LinkedWith(a), ShouldBeTrue)
			So(a.LinkedWith(c), ShouldBeFalse)
			So(c.LinkedWith(b), ShouldBeFalse)
			So(a.LinkedWith(a), ShouldBeFalse)
		})
	})
}

func TestTeamRecompute(t *testing.T) {
	Convey("Given a team with a goalie", t, func() {
		team := model.Team{Players: []model.Player{
			{ID: 1, Rating: 3, IsGoalie: true},
			{ID: 2, Rating: 7},
		}}
		team.Recompute()

		Convey("Then rating and goalie flag are derived", func() {
			So(team.Rating, ShouldEqual, 10)
			So(team.HasGoalie, ShouldBeTrue)
			So(team.IndexOf(2), ShouldEqual, 1)
			So(team.IndexOf(9), ShouldEqual, -1)
		})
	})

	Convey("Given an allocation", t, func() {
		alloc := model.Allocation{Teams: []model.Team{{Rating: 10}, {Rating: 4}, {Rating: 7}}}

		Convey("Then the spread is max minus min", func() {
			So(alloc.Spread(), ShouldEqual, 6)
			So(alloc.TotalRating(), ShouldEqual, 21)
		})
	})
}
