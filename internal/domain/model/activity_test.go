package model_test

import (
	"errors"
	"testing"

	model "github.com/mergington/activities/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestActivity(t *testing.T) {
	convey.Convey("Given an activity with two participants", t, func() {
		a := model.Activity{
			Name:            "Chess Club",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		}

		convey.Convey("Then HasParticipant matches exact emails only", func() {
			convey.So(a.HasParticipant("michael@mergington.edu"), convey.ShouldBeTrue)
			convey.So(a.HasParticipant("Michael@mergington.edu"), convey.ShouldBeFalse)
			convey.So(a.HasParticipant("nobody@mergington.edu"), convey.ShouldBeFalse)
		})

		convey.Convey("Then SpotsLeft subtracts the roster size", func() {
			convey.So(a.SpotsLeft(), convey.ShouldEqual, 10)
		})

		convey.Convey("When cloned and the clone is mutated", func() {
			c := a.Clone()
			c.Participants[0] = "changed@mergington.edu"
			c.Participants = append(c.Participants, "extra@mergington.edu")

			convey.Convey("Then the original is untouched", func() {
				convey.So(a.Participants, convey.ShouldResemble, []string{"michael@mergington.edu", "daniel@mergington.edu"})
			})
		})
	})

	convey.Convey("Given an activity with no participants", t, func() {
		a := model.Activity{Name: "Art Club"}

		convey.Convey("Then Clone yields an empty, non-nil roster", func() {
			c := a.Clone()
			convey.So(c.Participants, convey.ShouldNotBeNil)
			convey.So(c.Participants, convey.ShouldBeEmpty)
		})
	})
}

func TestActivityNormalize(t *testing.T) {
	convey.Convey("Given a roster with blanks and duplicates", t, func() {
		a := model.Activity{
			Name:         "Math Club",
			Participants: []string{"a@mergington.edu", "", "b@mergington.edu", "a@mergington.edu", "  "},
		}

		convey.Convey("When normalized", func() {
			n := a.Normalize()

			convey.Convey("Then first occurrences survive in order", func() {
				convey.So(n.Participants, convey.ShouldResemble, []string{"a@mergington.edu", "b@mergington.edu"})
				convey.So(len(a.Participants), convey.ShouldEqual, 5)
			})
		})
	})
}

func TestActivityValidate(t *testing.T) {
	convey.Convey("Given activity definitions", t, func() {
		convey.Convey("Then a well-formed activity passes", func() {
			convey.So(model.Activity{Name: "Drama Club", MaxParticipants: 20}.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then malformed ones fail with ErrInvalidActivity", func() {
			for _, a := range []model.Activity{
				{Name: ""},
				{Name: "   "},
				{Name: "Art/Craft"},
				{Name: "Gym Class", MaxParticipants: -1},
			} {
				err := a.Validate()
				convey.So(errors.Is(err, model.ErrInvalidActivity), convey.ShouldBeTrue)
			}
		})
	})
}

func TestDefaultActivities(t *testing.T) {
	convey.Convey("Given the built-in catalogue", t, func() {
		acts := model.DefaultActivities()

		convey.Convey("Then Chess Club is seeded with michael and daniel", func() {
			convey.So(acts[0].Name, convey.ShouldEqual, "Chess Club")
			convey.So(acts[0].HasParticipant("michael@mergington.edu"), convey.ShouldBeTrue)
			convey.So(acts[0].HasParticipant("daniel@mergington.edu"), convey.ShouldBeTrue)
		})

		convey.Convey("Then every entry is valid with a unique name and a duplicate-free roster", func() {
			names := map[string]bool{}
			for _, a := range acts {
				convey.So(a.Validate(), convey.ShouldBeNil)
				convey.So(names[a.Name], convey.ShouldBeFalse)
				names[a.Name] = true
				convey.So(a.Normalize().Participants, convey.ShouldResemble, a.Participants)
			}
			convey.So(len(names), convey.ShouldEqual, 9)
		})

		convey.Convey("Then each call returns independent values", func() {
			acts[0].Participants[0] = "mutated@mergington.edu"
			convey.So(model.DefaultActivities()[0].Participants[0], convey.ShouldEqual, "michael@mergington.edu")
		})
	})
}
