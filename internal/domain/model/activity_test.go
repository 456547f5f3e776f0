package model_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/mergington/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestActivity(t *testing.T) {
	Convey("Given an activity with two participants", t, func() {
		a := model.Activity{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 2,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		}

		Convey("Then membership is exact match", func() {
			So(a.Has("michael@mergington.edu"), ShouldBeTrue)
			So(a.Has("Michael@mergington.edu"), ShouldBeFalse)
			So(a.Has(""), ShouldBeFalse)
		})

		Convey("Then spots left and fullness follow the roster size", func() {
			So(a.SpotsLeft(), ShouldEqual, 0)
			So(a.Full(), ShouldBeTrue)
			a.Participants = append(a.Participants, "extra@mergington.edu")
			So(a.SpotsLeft(), ShouldEqual, -1)
		})

		Convey("When cloning", func() {
			c := a.Clone()
			c.Participants[0] = "changed@mergington.edu"

			Convey("Then the original roster is untouched", func() {
				So(a.Participants[0], ShouldEqual, "michael@mergington.edu")
			})
		})

		Convey("When encoding to JSON", func() {
			raw, err := json.Marshal(a)
			So(err, ShouldBeNil)

			var body map[string]any
			So(json.Unmarshal(raw, &body), ShouldBeNil)

			Convey("Then the wire shape omits the name and keeps the four fields", func() {
				So(body, ShouldContainKey, "description")
				So(body, ShouldContainKey, "schedule")
				So(body, ShouldContainKey, "max_participants")
				So(body, ShouldContainKey, "participants")
				So(body, ShouldNotContainKey, "Name")
				So(len(body), ShouldEqual, 4)
			})
		})
	})

	Convey("Given an activity without participants", t, func() {
		a := model.Activity{Name: "Math Club", MaxParticipants: 10}

		Convey("Then its clone encodes participants as an empty array", func() {
			raw, err := json.Marshal(a.Clone())
			So(err, ShouldBeNil)
			So(string(raw), ShouldContainSubstring, `"participants":[]`)
		})
	})
}
