package service_test

import (
	"context"
	"errors"
	"testing"

	repository "github.com/mergington/activities/internal/adapters/repository"
	service "github.com/mergington/activities/internal/app"
	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newService(ctx context.Context) *service.Service {
	store, err := repository.NewMemoryStore(ctx, model.DefaultActivities())
	So(err, ShouldBeNil)
	return service.New(store)
}

func participantsOf(ctx context.Context, svc *service.Service, name string) []string {
	acts, err := svc.Activities(ctx)
	So(err, ShouldBeNil)
	for _, a := range acts {
		if a.Name == name {
			return a.Participants
		}
	}
	return nil
}

func TestService_New(t *testing.T) {
	Convey("Given a seeded store", t, func() {
		store, err := repository.NewMemoryStore(context.Background(), model.DefaultActivities())
		So(err, ShouldBeNil)

		Convey("Then the service can be built with and without a logger", func() {
			So(service.New(store), ShouldNotBeNil)
			So(service.New(store, service.WithLogger(logger.Named("test"))), ShouldNotBeNil)
			So(service.New(store, service.WithLogger(nil)), ShouldNotBeNil)
		})
	})
}

func TestService_SignupAndRemove(t *testing.T) {
	Convey("Given a service over the default catalogue", t, func() {
		ctx := context.Background()
		svc := newService(ctx)
		const email = "test_user_1@mergington.edu"

		So(participantsOf(ctx, svc, "Chess Club"), ShouldNotContain, email)

		Convey("When signing up a new participant", func() {
			msg, err := svc.Signup(ctx, "Chess Club", email)

			Convey("Then a confirmation is returned and the roster lists the email", func() {
				So(err, ShouldBeNil)
				So(msg, ShouldEqual, "Signed up test_user_1@mergington.edu for Chess Club")
				So(participantsOf(ctx, svc, "Chess Club"), ShouldContain, email)
			})

			Convey("And removing the participant", func() {
				msg, err := svc.Remove(ctx, "Chess Club", email)

				Convey("Then a confirmation is returned and the email is gone", func() {
					So(err, ShouldBeNil)
					So(msg, ShouldEqual, "Removed test_user_1@mergington.edu from Chess Club")
					So(participantsOf(ctx, svc, "Chess Club"), ShouldNotContain, email)
				})
			})
		})

		Convey("When signing up a pre-seeded participant", func() {
			before := participantsOf(ctx, svc, "Chess Club")
			_, err := svc.Signup(ctx, "Chess Club", "michael@mergington.edu")

			Convey("Then it fails with ErrAlreadySignedUp and nothing changes", func() {
				So(errors.Is(err, repository.ErrAlreadySignedUp), ShouldBeTrue)
				So(participantsOf(ctx, svc, "Chess Club"), ShouldResemble, before)
			})
		})

		Convey("When signing up for an unknown activity", func() {
			_, err := svc.Signup(ctx, "Quidditch", email)

			Convey("Then it fails with ErrActivityNotFound", func() {
				So(errors.Is(err, repository.ErrActivityNotFound), ShouldBeTrue)
			})
		})

		Convey("When removing a non-participant", func() {
			_, err := svc.Remove(ctx, "Chess Club", "nonexistent@mergington.edu")

			Convey("Then it fails with ErrNotParticipant", func() {
				So(errors.Is(err, repository.ErrNotParticipant), ShouldBeTrue)
			})
		})

		Convey("When removing from an unknown activity", func() {
			_, err := svc.Remove(ctx, "Quidditch", "michael@mergington.edu")

			Convey("Then it fails with ErrActivityNotFound", func() {
				So(errors.Is(err, repository.ErrActivityNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestService_Reads(t *testing.T) {
	Convey("Given a service over the default catalogue", t, func() {
		ctx := context.Background()
		svc := newService(ctx)

		Convey("When listing activities", func() {
			acts, err := svc.Activities(ctx)

			Convey("Then no roster holds a duplicate", func() {
				So(err, ShouldBeNil)
				for _, a := range acts {
					So(a.Normalize().Participants, ShouldResemble, a.Participants)
				}
			})
		})

		Convey("When reading a single activity", func() {
			a, err := svc.Activity(ctx, "Math Club")

			Convey("Then its fields are returned", func() {
				So(err, ShouldBeNil)
				So(a.MaxParticipants, ShouldEqual, 10)
			})
		})

		Convey("When reading an unknown activity", func() {
			_, err := svc.Activity(ctx, "Quidditch")

			Convey("Then it fails with ErrActivityNotFound", func() {
				So(errors.Is(err, repository.ErrActivityNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestService_Stats(t *testing.T) {
	Convey("Given a service over the default catalogue", t, func() {
		ctx := context.Background()
		svc := newService(ctx)

		Convey("When a participant signs up", func() {
			_, err := svc.Signup(ctx, "Art Club", "new@mergington.edu")
			So(err, ShouldBeNil)
			stats := svc.GetStats()

			Convey("Then the stats reflect the new enrolment", func() {
				So(stats["activities"], ShouldEqual, 9)
				So(stats["participants"], ShouldEqual, 19)
				perActivity, ok := stats["perActivity"].(map[string]int)
				So(ok, ShouldBeTrue)
				So(perActivity["Art Club"], ShouldEqual, 3)
			})
		})

		Convey("Then refreshing metrics does not panic", func() {
			So(func() { svc.RefreshMetrics(ctx) }, ShouldNotPanic)
		})
	})
}
