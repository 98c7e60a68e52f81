package warmup

import (
	"errors"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestHelloWorld(t *testing.T) {
	convey.Convey("Given the warmup greeting", t, func() {
		convey.Convey("Then it should say hello", func() {
			convey.So(HelloWorld(), convey.ShouldEqual, "Hello, world!")
		})
	})
}

func TestFault(t *testing.T) {
	convey.Convey("Given the deliberate fault", t, func() {
		convey.Convey("When called repeatedly", func() {
			first := Fault()
			second := Fault()

			convey.Convey("Then it should always return ErrFault", func() {
				convey.So(errors.Is(first, ErrFault), convey.ShouldBeTrue)
				convey.So(errors.Is(second, ErrFault), convey.ShouldBeTrue)
			})
		})
	})
}
