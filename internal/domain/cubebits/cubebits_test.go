package cubebits

import (
	"errors"
	"strconv"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCubeBits(t *testing.T) {
	Convey("Given packets of integers", t, func() {
		Convey("When the packet holds the puzzle examples", func() {
			Convey("Then the cubed XOR should match", func() {
				So(CubeBits([]int32{4, 8}), ShouldEqual, 1728)
				So(CubeBits([]int32{10}), ShouldEqual, 1000)
				So(CubeBits([]int32{4, 5, 8, 10}), ShouldEqual, 27)
			})
		})

		Convey("When the packet is reordered", func() {
			a := CubeBits([]int32{4, 5, 8, 10})
			b := CubeBits([]int32{10, 8, 5, 4})
			c := CubeBits([]int32{5, 10, 4, 8})

			Convey("Then the result should not change", func() {
				So(b, ShouldEqual, a)
				So(c, ShouldEqual, a)
			})
		})

		Convey("When the packet holds negative values", func() {
			Convey("Then the sign should survive the cube", func() {
				So(CubeBits([]int32{-3}), ShouldEqual, -27)
				So(CubeBits([]int32{-1, 0}), ShouldEqual, -1)
			})
		})

		Convey("When a value cancels itself out", func() {
			Convey("Then the result should be zero", func() {
				So(CubeBits([]int32{7, 7}), ShouldEqual, 0)
			})
		})

		Convey("When the cube overflows 32 bits", func() {
			Convey("Then it should wrap like two's complement", func() {
				So(CubeBits([]int32{2000}), ShouldEqual, int32(-589934592))
				So(CubeBits([]int32{1 << 11}), ShouldEqual, 0)
			})
		})
	})
}

func TestParseSegments(t *testing.T) {
	Convey("Given path segments", t, func() {
		Convey("When every segment is an integer", func() {
			nums, err := ParseSegments([]string{"4", "-5", "+8", "2147483647", "-2147483648"})

			Convey("Then they should parse in order", func() {
				So(err, ShouldBeNil)
				So(nums, ShouldResemble, []int32{4, -5, 8, 2147483647, -2147483648})
			})
		})

		Convey("When a segment is not an integer", func() {
			for _, bad := range []string{"abc", "1.5", "", "0x10", "2147483648", "-2147483649"} {
				_, err := ParseSegments([]string{"1", bad})
				So(errors.Is(err, ErrInvalidSegment), ShouldBeTrue)
			}
		})

		Convey("When no segments are given", func() {
			_, err := ParseSegments(nil)

			Convey("Then it should report a count error", func() {
				So(errors.Is(err, ErrSegmentCount), ShouldBeTrue)
			})
		})

		Convey("When exactly the maximum number of segments is given", func() {
			segs := make([]string, MaxSegments)
			for i := range segs {
				segs[i] = strconv.Itoa(i)
			}
			nums, err := ParseSegments(segs)

			Convey("Then it should be accepted", func() {
				So(err, ShouldBeNil)
				So(len(nums), ShouldEqual, MaxSegments)
			})
		})

		Convey("When more than the maximum number of segments is given", func() {
			segs := make([]string, MaxSegments+1)
			for i := range segs {
				segs[i] = "1"
			}
			_, err := ParseSegments(segs)

			Convey("Then it should report a count error", func() {
				So(errors.Is(err, ErrSegmentCount), ShouldBeTrue)
			})
		})
	})
}
