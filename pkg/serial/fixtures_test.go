package serial_test

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"

	"github.com/dmitrymomot/typekit/pkg/serial"
)

type Shape interface {
	Area() float64
}

type Square struct {
	Side float64
}

func (s Square) Area() float64 { return s.Side * s.Side }

// SquareV2 reads frames written with Square.
type SquareV2 struct {
	Side  float64
	Label string
}

func (s SquareV2) Area() float64 { return s.Side * s.Side }

type Circle struct {
	Radius float64
}

func (c *Circle) Area() float64 { return math.Pi * c.Radius * c.Radius }

type Address struct {
	City string
	Zip  int
}

type User struct {
	ID       uuid.UUID
	Name     string
	Age      int8
	Score    uint64
	Ratio    float32
	Active   bool
	Tags     []string
	Avatar   []byte
	Empty    []int
	Matrix   [2][2]int
	Home     *Address
	Work     *Address
	Friend   *User
	Shapes   []Shape
	Meta     map[string]any
	Created  time.Time
	Timeout  time.Duration
	Password string `serial:"-"`
	internal string
}

type Holder struct {
	Shape Shape
}

var dumper = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}

// assertGraph compares graphs that may contain cycles.
func assertGraph(t *testing.T, want, got any) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("graph mismatch\nwant: %s\ngot:  %s", dumper.Sdump(want), dumper.Sdump(got))
	}
}

func newUser() *User {
	home := &Address{City: "Lisbon", Zip: 1000}
	u := &User{
		ID:      uuid.MustParse("6f1c1f0e-7d2a-4b5e-9c3f-0a1b2c3d4e5f"),
		Name:    "ann",
		Age:     -7,
		Score:   math.MaxUint64,
		Ratio:   0.5,
		Active:  true,
		Tags:    []string{"a", "b"},
		Avatar:  []byte{0x00, 0xff, 0x10},
		Empty:   []int{},
		Matrix:  [2][2]int{{1, 2}, {3, 4}},
		Home:    home,
		Work:    home,
		Shapes:  []Shape{Square{Side: 2}, &Circle{Radius: 1}, nil},
		Meta:    map[string]any{"n": 1, "s": "x", "list": []int{1, 2}, "nil": nil},
		Created: time.Date(2024, 1, 2, 3, 4, 5, 6, time.UTC),
		Timeout: 3 * time.Second,
	}
	u.Friend = u
	return u
}

func ambientRegistry(t *testing.T) *serial.Registry {
	t.Helper()
	r := serial.NewRegistry()
	for _, v := range []any{User{}, Address{}, Square{}, Circle{}, Holder{}} {
		if _, err := r.Register(v); err != nil {
			t.Fatalf("register %T: %v", v, err)
		}
	}
	return r
}
