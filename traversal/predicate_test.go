package traversal

import (
	"errors"
	"math"

	check "gopkg.in/check.v1"
)

var _ = check.Suite(new(PredicateTestSuite))

type PredicateTestSuite struct{}

func (s *PredicateTestSuite) TestCompare(c *check.C) {
	specs := []struct {
		descr  string
		a, b   interface{}
		exp    int
		expErr error
	}{
		{descr: "ints", a: 1, b: 2, exp: -1},
		{descr: "int and float", a: 3, b: 2.5, exp: 1},
		{descr: "mixed widths", a: int32(7), b: 7.0, exp: 0},
		{descr: "unsigned above int64", a: uint64(math.MaxUint64), b: int64(math.MaxInt64), exp: 1},
		{descr: "strings", a: "apple", b: "banana", exp: -1},
		{descr: "bools", a: false, b: true, exp: -1},
		{descr: "nan sorts first", a: math.NaN(), b: 1.0, exp: -1},
		{descr: "string and number", a: "29", b: 29, expErr: ErrIncomparableTypes},
		{descr: "bool and string", a: true, b: "true", expErr: ErrIncomparableTypes},
		{descr: "nil", a: nil, b: 1, expErr: ErrIncomparableTypes},
	}

	for specIndex, spec := range specs {
		c.Logf("[spec %d] %s", specIndex, spec.descr)

		got, err := Compare(spec.a, spec.b)
		if spec.expErr != nil {
			c.Assert(errors.Is(err, spec.expErr), check.Equals, true)

			continue
		}

		c.Assert(err, check.IsNil)
		c.Assert(got, check.Equals, spec.exp)
	}
}

func (s *PredicateTestSuite) TestPredicates(c *check.C) {
	specs := []struct {
		p     P
		value interface{}
		exp   bool
	}{
		{Eq(29), int64(29), true},
		{Eq(29), 29.0, true},
		{Eq("a"), "b", false},
		{Neq("a"), "b", true},
		{Lt(30), 29, true},
		{Lte(29), 29, true},
		{Gt(29), 29, false},
		{Gte(29), 29.5, true},
		{Inside(1, 5), 5, false},
		{Inside(1, 5), 3, true},
		{Outside(1, 5), 0, true},
		{Outside(1, 5), 5, false},
		{Between(1, 5), 1, true},
		{Between(1, 5), 5, false},
		{Within(1, "a"), int64(1), true},
		{Within(1, "a"), "b", false},
		{Within(), "b", false},
		{Without(1, "a"), "b", true},
		{Without(1, "a"), "a", false},
	}

	for specIndex, spec := range specs {
		c.Logf("[spec %d] %s on %v", specIndex, spec.p, spec.value)

		got, err := spec.p.Test(spec.value)
		c.Assert(err, check.IsNil)
		c.Assert(got, check.Equals, spec.exp)
	}
}

func (s *PredicateTestSuite) TestOrderingPredicateOnIncomparableValue(c *check.C) {
	_, err := Gt(29).Test("old")
	c.Assert(errors.Is(err, ErrIncomparableTypes), check.Equals, true)

	_, err = Between("a", "c").Test(2)
	c.Assert(errors.Is(err, ErrIncomparableTypes), check.Equals, true)

	// Equality never fails, it just does not match.
	ok, err := Eq(29).Test("old")
	c.Assert(err, check.IsNil)
	c.Assert(ok, check.Equals, false)
}

func (s *PredicateTestSuite) TestIsEq(c *check.C) {
	v, ok := Eq("marko").IsEq()
	c.Assert(ok, check.Equals, true)
	c.Assert(v, check.Equals, "marko")

	_, ok = Within("marko").IsEq()
	c.Assert(ok, check.Equals, false)

	c.Assert(Between(1, 5).String(), check.Equals, "between(1, 5)")
}

func (s *PredicateTestSuite) TestMemory(c *check.C) {
	m := newMemory()

	_, err := m.Get("x")
	c.Assert(errors.Is(err, ErrUndefinedSideEffectKey), check.Equals, true)

	m.Register("x", []interface{}(nil), AppendMerge)
	m.Add("x", 1)
	m.Add("x", 2)

	// Registering again keeps the accumulated value.
	m.Register("x", []interface{}(nil), AppendMerge)

	got, err := m.Get("x")
	c.Assert(err, check.IsNil)
	c.Assert(got, check.DeepEquals, []interface{}{1, 2})

	m.Add("plain", "first")
	m.Add("plain", "second")
	got, err = m.Get("plain")
	c.Assert(err, check.IsNil)
	c.Assert(got, check.Equals, "second")

	m.Set("a", 0)
	c.Assert(m.Exists("a"), check.Equals, true)
	c.Assert(m.Keys(), check.DeepEquals, []string{"a", "plain", "x"})
}

func (s *PredicateTestSuite) TestSackOperators(c *check.C) {
	m := newMemory()
	c.Assert(m.HasSack(), check.Equals, false)
	c.Assert(m.initialSack(), check.IsNil)
	c.Assert(m.mergeSacks(1, 2), check.Equals, 1)

	m.SetSack(
		func() interface{} { return 1.0 },
		func(v interface{}) interface{} { return v.(float64) * 2 },
		func(a, b interface{}) interface{} { return a.(float64) + b.(float64) },
	)

	c.Assert(m.HasSack(), check.Equals, true)
	c.Assert(m.initialSack(), check.Equals, 1.0)
	c.Assert(m.splitSack(2.0), check.Equals, 4.0)
	c.Assert(m.splitSack(nil), check.IsNil)
	c.Assert(m.mergeSacks(1.0, 2.0), check.Equals, 3.0)
}
