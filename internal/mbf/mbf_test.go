/*
 * Altair8K - MBF float arithmetic test cases.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package mbf

import "testing"

// P4: from_int16 then to_int16 is the identity for every n.
func TestInt16RoundTrip(t *testing.T) {
	for n := -32768; n <= 32767; n++ {
		f := FromInt16(int16(n))
		got := f.ToInt16()
		if int(got) != n {
			t.Fatalf("FromInt16(%d).ToInt16() = %d", n, got)
		}
	}
}

// P5: (a+b)-b == a exactly for a fixed set of non-overflowing pairs.
func TestAddSubInverse(t *testing.T) {
	pairs := [][2]int32{
		{5, 3}, {100, 1}, {7, -7}, {12345, 6789}, {-500, 250}, {1, 1},
		{1000000, 1}, {-1, -1}, {0, 5}, {5, 0},
	}
	for _, p := range pairs {
		a := FromInt32(p[0])
		b := FromInt32(p[1])
		sum, errKind := Add(a, b)
		if errKind != OK {
			t.Fatalf("Add(%v,%v) error %v", p[0], p[1], errKind)
		}
		back, errKind := Sub(sum, b)
		if errKind != OK {
			t.Fatalf("Sub error %v", errKind)
		}
		if !Equal(back, a) {
			t.Errorf("(%d+%d)-%d = %v want %v", p[0], p[1], p[1], back.ToInt32(), p[0])
		}
	}
}

// P6: (a*b)/b == a within 1 ULP for non-zero b.
func TestMulDivInverse(t *testing.T) {
	pairs := [][2]int32{{5, 3}, {100, 7}, {-12, 4}, {17, -3}, {1, 1000}}
	for _, p := range pairs {
		a := FromInt32(p[0])
		b := FromInt32(p[1])
		prod, errKind := Mul(a, b)
		if errKind != OK {
			t.Fatalf("Mul error %v", errKind)
		}
		back, errKind := Div(prod, b)
		if errKind != OK {
			t.Fatalf("Div error %v", errKind)
		}
		diff, _ := Sub(back, a)
		if diff.Abs().ToFloat64() > 1e-4 {
			t.Errorf("(%d*%d)/%d = %v want %v", p[0], p[1], p[1], back.ToFloat64(), p[0])
		}
	}
}

func TestDivZero(t *testing.T) {
	_, errKind := Div(One, Zero)
	if errKind != DivZero {
		t.Errorf("Div by zero: got %v want DivZero", errKind)
	}
}

func TestCmp(t *testing.T) {
	cases := []struct {
		a, b int32
		want int
	}{
		{1, 2, -1}, {2, 1, 1}, {1, 1, 0}, {-1, 1, -1}, {1, -1, 1},
		{-5, -3, -1}, {-3, -5, 1}, {0, 0, 0}, {0, 1, -1}, {0, -1, 1},
	}
	for _, c := range cases {
		got := Cmp(FromInt32(c.a), FromInt32(c.b))
		if got != c.want {
			t.Errorf("Cmp(%d,%d) = %d want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestNegAbs(t *testing.T) {
	f := FromInt32(-7)
	if f.Neg().ToInt32() != 7 {
		t.Errorf("Neg(-7) != 7")
	}
	if f.Abs().ToInt32() != 7 {
		t.Errorf("Abs(-7) != 7")
	}
	if !Zero.Neg().IsZero() {
		t.Errorf("Neg(0) should stay zero")
	}
}

func TestIntFloor(t *testing.T) {
	cases := []struct {
		in   float64
		want int32
	}{
		{3.7, 3}, {-3.7, -4}, {3.0, 3}, {-3.0, -3}, {0.5, 0}, {-0.5, -1},
	}
	for _, c := range cases {
		f, errKind := FromFloat64(c.in)
		if errKind != OK {
			t.Fatalf("FromFloat64(%v) error %v", c.in, errKind)
		}
		got := f.Int().ToInt32()
		if got != c.want {
			t.Errorf("INT(%v) = %d want %d", c.in, got, c.want)
		}
	}
}

func TestSgn(t *testing.T) {
	if FromInt32(5).Sign() != 1 {
		t.Errorf("Sign(5) != 1")
	}
	if FromInt32(-5).Sign() != -1 {
		t.Errorf("Sign(-5) != -1")
	}
	if Zero.Sign() != 0 {
		t.Errorf("Sign(0) != 0")
	}
}

func TestSqrDomainError(t *testing.T) {
	_, errKind := Sqr(FromInt32(-4))
	if errKind != Domain {
		t.Errorf("Sqr(-4) = %v want Domain", errKind)
	}
	r, errKind := Sqr(FromInt32(4))
	if errKind != OK {
		t.Fatalf("Sqr(4) error %v", errKind)
	}
	if diff := r.ToFloat64() - 2; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("Sqr(4) = %v want 2", r.ToFloat64())
	}
}
