package core

import (
	"math"
	"testing"
)

func vecNear(a, b Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"AddScalar", a.AddScalar(1), NewVec3(2, 3, 4)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"SubtractScalar", a.SubtractScalar(1), NewVec3(0, 1, 2)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"Divide", a.Divide(2), NewVec3(0.5, 1, 1.5)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"Cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"Sqrt", NewVec3(4, 9, 0.25).Sqrt(), NewVec3(2, 3, 0.5)},
		{"Clamp", NewVec3(-1, 0.5, 2).Clamp(0, 1), NewVec3(0, 0.5, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}

func TestVec3_Immutable(t *testing.T) {
	a := NewVec3(1, 2, 3)
	_ = a.Add(NewVec3(1, 1, 1))
	_ = a.Multiply(5)
	if !a.Equals(NewVec3(1, 2, 3)) {
		t.Errorf("Arithmetic mutated receiver: %v", a)
	}
}

func TestVec3_LengthAndDot(t *testing.T) {
	v := NewVec3(3, 4, 12)
	if v.LengthSquared() != 169 {
		t.Errorf("Expected length squared 169, got %f", v.LengthSquared())
	}
	if v.Length() != 13 {
		t.Errorf("Expected length 13, got %f", v.Length())
	}
	if d := NewVec3(1, 2, 3).Dot(NewVec3(4, 5, 6)); d != 32 {
		t.Errorf("Expected dot 32, got %f", d)
	}
}

func TestVec3_UnitHasLengthOne(t *testing.T) {
	vectors := []Vec3{
		NewVec3(1, 0, 0),
		NewVec3(3, 4, 0),
		NewVec3(-2, 7, 1e-3),
		NewVec3(1e-6, -1e-6, 1e-6),
		NewVec3(1e6, 2e6, -3e6),
	}
	for _, v := range vectors {
		u := v.Unit()
		if math.Abs(u.Length()-1) > 1e-12 {
			t.Errorf("Unit(%v) has length %.15f", v, u.Length())
		}
	}
}

func TestVec3_UnitOfZeroIsNaN(t *testing.T) {
	u := NewVec3(0, 0, 0).Unit()
	if u.IsFinite() {
		t.Errorf("Expected non-finite result for zero vector, got %v", u)
	}
	if n := NewVec3(0, 0, 0).Normalize(); !n.Equals(NewVec3(0, 0, 0)) {
		t.Errorf("Normalize of zero should be zero, got %v", n)
	}
}

func TestVec3_NearZero(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		expected bool
	}{
		{"zero", NewVec3(0, 0, 0), true},
		{"tiny", NewVec3(1e-6, -1e-6, 9e-6), true},
		{"one component large", NewVec3(1e-6, 1e-4, 0), false},
		{"unit", NewVec3(1, 0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.NearZero(); got != tt.expected {
				t.Errorf("NearZero(%v) = %t, expected %t", tt.v, got, tt.expected)
			}
		})
	}
}

func TestVec3_Reflect(t *testing.T) {
	n := NewVec3(0, 1, 0)
	v := NewVec3(1, -1, 0).Unit()

	r := v.Reflect(n)
	expected := NewVec3(1, 1, 0).Unit()
	if !vecNear(r, expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, r)
	}
	if math.Abs(r.Length()-v.Length()) > 1e-12 {
		t.Errorf("Reflection changed length: %f -> %f", v.Length(), r.Length())
	}
}

func TestVec3_ReflectPreservesLength(t *testing.T) {
	sampler := NewSeededSampler(7)
	for i := 0; i < 100; i++ {
		v := RandomUnitVector(sampler)
		n := RandomUnitVector(sampler)
		r := v.Reflect(n)
		if math.Abs(r.Length()-1) > 1e-9 {
			t.Fatalf("Reflect(%v, %v) has length %f", v, n, r.Length())
		}
	}
}

func TestVec3_Refract(t *testing.T) {
	n := NewVec3(0, 1, 0)

	t.Run("normal incidence passes straight through", func(t *testing.T) {
		v := NewVec3(0, -1, 0)
		r := v.Refract(n, 1.0/1.5)
		if !vecNear(r, v, 1e-12) {
			t.Errorf("Expected %v, got %v", v, r)
		}
	})

	t.Run("ratio one leaves direction unchanged", func(t *testing.T) {
		v := NewVec3(1, -2, 0.5).Unit()
		r := v.Refract(n, 1.0)
		if !vecNear(r, v, 1e-12) {
			t.Errorf("Expected %v, got %v", v, r)
		}
	})

	t.Run("snell's law", func(t *testing.T) {
		ratio := 1.0 / 1.5
		v := NewVec3(1, -1, 0).Unit()
		r := v.Refract(n, ratio)

		sinIn := math.Sqrt(1 - math.Pow(v.Dot(n), 2))
		sinOut := math.Sqrt(1 - math.Pow(r.Unit().Dot(n), 2))
		if math.Abs(sinOut-ratio*sinIn) > 1e-9 {
			t.Errorf("Expected sin out %f, got %f", ratio*sinIn, sinOut)
		}
		if math.Abs(r.Length()-1) > 1e-9 {
			t.Errorf("Refracted unit vector should stay unit length, got %f", r.Length())
		}
	})
}

func TestVec3_IsFinite(t *testing.T) {
	if !NewVec3(1, 2, 3).IsFinite() {
		t.Error("Expected finite vector")
	}
	if NewVec3(math.NaN(), 0, 0).IsFinite() {
		t.Error("NaN component should not be finite")
	}
	if NewVec3(0, math.Inf(-1), 0).IsFinite() {
		t.Error("Inf component should not be finite")
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 1, 1), NewVec3(0, 2, 0))
	if p := ray.At(1.5); !p.Equals(NewVec3(1, 4, 1)) {
		t.Errorf("Expected (1, 4, 1), got %v", p)
	}
	if p := ray.At(0); !p.Equals(ray.Origin) {
		t.Errorf("At(0) should be origin, got %v", p)
	}
}
