package vecmath

import "testing"

func requireFloat32(t *testing.T, name string, got, want float32) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func requireInt16(t *testing.T, name string, got, want int16) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %d, want %d", name, got, want)
	}
}

func TestApproxEqualFWithinTolerance(t *testing.T) {
	if !ApproxEqualF(1.0, 1.0+UVConnectLimit/2, UVConnectLimit) {
		t.Error("expected values within tolerance to compare equal")
	}
}

func TestApproxEqualFOutsideTolerance(t *testing.T) {
	if ApproxEqualF(1.0, 1.1, UVConnectLimit) {
		t.Error("expected values outside tolerance to compare unequal")
	}
}

func TestApproxEqualV2ComponentWise(t *testing.T) {
	a := Vector2{0, 0}
	b := Vector2{0, UVConnectLimit * 2}
	if ApproxEqualV2(a, b, UVConnectLimit) {
		t.Error("expected a single out-of-tolerance component to fail the match")
	}
}

func TestRoundAwayFromZeroPositive(t *testing.T) {
	requireInt16(t, "round(1.2)", RoundAwayFromZero(1.2), 2)
}

func TestRoundAwayFromZeroNegative(t *testing.T) {
	requireInt16(t, "round(-1.2)", RoundAwayFromZero(-1.2), -2)
}

func TestRoundAwayFromZeroExactInteger(t *testing.T) {
	requireInt16(t, "round(3.0)", RoundAwayFromZero(3.0), 3)
}

func TestRoundAwayFromZeroZero(t *testing.T) {
	requireInt16(t, "round(0)", RoundAwayFromZero(0), 0)
}
