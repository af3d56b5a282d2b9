package bignum

// Sign labels a value as Positive or Negative. Canonical values never
// carry a negative zero: every operation that can produce zero forces its
// sign back to Positive.
type Sign int8

const (
	Positive Sign = 1
	Negative Sign = -1
)

// Neg returns the opposite sign.
func (s Sign) Neg() Sign {
	if s == Negative {
		return Positive
	}
	return Negative
}

// Mul combines two signs multiplicatively: same gives Positive, different
// gives Negative.
func (s Sign) Mul(t Sign) Sign {
	if s == t {
		return Positive
	}
	return Negative
}

// String returns the sign's decimal-literal prefix: "-" for Negative,
// "" for Positive.
func (s Sign) String() string {
	if s == Negative {
		return "-"
	}
	return ""
}

// signOf maps a negativity flag to a Sign.
func signOf(negative bool) Sign {
	if negative {
		return Negative
	}
	return Positive
}
