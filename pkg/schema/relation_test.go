package schema

import "testing"

func TestDeriveAlias(t *testing.T) {
	tests := []struct {
		name        string
		field       string
		cardinality Cardinality
		want        string
	}{
		{name: "single plain", field: "company", cardinality: CardinalitySingle, want: "companyId"},
		{name: "single already suffixed", field: "companyId", cardinality: CardinalitySingle, want: "companyId"},
		{name: "single uppercase suffix", field: "companyID", cardinality: CardinalitySingle, want: "companyID"},
		{name: "multiple plain", field: "noteTargets", cardinality: CardinalityMultiple, want: "noteTargetsIds"},
		{name: "multiple already suffixed", field: "noteTargetsIds", cardinality: CardinalityMultiple, want: "noteTargetsIds"},
		{name: "multiple uppercase suffix", field: "memberIDS", cardinality: CardinalityMultiple, want: "memberIDS"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveAlias(tc.field, tc.cardinality); got != tc.want {
				t.Fatalf("DeriveAlias(%q, %s) = %q, want %q", tc.field, tc.cardinality, got, tc.want)
			}
		})
	}
}

func TestDeriveAliasIdempotent(t *testing.T) {
	for _, c := range []Cardinality{CardinalitySingle, CardinalityMultiple} {
		for _, field := range []string{"company", "companyId", "noteTargets", "accountOwnerIds", "x"} {
			once := DeriveAlias(field, c)
			twice := DeriveAlias(once, c)
			if once != twice {
				t.Fatalf("alias derivation not idempotent for %q (%s): %q -> %q", field, c, once, twice)
			}
		}
	}
}

func TestCardinalityFromRelationType(t *testing.T) {
	tests := []struct {
		relationType string
		want         Cardinality
		ok           bool
	}{
		{"MANY_TO_ONE", CardinalitySingle, true},
		{"ONE_TO_ONE", CardinalitySingle, true},
		{"ONE_TO_MANY", CardinalityMultiple, true},
		{"MANY_TO_MANY", CardinalityMultiple, true},
		{"many_to_one", CardinalitySingle, true},
		{"SELF_REFERENTIAL", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		got, ok := cardinalityFromRelationType(tc.relationType)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("cardinalityFromRelationType(%q) = (%q, %v), want (%q, %v)", tc.relationType, got, ok, tc.want, tc.ok)
		}
	}
}
