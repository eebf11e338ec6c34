package scoring

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{name: "lowercases", in: "Glycerin", out: "glycerin"},
		{name: "trims whitespace", in: "  Aloe Vera  ", out: "aloe vera"},
		{name: "keeps hyphen and digits", in: "PEG-40 Hydrogenated Castor Oil", out: "peg-40 hydrogenated castor oil"},
		{name: "drops punctuation", in: "Butyrospermum Parkii (Shea) Butter*", out: "butyrospermum parkii shea butter"},
		{name: "drops non ascii letters", in: "Crème", out: "crme"},
		{name: "keeps inner whitespace as is", in: "cetearyl  alcohol", out: "cetearyl  alcohol"},
		{name: "symbols only", in: "®™", out: ""},
		{name: "empty", in: "", out: ""},
	}

	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.out {
			t.Fatalf("%s: expected %q got %q", tc.name, tc.out, got)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	for _, in := range []string{"Sodium Laureth Sulfate", " Water/Aqua/Eau ", "Vitamin E (Tocopherol)"} {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("normalize not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestNormalizeAllPreservesOrder(t *testing.T) {
	got := NormalizeAll([]string{"Water", "Glycerin", "WATER"})
	want := []string{"water", "glycerin", "water"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %q got %q", i, want[i], got[i])
		}
	}
}
