package cache

import "testing"

func TestIsCacheFile(t *testing.T) {
	cases := map[string]bool{
		"f_000abc":            true,
		"f_0000ab":            true,
		"f_0000AB":            false, // uppercase hex rejected
		"f_00abc":             false, // only 5 hex digits
		"f_0000abcd":          false, // 8 hex digits
		"0123456789abcdef_0":  true,
		"0123456789abcdef_1":  true,
		"0123456789abcdef_s":  true,
		"0123456789abcdef_2":  false,
		"0123456789ABCDEF_0":  false,
		"index":                false,
		"the-journal":         false,
	}
	for name, want := range cases {
		if got := IsCacheFile(name); got != want {
			t.Errorf("IsCacheFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestClassify(t *testing.T) {
	if Classify("f_abcdef") != VariantBlockfile {
		t.Errorf("expected blockfile")
	}
	if Classify("0123456789abcdef_0") != VariantSimpleStream1 {
		t.Errorf("expected stream1")
	}
	if Classify("0123456789abcdef_1") != VariantSimpleStream2 {
		t.Errorf("expected stream2")
	}
	if Classify("0123456789abcdef_s") != VariantSimpleSparse {
		t.Errorf("expected sparse")
	}
	if Classify("weird.txt") != VariantUnknown {
		t.Errorf("expected unknown")
	}
}
