package naturalsort

import (
	"slices"
	"testing"
)

func TestStrings_NumericRunsCompareByValue(t *testing.T) {
	names := []string{"img2.png", "img10.png", "img1.png"}
	Strings(names)

	want := []string{"img1.png", "img2.png", "img10.png"}
	if !slices.Equal(names, want) {
		t.Fatalf("Strings() = %v, want %v", names, want)
	}
}

func TestStrings_CaseInsensitive(t *testing.T) {
	names := []string{"B.png", "a.png"}
	Strings(names)

	want := []string{"a.png", "B.png"}
	if !slices.Equal(names, want) {
		t.Fatalf("Strings() = %v, want %v", names, want)
	}
}

func TestStrings_MultipleNumericRuns(t *testing.T) {
	names := []string{"ch10p2.jpg", "ch2p10.jpg", "ch2p9.jpg", "ch2p1.jpg"}
	Strings(names)

	want := []string{"ch2p1.jpg", "ch2p9.jpg", "ch2p10.jpg", "ch10p2.jpg"}
	if !slices.Equal(names, want) {
		t.Fatalf("Strings() = %v, want %v", names, want)
	}
}

func TestCompare_LeadingZeros(t *testing.T) {
	if c := Compare("page007.png", "page7.png"); c >= 0 {
		t.Fatalf("Compare(page007, page7) = %d, want < 0 (byte tie-break)", c)
	}
	if c := Compare("page007.png", "page08.png"); c >= 0 {
		t.Fatalf("Compare(page007, page08) = %d, want < 0 (7 < 8)", c)
	}
	if c := Compare("page10.png", "page009.png"); c <= 0 {
		t.Fatalf("Compare(page10, page009) = %d, want > 0 (10 > 9)", c)
	}
}

func TestCompare_LongDigitRuns(t *testing.T) {
	// Runs longer than any machine integer must still compare by value.
	a := "v184467440737095516151.dat"
	b := "v184467440737095516160.dat"
	if c := Compare(a, b); c >= 0 {
		t.Fatalf("Compare() = %d, want < 0", c)
	}
}

func TestCompare_TypeMismatchFallsBackToStrings(t *testing.T) {
	// "1abc" opens with a digit run, "abc1" with text; the comparison
	// must stay deterministic instead of faulting.
	if c := Compare("1abc", "abc1"); c >= 0 {
		t.Fatalf("Compare(1abc, abc1) = %d, want < 0", c)
	}
	if c := Compare("abc1", "1abc"); c <= 0 {
		t.Fatalf("Compare(abc1, 1abc) = %d, want > 0", c)
	}
}

func TestCompare_PrefixOrdering(t *testing.T) {
	if c := Compare("ch1", "ch1_extra"); c >= 0 {
		t.Fatalf("Compare(ch1, ch1_extra) = %d, want < 0", c)
	}
	if c := Compare("", "a"); c >= 0 {
		t.Fatalf("Compare(\"\", a) = %d, want < 0", c)
	}
	if c := Compare("", ""); c != 0 {
		t.Fatalf("Compare(\"\", \"\") = %d, want 0", c)
	}
}

func TestCompare_Totality(t *testing.T) {
	inputs := []string{"a1", "A1", "a01", "a001", "b", "10", "2", "", "á"}
	for _, a := range inputs {
		for _, b := range inputs {
			ab := Compare(a, b)
			ba := Compare(b, a)
			if ab != -ba {
				t.Fatalf("Compare(%q,%q)=%d but Compare(%q,%q)=%d; not antisymmetric", a, b, ab, b, a, ba)
			}
			if a == b && ab != 0 {
				t.Fatalf("Compare(%q,%q) = %d, want 0", a, b, ab)
			}
			if a != b && ab == 0 {
				t.Fatalf("Compare(%q,%q) = 0 for distinct strings", a, b)
			}
		}
	}
}

func TestStrings_Stable(t *testing.T) {
	// Two distinct names that compare equal through every run still end
	// up in a fixed order thanks to the raw tie-break.
	names := []string{"Page01.png", "page1.png"}
	Strings(names)
	want := []string{"Page01.png", "page1.png"}
	if !slices.Equal(names, want) {
		t.Fatalf("Strings() = %v, want %v", names, want)
	}
}

func TestLess(t *testing.T) {
	if !Less("img9.png", "img10.png") {
		t.Fatal("Less(img9, img10) = false, want true")
	}
	if Less("img10.png", "img9.png") {
		t.Fatal("Less(img10, img9) = true, want false")
	}
}
