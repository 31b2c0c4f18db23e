package align

import (
	"reflect"
	"testing"

	"codeberg.org/snonux/pagelingo/internal/fragment"
)

func TestAlignEvenSplit(t *testing.T) {
	fragments := fragment.Capture([]string{"Hello", "world"})

	instructions := Align(fragments, "Hola mundo")

	expected := []RewriteInstruction{
		{FragmentIndex: 0, NewText: "Hola"},
		{FragmentIndex: 1, NewText: "mundo"},
	}
	if !reflect.DeepEqual(instructions, expected) {
		t.Errorf("Expected %v, got %v", expected, instructions)
	}
}

func TestAlignSingleFragmentAbsorbsGrowth(t *testing.T) {
	fragments := fragment.Capture([]string{"Hello world"})

	instructions := Align(fragments, "Bonjour le monde")

	expected := []RewriteInstruction{
		{FragmentIndex: 0, NewText: "Bonjour le monde"},
	}
	if !reflect.DeepEqual(instructions, expected) {
		t.Errorf("Expected %v, got %v", expected, instructions)
	}
}

func TestAlignProportionalAllocation(t *testing.T) {
	fragments := fragment.Capture([]string{"One two", "three four"})

	// Five translated words for four original ones: the first fragment
	// takes ceil(2 * 1.25) = 3 words, the second the remaining 2.
	instructions := Align(fragments, "uno dos tres cuatro cinco")

	expected := []RewriteInstruction{
		{FragmentIndex: 0, NewText: "uno dos tres"},
		{FragmentIndex: 1, NewText: "cuatro cinco"},
	}
	if !reflect.DeepEqual(instructions, expected) {
		t.Errorf("Expected %v, got %v", expected, instructions)
	}
}

func TestAlignLastAllocatedAbsorbsLeftovers(t *testing.T) {
	fragments := []fragment.TextFragment{
		fragment.New(0, "One two three four"),
		fragment.New(1, ""),
	}

	// The second fragment has no words, so every translated word must
	// land on the first fragment.
	instructions := Align(fragments, "uno dos tres cuatro cinco seis")

	if len(instructions) != 1 {
		t.Fatalf("Expected 1 instruction, got %d", len(instructions))
	}
	if instructions[0].NewText != "uno dos tres cuatro cinco seis" {
		t.Errorf("Expected first fragment to absorb leftovers, got %q", instructions[0].NewText)
	}
}

func TestAlignSkipsZeroWordFragments(t *testing.T) {
	fragments := []fragment.TextFragment{
		fragment.New(0, "Hello"),
		fragment.New(1, "   "),
		fragment.New(2, "world"),
	}

	instructions := Align(fragments, "Hola mundo")

	if len(instructions) != 2 {
		t.Fatalf("Expected 2 instructions, got %d", len(instructions))
	}
	for _, instr := range instructions {
		if instr.FragmentIndex == 1 {
			t.Error("Expected no instruction for the whitespace-only fragment")
		}
	}
}

func TestAlignReattachesPunctuation(t *testing.T) {
	fragments := fragment.Capture([]string{"Hello world."})

	instructions := Align(fragments, "Hola mundo")

	if len(instructions) != 1 {
		t.Fatalf("Expected 1 instruction, got %d", len(instructions))
	}
	if instructions[0].NewText != "Hola mundo." {
		t.Errorf("Expected reattached period, got %q", instructions[0].NewText)
	}
}

func TestAlignDoesNotDoublePunctuation(t *testing.T) {
	fragments := fragment.Capture([]string{"Hello world."})

	instructions := Align(fragments, "Hola mundo.")

	if instructions[0].NewText != "Hola mundo." {
		t.Errorf("Expected single period, got %q", instructions[0].NewText)
	}
}

func TestAlignPreservesWhitespace(t *testing.T) {
	fragments := []fragment.TextFragment{fragment.New(0, "  Hello world\n")}

	instructions := Align(fragments, "Hola mundo")

	if instructions[0].NewText != "  Hola mundo\n" {
		t.Errorf("Expected surrounding whitespace preserved, got %q", instructions[0].NewText)
	}
}

func TestAlignDeterministic(t *testing.T) {
	fragments := fragment.Capture([]string{"The quick brown", "fox jumps", "over the lazy dog."})
	blob := "El rápido zorro marrón salta sobre el perro perezoso."

	first := Align(fragments, blob)
	second := Align(fragments, blob)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical output for identical input.\nFirst:  %v\nSecond: %v", first, second)
	}
}

func TestAlignEmptyInputs(t *testing.T) {
	if instructions := Align(nil, "Hola"); instructions != nil {
		t.Errorf("Expected nil for no fragments, got %v", instructions)
	}
	if instructions := Align(fragment.Capture([]string{"Hello"}), ""); instructions != nil {
		t.Errorf("Expected nil for empty translation, got %v", instructions)
	}
}

func TestApply(t *testing.T) {
	fragments := fragment.Capture([]string{"Hello", "untranslated", "world."})
	instructions := []RewriteInstruction{
		{FragmentIndex: 0, NewText: "Hola"},
		{FragmentIndex: 2, NewText: "mundo."},
	}

	if got := Apply(fragments, instructions); got != "Hola untranslated mundo." {
		t.Errorf("Expected %q, got %q", "Hola untranslated mundo.", got)
	}
}

func TestApplyNoInstructions(t *testing.T) {
	fragments := fragment.Capture([]string{"Hello", "world"})

	if got := Apply(fragments, nil); got != "Hello world" {
		t.Errorf("Expected original text, got %q", got)
	}
}
