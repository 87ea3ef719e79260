package plant

import (
	"errors"
	"testing"

	"grow-diary/internal/database"
)

func setAll(t *testing.T, r *database.PlantRatings, value int) {
	t.Helper()
	for category := range RatingCategoryNames {
		if err := SetSubScore(r, category, value); err != nil {
			t.Fatalf("SetSubScore(%s, %d): %v", category, value, err)
		}
	}
}

func TestSetSubScore(t *testing.T) {
	t.Run("AllFives", func(t *testing.T) {
		var r database.PlantRatings
		setAll(t, &r, 5)
		if r.OverallRating != 5.0 {
			t.Errorf("overall %v, want 5.0", r.OverallRating)
		}
	})

	t.Run("AllOnes", func(t *testing.T) {
		var r database.PlantRatings
		setAll(t, &r, 1)
		if r.OverallRating != 1.0 {
			t.Errorf("overall %v, want 1.0", r.OverallRating)
		}
	})

	t.Run("HeavierCategoryWeighsMore", func(t *testing.T) {
		var withYield database.PlantRatings
		setAll(t, &withYield, 1)
		if err := SetSubScore(&withYield, RatingTotalYield, 5); err != nil {
			t.Fatal(err)
		}

		var withAroma database.PlantRatings
		setAll(t, &withAroma, 1)
		if err := SetSubScore(&withAroma, RatingAroma, 5); err != nil {
			t.Fatal(err)
		}

		if withYield.OverallRating <= withAroma.OverallRating {
			t.Errorf("totalYield=5 overall %v not greater than aroma=5 overall %v",
				withYield.OverallRating, withAroma.OverallRating)
		}
	})

	t.Run("OutOfRange", func(t *testing.T) {
		var r database.PlantRatings
		for _, value := range []int{0, -1, 6, 100} {
			if err := SetSubScore(&r, RatingAroma, value); !errors.Is(err, ErrInvalidRating) {
				t.Errorf("value %d: expected ErrInvalidRating, got %v", value, err)
			}
		}
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		var r database.PlantRatings
		if err := SetSubScore(&r, RatingCategory("beauty"), 3); err == nil {
			t.Error("expected error for unknown category")
		}
	})

	t.Run("OverallRecomputedOnEveryChange", func(t *testing.T) {
		var r database.PlantRatings
		setAll(t, &r, 3)
		before := r.OverallRating
		if err := SetSubScore(&r, RatingTotalYield, 5); err != nil {
			t.Fatal(err)
		}
		if r.OverallRating <= before {
			t.Errorf("overall %v did not increase from %v", r.OverallRating, before)
		}
	})
}
