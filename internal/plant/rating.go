package plant

import (
	"errors"
	"fmt"
	"math"

	"grow-diary/internal/database"
)

var ErrInvalidRating = errors.New("оценка должна быть от 1 до 5")

type RatingCategory string

const (
	RatingGerminationSpeed RatingCategory = "germinationSpeed"
	RatingMaintenance      RatingCategory = "maintenance"
	RatingAroma            RatingCategory = "aroma"
	RatingFlowerCount      RatingCategory = "flowerCount"
	RatingFlowerVolume     RatingCategory = "flowerVolume"
	RatingVegSpeed         RatingCategory = "vegSpeed"
	RatingBloomSpeed       RatingCategory = "bloomSpeed"
	RatingTotalYield       RatingCategory = "totalYield"
)

var RatingCategoryNames = map[RatingCategory]string{
	RatingGerminationSpeed: "Скорость пророста",
	RatingMaintenance:      "Прихотливость",
	RatingAroma:            "Аромат",
	RatingFlowerCount:      "Количество соцветий",
	RatingFlowerVolume:     "Объём соцветий",
	RatingVegSpeed:         "Скорость веги",
	RatingBloomSpeed:       "Скорость цветения",
	RatingTotalYield:       "Общий урожай",
}

// Веса категорий фиксированы, общий рейтинг считается только из них
var ratingWeights = map[RatingCategory]float64{
	RatingGerminationSpeed: 1.0,
	RatingMaintenance:      0.8,
	RatingAroma:            0.7,
	RatingFlowerCount:      1.2,
	RatingFlowerVolume:     1.1,
	RatingVegSpeed:         1.0,
	RatingBloomSpeed:       1.0,
	RatingTotalYield:       1.5,
}

// SetSubScore выставляет оценку категории и пересчитывает общий рейтинг.
// Общий рейтинг пользователем не задается.
func SetSubScore(r *database.PlantRatings, category RatingCategory, value int) error {
	if value < 1 || value > 5 {
		return ErrInvalidRating
	}

	switch category {
	case RatingGerminationSpeed:
		r.GerminationSpeed = value
	case RatingMaintenance:
		r.Maintenance = value
	case RatingAroma:
		r.Aroma = value
	case RatingFlowerCount:
		r.FlowerCount = value
	case RatingFlowerVolume:
		r.FlowerVolume = value
	case RatingVegSpeed:
		r.VegSpeed = value
	case RatingBloomSpeed:
		r.BloomSpeed = value
	case RatingTotalYield:
		r.TotalYield = value
	default:
		return fmt.Errorf("неизвестная категория рейтинга: %s", category)
	}

	r.OverallRating = Overall(*r)
	return nil
}

// Overall взвешенное среднее восьми оценок, округленное до одного знака
func Overall(r database.PlantRatings) float64 {
	values := map[RatingCategory]int{
		RatingGerminationSpeed: r.GerminationSpeed,
		RatingMaintenance:      r.Maintenance,
		RatingAroma:            r.Aroma,
		RatingFlowerCount:      r.FlowerCount,
		RatingFlowerVolume:     r.FlowerVolume,
		RatingVegSpeed:         r.VegSpeed,
		RatingBloomSpeed:       r.BloomSpeed,
		RatingTotalYield:       r.TotalYield,
	}

	var weightedSum, totalWeight float64
	for category, weight := range ratingWeights {
		weightedSum += float64(values[category]) * weight
		totalWeight += weight
	}

	return math.Round(weightedSum/totalWeight*10) / 10
}
