package model

// Category classifies a goal into one of a fixed set of life areas.
type Category string

const (
	// CategoryCareer covers professional and work goals.
	CategoryCareer Category = "CAREER"
	// CategoryFinance covers money and savings goals.
	CategoryFinance Category = "FINANCE"
	// CategoryHealth covers fitness and wellbeing goals.
	CategoryHealth Category = "HEALTH"
	// CategoryLearning covers education and skill goals.
	CategoryLearning Category = "LEARNING"
	// CategoryRelationship covers family and social goals.
	CategoryRelationship Category = "RELATIONSHIP"
	// CategoryLifestyle covers habits and daily-life goals.
	CategoryLifestyle Category = "LIFESTYLE"
	// CategoryHobby covers leisure and creative goals.
	CategoryHobby Category = "HOBBY"
	// CategoryOther is the catch-all bucket.
	CategoryOther Category = "OTHER"
)

// Categories returns every category in enumeration order. Aggregations that
// break ties between categories use this order.
func Categories() []Category {
	return []Category{
		CategoryCareer,
		CategoryFinance,
		CategoryHealth,
		CategoryLearning,
		CategoryRelationship,
		CategoryLifestyle,
		CategoryHobby,
		CategoryOther,
	}
}

// Valid reports whether the category is one of the enumerated set.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}
