// Package pantry suggests a storage category for a pantry item from its name.
package pantry

import (
	"strings"

	"github.com/dukerupert/supper/internal/ingredient"
	"github.com/dukerupert/supper/internal/model"
)

// SuggestCategory returns the pantry category an item most likely belongs
// in. Names are compared after ingredient normalisation: an exact match
// wins, then the first keyword contained in the name. Unknown items are
// "other".
func SuggestCategory(name string) model.PantryCategory {
	n := ingredient.Normalize(name)
	if n == "" {
		return model.CategoryOther
	}

	if cat, ok := exact[n]; ok {
		return cat
	}

	padded := " " + n + " "
	for _, k := range keywords {
		if strings.Contains(padded, k.word) {
			return k.category
		}
	}
	return model.CategoryOther
}

var exact = map[string]model.PantryCategory{
	"apple": model.CategoryProduce, "apples": model.CategoryProduce,
	"banana": model.CategoryProduce, "bananas": model.CategoryProduce,
	"lemon": model.CategoryProduce, "lemons": model.CategoryProduce,
	"lime": model.CategoryProduce, "limes": model.CategoryProduce,
	"avocado": model.CategoryProduce, "avocados": model.CategoryProduce,
	"garlic": model.CategoryProduce, "ginger": model.CategoryProduce,
	"cilantro": model.CategoryProduce, "basil": model.CategoryProduce,
	"parsley": model.CategoryProduce, "jalapeno": model.CategoryProduce,
	"zucchini": model.CategoryProduce, "asparagus": model.CategoryProduce,
	"broccoli": model.CategoryProduce, "corn": model.CategoryProduce,
	"cucumber": model.CategoryProduce, "mushrooms": model.CategoryProduce,
	"green beans": model.CategoryProduce, "scallions": model.CategoryProduce,

	"eggs": model.CategoryDairy, "butter": model.CategoryDairy,
	"halfandhalf": model.CategoryDairy, "half and half": model.CategoryDairy,

	"ham": model.CategoryMeat, "tuna": model.CategoryMeat, "fish": model.CategoryMeat,
	"tofu": model.CategoryMeat,

	"pepper": model.CategoryPantry, "black pepper": model.CategoryPantry,
	"salt": model.CategoryPantry, "oil": model.CategoryPantry,
	"water": model.CategoryOther,
}

type keyword struct {
	word     string
	category model.PantryCategory
}

// keywords are matched in order against the space-padded name, so more
// specific phrases come first. A leading space anchors a word start.
var keywords = []keyword{
	{" frozen", model.CategoryFrozen},
	{" ice cream", model.CategoryFrozen},
	{" popsicle", model.CategoryFrozen},

	{" peanut butter", model.CategoryPantry},
	{" almond butter", model.CategoryPantry},
	{" coconut milk", model.CategoryPantry},
	{" canned", model.CategoryPantry},
	{" tomato sauce", model.CategoryPantry},
	{" tomato paste", model.CategoryPantry},
	{" soy sauce", model.CategoryPantry},
	{" hot sauce", model.CategoryPantry},
	{" chicken stock", model.CategoryPantry},
	{" chicken broth", model.CategoryPantry},
	{" beef broth", model.CategoryPantry},

	{" chicken", model.CategoryMeat},
	{" beef", model.CategoryMeat},
	{" pork", model.CategoryMeat},
	{" turkey", model.CategoryMeat},
	{" bacon", model.CategoryMeat},
	{" sausage", model.CategoryMeat},
	{" steak", model.CategoryMeat},
	{" lamb", model.CategoryMeat},
	{" salmon", model.CategoryMeat},
	{" shrimp", model.CategoryMeat},
	{" cod", model.CategoryMeat},
	{" tilapia", model.CategoryMeat},
	{" crab", model.CategoryMeat},
	{" prosciutto", model.CategoryMeat},
	{" chorizo", model.CategoryMeat},

	{" sour cream", model.CategoryDairy},
	{" cream cheese", model.CategoryDairy},
	{" heavy cream", model.CategoryDairy},
	{" yogurt", model.CategoryDairy},
	{" cheese", model.CategoryDairy},
	{" parmesan", model.CategoryDairy},
	{" mozzarella", model.CategoryDairy},
	{" cheddar", model.CategoryDairy},
	{" feta", model.CategoryDairy},
	{" milk", model.CategoryDairy},
	{" cream", model.CategoryDairy},
	{" egg", model.CategoryDairy},

	{" bell pepper", model.CategoryProduce},
	{" sweet potato", model.CategoryProduce},
	{" green onion", model.CategoryProduce},
	{" cherry tomato", model.CategoryProduce},
	{" tomato", model.CategoryProduce},
	{" potato", model.CategoryProduce},
	{" onion", model.CategoryProduce},
	{" carrot", model.CategoryProduce},
	{" celery", model.CategoryProduce},
	{" lettuce", model.CategoryProduce},
	{" spinach", model.CategoryProduce},
	{" kale", model.CategoryProduce},
	{" cabbage", model.CategoryProduce},
	{" cauliflower", model.CategoryProduce},
	{" squash", model.CategoryProduce},
	{" mushroom", model.CategoryProduce},
	{" berries", model.CategoryProduce},
	{" berry", model.CategoryProduce},
	{" apple", model.CategoryProduce},
	{" herb", model.CategoryProduce},
	{" fruit", model.CategoryProduce},

	{" rice", model.CategoryPantry},
	{" pasta", model.CategoryPantry},
	{" spaghetti", model.CategoryPantry},
	{" noodle", model.CategoryPantry},
	{" flour", model.CategoryPantry},
	{" sugar", model.CategoryPantry},
	{" oats", model.CategoryPantry},
	{" oil", model.CategoryPantry},
	{" vinegar", model.CategoryPantry},
	{" sauce", model.CategoryPantry},
	{" broth", model.CategoryPantry},
	{" stock", model.CategoryPantry},
	{" bean", model.CategoryPantry},
	{" lentil", model.CategoryPantry},
	{" chickpea", model.CategoryPantry},
	{" spice", model.CategoryPantry},
	{" seasoning", model.CategoryPantry},
	{" bread", model.CategoryPantry},
	{" tortilla", model.CategoryPantry},
	{" honey", model.CategoryPantry},
	{" nuts", model.CategoryPantry},
}
