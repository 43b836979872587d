package services

// Dish types recognized by the classifier. Closed set.
const (
	DishTypePasta    = "pasta"
	DishTypeMeat     = "meat"
	DishTypeSeafood  = "seafood"
	DishTypeSoup     = "soup"
	DishTypeSalad    = "salad"
	DishTypeDessert  = "dessert"
	DishTypeBread    = "bread"
	DishTypeFried    = "fried"
	DishTypeRice     = "rice"
	DishTypeTaco     = "taco"
	DishTypeBurger   = "burger"
	DishTypeBeverage = "beverage"
	DishTypeOther    = "other"
)

// cameraSetup describes the photographic setup for a price tier.
type cameraSetup struct {
	Setup string
	DOF   string
	Angle string
}

// cameraConfig keys camera setups by restaurant price tier. Styled as iPhone
// photography for an authentic, casual feel.
var cameraConfig = map[string]cameraSetup{
	"budget": {
		Setup: "iPhone photo, casual snapshot style",
		DOF:   "natural smartphone depth",
		Angle: "straight-on casual angle, as if taken by a customer",
	},
	"mid-range": {
		Setup: "iPhone photo, well-composed food shot",
		DOF:   "portrait mode with natural background blur",
		Angle: "slightly elevated angle, typical restaurant photo",
	},
	"upscale": {
		Setup: "iPhone Pro photo, carefully composed",
		DOF:   "portrait mode with creamy bokeh",
		Angle: "artful angle showcasing presentation",
	},
}

// lightingConfig keys lighting descriptors by mood.
var lightingConfig = map[string]string{
	"natural":    "soft natural window light from the left, subtle fill light from right, neutral daylight balance",
	"restaurant": "warm ambient restaurant lighting, soft rim light on edges, intimate atmosphere",
	"bright":     "bright even lighting, minimal shadows, clean commercial look",
	"dramatic":   "low-key dramatic lighting, single key light, deep shadows highlighting the dish",
}

// surfaceConfig keys surface/background descriptors by presentation style.
var surfaceConfig = map[string]string{
	"street food authentic": "rustic weathered wooden table, natural imperfections",
	"casual modern":         "clean light wood surface or simple white background",
	"traditional Japanese":  "dark wood or black lacquered surface, minimal styling",
	"classic diner":         "formica countertop or clean white ceramic surface",
	"modern elevated":       "dark slate or polished concrete surface",
	"refined minimalist":    "pure white surface or light marble background",
	"generous family-style": "warm wooden farmhouse table with natural linen napkin",
}

const defaultSurface = "clean restaurant table"

// dishTypeRule bundles the texture, styling and imperfection guidance for one
// dish type. Every dish type has a complete entry.
type dishTypeRule struct {
	Texture       string
	Styling       string
	Imperfections string
}

var dishTypeRules = map[string]dishTypeRule{
	DishTypePasta: {
		Texture:       "glossy sauce emulsion coating each strand, visible steam rising, freshly grated parmesan cheese",
		Styling:       "elegantly twirled portion showing sauce integration, nest presentation",
		Imperfections: "sauce droplets on plate rim, slight sauce pooling at base",
	},
	DishTypeMeat: {
		Texture:       "visible sear marks with Maillard browning, glistening meat juices, caramelized golden crust",
		Styling:       "resting with natural juices, fresh herb sprig garnish, flaky finishing salt",
		Imperfections: "natural juice pooling on plate, slight char variation on edges",
	},
	DishTypeSeafood: {
		Texture:       "moist flaky flesh with delicate layers, crispy golden skin, light oil sheen",
		Styling:       "fresh lemon wedge alongside, micro herb garnish, clean presentation",
		Imperfections: "natural flaking at edges where fork would touch, slight skin bubbling",
	},
	DishTypeSoup: {
		Texture:       "smooth velvety surface with soft reflection, delicate steam wisps rising, floating toppings",
		Styling:       "artistic garnish floating on surface, clean bowl rim with one or two drops",
		Imperfections: "slight surface ripple from recent ladling, herb oil not perfectly distributed",
	},
	DishTypeSalad: {
		Texture:       "fresh crisp leaves with natural sheen, glistening dressing droplets, vibrant vegetable colors",
		Styling:       "height and volume in presentation, visible ingredient layers throughout",
		Imperfections: "slightly wilted edge on outer leaves, uneven dressing distribution",
	},
	DishTypeDessert: {
		Texture:       "smooth glossy ganache or cream, visible distinct layers, dusted powdered sugar, elegant chocolate drizzle",
		Styling:       "precise architectural plating with artistic sauce work, mint leaf accent",
		Imperfections: "natural crumb scatter near slice, slight sauce drip on plate edge",
	},
	DishTypeBread: {
		Texture:       "crusty golden exterior with natural cracks, soft open interior crumb structure, warm golden brown color",
		Styling:       "rustic torn presentation, softened butter pat nearby, wooden board",
		Imperfections: "natural crust cracks and splits, artisan flour dusting on surface",
	},
	DishTypeFried: {
		Texture:       "crispy golden batter with visible bubbles, craggy irregular texture, slight appetizing oil sheen",
		Styling:       "stacked presentation showing crispy edges, dipping sauce in small bowl",
		Imperfections: "few crumbs scattered naturally, slight color variation in coating",
	},
	DishTypeRice: {
		Texture:       "individual distinct grains with light sheen, gentle steam rising, colorful toppings on surface",
		Styling:       "mounded dome presentation with garnish on peak, proper bowl filling",
		Imperfections: "few grains scattered near bowl edge, slightly uneven mound shape",
	},
	DishTypeTaco: {
		Texture:       "warm soft tortilla with visible char marks, juicy filling visible, fresh vibrant toppings",
		Styling:       "tilted angle to showcase filling layers, lime wedge, salsa cups nearby",
		Imperfections: "filling slightly spilling over edge, tortilla fold not perfectly even",
	},
	DishTypeBurger: {
		Texture:       "toasted bun with sesame seeds, melting cheese draping over patty, caramelized meat crust",
		Styling:       "cross-section view or slightly compressed showing all layers clearly",
		Imperfections: "sauce drip running down side, natural cheese melt irregularity",
	},
	DishTypeBeverage: {
		Texture:       "condensation droplets on glass, crystal clear ice cubes, perfect foam texture on top",
		Styling:       "proper fill level in appropriate glassware, garnish on rim or floating",
		Imperfections: "condensation ring forming on surface beneath, slight foam dissipation",
	},
	DishTypeOther: {
		Texture:       "appetizing fresh appearance, natural true colors, appropriate moisture level for dish type",
		Styling:       "clean thoughtful plating with appropriate garnish, balanced composition",
		Imperfections: "subtle natural variations in color and texture, realistic presentation",
	},
}

// dishTypeKeywords drives keyword classification from item names/descriptions.
var dishTypeKeywords = map[string][]string{
	DishTypePasta: {
		"pasta", "spaghetti", "fettuccine", "linguine", "penne", "rigatoni",
		"lasagna", "ravioli", "carbonara", "bolognese", "alfredo",
		"mac and cheese", "noodle",
	},
	DishTypeMeat: {
		"steak", "beef", "ribeye", "filet", "sirloin", "pork", "lamb", "chop",
		"roast", "brisket", "ribs", "meatball", "carne",
	},
	DishTypeSeafood: {
		"fish", "salmon", "tuna", "shrimp", "lobster", "crab", "scallop",
		"oyster", "mussel", "calamari", "seafood", "pescado", "mariscos",
	},
	DishTypeSoup: {
		"soup", "stew", "broth", "chowder", "bisque", "ramen", "pho", "pozole",
		"caldo", "consomme",
	},
	DishTypeSalad: {"salad", "ensalada", "greens", "caesar", "garden", "arugula"},
	DishTypeDessert: {
		"cake", "pie", "tart", "ice cream", "gelato", "tiramisu", "flan",
		"churro", "brownie", "cookie", "cheesecake", "mousse", "pudding",
		"creme brulee", "postre", "dulce", "chocolate",
	},
	DishTypeBread: {
		"bread", "roll", "baguette", "focaccia", "ciabatta", "croissant",
		"toast", "pan",
	},
	DishTypeFried: {
		"fried", "fries", "crispy", "tempura", "nugget", "wing", "fritter",
		"croquette",
	},
	DishTypeRice: {
		"rice", "risotto", "paella", "arroz", "pilaf", "biryani", "fried rice",
	},
	DishTypeTaco: {
		"taco", "tostada", "gordita", "sope", "huarache", "quesadilla",
		"burrito", "enchilada",
	},
	DishTypeBurger:   {"burger", "hamburger", "cheeseburger", "slider", "patty melt"},
	DishTypeBeverage: {
		"drink", "cocktail", "beer", "wine", "coffee", "tea", "juice",
		"smoothie", "soda", "lemonade", "margarita", "agua",
	},
	DishTypeOther: {},
}

// realismMarkers push output toward casual photorealism. The prompt builder
// uses the first four.
var realismMarkers = []string{
	"shot on iPhone",
	"casual restaurant photo",
	"natural smartphone photography",
	"authentic moment captured",
	"realistic lighting and colors",
	"natural texture",
	"slight motion or imperfection acceptable",
	"not overly styled or artificial",
}

// negativeConstraints are appended to every prompt, complete list.
var negativeConstraints = []string{
	"no text",
	"no watermark",
	"no logo",
	"no hands",
	"no people",
	"no extra plates",
	"no shared platters",
	"only one dish visible",
	"one plate or bowl",
}
